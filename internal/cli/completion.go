package cli

import (
	"github.com/spf13/cobra"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print a shell completion script",
		Long: `Print a completion script for the given shell to stdout.

Try it in the current shell:
  bash        source <(archdiagram completion bash)
  zsh         source <(archdiagram completion zsh)
  fish        archdiagram completion fish | source
  powershell  archdiagram completion powershell | Out-String | Invoke-Expression

To install it permanently, redirect the output to the shell's completion
directory instead, for example ~/.config/fish/completions/archdiagram.fish
or an entry of $fpath named _archdiagram (zsh needs compinit enabled).
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return root.GenBashCompletionV2(out, true)
			}
		},
	}
}
