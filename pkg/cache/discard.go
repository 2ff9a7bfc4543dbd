package cache

import (
	"context"
	"time"
)

// Discard is the cache used with --no-cache: lookups always miss and writes
// are dropped, so every run renders from scratch.
var Discard Cache = discard{}

type discard struct{}

func (discard) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (discard) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (discard) Delete(context.Context, string) error { return nil }

func (discard) Close() error { return nil }
