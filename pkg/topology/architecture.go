package topology

import (
	"fmt"

	"github.com/thetiptop/archdiagram/pkg/diagram"
	"github.com/thetiptop/archdiagram/pkg/diagram/kind"
)

// WorkerCount is the size of the autoscaling group.
const WorkerCount = 5

// Architecture declares the production architecture:
//
//	DNS → CDN → LoadBalancer → worker1..worker5 → Databases Write → Databases Read
//
// The load balancer and workers sit in the private subnet, the database
// cluster in the isolated subnet, and both subnets inside the VPC.
func Architecture(Env) (*diagram.Diagram, error) {
	d := diagram.New("TheTipTop - Architecture", diagram.WithFilename("architecture"))

	dns := d.Node(kind.Route53, "DNS")
	cdn := d.Node(kind.CloudFront, "CDN")

	vpc := d.Cluster("VPC")

	private := vpc.Cluster("Private subnet")
	lb := private.Node(kind.NLB, "LoadBalancer")
	asg := private.Cluster("AutoScalingGroup")
	workers := make(diagram.Group, 0, WorkerCount)
	for i := 1; i <= WorkerCount; i++ {
		workers = append(workers, asg.Node(kind.EC2, fmt.Sprintf("worker%d", i)))
	}

	isolated := vpc.Cluster("Isolated subnet")
	dbCluster := isolated.Cluster("DBCluster")
	dbWrite := dbCluster.Node(kind.RDS, "Databases Write")
	dbRead := diagram.Group{dbCluster.Node(kind.RDS, "Databases Read")}

	d.Chain(dns, cdn, lb)
	d.Connect(lb, workers)
	d.Connect(workers, dbWrite)
	d.Connect(dbWrite, dbRead)

	return finish(d)
}
