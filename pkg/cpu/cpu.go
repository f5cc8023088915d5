// Package cpu reports how many processors the host has.
package cpu

import (
	"context"
	"runtime"
	"time"

	gopsutil "github.com/shirou/gopsutil/v4/cpu"
	"github.com/tklauser/numcpus"
)

// Topology is a snapshot of the processor counts seen from this process. A
// zero count means it could not be determined.
type Topology struct {
	// Configured is the number of processors configured in the system
	Configured int
	// Online is the number of processors currently online
	Online int
	// Physical is the number of physical cores
	Physical int
	// Usable is the number of processors this process may run on
	Usable int
}

// configuredCount is swapped in tests
var configuredCount = numcpus.GetConfigured

// GetCPUCount returns the number of configured processors, or the number
// usable by this process if that cannot be read. It is never 0.
func GetCPUCount() uint {
	if n, err := configuredCount(); err == nil && n > 0 {
		return uint(n)
	}
	return uint(runtime.NumCPU())
}

// GetTopology collects every count it can. Errors from the individual
// sources are not fatal: the matching count is left at 0.
func GetTopology(ctx context.Context) Topology {
	topology := Topology{
		Configured: int(GetCPUCount()),
		Usable:     runtime.NumCPU(),
	}
	if n, err := numcpus.GetOnline(); err == nil {
		topology.Online = n
	}
	if n, err := gopsutil.CountsWithContext(ctx, false); err == nil {
		topology.Physical = n
	}
	return topology
}

// Usage returns the overall CPU usage in percent measured over interval.
func Usage(ctx context.Context, interval time.Duration) (float64, error) {
	percents, err := gopsutil.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, nil
	}
	return percents[0], nil
}
