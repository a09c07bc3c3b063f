package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arrange/pkg/observability"
)

// logHooks reports pipeline events at debug level. It is registered by
// --verbose.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetLayoutHooks(h)
	observability.SetRouteHooks(h)
	observability.SetRenderHooks(h)
}

func (h logHooks) OnLayoutStart(_ context.Context, nodes, edges int) {
	h.logger.Debug("layout started", "nodes", nodes, "edges", edges)
}

func (h logHooks) OnLayoutProgress(_ context.Context, iteration int, energy float64) {
	h.logger.Debug("layout step", "iteration", iteration, "energy", energy)
}

func (h logHooks) OnLayoutComplete(_ context.Context, stats observability.LayoutStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "iterations", stats.Iterations, "err", err)
		return
	}
	h.logger.Debug("layout finished",
		"iterations", stats.Iterations,
		"energy", stats.Energy,
		"converged", stats.Converged,
		"duration", d)
}

func (h logHooks) OnRouteStart(_ context.Context, connections int) {
	h.logger.Debug("routing started", "connections", connections)
}

func (h logHooks) OnRouteComplete(_ context.Context, connections, points int, d time.Duration, err error) {
	h.logger.Debug("routing finished", "connections", connections, "points", points, "duration", d, "err", err)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render finished", "formats", formats, "duration", d, "err", err)
}
