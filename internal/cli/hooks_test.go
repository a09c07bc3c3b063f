package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arrange/pkg/observability"
)

func TestRegisterLogHooks(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	registerLogHooks(newLogger(&buf, log.DebugLevel))

	ctx := context.Background()
	observability.Layout().OnLayoutStart(ctx, 3, 2)
	observability.Layout().OnLayoutProgress(ctx, 50, 1.5)
	observability.Layout().OnLayoutComplete(ctx, observability.LayoutStats{Iterations: 120, Converged: true}, time.Millisecond, nil)
	observability.Route().OnRouteComplete(ctx, 2, 6, time.Millisecond, nil)
	observability.Render().OnRenderStart(ctx, []string{"svg"})

	out := buf.String()
	for _, want := range []string{"layout started", "layout step", "layout finished", "routing finished", "render started"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output is missing %q:\n%s", want, out)
		}
	}
}

func TestVerboseRegistersHooks(t *testing.T) {
	defer observability.Reset()

	input := writeInput(t, "orders.json", testDiagram)
	if _, err := execute(t, "-v", "inspect", input); err != nil {
		t.Fatal(err)
	}
	if _, ok := observability.Layout().(logHooks); !ok {
		t.Errorf("Layout() = %T, want logHooks after --verbose", observability.Layout())
	}
}
