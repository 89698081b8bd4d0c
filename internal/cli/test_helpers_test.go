package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/baaaaaaaka/cmdterm/cellui"
	"github.com/baaaaaaaka/cmdterm/internal/config"
)

func newTempStore(t *testing.T) *config.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	store, err := config.NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

// runRoot executes the root command with args and returns its output.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// line types s and presses Enter.
func line(s string) []cellui.Event {
	return append(cellui.Type(s), cellui.KeyEvent{Key: cellui.KeyEnter})
}

// screen records what the scripted frames drew.
type screen struct {
	grid *cellui.Grid
	// last is the grid content of the last frame that kept the terminal
	// open. The closing frame draws nothing.
	last string
}

// useScript replaces the screen backends with one feeding script to the
// frames, one entry per frame, on an 80x24 grid.
func useScript(t *testing.T, script ...[]cellui.Event) *screen {
	t.Helper()
	scr := &screen{grid: cellui.NewGrid(80, 24)}
	fake := func(_ context.Context, ui *cellui.UI, frame func() bool, _ time.Duration, _ *zap.Logger) error {
		for i := 0; i < len(script)+5; i++ {
			var events []cellui.Event
			if i < len(script) {
				events = script[i]
			}
			ui.BeginFrame(scr.grid, events...)
			keep := frame()
			ui.EndFrame()
			if !keep {
				return nil
			}
			scr.last = scr.grid.String()
		}
		t.Errorf("terminal did not close after the script")
		return nil
	}
	prevRunners := runners
	runners = map[string]frameRunner{backendTcell: fake, backendTea: fake}
	prevInteractive := isInteractive
	isInteractive = func() bool { return true }
	t.Cleanup(func() {
		runners = prevRunners
		isInteractive = prevInteractive
	})
	return scr
}
