package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/scriptdeck/scriptdeck/internal/plugin"
	"github.com/scriptdeck/scriptdeck/internal/storage"
	"github.com/scriptdeck/scriptdeck/internal/surface"
)

var (
	runTUI    bool
	runWatch  bool
	runWidth  int
	runHeight int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Spawn and render all enabled plugins",
	RunE: func(cmd *cobra.Command, args []string) error {
		host, err := newHost(cmd)
		if err != nil {
			return err
		}
		defer host.DestroyAll(cmd.Context())

		if runTUI {
			return runTerminal(cmd.Context(), host)
		}
		return runStdout(cmd, host)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "render to the terminal instead of stdout")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "re-render when the library file changes externally (tui only)")
	runCmd.Flags().IntVar(&runWidth, "width", 60, "surface width for stdout rendering")
	runCmd.Flags().IntVar(&runHeight, "height", 6, "surface height for stdout rendering")

	rootCmd.AddCommand(runCmd)
}

// runStdout renders every enabled plugin onto its own memory surface and
// prints the results.
func runStdout(cmd *cobra.Command, host *plugin.Host) error {
	out := cmd.OutOrStdout()

	for _, def := range host.GetLibrary() {
		if !def.Enabled {
			continue
		}

		surf := surface.NewMemorySurface(runWidth, runHeight)
		host.Render(cmd.Context(), def.ID, surf)

		fmt.Fprintf(out, "== %s [%s]\n", def.Name, host.StateOf(def.ID))
		if content := surf.String(); content != "" {
			fmt.Fprintln(out, content)
		}
		fmt.Fprintln(out)
	}
	return nil
}

// runTerminal renders the enabled plugins stacked on a tcell screen and
// waits for a key press. With --watch, external library-file changes
// trigger a reload and re-render.
func runTerminal(ctx context.Context, host *plugin.Host) error {
	term, err := surface.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer term.Shutdown()

	redraw := make(chan struct{}, 1)

	if runWatch {
		watcher, err := storage.NewWatcher(cfg.LibraryPath(), logger)
		if err != nil {
			return fmt.Errorf("watching library: %w", err)
		}
		defer watcher.Close()

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		go watcher.Run(watchCtx, func() {
			host.DestroyAll(watchCtx)
			if err := host.Library().Reload(watchCtx); err != nil {
				logger.WithError(err).Warn("library reload failed")
				return
			}
			select {
			case redraw <- struct{}{}:
			default:
			}
		})
	}

	// Render output is kept per plugin: render runs at most once per
	// process life, so redraws reuse the band a plugin last drew into.
	bands := make(map[string]*surface.MemorySurface)

	drawAll(ctx, host, term, bands)

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := term.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-redraw:
			// Processes were destroyed on reload; fresh bands re-render.
			bands = make(map[string]*surface.MemorySurface)
			drawAll(ctx, host, term, bands)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
					return nil
				}
				if ev.Rune() == 'r' {
					drawAll(ctx, host, term, bands)
				}
			case *tcell.EventResize:
				drawAll(ctx, host, term, bands)
			}
		}
	}
}

// drawAll renders each enabled plugin into a band of the terminal.
func drawAll(ctx context.Context, host *plugin.Host, term *surface.Terminal, bands map[string]*surface.MemorySurface) {
	term.Clear()

	width, height := term.Size()
	row := 0
	for _, def := range host.GetLibrary() {
		if !def.Enabled || row >= height {
			continue
		}

		band, ok := bands[def.ID]
		if !ok {
			band = surface.NewMemorySurface(width, runHeight)
			bands[def.ID] = band
		}
		host.Render(ctx, def.ID, band)

		header := fmt.Sprintf("== %s [%s] ", def.Name, host.StateOf(def.ID))
		if len(header) < width {
			header += strings.Repeat("=", width-len(header))
		}
		term.SetLine(row, header)
		row++

		for _, line := range band.Lines() {
			if row >= height {
				break
			}
			term.SetLine(row, line)
			row++
		}
	}

	term.Show()
}
