// Package main is a terminal demonstration of the hoverline overlay
// subsystems: a table-handle tracker driven by real mouse events and a
// slash-menu popup provider driven by keystrokes.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hoverline/internal/config"
	"github.com/dshills/hoverline/internal/element"
	"github.com/dshills/hoverline/internal/geometry"
	"github.com/dshills/hoverline/internal/popup"
	"github.com/dshills/hoverline/internal/tablehandle"
	"github.com/dshills/hoverline/internal/view"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var showVersion bool
	flag.StringVar(&configPath, "config", "", "Path to configuration file (.yaml or .toml)")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("hoverline-demo %s\n", version)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	if err := loop(screen, cfg, configPath); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loop(screen tcell.Screen, cfg config.Config, configPath string) error {
	s := &surface{}
	ind := newIndicators()

	solver := &viewportSolver{}
	solver.setViewport(screen.Size())

	logf := func(string, ...any) {} // indicators self-correct; keep the screen clean

	tracker := tablehandle.NewTracker(ind.refs, tablehandle.Options{
		BoundaryThreshold: cfg.Table.BoundaryThreshold,
		ThrottleInterval:  cfg.Table.ThrottleInterval.Std(),
		HideDelay:         cfg.Table.HideDelay.Std(),
		Solver:            solver,
		Logf:              logf,
	})
	defer tracker.Stop()

	host := &element.Group{}
	env := element.NewBasicEnvironment(host)
	provider, err := popup.NewProvider(popup.Options{
		Element:    ind.popup,
		Debounce:   cfg.Popup.Debounce.Std(),
		Triggers:   cfg.Popup.Triggers,
		Offset:     cfg.Popup.Offset,
		TextWindow: cfg.Popup.TextWindow,
		Solver:     solver,
		Env:        env,
		Logf:       logf,
	})
	if err != nil {
		return err
	}
	defer provider.Destroy()

	// Live-reload tuning when a config file was given.
	if configPath != "" {
		watcher, werr := config.Watch(configPath, logf)
		if werr != nil {
			return werr
		}
		defer watcher.Close()
		watcher.Subscribe(func(c config.Config) {
			tracker.SetTuning(c.Table.BoundaryThreshold, c.Table.ThrottleInterval.Std(), c.Table.HideDelay.Std())
			provider.SetTuning(c.Popup.Debounce.Std(), c.Popup.Triggers, c.Popup.Offset, c.Popup.TextWindow)
		})
	}

	// Repaint on a timer tick as well as on input, so debounced and
	// throttled updates become visible without further events.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()

	provider.Update(s)

	for {
		draw(screen, s, ind)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventInterrupt:
			// repaint only

		case *tcell.EventResize:
			solver.setViewport(screen.Size())
			screen.Sync()

		case *tcell.EventMouse:
			x, y := ev.Position()
			p := geometry.Point{X: float64(x), Y: float64(y)}
			if s.ContentRect().Contains(p) {
				tracker.PointerMove(s, p)
			} else {
				tracker.PointerLeave()
			}

		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
				return nil
			case ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2:
				if s.backspace() {
					provider.Update(s)
				}
			case ev.Key() == tcell.KeyRune:
				s.typeRune(ev.Rune())
				provider.Update(s)
			}

		case nil:
			return nil
		}
	}
}

// Interface check: the demo surface is a full editor view.
var _ view.View = (*surface)(nil)
