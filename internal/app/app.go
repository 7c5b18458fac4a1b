package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mariusae/mg/internal/config"
	"github.com/mariusae/mg/internal/display"
	"github.com/mariusae/mg/internal/display/driver"
	"github.com/mariusae/mg/internal/mouse"
	"github.com/mariusae/mg/internal/window"
)

// Editor ties the terminal driver, the redisplay engine, and input
// decoding together into one event loop.
type Editor struct {
	log *Logger
	cfg config.Config

	drv driver.Driver
	eng *display.Engine
	ws  *window.Set

	tracker mouse.Tracker

	in     *bufio.Reader
	out    io.Writer
	size   func() (rows, cols int, err error)
	resize func(rows, cols int) error

	cfgPath string
	cfgCh   chan config.Config

	events chan inputEvent
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the editor's logger.
func WithLogger(l *Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithInput sets the byte stream keys and mouse reports arrive on.
func WithInput(r io.Reader) Option {
	return func(e *Editor) { e.in = bufio.NewReader(r) }
}

// WithOutput sets the writer mouse tracking sequences go to. This must
// be the same terminal the driver writes to.
func WithOutput(w io.Writer) Option {
	return func(e *Editor) { e.out = w }
}

// WithSize sets the probe used to re-measure the terminal after a
// window-change signal.
func WithSize(f func() (rows, cols int, err error)) Option {
	return func(e *Editor) { e.size = f }
}

// WithResize sets the hook that tells the driver about a new terminal
// size.
func WithResize(f func(rows, cols int) error) Option {
	return func(e *Editor) { e.resize = f }
}

// WithConfigPath enables live reload of the configuration file at path.
func WithConfigPath(path string) Option {
	return func(e *Editor) { e.cfgPath = path }
}

// New creates an editor over the given driver and window set.
func New(cfg config.Config, drv driver.Driver, ws *window.Set, opts ...Option) (*Editor, error) {
	if len(ws.Windows()) == 0 {
		return nil, ErrNoWindows
	}
	e := &Editor{
		log:    NewLogger(nil, LogLevelInfo),
		cfg:    cfg,
		drv:    drv,
		ws:     ws,
		in:     bufio.NewReader(os.Stdin),
		cfgCh:  make(chan config.Config, 1),
		events: make(chan inputEvent, 64),
	}
	for _, opt := range opts {
		opt(e)
	}

	eng, err := display.New(drv, display.WithTypeahead(e.pending))
	if err != nil {
		return nil, NewOperationError("display init", "", err)
	}
	eng.SetLineNumbers(cfg.Display.LineNumbers)
	eng.SetColumnNumbers(cfg.Display.ColumnNumbers)
	eng.SetClock(cfg.Display.Clock)
	e.eng = eng

	for _, w := range ws.Windows() {
		w.Buf.TabWidth = cfg.Display.TabWidth
	}

	rows, _ := drv.Size()
	if err := Layout(ws, rows); err != nil {
		return nil, err
	}
	return e, nil
}

// Layout distributes terminal rows across the window set: each window
// gets a text area and a mode line, with the bottom terminal row
// reserved for the echo line.
func Layout(ws *window.Set, rows int) error {
	n := len(ws.Windows())
	avail := rows - 1 - n
	if n == 0 || avail < n {
		return ErrTerminalTooSmall
	}
	each := avail / n
	extra := avail % n
	top := 0
	for i, w := range ws.Windows() {
		r := each
		if i == n-1 {
			r += extra
		}
		w.TopRow = top
		w.Rows = r
		top += r + 1
		w.SetFlag(window.RedrawFull | window.RedrawMode | window.RedrawFrame)
	}
	return nil
}

// pending reports whether input is queued, letting the engine skip
// redisplay cycles during a burst of events.
func (e *Editor) pending() bool {
	return len(e.events) > 0 || e.in.Buffered() > 0
}

// Run drives the editor until quit, a read error, or context
// cancellation.
func (e *Editor) Run(ctx context.Context) error {
	if e.cfg.Mouse.Enabled && e.out != nil {
		if _, err := io.WriteString(e.out, mouse.EnableSeq); err != nil {
			return NewOperationError("mouse enable", "", err)
		}
		defer io.WriteString(e.out, mouse.DisableSeq)
	}

	if e.cfgPath != "" {
		w, err := config.Watch(e.cfgPath, func(cfg config.Config) {
			select {
			case e.cfgCh <- cfg:
			default:
			}
		})
		if err != nil {
			e.log.Warn("config watch failed: %v", err)
		} else {
			defer w.Close()
		}
	}

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)

	go e.readLoop()

	defer e.eng.Tidy()
	for {
		if err := e.eng.Update(e.ws); err != nil {
			return NewOperationError("update", "", err)
		}
		select {
		case ev := <-e.events:
			if err := e.handle(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		case <-winch:
			if err := e.handleResize(); err != nil {
				return err
			}
		case cfg := <-e.cfgCh:
			e.applyConfig(cfg)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// handleResize re-measures the terminal and re-lays-out everything.
func (e *Editor) handleResize() error {
	if e.size == nil {
		return nil
	}
	rows, cols, err := e.size()
	if err != nil {
		return NewOperationError("resize", "", err)
	}
	if e.resize != nil {
		if err := e.resize(rows, cols); err != nil {
			return NewOperationError("resize", "", err)
		}
	}
	if err := e.eng.Resize(rows, cols); err != nil {
		return NewOperationError("resize", "", err)
	}
	e.log.Debug("resized to %dx%d", rows, cols)
	return Layout(e.ws, rows)
}

// applyConfig applies a live-reloaded configuration.
func (e *Editor) applyConfig(cfg config.Config) {
	e.log.Info("config reloaded")
	e.cfg = cfg
	e.eng.SetLineNumbers(cfg.Display.LineNumbers)
	e.eng.SetColumnNumbers(cfg.Display.ColumnNumbers)
	e.eng.SetClock(cfg.Display.Clock)
	for _, w := range e.ws.Windows() {
		w.Buf.TabWidth = cfg.Display.TabWidth
		w.SetFlag(window.RedrawFull | window.RedrawMode)
	}
}
