// Package main is the entry point for the mg editor.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/mariusae/mg/internal/app"
	"github.com/mariusae/mg/internal/config"
	"github.com/mariusae/mg/internal/display/driver"
	"github.com/mariusae/mg/internal/window"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		logPath     string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "path to configuration file")
	flag.StringVar(&logPath, "log", "", "path to debug log file")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("mg %s (%s)\n", version, commit)
		return 0
	}

	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mg: %v\n", err)
		return 1
	}

	log := app.NewLogger(nil, app.LogLevelInfo)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mg: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log = app.NewLogger(f, app.LogLevelDebug)
	}

	buf, err := loadBuffer(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "mg: %v\n", err)
		return 1
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "mg: standard input is not a terminal")
		return 1
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mg: %v\n", err)
		return 1
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mg: %v\n", err)
		return 1
	}
	defer term.Restore(fd, state)

	drv := driver.NewTerm(os.Stdout, rows, cols)
	ws := window.NewSet(window.New(buf, 0, 1))

	ed, err := app.New(cfg, drv, ws,
		app.WithLogger(log),
		app.WithInput(bufio.NewReader(os.Stdin)),
		app.WithOutput(os.Stdout),
		app.WithConfigPath(configPath),
		app.WithSize(func() (int, int, error) {
			c, r, err := term.GetSize(fd)
			return r, c, err
		}),
		app.WithResize(func(rows, cols int) error {
			drv.Resize(rows, cols)
			return nil
		}),
	)
	if err != nil {
		term.Restore(fd, state)
		fmt.Fprintf(os.Stderr, "mg: %v\n", err)
		return 1
	}

	if err := ed.Run(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
		term.Restore(fd, state)
		fmt.Fprintf(os.Stderr, "mg: %v\n", err)
		return 1
	}
	return 0
}

// loadBuffer reads a file into a buffer, or creates an empty scratch
// buffer when no path is given.
func loadBuffer(path string) (*window.Buffer, error) {
	if path == "" {
		return window.NewBufferLines("*scratch*", []string{""}), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return window.NewBufferLines(filepath.Base(path), []string{""}), nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return window.NewBufferLines(filepath.Base(path), lines), nil
}
