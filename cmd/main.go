package main

import (
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/gogpu/gg"

	"github.com/irfansharif/waves/internal/config"
)

const logFlags = log.Ltime | log.Lshortfile

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)

	if os.Getenv("WAVES_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
	if os.Getenv("WAVES_DEBUG_GG") == "1" {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var err error
	switch cfg.Mode {
	case config.ModeWindow:
		err = runWindow(cfg)
	case config.ModeTerm:
		err = runTerm(cfg)
	case config.ModePNG, config.ModeSVG:
		err = runExport(cfg)
	case config.ModePalettes:
		err = printPalettes(os.Stdout, cfg)
	}
	if err != nil {
		log.Fatalf("%s: %v", cfg.Mode, err)
	}
}
