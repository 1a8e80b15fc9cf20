package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

const lifecycleTimeout = 15 * time.Second

// globalOptions are the flags accepted before the command name.
type globalOptions struct {
	ConfigPath string
	Output     string
	Out        io.Writer
	ErrOut     io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "tcms: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	opts := globalOptions{Out: stdout, ErrOut: stderr}
	fs := flag.NewFlagSet("tcms", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ConfigPath, "config", "", "YAML config file (overrides "+configEnvHint+")")
	fs.StringVar(&opts.Output, "o", outputYAML, "output format: yaml or json")
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no command given")
	}
	if opts.Output != outputYAML && opts.Output != outputJSON {
		return fmt.Errorf("unknown output format %q", opts.Output)
	}

	// A missing .env is normal.
	_ = godotenv.Load(".env")

	var c *cli
	app := fx.New(
		fx.NopLogger,
		fx.Supply(opts),
		Module,
		fx.Populate(&c),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, lifecycleTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), lifecycleTimeout)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil && returnError == nil {
			returnError = fmt.Errorf("stop: %w", err)
		}
	}()

	return c.execute(ctx, fs.Arg(0), fs.Args()[1:])
}
