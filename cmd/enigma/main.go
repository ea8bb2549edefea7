package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dd0wney/cluso-enigma/pkg/config"
	"github.com/dd0wney/cluso-enigma/pkg/logging"
	"github.com/dd0wney/cluso-enigma/pkg/metrics"
	"github.com/dd0wney/cluso-enigma/pkg/session"
)

const usage = `usage: enigma [flags] CONFIG [INPUT [OUTPUT]]
       enigma [flags] -preset NAME [INPUT [OUTPUT]]

Reads setting lines and messages from INPUT (default stdin) and writes the
converted messages to OUTPUT (default stdout).

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("enigma", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	verbose := fs.Bool("verbose", false, "Trace every symbol through the machine on stderr")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (default $LOG_LEVEL or warn)")
	metricsFile := fs.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	preset := fs.String("preset", "", "Use a built-in machine ("+strings.Join(config.PresetNames(), ", ")+") instead of CONFIG")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	logger := logging.NewFromEnv(stderr, logging.TextFormat, logging.WarnLevel)
	if *logLevel != "" {
		logger.SetLevel(logging.ParseLevel(*logLevel))
	}

	var reg *metrics.Registry
	if *metricsFile != "" {
		reg = metrics.NewRegistry()
	}

	err := process(ctx, options{
		args:    fs.Args(),
		preset:  *preset,
		verbose: *verbose,
		logger:  logger,
		metrics: reg,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	})

	if reg != nil {
		if werr := reg.WriteTextfile(*metricsFile); werr != nil {
			logger.Error("failed to write metrics", logging.Path(*metricsFile), logging.Error(werr))
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	args    []string
	preset  string
	verbose bool
	logger  logging.Logger
	metrics *metrics.Registry

	stdin          io.Reader
	stdout, stderr io.Writer
}

func process(ctx context.Context, o options) error {
	streams := o.args
	var (
		desc *config.Description
		err  error
	)
	if o.preset != "" {
		if len(streams) > 2 {
			return errors.New("only 0, 1, or 2 arguments allowed with -preset")
		}
		desc, err = config.Preset(o.preset)
	} else {
		if len(streams) < 1 || len(streams) > 3 {
			return errors.New("only 1, 2, or 3 command-line arguments allowed")
		}
		desc, err = config.Load(streams[0])
		streams = streams[1:]
	}
	if err != nil {
		return err
	}

	in := o.stdin
	if len(streams) > 0 {
		f, err := os.Open(streams[0])
		if err != nil {
			return fmt.Errorf("could not open %s: %w", streams[0], err)
		}
		defer f.Close()
		in = f
	}

	out := o.stdout
	var outFile *os.File
	if len(streams) > 1 {
		outFile, err = os.Create(streams[1])
		if err != nil {
			return fmt.Errorf("could not open %s: %w", streams[1], err)
		}
		out = outFile
	}

	opts := []session.Option{session.WithLogger(o.logger)}
	if o.metrics != nil {
		opts = append(opts, session.WithMetrics(o.metrics))
	}
	if o.verbose {
		opts = append(opts, session.WithTrace(o.stderr))
	}

	p, err := session.New(desc, opts...)
	if err != nil {
		return err
	}
	err = p.Run(ctx, in, out)
	if outFile != nil {
		if cerr := outFile.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", streams[1], cerr)
		}
	}
	return err
}
