// Package session drives a machine over a stream of input lines: setting
// lines reconfigure it, blank lines pass through and every other line is
// converted and printed in groups of five symbols.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dd0wney/cluso-enigma/pkg/config"
	"github.com/dd0wney/cluso-enigma/pkg/enigma"
	"github.com/dd0wney/cluso-enigma/pkg/logging"
	"github.com/dd0wney/cluso-enigma/pkg/metrics"
	"github.com/google/uuid"
)

// ErrNoSetting is returned when a message arrives before any setting line,
// including for input with no lines at all.
var ErrNoSetting = errors.New("input does not start with a setting line")

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// Processor owns a machine and converts input streams with it.
type Processor struct {
	machine *enigma.Machine
	logger  logging.Logger
	metrics *metrics.Registry
	trace   io.Writer
	id      string

	setting config.Setting
	ready   bool
	line    int
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// WithMetrics records conversions, setups and errors in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(p *Processor) { p.metrics = r }
}

// WithTrace writes one line per converted symbol to w, showing the rotor
// windows after stepping and the symbol before and after the plugboard and
// at the output: "[AXLF] F -> F -> Q".
func WithTrace(w io.Writer) Option {
	return func(p *Processor) { p.trace = w }
}

// WithSessionID overrides the random session id attached to log entries.
func WithSessionID(id string) Option {
	return func(p *Processor) { p.id = id }
}

// New builds the machine described by d.
func New(d *config.Description, opts ...Option) (*Processor, error) {
	m, err := d.Build()
	if err != nil {
		return nil, err
	}

	p := &Processor{
		machine: m,
		logger:  logging.NewNopLogger(),
		id:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(logging.Component("session"), logging.SessionID(p.id))
	return p, nil
}

// ID returns the session id.
func (p *Processor) ID() string { return p.id }

// Machine returns the machine being driven.
func (p *Processor) Machine() *enigma.Machine { return p.machine }

// Setting returns the last setting applied and whether there is one.
func (p *Processor) Setting() (config.Setting, bool) { return p.setting, p.ready }

// Setup parses and applies a setting line.
func (p *Processor) Setup(line string) (config.Setting, error) {
	s, err := config.ParseSetting(line, p.machine.NumRotors())
	if err == nil {
		err = s.Apply(p.machine)
	}
	if p.metrics != nil {
		p.metrics.RecordSetup(err)
	}
	if err != nil {
		return config.Setting{}, err
	}

	p.setting, p.ready = s, true
	p.logger.Info("machine configured",
		logging.Line(p.line),
		logging.Rotors(s.Rotors),
		logging.Plugs(len(s.Plugs)),
		logging.Fingerprint(s.Fingerprint()))
	return s, nil
}

// Convert converts msg with the current setting, dropping whitespace.
func (p *Processor) Convert(msg string) (string, error) {
	if !p.ready {
		return "", ErrNoSetting
	}

	opts := enigma.ConvertOptions{Whitespace: enigma.DropWhitespace}
	if p.metrics != nil || p.trace != nil {
		opts.Tracer = enigma.TracerFunc(p.traceSymbol)
	}

	op := logging.StartTimer(p.logger, "message converted", logging.Line(p.line))
	out, err := p.machine.ConvertMessage(msg, opts)
	if err != nil {
		return "", err
	}
	symbols := utf8.RuneCountInString(out)
	elapsed := op.End(logging.Symbols(symbols))
	if p.metrics != nil {
		p.metrics.RecordMessage(symbols, elapsed)
	}
	return out, nil
}

func (p *Processor) traceSymbol(t enigma.Trace) {
	if p.metrics != nil {
		p.metrics.RecordStep(t.Step)
	}
	if p.trace != nil {
		fmt.Fprintf(p.trace, "[%s] %c -> %c -> %c\n", t.Positions, t.Input, t.Plugged, t.Output)
	}
}

// Run reads lines from in until EOF and writes results to out. The first
// non-blank line must be a setting line. Output produced before an error is
// still written. Errors carry the number of the offending input line.
func (p *Processor) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if p.metrics != nil {
		p.metrics.SessionStarted()
		defer p.metrics.SessionEnded()
	}

	bw := bufio.NewWriter(out)
	err := p.run(ctx, in, bw)
	if ferr := bw.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("writing output: %w", ferr)
	}
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordError(ErrorKind(err))
		}
		p.logger.Error("session failed", logging.Line(p.line), logging.Error(err))
		return err
	}
	p.logger.Debug("session finished", logging.Line(p.line))
	return nil
}

func (p *Processor) run(ctx context.Context, in io.Reader, w *bufio.Writer) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	p.line = 0
	started := false
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.line++
		line := strings.TrimSpace(sc.Text())

		switch {
		case line == "":
			// Blank lines ahead of the first setting are not output.
			if !started {
				continue
			}
			p.record(metrics.LineBlank)
			w.WriteByte('\n')

		case config.IsSettingLine(line):
			p.record(metrics.LineSetting)
			if _, err := p.Setup(line); err != nil {
				return p.lineError(err)
			}
			started = true

		default:
			if !started {
				return p.lineError(ErrNoSetting)
			}
			p.record(metrics.LineMessage)
			converted, err := p.Convert(line)
			if err != nil {
				return p.lineError(err)
			}
			w.WriteString(GroupFive(converted))
			w.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if !started {
		return ErrNoSetting
	}
	return nil
}

func (p *Processor) record(lineType string) {
	if p.metrics != nil {
		p.metrics.RecordLine(lineType)
	}
}

func (p *Processor) lineError(err error) error {
	return fmt.Errorf("line %d: %w", p.line, err)
}

// ErrorKind returns a metric label for err.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNoSetting):
		return "no_setting"
	case errors.Is(err, config.ErrSyntax):
		return "syntax"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return enigma.KindOf(err)
	}
}
