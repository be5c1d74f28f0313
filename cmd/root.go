// Package cmd implements the zila command-line front end on top of
// Cobra, compiling a source file rather than a single command-line
// expression.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/japi012/zilac/analyzer"
	"github.com/japi012/zilac/codegen"
	"github.com/japi012/zilac/compiler"
	"github.com/japi012/zilac/internal/diagnostic"
	"github.com/japi012/zilac/internal/toolchain"
	"github.com/japi012/zilac/lexer"
	"github.com/japi012/zilac/token"
)

// Options holds the flags the root command exposes.
type Options struct {
	Output      string
	Debug       bool
	EmitASMOnly bool
	Run         bool
}

// outputFlag is a pflag.Value wrapping the -o/--output stem. Plain
// StringVarP silently accepts a repeated -o (last one wins); the
// original command_parser.rs instead treats a second -o as a hard
// error, so this Value tracks whether it has already been Set once.
type outputFlag struct {
	value string
	set   bool
}

func newOutputFlag() *outputFlag { return &outputFlag{value: "output"} }

func (f *outputFlag) String() string { return f.value }

func (f *outputFlag) Set(s string) error {
	if f.set {
		return fmt.Errorf("-o/--output may only be given once")
	}
	f.value = s
	f.set = true
	return nil
}

func (f *outputFlag) Type() string { return "string" }

// NewRootCommand builds the `zila` command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}
	output := newOutputFlag()

	cmd := &cobra.Command{
		Use:   "zila <file.zila>",
		Short: "Compile a zila program to a native executable",
		Args:  fileArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Output = output.String()
			return run(cmd, args[0], opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().VarP(output, "output", "o", "output stem for the .asm/.o/executable")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "log each pipeline stage to stderr and emit comment-only debug banners")
	cmd.Flags().BoolVar(&opts.EmitASMOnly, "emit-asm-only", false, "stop after writing the .asm file")
	cmd.Flags().BoolVar(&opts.Run, "run", false, "assemble, link, and execute, propagating the exit code")

	return cmd
}

// fileArgs mirrors command_parser.rs's distinction between "no file
// given" and "multiple input files specified" rather than Cobra's
// generic ExactArgs(1) message.
func fileArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return fmt.Errorf("no file given")
	case len(args) > 1:
		return fmt.Errorf("multiple input files specified: %s", strings.Join(args, ", "))
	default:
		return nil
	}
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.Disabled
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func run(cmd *cobra.Command, path string, opts *Options) error {
	log := newLogger(opts.Debug)

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	log.Debug().Str("stage", "lex").Msg("starting")
	l := lexer.New(string(source))
	var words []token.Word
	for {
		w, ok := l.NextWord()
		if !ok {
			break
		}
		words = append(words, w)
	}
	log.Debug().Str("stage", "lex").Int("words", len(words)).Msg("done")

	log.Debug().Str("stage", "analyze").Msg("starting")
	_, items, err := analyzer.Analyze(words)
	if err != nil {
		kind := diagnostic.KindAnalysis
		switch err.(type) {
		case *analyzer.UnclosedBracketError, *analyzer.UnmatchedCloseBracketError:
			kind = diagnostic.KindStructural
		}
		return reportSpanError(cmd, string(source), path, kind, err)
	}
	log.Debug().Str("stage", "analyze").Msg("done")

	log.Debug().Str("stage", "lower").Msg("starting")
	procs, strings_, err := compiler.Compile(items)
	if err != nil {
		return reportSpanError(cmd, string(source), path, diagnostic.KindLowering, err)
	}
	log.Debug().Str("stage", "lower").Int("procs", len(procs)).Msg("done")

	log.Debug().Str("stage", "codegen").Msg("starting")
	var asm strings.Builder
	buildID := uuid.NewString()
	gen := codegen.New(procs, strings_, buildID)
	if opts.Debug {
		gen = gen.WithDebug()
	}
	if err := gen.Generate(&asm); err != nil {
		return fmt.Errorf("codegen: %w", err)
	}
	log.Debug().Str("stage", "codegen").Str("build", buildID).Msg("done")

	asmPath, err := toolchain.WriteAssembly(opts.Output, asm.String())
	if err != nil {
		return err
	}

	if opts.EmitASMOnly {
		return nil
	}

	log.Debug().Str("stage", "assemble").Msg("starting")
	objPath, err := toolchain.Assemble(asmPath, opts.Output)
	if err != nil {
		return err
	}
	log.Debug().Str("stage", "assemble").Msg("done")

	log.Debug().Str("stage", "link").Msg("starting")
	binPath, err := toolchain.Link(objPath, opts.Output)
	if err != nil {
		return err
	}
	log.Debug().Str("stage", "link").Msg("done")

	if opts.Run {
		code, err := toolchain.Run(binPath)
		if err != nil {
			return err
		}
		if code != 0 {
			os.Exit(code)
		}
	}

	return nil
}

// reportSpanError renders a diagnostic.Spanner with the source excerpt
// and returns a plain error so Cobra doesn't print it a second time.
func reportSpanError(cmd *cobra.Command, source, path string, kind diagnostic.Kind, err error) error {
	if spanErr, ok := err.(diagnostic.Spanner); ok {
		diagnostic.Render(cmd.ErrOrStderr(), source, path, kind, spanErr, spanErr.Span())
		return errSilent{err}
	}
	return err
}

// errSilent wraps an error already rendered via diagnostic.Render, so
// main's final error print doesn't duplicate it.
type errSilent struct{ err error }

func (e errSilent) Error() string { return "" }

func (e errSilent) Unwrap() error { return e.err }
