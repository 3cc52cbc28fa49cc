package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"qtermsyc/native"
)

// Process exit codes. Input problems (flags, unparsable or wrongly sized
// matrices, unknown presets, bad qubit lists) exit with ExitCommandError so
// scripts can tell them apart from a conversion that failed.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitCommandError = 2
)

// ExitError pairs a command failure with the code main exits with.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError returns a failure with no underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches code and a short context to err. errors.Is still
// sees err, so callers can match native's sentinels through it.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps the error returned by Execute to a process exit code.
// Errors with no ExitError in their chain exit with ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// rootOptions holds global flags for all commands.
type rootOptions struct {
	verbose bool
	seed    uint64
}

// logger returns a logger writing to w, at debug level with --verbose.
func (o *rootOptions) logger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{Prefix: "qtermsyc"})
	if o.verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// rng returns the random source for random presets. A zero seed means
// seed from the clock.
func (o *rootOptions) rng() *rand.Rand {
	seed := o.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newRootCommand creates the root command. Without a subcommand it starts
// the interactive converter.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "qtermsyc",
		Short:         "Convert one- and two-qubit unitaries into native gates",
		Long:          "qtermsyc decomposes 2×2 and 4×4 unitaries into PhasedXZ and Sycamore (or CZ) gates on grid qubits.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(initialModel(opts.rng()), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return WrapExitError(ExitFailure, "tui", err)
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "seed for random presets (0 uses the clock)")

	cmd.AddCommand(newConvertCommand(opts))
	cmd.AddCommand(newPresetsCommand())

	return cmd
}

// convertOptions holds flags for the convert command.
type convertOptions struct {
	preset    string
	matrix    string
	file      string
	qubits    string
	format    string
	gateset   string
	tolerance float64
}

func newConvertCommand(root *rootOptions) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a matrix into native gate operations",
		Example: `  qtermsyc convert --preset SYC
  qtermsyc convert --matrix "0, 1; 1, 0" --qubits 3,4 --format qasm
  qtermsyc convert --preset CNOT --gateset cz
  qtermsyc convert --file job.yaml --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "named preset (see 'qtermsyc presets')")
	cmd.Flags().StringVarP(&opts.matrix, "matrix", "m", "", "matrix rows separated by ';' or newlines")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML job file ('-' reads stdin)")
	cmd.Flags().StringVarP(&opts.qubits, "qubits", "q", "", "target qubits as row,col;row,col (default 0,0;0,1)")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "text", fmt.Sprintf("output format %v", validFormats))
	cmd.Flags().StringVarP(&opts.gateset, "gateset", "g", validGatesets[0], fmt.Sprintf("target gate set %v", validGatesets))
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", native.DefaultTolerance, "tolerance for dropping near-identity gates")

	return cmd
}

func runConvert(cmd *cobra.Command, root *rootOptions, opts *convertOptions) error {
	if !slices.Contains(validFormats, opts.format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.format, validFormats))
	}
	logger := root.logger(cmd.ErrOrStderr())
	conv, err := newGateset(opts.gateset, native.WithTolerance(opts.tolerance), native.WithLogger(logger))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}

	targets, m, err := opts.input(cmd.InOrStdin(), root.rng())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid input", err)
	}
	if targets == nil {
		targets = defaultQubits(m.Dim())
	}
	logger.Debug("input", "qubits", qubitNames(targets), "dim", m.Dim(), "gateset", opts.gateset)

	c, err := convert(targets, m, conv)
	switch {
	case errors.Is(err, native.ErrUnsupportedSize), errors.Is(err, native.ErrQubitCount), errors.Is(err, native.ErrNotUnitary):
		return WrapExitError(ExitCommandError, "invalid input", err)
	case err != nil:
		return WrapExitError(ExitFailure, "conversion failed", err)
	}

	return writeOutput(cmd.OutOrStdout(), opts.format, c)
}

// input resolves the matrix and qubits named by the flags. Qubits are nil
// when neither --qubits nor the job file lists them.
func (o *convertOptions) input(stdin io.Reader, rng *rand.Rand) ([]native.Qubit, native.Matrix, error) {
	set := 0
	for _, s := range []string{o.preset, o.matrix, o.file} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return nil, nil, errors.New("exactly one of --preset, --matrix or --file is required")
	}

	var (
		targets []native.Qubit
		m       native.Matrix
		err     error
	)
	switch {
	case o.preset != "":
		p, ok := lookupPreset(o.preset)
		if !ok {
			return nil, nil, fmt.Errorf("unknown preset %q", o.preset)
		}
		m, err = p.load(rng)
	case o.matrix != "":
		m, err = parseMatrix(o.matrix)
	default:
		var j job
		if j, err = o.readJob(stdin); err != nil {
			return nil, nil, err
		}
		if targets, err = j.targets(); err != nil {
			return nil, nil, err
		}
		m, err = j.matrix(rng)
	}
	if err != nil {
		return nil, nil, err
	}

	if o.qubits != "" {
		if targets, err = parseQubits(o.qubits); err != nil {
			return nil, nil, err
		}
	}
	return targets, m, nil
}

func (o *convertOptions) readJob(stdin io.Reader) (job, error) {
	var (
		data []byte
		err  error
	)
	if o.file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(o.file)
	}
	if err != nil {
		return job{}, fmt.Errorf("read job: %w", err)
	}
	return parseJob(data)
}

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named matrices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, cat := range presetMenu {
				fmt.Fprintf(w, "%s:\n", cat.name)
				for _, p := range cat.items {
					fmt.Fprintf(w, "  %-11s %s\n", p.name, p.label)
				}
			}
			return nil
		},
	}
}
