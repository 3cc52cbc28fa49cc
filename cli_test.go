package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"qtermsyc/native"
)

// runCLI executes the root command with args and returns stdout, stderr
// and the error.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"convert", "presets"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub.Name() != name {
			t.Errorf("command %s not found: %v", name, err)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := newRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	if verbose == nil || verbose.Shorthand != "v" || verbose.DefValue != "false" {
		t.Errorf("unexpected verbose flag: %+v", verbose)
	}
	if cmd.PersistentFlags().Lookup("seed") == nil {
		t.Error("missing seed flag")
	}
}

func TestConvertCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	conv, _, err := cmd.Find([]string{"convert"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"preset", "p", ""},
		{"matrix", "m", ""},
		{"file", "f", ""},
		{"qubits", "q", ""},
		{"format", "o", "text"},
		{"gateset", "g", "sycamore"},
		{"tolerance", "", "1e-08"},
	}
	for _, tt := range tests {
		f := conv.Flags().Lookup(tt.name)
		if f == nil {
			t.Errorf("missing flag --%s", tt.name)
			continue
		}
		if f.Shorthand != tt.shorthand || f.DefValue != tt.def {
			t.Errorf("--%s: shorthand=%q default=%q, want %q %q", tt.name, f.Shorthand, f.DefValue, tt.shorthand, tt.def)
		}
	}
}

func TestConvertPresetQASM(t *testing.T) {
	out, _, err := runCLI(t, "", "convert", "--preset", "CNOT", "--format", "qasm")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.HasPrefix(out, "OPENQASM 2.0;\n") {
		t.Errorf("expected QASM header, got:\n%s", out)
	}
	for _, want := range []string{"qreg q[2];", "opaque syc a, b;", "syc q[0], q[1];"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "cz q[") {
		t.Errorf("sycamore output should not contain cz:\n%s", out)
	}
}

func TestConvertGatesetCZ(t *testing.T) {
	out, _, err := runCLI(t, "", "convert", "--preset", "CNOT", "--format", "qasm", "--gateset", "cz")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(out, "cz q[") || strings.Contains(out, "syc") {
		t.Errorf("expected cz and no syc, got:\n%s", out)
	}
}

func TestConvertMatrixText(t *testing.T) {
	out, _, err := runCLI(t, "", "convert", "--matrix", "0, 1; 1, 0", "--qubits", "3,4")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	for _, want := range []string{"q(3, 4)", "PhXZ", "ops: 1", "syc: 0", "cz: 0", "ancillas: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConvertYAMLReport(t *testing.T) {
	out, _, err := runCLI(t, "", "convert", "--preset", "SYC", "--format", "yaml", "--qubits", "1,1;1,2")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	var report yamlReport
	if err := yaml.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not yaml: %v\n%s", err, out)
	}
	if want := []string{"q(1, 1)", "q(1, 2)"}; strings.Join(report.Qubits, ";") != strings.Join(want, ";") {
		t.Errorf("qubits = %v, want %v", report.Qubits, want)
	}
	if len(report.Ancillas) != 0 {
		t.Errorf("ancillas = %v, want none", report.Ancillas)
	}
	if report.SYCCount != 1 || report.CZCount != 0 {
		t.Errorf("SYC preset: syc_count=%d cz_count=%d, want 1 and 0", report.SYCCount, report.CZCount)
	}
	if report.Error > 1e-6 {
		t.Errorf("reconstruction error %g", report.Error)
	}
	for _, op := range report.Operations {
		switch op.Gate {
		case "phased_xz":
			if op.X == nil || op.Z == nil || op.A == nil || len(op.Qubits) != 1 {
				t.Errorf("incomplete phased_xz: %+v", op)
			}
		case "syc":
			if len(op.Qubits) != 2 {
				t.Errorf("syc on %v", op.Qubits)
			}
		case "global_phase":
			if op.Phase == nil {
				t.Error("global_phase without phase")
			}
		default:
			t.Errorf("unexpected gate %q", op.Gate)
		}
	}
}

func TestConvertJobFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	job := "qubits: [[0, 5]]\nmatrix:\n  - [1/sqrt2, 1/sqrt2]\n  - [1/sqrt2, -1/sqrt2]\n"
	if err := os.WriteFile(path, []byte(job), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "", "convert", "--file", path, "--format", "qasm")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(out, "qreg q[1];") {
		t.Errorf("expected one qubit, got:\n%s", out)
	}
}

func TestConvertJobStdin(t *testing.T) {
	out, _, err := runCLI(t, "preset: T\n", "convert", "--file", "-")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(out, "q(0, 0)") {
		t.Errorf("expected default qubit, got:\n%s", out)
	}
}

func TestConvertVerboseLogs(t *testing.T) {
	_, errOut, err := runCLI(t, "", "--verbose", "convert", "--preset", "H")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(errOut, "converted") {
		t.Errorf("expected debug log on stderr, got %q", errOut)
	}
}

func TestConvertQuietByDefault(t *testing.T) {
	_, errOut, err := runCLI(t, "", "convert", "--preset", "H")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if errOut != "" {
		t.Errorf("expected no stderr output, got %q", errOut)
	}
}

func TestConvertExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		is   error
	}{
		{"no input", []string{"convert"}, ExitCommandError, nil},
		{"two inputs", []string{"convert", "--preset", "X", "--matrix", "1"}, ExitCommandError, nil},
		{"unknown preset", []string{"convert", "--preset", "FOO"}, ExitCommandError, nil},
		{"bad format", []string{"convert", "--preset", "X", "--format", "json"}, ExitCommandError, nil},
		{"bad entry", []string{"convert", "--matrix", "1, x; 0, 1"}, ExitCommandError, errBadEntry},
		{"unsupported size", []string{"convert", "--matrix", "1,0,0;0,1,0;0,0,1"}, ExitCommandError, native.ErrUnsupportedSize},
		{"qubit count", []string{"convert", "--preset", "CZ", "--qubits", "0,0"}, ExitCommandError, native.ErrQubitCount},
		{"not unitary", []string{"convert", "--matrix", "1, 1; 0, 1"}, ExitCommandError, native.ErrNotUnitary},
		{"bad qubits", []string{"convert", "--preset", "X", "--qubits", "a,b"}, ExitCommandError, errBadQubits},
		{"repeated qubits", []string{"convert", "--preset", "CZ", "--qubits", "0,0;0,0"}, ExitCommandError, errBadQubits},
		{"unknown gateset", []string{"convert", "--preset", "X", "--gateset", "syc2"}, ExitCommandError, nil},
		{"unknown flag", []string{"convert", "--nope"}, ExitCommandError, nil},
		{"missing file", []string{"convert", "--file", filepath.Join(t.TempDir(), "missing.yaml")}, ExitCommandError, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := GetExitCode(err); got != tt.code {
				t.Errorf("exit code = %d, want %d (%v)", got, tt.code, err)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %v does not wrap %v", err, tt.is)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	if got := GetExitCode(nil); got != ExitSuccess {
		t.Errorf("nil error: got %d, want %d", got, ExitSuccess)
	}
	if got := GetExitCode(errors.New("plain")); got != ExitFailure {
		t.Errorf("plain error: got %d, want %d", got, ExitFailure)
	}
	wrapped := WrapExitError(ExitCommandError, "outer", native.ErrQubitCount)
	if got := GetExitCode(wrapped); got != ExitCommandError {
		t.Errorf("exit error: got %d, want %d", got, ExitCommandError)
	}
	if !errors.Is(wrapped, native.ErrQubitCount) {
		t.Error("ExitError should unwrap to its cause")
	}
	if wrapped.Error() != "outer: "+native.ErrQubitCount.Error() {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestPresetsCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "presets")
	if err != nil {
		t.Fatalf("presets: %v", err)
	}
	for _, want := range []string{"Single Qubit:", "Two Qubit:", "SYC", "SQRT_ISWAP", "RANDOM2"} {
		if !strings.Contains(out, want) {
			t.Errorf("presets output missing %q:\n%s", want, out)
		}
	}
}
