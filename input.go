package main

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"regexp"
	"strconv"
	"strings"

	"qtermsyc/native"
)

var (
	errEmptyMatrix = errors.New("empty matrix")
	errBadEntry    = errors.New("invalid matrix entry")
	errRaggedRows  = errors.New("rows have different lengths")
)

// expRegex matches phase entries like exp(i*pi/4), exp(-i*0.3), exp(ipi)
var expRegex = regexp.MustCompile(`^exp\(([+-]?)i\*?(.+)\)$`)

// rowCloseRegex matches the boundary between rows in bracketed input.
var rowCloseRegex = regexp.MustCompile(`\]\s*,`)

// parseEntry parses a single matrix entry.
//
// Supported formats:
//   - Real expressions: "0.5", "-1", "pi/4", "1/sqrt2"
//   - Imaginary units: "i", "-i", "0.5i", "i/sqrt2", "2*i"
//   - Complex literals: "0.5+0.5i", "1/sqrt2-1/sqrt2i", "(1+2i)"
//   - Phases: "exp(i*pi/4)", "-exp(-i*pi/6)"
func parseEntry(s string) (complex128, error) {
	s = strings.ToLower(strings.Join(strings.Fields(s), ""))
	if s == "" {
		return 0, fmt.Errorf("%w: empty", errBadEntry)
	}

	if v, ok := parseReal(s); ok {
		return complex(v, 0), nil
	}

	sign, body := 1.0, s
	switch body[0] {
	case '-':
		sign, body = -1, body[1:]
	case '+':
		body = body[1:]
	}

	if im, ok := parseImaginary(body); ok {
		return complex(0, sign*im), nil
	}

	if m := expRegex.FindStringSubmatch(body); m != nil {
		theta, ok := parseReal(m[2])
		if !ok {
			return 0, fmt.Errorf("%w: bad phase %q", errBadEntry, m[2])
		}
		if m[1] == "-" {
			theta = -theta
		}
		return complex(sign, 0) * cmplx.Exp(complex(0, theta)), nil
	}

	if c, ok := splitComplex(s); ok {
		return c, nil
	}
	if c, err := strconv.ParseComplex(s, 128); err == nil && !cmplx.IsNaN(c) && !cmplx.IsInf(c) {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", errBadEntry, s)
}

// parseImaginary parses the coefficient of an imaginary entry written
// without a sign: "i", "2i", "2*i", "i*pi/4", "i/sqrt2".
func parseImaginary(s string) (float64, bool) {
	switch {
	case s == "i":
		return 1, true
	case strings.HasPrefix(s, "i*"):
		return parseReal(s[2:])
	case strings.HasPrefix(s, "i/"):
		return parseReal("1" + s[1:])
	case strings.HasSuffix(s, "i"):
		return parseReal(strings.TrimSuffix(strings.TrimSuffix(s, "i"), "*"))
	}
	return 0, false
}

// splitComplex parses "re±im" where re is a real expression and im an
// imaginary one.
func splitComplex(s string) (complex128, bool) {
	for i := len(s) - 1; i > 0; i-- {
		if s[i] != '+' && s[i] != '-' {
			continue
		}
		switch s[i-1] {
		case 'e', '(', '*', '/':
			continue
		}
		re, ok := parseReal(s[:i])
		if !ok {
			continue
		}
		im, ok := parseImaginary(s[i+1:])
		if !ok {
			return 0, false
		}
		if s[i] == '-' {
			im = -im
		}
		return complex(re, im), true
	}
	return 0, false
}

// parseMatrix parses a matrix written one row per line or with rows
// separated by ';'. Entries are separated by commas, or by whitespace when
// a row has no commas. Square brackets are ignored and lines starting with
// '#' are comments.
func parseMatrix(text string) (native.Matrix, error) {
	text = rowCloseRegex.ReplaceAllString(text, ";")
	text = strings.NewReplacer("[", "", "]", "").Replace(text)

	var m native.Matrix
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		for _, row := range strings.Split(line, ";") {
			row = strings.TrimSpace(row)
			if row == "" {
				continue
			}
			var fields []string
			if strings.Contains(row, ",") {
				fields = strings.Split(row, ",")
			} else {
				fields = strings.Fields(row)
			}
			entries := make([]complex128, len(fields))
			for j, f := range fields {
				c, err := parseEntry(f)
				if err != nil {
					return nil, fmt.Errorf("row %d, column %d: %w", len(m)+1, j+1, err)
				}
				entries[j] = c
			}
			if len(m) > 0 && len(entries) != len(m[0]) {
				return nil, fmt.Errorf("%w: row %d has %d entries, want %d", errRaggedRows, len(m)+1, len(entries), len(m[0]))
			}
			m = append(m, entries)
		}
	}
	if len(m) == 0 {
		return nil, errEmptyMatrix
	}
	return m, nil
}

// formatMatrix writes m in the row-per-line form parseMatrix reads, at
// full precision.
func formatMatrix(m native.Matrix) string {
	rows := make([]string, len(m))
	for i, row := range m {
		entries := make([]string, len(row))
		for j, c := range row {
			entries[j] = formatEntry(c)
		}
		rows[i] = strings.Join(entries, ", ")
	}
	return strings.Join(rows, "\n")
}

func formatEntry(c complex128) string {
	re, im := real(c), imag(c)
	switch {
	case math.Abs(im) < 1e-15:
		return formatReal(re)
	case math.Abs(re) < 1e-15:
		return formatReal(im) + "i"
	case im < 0:
		return formatReal(re) + "-" + formatReal(-im) + "i"
	default:
		return formatReal(re) + "+" + formatReal(im) + "i"
	}
}

func formatReal(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
