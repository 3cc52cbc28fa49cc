package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2, -3*pi/4
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// sqrtRegex matches square-root expressions: sqrt2, 1/sqrt2, -1/sqrt(2), 3/sqrt3
var sqrtRegex = regexp.MustCompile(`^(-?)(?:(\d*\.?\d*)\s*(/)\s*)?sqrt\(?\s*(\d+\.?\d*)\s*\)?$`)

// parseReal parses a real-valued matrix entry or angle.
//
// Supported formats:
//   - Plain numbers: "1.5707", "-0.5", "3.14e-2"
//   - Pi expressions: "pi", "pi/2", "3*pi/4", "-2pi"
//   - Square roots: "sqrt2", "1/sqrt2", "-1/sqrt(2)"
func parseReal(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return 0, false
		}
		return val, true
	}

	if matches := piExprRegex.FindStringSubmatch(s); matches != nil {
		coeff := 1.0
		if matches[2] != "" {
			var err error
			if coeff, err = strconv.ParseFloat(matches[2], 64); err != nil {
				return 0, false
			}
		}
		result := coeff * math.Pi
		if matches[3] != "" {
			denom, err := strconv.ParseFloat(matches[3], 64)
			if err != nil || denom == 0 {
				return 0, false
			}
			result /= denom
		}
		if matches[1] == "-" {
			result = -result
		}
		return result, true
	}

	if matches := sqrtRegex.FindStringSubmatch(s); matches != nil {
		arg, err := strconv.ParseFloat(matches[4], 64)
		if err != nil {
			return 0, false
		}
		root := math.Sqrt(arg)
		result := root
		if matches[3] == "/" {
			if root == 0 {
				return 0, false
			}
			num := 1.0
			if matches[2] != "" {
				if num, err = strconv.ParseFloat(matches[2], 64); err != nil {
					return 0, false
				}
			}
			result = num / root
		}
		if matches[1] == "-" {
			result = -result
		}
		return result, true
	}

	return 0, false
}

// formatExponent formats a half-turn exponent, using a fraction when the
// value is a multiple of 1/8, 1/6 or 1/3.
func formatExponent(val float64) string {
	if math.Abs(val) < 1e-10 {
		return "0"
	}
	for _, denom := range []int{1, 2, 3, 4, 6, 8} {
		num := math.Round(val * float64(denom))
		if math.Abs(val*float64(denom)-num) > 1e-9 {
			continue
		}
		if denom == 1 {
			return fmt.Sprintf("%d", int(num))
		}
		return fmt.Sprintf("%d/%d", int(num), denom)
	}
	return fmt.Sprintf("%.4g", val)
}
