package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"qtermsyc/native"
)

var errBadQubits = errors.New("invalid qubit list")

// job is a conversion request loaded from a YAML file:
//
//	qubits: [[0, 0], [0, 1]]
//	matrix:
//	  - [1, 0, 0, 0]
//	  - [0, 1, 0, 0]
//	  - [0, 0, 0, 1]
//	  - [0, 0, 1, 0]
//
// A job names either a matrix or a preset.
type job struct {
	Qubits [][]int    `yaml:"qubits"`
	Matrix [][]string `yaml:"matrix"`
	Preset string     `yaml:"preset"`
}

// parseJob decodes a YAML job.
func parseJob(data []byte) (job, error) {
	var j job
	if err := yaml.Unmarshal(data, &j); err != nil {
		return job{}, fmt.Errorf("decode job: %w", err)
	}
	if (len(j.Matrix) == 0) == (j.Preset == "") {
		return job{}, errors.New("job must set exactly one of matrix or preset")
	}
	return j, nil
}

// targets returns the job's qubits, or nil when it lists none.
func (j job) targets() ([]native.Qubit, error) {
	qs := make([]native.Qubit, 0, len(j.Qubits))
	for i, pair := range j.Qubits {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: qubit %d has %d coordinates, want 2", errBadQubits, i, len(pair))
		}
		qs = append(qs, native.GridQubit(pair[0], pair[1]))
	}
	if len(qs) == 0 {
		return nil, nil
	}
	if err := checkDistinct(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// matrix resolves the job's matrix, drawing from rng for random presets.
func (j job) matrix(rng *rand.Rand) (native.Matrix, error) {
	if j.Preset != "" {
		p, ok := lookupPreset(j.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", j.Preset)
		}
		return p.load(rng)
	}
	rows := make([]string, len(j.Matrix))
	for i, row := range j.Matrix {
		rows[i] = strings.Join(row, ", ")
	}
	return parseMatrix(strings.Join(rows, "\n"))
}

// parseQubits parses a qubit list such as "0,0;0,1".
func parseQubits(s string) ([]native.Qubit, error) {
	var qs []native.Qubit
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		coords := strings.Split(part, ",")
		if len(coords) != 2 {
			return nil, fmt.Errorf("%w: %q is not row,col", errBadQubits, part)
		}
		row, err := strconv.Atoi(strings.TrimSpace(coords[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: bad row in %q", errBadQubits, part)
		}
		col, err := strconv.Atoi(strings.TrimSpace(coords[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: bad column in %q", errBadQubits, part)
		}
		qs = append(qs, native.GridQubit(row, col))
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("%w: empty", errBadQubits)
	}
	if err := checkDistinct(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// checkDistinct rejects a target list naming a qubit twice.
func checkDistinct(qs []native.Qubit) error {
	for i, q := range qs {
		if slices.Contains(qs[:i], q) {
			return fmt.Errorf("%w: %s listed twice", errBadQubits, q)
		}
	}
	return nil
}

// defaultQubits returns adjacent grid qubits for a matrix of dimension
// dim, starting at (0, 0).
func defaultQubits(dim int) []native.Qubit {
	switch dim {
	case 2:
		return []native.Qubit{native.GridQubit(0, 0)}
	case 4:
		return []native.Qubit{native.GridQubit(0, 0), native.GridQubit(0, 1)}
	}
	return nil
}
