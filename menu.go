package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"qtermsyc/native"
)

// preset is a named matrix that can be loaded into the editor or passed
// to the convert command.
type preset struct {
	name   string
	label  string
	matrix string
	random int // number of qubits of a random unitary, 0 for fixed presets
}

// presetCategory groups related presets under a tab.
type presetCategory struct {
	name  string
	items []preset
}

// presetMenu defines the preset picker categories and items.
var presetMenu = []presetCategory{
	{
		name: "Single Qubit",
		items: []preset{
			{name: "I", label: "Identity", matrix: "1, 0\n0, 1"},
			{name: "X", label: "Pauli-X (NOT)", matrix: "0, 1\n1, 0"},
			{name: "Y", label: "Pauli-Y", matrix: "0, -i\ni, 0"},
			{name: "Z", label: "Pauli-Z", matrix: "1, 0\n0, -1"},
			{name: "H", label: "Hadamard", matrix: "1/sqrt2, 1/sqrt2\n1/sqrt2, -1/sqrt2"},
			{name: "S", label: "Phase (S)", matrix: "1, 0\n0, i"},
			{name: "T", label: "T Gate", matrix: "1, 0\n0, exp(i*pi/4)"},
			{name: "SX", label: "√X (SX)", matrix: "0.5+0.5i, 0.5-0.5i\n0.5-0.5i, 0.5+0.5i"},
		},
	},
	{
		name: "Two Qubit",
		items: []preset{
			{name: "I4", label: "Identity", matrix: "1, 0, 0, 0\n0, 1, 0, 0\n0, 0, 1, 0\n0, 0, 0, 1"},
			{name: "CNOT", label: "CNOT", matrix: "1, 0, 0, 0\n0, 1, 0, 0\n0, 0, 0, 1\n0, 0, 1, 0"},
			{name: "CZ", label: "Controlled-Z", matrix: "1, 0, 0, 0\n0, 1, 0, 0\n0, 0, 1, 0\n0, 0, 0, -1"},
			{name: "SWAP", label: "SWAP", matrix: "1, 0, 0, 0\n0, 0, 1, 0\n0, 1, 0, 0\n0, 0, 0, 1"},
			{name: "ISWAP", label: "iSWAP", matrix: "1, 0, 0, 0\n0, 0, i, 0\n0, i, 0, 0\n0, 0, 0, 1"},
			{name: "SQRT_ISWAP", label: "√iSWAP", matrix: "1, 0, 0, 0\n0, 1/sqrt2, i/sqrt2, 0\n0, i/sqrt2, 1/sqrt2, 0\n0, 0, 0, 1"},
			{name: "CPHASE", label: "C-Phase (π/4)", matrix: "1, 0, 0, 0\n0, 1, 0, 0\n0, 0, 1, 0\n0, 0, 0, exp(i*pi/4)"},
			{name: "SYC", label: "Sycamore", matrix: "1, 0, 0, 0\n0, 0, -i, 0\n0, -i, 0, 0\n0, 0, 0, exp(-i*pi/6)"},
		},
	},
	{
		name: "Random",
		items: []preset{
			{name: "RANDOM1", label: "Random 2×2", random: 1},
			{name: "RANDOM2", label: "Random 4×4", random: 2},
		},
	},
}

// lookupPreset finds a preset by name, ignoring case.
func lookupPreset(name string) (preset, bool) {
	for _, cat := range presetMenu {
		for _, p := range cat.items {
			if strings.EqualFold(p.name, name) {
				return p, true
			}
		}
	}
	return preset{}, false
}

// text returns the preset's matrix in editor form. Random presets draw a
// fresh unitary from rng on every call.
func (p preset) text(rng *rand.Rand) string {
	if p.random > 0 {
		return formatMatrix(native.RandomUnitary(rng, 1<<p.random))
	}
	return p.matrix
}

// load parses the preset's matrix.
func (p preset) load(rng *rand.Rand) (native.Matrix, error) {
	m, err := parseMatrix(p.text(rng))
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", p.name, err)
	}
	return m, nil
}

// renderMenu renders the floating preset-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Load Preset"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range presetMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(presetMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 36)))
	sb.WriteString("\n")

	cat := presetMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.label)))
			sb.WriteString(gateStyle.Render(item.name))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.label)))
			sb.WriteString(dimStyle.Render(item.name))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Load  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
