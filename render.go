package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qtermsyc/native"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	total := width - w
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// ──────────────────────────── Cell rendering ────────────────────────────

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
)

// gateBox returns the 3 lines of a boxed gate, with connectors on the box
// edges when a two-qubit gate continues above or below.
func gateBox(name string, above, below bool) (top, mid, bot string) {
	margin := (cellW - gateBoxW) / 2
	rightMargin := cellW - margin - gateBoxW
	half := (gateNameW - 1) / 2

	topEdge := strings.Repeat("─", gateNameW)
	if above {
		topEdge = strings.Repeat("─", half) + "┴" + strings.Repeat("─", gateNameW-half-1)
	}
	botEdge := strings.Repeat("─", gateNameW)
	if below {
		botEdge = strings.Repeat("─", half) + "┬" + strings.Repeat("─", gateNameW-half-1)
	}

	top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+topEdge+"┐") + strings.Repeat(" ", rightMargin)
	mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+padCenter(name, gateNameW)+"├") + strings.Repeat("─", rightMargin)
	bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+botEdge+"┘") + strings.Repeat(" ", rightMargin)
	return top, mid, bot
}

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	// ── Highlighted cell ──
	if hl == hlCursor {
		bdr := cursorBoxStyle
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.gate != nil && isDot(info):
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render("●") + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.gate != nil:
			name := padCenter(info.gate.Type, gateNameW)
			mid = bdr.Render("║") + "─┤" + gateStyle.Render(name) + "├─" + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal (non-highlighted) cells ──
	switch {
	case info.gate != nil && isDot(info):
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render("●") + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}

	case info.gate != nil:
		top, mid, bot = gateBox(info.gate.Type, info.vertAbove, info.vertBelow)

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	default:
		// Empty wire
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
	}

	return
}

// isDot reports whether the cell is one end of a CZ, drawn as a dot.
func isDot(info cellInfo) bool {
	return info.gate.Type == "CZ" && (info.isControl || info.isTarget)
}

// renderGrid renders wires and gates for steps in [startStep, startStep+count).
func renderGrid(c *Circuit, startStep, count int, highlight func(step, qubit int) cellHighlight) string {
	var sb strings.Builder

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+count; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	// Render each qubit as 3 lines
	for qubit, q := range c.Qubits {
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-*s", labelVisualW-2, q)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+count; step++ {
			hl := hlNone
			if highlight != nil {
				hl = highlight(step, qubit)
			}
			top, mid, bot := renderCell(c.getCellInfo(step, qubit), hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}
	return sb.String()
}

// renderDiagram renders the whole circuit without highlights.
func renderDiagram(c *Circuit) string {
	return renderGrid(c, 0, max(c.MaxSteps, 1), nil)
}

// describeGate returns a one-line description of a placed gate.
func describeGate(g *Gate) string {
	if g.Type != "PhXZ" {
		return g.Op.String()
	}
	return fmt.Sprintf("PhXZ(x=%s, z=%s, a=%s) %s",
		formatExponent(g.Params[0]), formatExponent(g.Params[1]), formatExponent(g.Params[2]), g.Op.Qubits[0])
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the converted circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	title := "Native Circuit (" + m.gateset + ")"
	if m.focus == focusCircuit {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	// How many steps fit
	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if m.cursorStep >= maxSteps {
		startStep = m.cursorStep - maxSteps + 1
	}

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+maxSteps-1)
	}

	sb.WriteString(renderGrid(&m.circuit, startStep, maxSteps, func(step, qubit int) cellHighlight {
		if step == m.cursorStep && qubit == m.cursorQubit && m.focus != focusEditor {
			return hlCursor
		}
		return hlNone
	}))

	if gp := m.circuit.GlobalPhaseTurns(); gp != 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  global phase %sπ", formatExponent(gp))))
		sb.WriteString("\n")
	}

	// Status line
	if m.circuit.NumQubits() > 0 {
		fmt.Fprintf(&sb, "\n  Position: Step %d, %s", m.cursorStep, m.circuit.Qubits[m.cursorQubit])
		if g := m.circuit.GetGateAt(m.cursorStep, m.cursorQubit); g != nil {
			fmt.Fprintf(&sb, "  %s", activeGateStyle.Render(describeGate(g)))
		}
	}
	sb.WriteString("\n  ")
	switch {
	case m.convErr != nil:
		sb.WriteString(errorStyle.Render(m.convErr.Error()))
	default:
		ops := m.result.Result.Operations
		fmt.Fprintf(&sb, "ops %d  syc %d  cz %d  error %.2g", len(ops), native.CountSycamore(ops), native.CountCZ(ops), m.result.Error)
	}
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderEditorPanel renders the matrix editor panel.
func (m Model) renderEditorPanel(width, height int) string {
	var sb strings.Builder

	title := "Matrix"
	if m.focus == focusEditor {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.editor.View())

	return editorStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM output panel, clipped to height.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("QASM"))
	sb.WriteString("\n\n")

	lines := strings.Split(strings.TrimRight(m.result.QASM, "\n"), "\n")
	if limit := height - 4; limit > 0 && len(lines) > limit {
		lines = append(lines[:limit-1], dimStyle.Render(fmt.Sprintf("… %d more lines", len(lines)-limit+1)))
	}
	sb.WriteString(strings.Join(lines, "\n"))

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Move qubit  ←→/hl Move step  Tab Switch focus")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Load preset\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("x Swap qubit order  g Gate set  ^S Save QASM  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// isEscEnd reports whether r terminates an ANSI escape sequence.
func isEscEnd(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := lipgloss.Width(overlay)

	var prefix, suffix strings.Builder
	col, i := 0, 0

	// copies an escape sequence starting at runes[i] into w
	skipEsc := func(w *strings.Builder) {
		for i < len(runes) {
			r := runes[i]
			if w != nil {
				w.WriteRune(r)
			}
			i++
			if r != '\x1b' && r != '[' && isEscEnd(r) {
				return
			}
		}
	}

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			skipEsc(&prefix)
			continue
		}
		prefix.WriteRune(runes[i])
		col++
		i++
	}

	// Pad prefix if bg line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	for skipped := 0; i < len(runes) && skipped < ovWidth; {
		if runes[i] == '\x1b' {
			skipEsc(nil)
			continue
		}
		skipped++
		i++
	}

	// Collect suffix: rest of the background line
	for i < len(runes) {
		suffix.WriteRune(runes[i])
		i++
	}

	return prefix.String() + overlay + suffix.String()
}
