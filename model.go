package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qtermsyc/native"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusEditor
	focusMenu
)

// Model represents the TUI application state.
type Model struct {
	conv    native.Converter
	gateset string
	rng     *rand.Rand

	result    conversion // last successful conversion
	circuit   Circuit    // grid view of result
	convErr   error      // error from the latest edit, if any
	swapped   bool       // targets are used in reverse order
	lastInput string

	cursorQubit int
	cursorStep  int
	width       int
	height      int
	editor      textarea.Model
	focus       focus
	statusMsg   string // transient status message (e.g. save confirmation)

	// Menu state
	menuCat  int
	menuItem int
}

func initialModel(rng *rand.Rand) Model {
	ta := textarea.New()
	ta.Placeholder = "Enter a 2×2 or 4×4 matrix, one row per line..."
	ta.SetWidth(40)
	ta.SetHeight(editorH)
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		rng:    rng,
		editor: ta,
		focus:  focusCircuit,
	}
	m.setGateset(validGatesets[0])

	if p, ok := lookupPreset("SYC"); ok {
		m.editor.SetValue(p.text(rng))
	}
	m.reconvert()
	return m
}

// setGateset switches the converter to the named gate set.
func (m *Model) setGateset(name string) {
	conv, err := newGateset(name)
	if err != nil {
		m.convErr = err
		return
	}
	m.conv, m.gateset = conv, name
}

// targets returns the qubits a matrix of dimension dim acts on.
func (m *Model) targets(dim int) []native.Qubit {
	qs := defaultQubits(dim)
	if m.swapped {
		slices.Reverse(qs)
	}
	return qs
}

// reconvert converts the editor contents. On failure the previous circuit
// stays on screen and convErr is set.
func (m *Model) reconvert() {
	input := m.editor.Value()
	m.lastInput = input

	mat, err := parseMatrix(input)
	if err != nil {
		m.convErr = err
		return
	}
	c, err := convert(m.targets(mat.Dim()), mat, m.conv)
	if err != nil {
		m.convErr = err
		return
	}
	m.convErr = nil
	m.result = c
	m.circuit = newCircuit(c.Result.Operations, c.Targets)
	m.cursorQubit = min(m.cursorQubit, max(m.circuit.NumQubits()-1, 0))
	m.cursorStep = min(m.cursorStep, max(m.circuit.MaxSteps-1, 0))
}

func (m *Model) parseEditorInput() {
	if m.editor.Value() != m.lastInput {
		m.reconvert()
	}
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(msg.Width/3-6, 20))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusEditor
				cmds = append(cmds, m.editor.Focus())
			case "ctrl+s":
				if err := os.WriteFile("circuit.qasm", []byte(m.result.QASM), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.circuit.NumQubits()-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				if m.cursorStep < m.circuit.MaxSteps-1 {
					m.cursorStep++
				}
			case "x":
				m.swapped = !m.swapped
				m.reconvert()
				if m.convErr == nil {
					m.statusMsg = fmt.Sprintf("Targets %s", qubitNames(m.result.Targets))
				}
			case "g":
				next := (slices.Index(validGatesets, m.gateset) + 1) % len(validGatesets)
				m.setGateset(validGatesets[next])
				m.reconvert()
				m.statusMsg = "Gate set " + m.gateset
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				cat := presetMenu[m.menuCat]
				if m.menuItem < len(cat.items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(presetMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := presetMenu[m.menuCat].items[m.menuItem]
				m.editor.SetValue(item.text(m.rng))
				m.reconvert()
				m.cursorStep, m.cursorQubit = 0, 0
				m.statusMsg = "Loaded " + item.name
				m.focus = focusCircuit
			}

		case focusEditor:
			switch key {
			case "tab", "esc":
				m.focus = focusCircuit
				m.editor.Blur()
			default:
				var cmd tea.Cmd
				m.editor, cmd = m.editor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseEditorInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sideWidth := m.width / 3
	circuitWidth := m.width - sideWidth - 4
	controlsHeight := 6
	circuitHeight := max(m.height-controlsHeight-2, 6)
	editorHeight := editorH + 4
	qasmHeight := max(circuitHeight-editorHeight-2, 4)

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	side := lipgloss.JoinVertical(lipgloss.Left,
		m.renderEditorPanel(sideWidth, editorHeight),
		m.renderQASMPanel(sideWidth, qasmHeight),
	)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, side)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	// Render menu overlay when in menu mode
	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}

	return frame
}
