// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

func runREPL(args []string) error {
	flagSet := pflag.NewFlagSet("repl", pflag.ContinueOnError)
	flagSet.BoolP("help", "h", false, "show help")
	if ok, err := parseFlags(flagSet, args, "Usage: nrbf repl <file>\n"); !ok {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: nrbf repl <file>")
	}

	root, table, libraries, err := loadGraph(rest[0])
	if err != nil {
		return err
	}
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	model := newReplModel(rest[0], root, table, libraries, cfg.resolveTheme())
	program := tea.NewProgram(model)
	_, err = program.Run()
	return err
}

// childEntry is one navigable slot under the current path: a class
// member name or an array index, paired with the value found there.
type childEntry struct {
	label string
	path  string
	val   nrbf.Value
}

// replMode discriminates what the shared text input is currently being
// used for, since goto, value-edit, and write-out all reuse one prompt
// line rather than each getting a dedicated widget.
type replMode int

const (
	modeGoto replMode = iota
	modeEdit
	modeSave
)

type replModel struct {
	file      string
	root      nrbf.Record
	table     nrbf.RecordTable
	libraries nrbf.LibraryTable
	path      string // dotted path from root to the current value, "" at root
	current   nrbf.Value
	children  []childEntry
	cursor    int
	input     textinput.Model
	editing   bool
	mode      replMode
	dirty     bool
	err       error
	message   string
	suggest   []string
	theme     Theme
}

// replStyles derives the REPL's lipgloss styles from theme, so the
// "light"/"dark" config preference reaches every rendered line.
type replStyles struct {
	title, path, selected, help, errText lipgloss.Style
}

func newReplStyles(theme Theme) replStyles {
	return replStyles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(theme.ClassName),
		path:     lipgloss.NewStyle().Foreground(theme.ObjectID),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(theme.MemberName),
		help:     lipgloss.NewStyle().Foreground(theme.HelpText),
		errText:  lipgloss.NewStyle().Foreground(theme.ErrorText),
	}
}

func newReplModel(file string, root nrbf.Record, table nrbf.RecordTable, libraries nrbf.LibraryTable, theme Theme) *replModel {
	input := textinput.New()
	input.Prompt = "goto> "
	input.Placeholder = "dotted path, or blank to cancel"

	m := &replModel{file: file, root: root, table: table, libraries: libraries, input: input, theme: theme}
	m.setPath("")
	return m
}

func (m *replModel) Init() tea.Cmd { return nil }

// setPath navigates to path from root and recomputes the visible
// children, clearing any transient error or status message.
func (m *replModel) setPath(path string) {
	val, err := nrbf.PathGet(m.root, m.table, path)
	if err != nil {
		m.err = err
		return
	}
	m.path = path
	m.current = val
	m.children = childrenOf(path, val, m.table)
	m.cursor = 0
	m.err = nil
}

// childrenOf lists the navigable slots directly under val, resolving
// references transparently so the REPL never stops on a bare pointer.
func childrenOf(basePath string, val nrbf.Value, table nrbf.RecordTable) []childEntry {
	rec := val.Record
	if ref, ok := rec.(*nrbf.MemberReferenceRecord); ok {
		if target, ok := table[ref.IDRef]; ok {
			rec = target
		}
	}

	switch r := rec.(type) {
	case *nrbf.ClassRecord:
		entries := make([]childEntry, 0, len(r.MemberNames()))
		for _, name := range r.MemberNames() {
			v, _ := r.GetValue(name)
			entries = append(entries, childEntry{label: name, path: joinPath(basePath, name), val: v})
		}
		return entries
	case *nrbf.BinaryArrayRecord:
		return indexChildren(basePath, r.Elements)
	case *nrbf.ArraySingleObjectRecord:
		return indexChildren(basePath, r.Elements)
	case *nrbf.ArraySingleStringRecord:
		return indexChildren(basePath, r.Elements)
	case *nrbf.ArraySinglePrimitiveRecord:
		entries := make([]childEntry, len(r.Elements))
		for i, v := range r.Elements {
			entries[i] = childEntry{
				label: fmt.Sprintf("[%d]", i),
				path:  fmt.Sprintf("%s[%d]", basePath, i),
				val:   nrbf.Value{Primitive: v},
			}
		}
		return entries
	default:
		return nil
	}
}

func indexChildren(basePath string, elements []nrbf.Value) []childEntry {
	entries := make([]childEntry, len(elements))
	for i, v := range elements {
		entries[i] = childEntry{
			label: fmt.Sprintf("[%d]", i),
			path:  fmt.Sprintf("%s[%d]", basePath, i),
			val:   v,
		}
	}
	return entries
}

// childLabels returns the dotted paths of the current node's children,
// the candidate set the goto prompt fuzzy-filters against.
func (m *replModel) childLabels() []string {
	labels := make([]string, len(m.children))
	for i, c := range m.children {
		labels[i] = c.path
	}
	return labels
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

func parentPath(path string) string {
	if path == "" {
		return ""
	}
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return ""
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch keyMsg.String() {
		case "enter":
			input := m.input.Value()
			mode := m.mode
			m.editing = false
			m.input.Blur()
			m.input.SetValue("")
			m.submit(mode, input)
			return m, nil
		case "esc":
			m.editing = false
			m.input.Blur()
			m.input.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.mode == modeGoto {
			m.suggest = fuzzyRank(m.childLabels(), m.input.Value())
		}
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.children)-1 {
			m.cursor++
		}
	case "enter", "l":
		if m.cursor < len(m.children) {
			m.setPath(m.children[m.cursor].path)
		}
	case "backspace", "h":
		m.setPath(parentPath(m.path))
	case "g":
		m.startPrompt(modeGoto, "goto> ", "dotted path, or blank to cancel", "")
		m.suggest = m.childLabels()
	case "e":
		target := m.currentLeaf()
		m.startPrompt(modeEdit, "edit> ", "new value for "+pathOrRoot(target.path), summarizeValue(target.val))
	case "w":
		m.startPrompt(modeSave, "save as> ", "output path", m.file)
	case "r":
		m.message = summarizeValue(m.current)
	}
	return m, nil
}

// currentLeaf returns the value an "e" keypress edits: the highlighted
// child if there is one, else the current node itself.
func (m *replModel) currentLeaf() childEntry {
	if m.cursor < len(m.children) {
		return m.children[m.cursor]
	}
	return childEntry{path: m.path, val: m.current}
}

func pathOrRoot(path string) string {
	if path == "" {
		return "."
	}
	return path
}

func (m *replModel) startPrompt(mode replMode, prompt, placeholder, prefill string) {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	m.input.SetValue(prefill)
	m.input.CursorEnd()
	m.input.Focus()
	m.editing = true
	m.err = nil
	m.message = ""
}

// submit dispatches the text entered under mode: navigate, write a new
// scalar value in place, or re-encode the graph to a new file.
func (m *replModel) submit(mode replMode, input string) {
	value := strings.TrimSpace(input)
	switch mode {
	case modeGoto:
		if value != "" {
			m.setPath(value)
		}
	case modeEdit:
		if value == "" {
			return
		}
		target := m.currentLeaf()
		if err := setScalar(m.root, m.table, target.path, target.val, value); err != nil {
			m.err = err
			return
		}
		m.dirty = true
		m.setPath(m.path)
		m.message = "updated " + pathOrRoot(target.path)
	case modeSave:
		if value == "" {
			return
		}
		if err := writeGraph(value, m.root, m.libraries); err != nil {
			m.err = err
			return
		}
		m.dirty = false
		m.message = "wrote " + value
	}
}

func (m *replModel) View() string {
	var b strings.Builder
	styles := newReplStyles(m.theme)

	title := m.file
	if m.dirty {
		title += " [modified]"
	}
	fmt.Fprintf(&b, "%s  %s\n", styles.title.Render("nrbf repl"), styles.path.Render(title))
	displayPath := m.path
	if displayPath == "" {
		displayPath = "."
	}
	fmt.Fprintf(&b, "path: %s\n\n", styles.path.Render(displayPath))

	if m.err != nil {
		fmt.Fprintf(&b, "%s\n\n", styles.errText.Render(m.err.Error()))
	}

	if len(m.children) == 0 {
		fmt.Fprintf(&b, "%s\n\n", summarizeValue(m.current))
	} else {
		for i, child := range m.children {
			line := fmt.Sprintf("%-24s %s", child.label, summarizeValue(child.val))
			if i == m.cursor {
				line = styles.selected.Render(line)
			}
			fmt.Fprintln(&b, line)
		}
		fmt.Fprintln(&b)
	}

	if m.message != "" {
		fmt.Fprintf(&b, "%s\n\n", m.message)
	}

	if m.editing {
		fmt.Fprintln(&b, m.input.View())
		if m.mode == modeGoto {
			for i, s := range m.suggest {
				if i >= 5 {
					break
				}
				fmt.Fprintln(&b, styles.help.Render("  "+s))
			}
		}
	} else {
		fmt.Fprint(&b, styles.help.Render("up/down move  enter/l descend  backspace/h up  g goto  e edit  w write out  r show raw  q quit"))
	}
	return b.String()
}
