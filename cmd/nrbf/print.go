// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

// treePrinter renders a decoded graph as an indented tree, colorizing
// output when writing to a terminal that supports it.
type treePrinter struct {
	w      io.Writer
	table  nrbf.RecordTable
	theme  Theme
	color  bool
	visits map[int32]bool
}

// newTreePrinter builds a printer for w, auto-detecting color support:
// disabled for a non-terminal destination or when NO_COLOR is set,
// matching termenv's own convention.
func newTreePrinter(w io.Writer, table nrbf.RecordTable, theme Theme) *treePrinter {
	color := false
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		color = termenv.NewOutput(f).Profile != termenv.Ascii
	}
	return &treePrinter{w: w, table: table, theme: theme, color: color, visits: map[int32]bool{}}
}

func (p *treePrinter) style(c lipgloss.Color) lipgloss.Style {
	if !p.color {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

// Print renders root and everything reachable from it.
func (p *treePrinter) Print(root nrbf.Record) {
	p.printValue(nrbf.Value{Record: root}, 0)
	fmt.Fprintln(p.w)
}

func (p *treePrinter) printValue(val nrbf.Value, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case val.IsNull:
		fmt.Fprint(p.w, p.style(p.theme.NullValue).Render("null"))
	case val.Record == nil:
		fmt.Fprint(p.w, p.style(p.theme.NumberValue).Render(fmt.Sprintf("%v", val.Primitive)))
	default:
		p.printRecord(val.Record, depth, indent)
	}
}

func (p *treePrinter) printRecord(rec nrbf.Record, depth int, indent string) {
	switch r := rec.(type) {
	case *nrbf.BinaryObjectStringRecord:
		fmt.Fprint(p.w, p.style(p.theme.StringValue).Render(fmt.Sprintf("%q", r.Value)))
	case *nrbf.MemberPrimitiveTypedRecord:
		fmt.Fprint(p.w, p.style(p.theme.NumberValue).Render(fmt.Sprintf("%v", r.Value)))
	case *nrbf.MemberReferenceRecord:
		fmt.Fprint(p.w, p.style(p.theme.ReferenceArrow).Render(fmt.Sprintf("-> #%d", r.IDRef)))
	case *nrbf.ClassRecord:
		p.printClass(r, depth, indent)
	case *nrbf.BinaryArrayRecord:
		p.printElements(r.ID, r.Elements, depth, indent)
	case *nrbf.ArraySingleObjectRecord:
		p.printElements(r.ID, r.Elements, depth, indent)
	case *nrbf.ArraySingleStringRecord:
		p.printElements(r.ID, r.Elements, depth, indent)
	case *nrbf.ArraySinglePrimitiveRecord:
		p.printPrimitiveElements(r.ID, r.Elements, depth, indent)
	default:
		fmt.Fprint(p.w, p.style(p.theme.NullValue).Render(fmt.Sprintf("<%s>", r.RecordKind())))
	}
}

func (p *treePrinter) printClass(r *nrbf.ClassRecord, depth int, indent string) {
	id, _ := r.ObjectID()
	if p.visits[id] {
		fmt.Fprint(p.w, p.style(p.theme.ReferenceArrow).Render(fmt.Sprintf("-> #%d (already printed)", id)))
		return
	}
	p.visits[id] = true

	fmt.Fprintf(p.w, "%s %s\n",
		p.style(p.theme.ClassName).Render(r.TypeName()),
		p.style(p.theme.ObjectID).Render(fmt.Sprintf("#%d", id)))

	for _, name := range r.MemberNames() {
		val, ok := r.GetValue(name)
		if !ok {
			continue
		}
		fmt.Fprintf(p.w, "%s  %s: ", indent, p.style(p.theme.MemberName).Render(name))
		p.printValue(val, depth+1)
		fmt.Fprintln(p.w)
	}
}

func (p *treePrinter) printElements(id int32, elements []nrbf.Value, depth int, indent string) {
	fmt.Fprintf(p.w, "%s %s\n",
		p.style(p.theme.ArrayBracket).Render(fmt.Sprintf("[%d elements]", len(elements))),
		p.style(p.theme.ObjectID).Render(fmt.Sprintf("#%d", id)))
	for i, val := range elements {
		fmt.Fprintf(p.w, "%s  %s: ", indent, p.style(p.theme.ObjectID).Render(fmt.Sprintf("[%d]", i)))
		p.printValue(val, depth+1)
		fmt.Fprintln(p.w)
	}
}

func (p *treePrinter) printPrimitiveElements(id int32, elements []any, depth int, indent string) {
	fmt.Fprintf(p.w, "%s %s\n",
		p.style(p.theme.ArrayBracket).Render(fmt.Sprintf("[%d elements]", len(elements))),
		p.style(p.theme.ObjectID).Render(fmt.Sprintf("#%d", id)))
	for i, v := range elements {
		fmt.Fprintf(p.w, "%s  %s: %s\n", indent,
			p.style(p.theme.ObjectID).Render(fmt.Sprintf("[%d]", i)),
			p.style(p.theme.NumberValue).Render(fmt.Sprintf("%v", v)))
	}
}
