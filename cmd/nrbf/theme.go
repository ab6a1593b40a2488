// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette used by the tree printer and REPL.
// Colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	ClassName      lipgloss.Color
	MemberName     lipgloss.Color
	StringValue    lipgloss.Color
	NumberValue    lipgloss.Color
	NullValue      lipgloss.Color
	ReferenceArrow lipgloss.Color
	ObjectID       lipgloss.Color
	ArrayBracket   lipgloss.Color
	HelpText       lipgloss.Color
	ErrorText      lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	ClassName:      lipgloss.Color("141"), // light purple
	MemberName:     lipgloss.Color("75"),  // blue
	StringValue:    lipgloss.Color("114"), // green
	NumberValue:    lipgloss.Color("220"), // amber
	NullValue:      lipgloss.Color("245"), // gray
	ReferenceArrow: lipgloss.Color("208"), // orange
	ObjectID:       lipgloss.Color("240"), // dim gray
	ArrayBracket:   lipgloss.Color("245"), // gray
	HelpText:       lipgloss.Color("241"),
	ErrorText:      lipgloss.Color("196"), // red
}
