// Package lipgloss provides themes and result rendering using the Lipgloss
// styling library.
package lipgloss

import (
	"sort"

	"github.com/fwojciec/emoscope"
)

// Compile-time interface verification.
var _ emoscope.Theme = (*Theme)(nil)

// Theme implements emoscope.Theme with Lipgloss-compatible colors.
type Theme struct {
	name    string
	styles  emoscope.Styles
	palette emoscope.Palette
}

// Name returns the theme's lookup name.
func (t *Theme) Name() string {
	return t.name
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() emoscope.Styles {
	return t.styles
}

// Palette returns the syntax color palette for this theme.
func (t *Theme) Palette() emoscope.Palette {
	return t.palette
}

var themes = map[string]func() *Theme{
	"dark":        DarkTheme,
	"light":       LightTheme,
	"upside-down": UpsideDownTheme,
	"matrix":      MatrixTheme,
}

// ThemeByName returns the named theme. Unknown names fall back to the
// default theme; ok reports whether the name was recognized.
func ThemeByName(name string) (theme *Theme, ok bool) {
	if fn, found := themes[name]; found {
		return fn(), true
	}
	return DefaultTheme(), false
}

// ThemeNames lists the available theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		name: "dark",
		styles: emoscope.Styles{
			Title:  emoscope.ColorPair{Foreground: "#cba6f7"}, // Mauve
			Card:   emoscope.ColorPair{Foreground: "#cdd6f4"},
			Border: emoscope.ColorPair{Foreground: "#45475a"}, // Surface
			Text:   emoscope.ColorPair{Foreground: "#bac2de"},
			Muted:  emoscope.ColorPair{Foreground: "#6c7086"},
			Error:  emoscope.ColorPair{Foreground: "#f38ba8"},
			Warn:   emoscope.ColorPair{Foreground: "#f9e2af"},
			Emotions: map[string]emoscope.ColorPair{
				"ANGER":     {Foreground: "#f38ba8"}, // Red
				"DISGUST":   {Foreground: "#a6e3a1"}, // Green
				"FEAR":      {Foreground: "#cba6f7"}, // Mauve
				"JOY":       {Foreground: "#f9e2af"}, // Yellow
				"HAPPINESS": {Foreground: "#f9e2af"},
				"NEUTRAL":   {Foreground: "#9399b2"}, // Overlay
				"SADNESS":   {Foreground: "#89b4fa"}, // Blue
				"SURPRISE":  {Foreground: "#fab387"}, // Peach
			},
			Accent: emoscope.ColorPair{Foreground: "#89dceb"},
		},
		palette: emoscope.Palette{
			// Catppuccin Mocha
			Background:  "#1e1e2e",
			Foreground:  "#cdd6f4",
			String:      "#a6e3a1",
			Number:      "#fab387",
			Keyword:     "#cba6f7",
			Punctuation: "#9399b2",
			Name:        "#89b4fa",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		name: "light",
		styles: emoscope.Styles{
			Title:  emoscope.ColorPair{Foreground: "#8839ef"},
			Card:   emoscope.ColorPair{Foreground: "#4c4f69"},
			Border: emoscope.ColorPair{Foreground: "#bcc0cc"},
			Text:   emoscope.ColorPair{Foreground: "#5c5f77"},
			Muted:  emoscope.ColorPair{Foreground: "#9ca0b0"},
			Error:  emoscope.ColorPair{Foreground: "#d20f39"},
			Warn:   emoscope.ColorPair{Foreground: "#df8e1d"},
			Emotions: map[string]emoscope.ColorPair{
				"ANGER":     {Foreground: "#d20f39"},
				"DISGUST":   {Foreground: "#40a02b"},
				"FEAR":      {Foreground: "#8839ef"},
				"JOY":       {Foreground: "#df8e1d"},
				"HAPPINESS": {Foreground: "#df8e1d"},
				"NEUTRAL":   {Foreground: "#7c7f93"},
				"SADNESS":   {Foreground: "#1e66f5"},
				"SURPRISE":  {Foreground: "#fe640b"},
			},
			Accent: emoscope.ColorPair{Foreground: "#04a5e5"},
		},
		palette: emoscope.Palette{
			// Catppuccin Latte
			Background:  "#eff1f5",
			Foreground:  "#4c4f69",
			String:      "#40a02b",
			Number:      "#fe640b",
			Keyword:     "#8839ef",
			Punctuation: "#6c6f85",
			Name:        "#1e66f5",
		},
	}
}

// UpsideDownTheme returns a red neon theme on black.
func UpsideDownTheme() *Theme {
	return &Theme{
		name: "upside-down",
		styles: emoscope.Styles{
			Title:  emoscope.ColorPair{Foreground: "#ff1a1a", Background: "#0a0000"},
			Card:   emoscope.ColorPair{Foreground: "#ffd6d6", Background: "#0a0000"},
			Border: emoscope.ColorPair{Foreground: "#ff1a1a"},
			Text:   emoscope.ColorPair{Foreground: "#ffb3b3"},
			Muted:  emoscope.ColorPair{Foreground: "#994444"},
			Error:  emoscope.ColorPair{Foreground: "#ffffff", Background: "#b30000"},
			Warn:   emoscope.ColorPair{Foreground: "#ff8c1a"},
			Emotions: map[string]emoscope.ColorPair{
				"ANGER":     {Foreground: "#ff0000"},
				"DISGUST":   {Foreground: "#b30059"},
				"FEAR":      {Foreground: "#ff4d4d"},
				"JOY":       {Foreground: "#ff9999"},
				"HAPPINESS": {Foreground: "#ff9999"},
				"NEUTRAL":   {Foreground: "#cc6666"},
				"SADNESS":   {Foreground: "#993333"},
				"SURPRISE":  {Foreground: "#ff6600"},
			},
			Accent: emoscope.ColorPair{Foreground: "#ff1a1a"},
		},
		palette: emoscope.Palette{
			Background:  "#0a0000",
			Foreground:  "#ffd6d6",
			String:      "#ff9999",
			Number:      "#ff4d4d",
			Keyword:     "#ff1a1a",
			Punctuation: "#994444",
			Name:        "#ff6600",
		},
	}
}

// MatrixTheme returns a green-on-black terminal theme.
func MatrixTheme() *Theme {
	return &Theme{
		name: "matrix",
		styles: emoscope.Styles{
			Title:  emoscope.ColorPair{Foreground: "#00ff41"},
			Card:   emoscope.ColorPair{Foreground: "#00ff41", Background: "#000000"},
			Border: emoscope.ColorPair{Foreground: "#008f11"},
			Text:   emoscope.ColorPair{Foreground: "#00cc33"},
			Muted:  emoscope.ColorPair{Foreground: "#005f0e"},
			Error:  emoscope.ColorPair{Foreground: "#000000", Background: "#00ff41"},
			Warn:   emoscope.ColorPair{Foreground: "#b3ff66"},
			Emotions: map[string]emoscope.ColorPair{
				"ANGER":     {Foreground: "#66ff66"},
				"DISGUST":   {Foreground: "#33cc33"},
				"FEAR":      {Foreground: "#99ff99"},
				"JOY":       {Foreground: "#ccffcc"},
				"HAPPINESS": {Foreground: "#ccffcc"},
				"NEUTRAL":   {Foreground: "#008f11"},
				"SADNESS":   {Foreground: "#006600"},
				"SURPRISE":  {Foreground: "#00ff41"},
			},
			Accent: emoscope.ColorPair{Foreground: "#00ff41"},
		},
		palette: emoscope.Palette{
			Background:  "#000000",
			Foreground:  "#00ff41",
			String:      "#00cc33",
			Number:      "#99ff99",
			Keyword:     "#00ff41",
			Punctuation: "#005f0e",
			Name:        "#66ff66",
		},
	}
}
