package emoscope

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for all visual elements of a result view.
type Styles struct {
	Title  ColorPair // Screen and section titles
	Card   ColorPair // Result card body
	Border ColorPair // Card borders and separators
	Text   ColorPair // Quoted input text
	Muted  ColorPair // Confidence line, hints
	Error  ColorPair // Fatal and per-attempt errors
	Warn   ColorPair // Non-fatal warnings (empty input)

	// Emotions maps an upper-cased emotion to its label color.
	// Emotions not in the map use Accent.
	Emotions map[string]ColorPair
	Accent   ColorPair
}

// EmotionColor returns the label color for an emotion.
func (s Styles) EmotionColor(emotion string) ColorPair {
	if cp, ok := s.Emotions[emotion]; ok {
		return cp
	}
	return s.Accent
}

// Palette defines the base colors used for syntax-highlighted output.
type Palette struct {
	Background string
	Foreground string

	String      string
	Number      string
	Keyword     string
	Punctuation string
	Name        string
}

// Theme provides styles for rendering results.
// Different implementations can provide light/dark variants.
type Theme interface {
	Name() string
	Styles() Styles
	Palette() Palette
}
