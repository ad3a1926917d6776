package lipgloss

import (
	"fmt"
	"strings"

	lipglosslib "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fwojciec/emoscope"
)

const (
	// MinCardWidth is the narrowest a card is drawn, borders included.
	MinCardWidth = 28
	cardGap      = 2
)

// StyleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func StyleFromColorPair(cp emoscope.ColorPair, renderer *lipglosslib.Renderer) lipglosslib.Style {
	var style lipglosslib.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipglosslib.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipglosslib.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipglosslib.Color(cp.Background))
	}
	return style
}

// Columns returns how many cards fit side by side in width.
func Columns(width int) int {
	if width >= 2*MinCardWidth+cardGap {
		return 2
	}
	return 1
}

// RenderCards draws one bordered card per record, two per row when width
// allows. Returns "" for no records.
func RenderCards(records []emoscope.ResultRecord, theme emoscope.Theme, renderer *lipglosslib.Renderer, width int) string {
	if len(records) == 0 {
		return ""
	}
	cols := Columns(width)
	cardWidth := MinCardWidth
	if width > 0 {
		cardWidth = max(MinCardWidth, (width-(cols-1)*cardGap)/cols)
	}

	cards := make([]string, len(records))
	for i, r := range records {
		cards[i] = renderCard(r, theme.Styles(), renderer, cardWidth)
	}

	rows := make([]string, 0, (len(cards)+cols-1)/cols)
	for i := 0; i < len(cards); i += cols {
		if cols == 1 || i+1 >= len(cards) {
			rows = append(rows, cards[i])
			continue
		}
		rows = append(rows, lipglosslib.JoinHorizontal(lipglosslib.Top, cards[i], strings.Repeat(" ", cardGap), cards[i+1]))
	}
	return lipglosslib.JoinVertical(lipglosslib.Left, rows...)
}

func renderCard(r emoscope.ResultRecord, styles emoscope.Styles, renderer *lipglosslib.Renderer, width int) string {
	accent := styles.EmotionColor(r.Emotion)
	badge := emoscope.BadgeFor(r.Emotion)

	header := StyleFromColorPair(accent, renderer).Bold(true).Render(badge.Emoji + " " + r.Emotion)
	text := StyleFromColorPair(styles.Text, renderer).Italic(true).Render(fmt.Sprintf("%q", r.Text))
	confidence := StyleFromColorPair(styles.Muted, renderer).Render("CONFIDENCE: " + emoscope.FormatConfidence(r.Confidence))

	// Border (2) plus horizontal padding (2).
	inner := max(width-4, 1)
	card := StyleFromColorPair(styles.Card, renderer).
		Border(lipglosslib.RoundedBorder()).
		BorderForeground(lipglosslib.Color(accent.Foreground)).
		Padding(0, 1).
		Width(inner + 2)

	return card.Render(lipglosslib.JoinVertical(lipglosslib.Left, header, text, confidence))
}

// RenderTable draws records as a compact table. Long texts are truncated to
// fit width; zero width leaves them whole.
func RenderTable(records []emoscope.ResultRecord, theme emoscope.Theme, renderer *lipglosslib.Renderer, width int) string {
	if len(records) == 0 {
		return ""
	}
	styles := theme.Styles()

	// Emotion (8) + confidence (10) + four borders + padding.
	textWidth := 0
	if width > 0 {
		textWidth = max(width-34, 10)
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			emoscope.BadgeFor(r.Emotion).Emoji + " " + r.Emotion,
			emoscope.FormatConfidence(r.Confidence),
			truncate(r.Text, textWidth),
		}
	}

	headerStyle := StyleFromColorPair(styles.Title, renderer).Bold(true).Padding(0, 1)
	cellStyle := StyleFromColorPair(styles.Text, renderer).Padding(0, 1)
	mutedStyle := StyleFromColorPair(styles.Muted, renderer).Padding(0, 1)

	t := table.New().
		Border(lipglosslib.NormalBorder()).
		BorderStyle(StyleFromColorPair(styles.Border, renderer)).
		Headers("EMOTION", "CONFIDENCE", "TEXT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipglosslib.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return StyleFromColorPair(styles.EmotionColor(records[row].Emotion), renderer).Bold(true).Padding(0, 1)
			case col == 1:
				return mutedStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}

// RenderSummary renders a one-line count per dominant emotion.
func RenderSummary(records []emoscope.ResultRecord, theme emoscope.Theme, renderer *lipglosslib.Renderer) string {
	styles := theme.Styles()
	parts := make([]string, 0, len(records))
	for _, c := range emoscope.Summary(records) {
		parts = append(parts, StyleFromColorPair(styles.EmotionColor(c.Emotion), renderer).Render(fmt.Sprintf("%s %d", c.Emotion, c.Count)))
	}
	sep := StyleFromColorPair(styles.Muted, renderer).Render(" · ")
	return strings.Join(parts, sep)
}

func truncate(s string, width int) string {
	if width <= 0 || lipglosslib.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipglosslib.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
