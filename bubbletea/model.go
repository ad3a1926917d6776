// Package bubbletea provides the interactive emotion analyzer using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/emoscope"
	"github.com/fwojciec/emoscope/chroma"
	emolipgloss "github.com/fwojciec/emoscope/lipgloss"
)

// SampleText pre-fills the editor.
const SampleText = "Something feels wrong... I can sense it breathing in the dark."

// EmptyInputWarning is shown when analysis is triggered with no text.
const EmptyInputWarning = "Please enter some text."

// Analyzer runs a full analysis of raw multi-line input.
type Analyzer interface {
	Analyze(ctx context.Context, raw string) ([]emoscope.ResultRecord, error)
}

// ResultView identifies how results are displayed.
type ResultView int

// ResultView constants.
const (
	ViewCards ResultView = iota
	ViewTable
	ViewJSON
)

func (v ResultView) String() string {
	switch v {
	case ViewTable:
		return "table"
	case ViewJSON:
		return "json"
	default:
		return "cards"
	}
}

func (v ResultView) next() ResultView {
	return (v + 1) % 3
}

// analyzedMsg carries the outcome of one analysis.
type analyzedMsg struct {
	records []emoscope.ResultRecord
	err     error
}

// copiedMsg reports a finished clipboard copy.
type copiedMsg struct {
	count int
	err   error
}

// Model is the Bubble Tea model for the analyzer screen.
type Model struct {
	analyzer    Analyzer
	clipboard   emoscope.Clipboard
	theme       emoscope.Theme
	renderer    *lipgloss.Renderer
	highlighter *chroma.Highlighter
	timeout     time.Duration
	keymap      KeyMap

	// UI Components
	editor  textarea.Model
	results viewport.Model
	spinner spinner.Model

	// State
	records   []emoscope.ResultRecord
	view      ResultView
	analyzing bool
	editing   bool
	fatal     error
	err       error
	warning   string
	status    string

	width, height int
	ready         bool
}

// Option configures a Model.
type Option func(*modelConfig)

type modelConfig struct {
	renderer  *lipgloss.Renderer
	theme     emoscope.Theme
	clipboard emoscope.Clipboard
	timeout   time.Duration
	text      string
	view      ResultView
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t emoscope.Theme) Option {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithClipboard enables copying results.
func WithClipboard(c emoscope.Clipboard) Option {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithTimeout bounds each analysis. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(cfg *modelConfig) {
		cfg.timeout = d
	}
}

// WithInitialText replaces the sample text in the editor.
func WithInitialText(text string) Option {
	return func(cfg *modelConfig) {
		cfg.text = text
	}
}

// WithView sets the initial result view.
func WithView(v ResultView) Option {
	return func(cfg *modelConfig) {
		cfg.view = v
	}
}

// NewModel creates a Model that analyzes text with analyzer.
func NewModel(analyzer Analyzer, opts ...Option) Model {
	cfg := modelConfig{text: SampleText}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.theme == nil {
		cfg.theme = emolipgloss.DefaultTheme()
	}
	if cfg.renderer == nil {
		cfg.renderer = lipgloss.DefaultRenderer()
	}
	styles := cfg.theme.Styles()

	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.Placeholder = "One text per line..."
	editor.SetValue(cfg.text)
	editor.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styleFromColorPair(styles.Accent, cfg.renderer)

	return Model{
		analyzer:    analyzer,
		clipboard:   cfg.clipboard,
		theme:       cfg.theme,
		renderer:    cfg.renderer,
		highlighter: chroma.NewHighlighter(cfg.theme.Palette(), cfg.renderer),
		timeout:     cfg.timeout,
		keymap:      DefaultKeyMap(),
		editor:      editor,
		spinner:     sp,
		view:        cfg.view,
		editing:     true,
	}
}

// Records returns the most recent analysis results.
func (m Model) Records() []emoscope.ResultRecord {
	return m.records
}

// Fatal returns the error that disabled analysis, if any.
func (m Model) Fatal() error {
	return m.fatal
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case analyzedMsg:
		return m.handleAnalyzed(msg), nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("copied %d results", msg.count)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.analyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.editing {
		m.editor, cmd = m.editor.Update(msg)
	} else {
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Analyze):
		return m.startAnalysis()

	case key.Matches(msg, m.keymap.ToggleView):
		m.view = m.view.next()
		m.updateResultsContent()
		return m, nil
	}

	if m.editing {
		if key.Matches(msg, m.keymap.Blur) {
			m.editing = false
			m.editor.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Edit):
		m.editing = true
		return m, m.editor.Focus()

	case key.Matches(msg, m.keymap.Copy):
		return m, m.copyResults()
	}

	// Scrolling keys are handled by the viewport's own key map.
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) startAnalysis() (tea.Model, tea.Cmd) {
	if m.fatal != nil || m.analyzing {
		return m, nil
	}

	text := m.editor.Value()
	if len(emoscope.SplitLines(text)) == 0 {
		m.warning = EmptyInputWarning
		m.err = nil
		m.records = nil
		m.updateResultsContent()
		return m, nil
	}

	m.warning = ""
	m.err = nil
	m.analyzing = true
	return m, tea.Batch(m.spinner.Tick, m.analyze(text))
}

func (m Model) analyze(text string) tea.Cmd {
	analyzer, timeout := m.analyzer, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		records, err := analyzer.Analyze(ctx, text)
		return analyzedMsg{records: records, err: err}
	}
}

func (m Model) handleAnalyzed(msg analyzedMsg) Model {
	m.analyzing = false
	if msg.err != nil {
		if emoscope.IsModelLoadError(msg.err) {
			m.fatal = msg.err
		} else {
			m.err = msg.err
		}
		return m
	}
	m.records = msg.records
	m.updateResultsContent()
	m.results.GotoTop()
	return m
}

func (m Model) copyResults() tea.Cmd {
	if m.clipboard == nil {
		return func() tea.Msg {
			return copiedMsg{err: fmt.Errorf("no clipboard available")}
		}
	}
	if len(m.records) == 0 {
		return func() tea.Msg {
			return copiedMsg{err: fmt.Errorf("nothing to copy")}
		}
	}
	clip, records := m.clipboard, m.records
	return func() tea.Msg {
		return copiedMsg{count: len(records), err: clip.Copy(emoscope.FormatPlain(records))}
	}
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Reserve: header (2), status line (1), help (1), separators (2)
	editorHeight := 6
	resultsHeight := msg.Height - editorHeight - 6
	if resultsHeight < 3 {
		resultsHeight = 3 // Minimum height for tiny terminals
	}

	m.editor.SetWidth(msg.Width)
	m.editor.SetHeight(editorHeight)

	if !m.ready {
		m.results = viewport.New(msg.Width, resultsHeight)
		m.ready = true
	} else {
		m.results.Width = msg.Width
		m.results.Height = resultsHeight
	}
	m.updateResultsContent()
	return m, nil
}

func (m *Model) updateResultsContent() {
	if !m.ready {
		return
	}
	m.results.SetContent(m.renderResults())
}

func (m Model) renderResults() string {
	muted := styleFromColorPair(m.theme.Styles().Muted, m.renderer)
	if len(m.records) == 0 {
		return muted.Render("Press ctrl+s to analyze.")
	}

	var body string
	switch m.view {
	case ViewTable:
		body = emolipgloss.RenderTable(m.records, m.theme, m.renderer, m.width)
	case ViewJSON:
		data, err := json.MarshalIndent(m.records, "", "  ")
		if err != nil {
			body = err.Error()
		} else {
			body = m.highlighter.JSON(string(data))
		}
	default:
		body = emolipgloss.RenderCards(m.records, m.theme, m.renderer, m.width)
	}
	return emolipgloss.RenderSummary(m.records, m.theme, m.renderer) + "\n\n" + body
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.editor.View())
	s.WriteString("\n")
	s.WriteString(m.renderStatusLine())
	s.WriteString("\n")
	s.WriteString(m.results.View())
	s.WriteString("\n")
	s.WriteString(m.renderHelp())
	return s.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	title := styleFromColorPair(styles.Title, m.renderer).Bold(true).Render("EMOSCOPE")
	sub := styleFromColorPair(styles.Muted, m.renderer).Render("emotion detection, one line at a time")
	return title + "  " + sub
}

func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	switch {
	case m.fatal != nil:
		return styleFromColorPair(styles.Error, m.renderer).Bold(true).
			Render("MODEL UNAVAILABLE: " + m.fatal.Error() + " (analysis disabled)")
	case m.analyzing:
		return m.spinner.View() + " analyzing..."
	case m.err != nil:
		return styleFromColorPair(styles.Error, m.renderer).
			Render("analysis failed: " + m.err.Error() + " (ctrl+s to retry)")
	case m.warning != "":
		return styleFromColorPair(styles.Warn, m.renderer).Render(m.warning)
	case m.status != "":
		return styleFromColorPair(styles.Accent, m.renderer).Render(m.status)
	}
	return styleFromColorPair(styles.Muted, m.renderer).
		Render(fmt.Sprintf("%d results │ view: %s", len(m.records), m.view))
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, 8)
	for _, b := range m.keymap.ShortHelp(m.editing) {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return styleFromColorPair(m.theme.Styles().Muted, m.renderer).Render(strings.Join(parts, " "))
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
func styleFromColorPair(cp emoscope.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	return emolipgloss.StyleFromColorPair(cp, renderer)
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
