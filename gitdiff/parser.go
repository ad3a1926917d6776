// Package gitdiff extracts analyzable text from unified diffs using
// bluekeyes/go-gitdiff.
package gitdiff

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/emoscope"
)

// Compile-time interface verification.
var _ emoscope.MessageSource = (*Source)(nil)

// Line is one line a patch adds.
type Line struct {
	File   string
	Number int // Line number in the new file
	Text   string
}

// Parser extracts added lines from unified diff content.
type Parser struct {
	includeDeleted bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithDeleted also returns removed lines. Their Number is the old file's.
func WithDeleted() ParserOption {
	return func(p *Parser) {
		p.includeDeleted = true
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads diff content and returns its added lines in patch order.
// Binary files are skipped. Blank lines are dropped.
func (p *Parser) Parse(r io.Reader) ([]Line, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	var lines []Line
	for _, f := range files {
		if f.IsBinary {
			continue
		}
		name := f.NewName
		if f.IsDelete {
			name = f.OldName
		}
		for _, frag := range f.TextFragments {
			lines = append(lines, p.fragmentLines(name, frag)...)
		}
	}
	return lines, nil
}

func (p *Parser) fragmentLines(file string, frag *gitdiff.TextFragment) []Line {
	oldLineNum := int(frag.OldPosition)
	newLineNum := int(frag.NewPosition)

	var out []Line
	for _, l := range frag.Lines {
		text := strings.TrimSpace(l.Line)
		switch l.Op {
		case gitdiff.OpContext:
			oldLineNum++
			newLineNum++
		case gitdiff.OpAdd:
			if text != "" {
				out = append(out, Line{File: file, Number: newLineNum, Text: text})
			}
			newLineNum++
		case gitdiff.OpDelete:
			if p.includeDeleted && text != "" {
				out = append(out, Line{File: file, Number: oldLineNum, Text: text})
			}
			oldLineNum++
		}
	}
	return out
}

// Source implements emoscope.MessageSource over a patch.
type Source struct {
	parser *Parser
	r      io.Reader
}

// NewSource returns a Source reading the patch from r.
func NewSource(r io.Reader, opts ...ParserOption) *Source {
	return &Source{parser: NewParser(opts...), r: r}
}

// Messages returns the text of each added line.
func (s *Source) Messages(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lines, err := s.parser.Parse(s.r)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts, nil
}
