// Package jsonl reads analysis input from and writes results to JSON Lines.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/emoscope"
)

// Compile-time interface verification.
var _ emoscope.MessageSource = (*Source)(nil)

// Input is one JSONL input record.
type Input struct {
	Text string `json:"text"`
}

// Loader loads texts from JSONL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// maxLineSize is the maximum size for a single JSONL line (4MB).
const maxLineSize = 4 * 1024 * 1024

// Load reads a JSONL file and returns the text of every record.
func (l *Loader) Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.Read(f)
}

// Read returns the text of every record in r. Blank lines are skipped.
// Records without text are an error.
func (l *Loader) Read(r io.Reader) ([]string, error) {
	var texts []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var in Input
		if err := json.Unmarshal([]byte(line), &in); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if strings.TrimSpace(in.Text) == "" {
			return nil, fmt.Errorf("line %d: missing text", lineNum)
		}
		texts = append(texts, in.Text)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return texts, nil
}

// Source implements emoscope.MessageSource over a JSONL file.
type Source struct {
	Path string
}

// Messages loads the file's texts.
func (s *Source) Messages(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewLoader().Load(s.Path)
}
