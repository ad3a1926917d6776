package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/emoscope"
	"github.com/fwojciec/emoscope/chroma"
	"github.com/fwojciec/emoscope/jsonl"
	emolipgloss "github.com/fwojciec/emoscope/lipgloss"
	"github.com/spf13/cobra"
)

// Output formats.
var formats = []string{"cards", "table", "json", "jsonl", "plain"}

type outputFlags struct {
	format string
	width  int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "cards", "output format: cards, table, json, jsonl, plain")
	cmd.Flags().IntVar(&o.width, "width", 100, "layout width for cards and table")
}

func (o *outputFlags) validate() error {
	if !slices.Contains(formats, o.format) {
		return fmt.Errorf("unknown format %q (want one of %v)", o.format, formats)
	}
	return nil
}

// writeResults renders records to w. Colors are used only when w is a
// terminal that supports them.
func (a *App) writeResults(w io.Writer, records []emoscope.ResultRecord, o outputFlags) error {
	if len(records) == 0 {
		fmt.Fprintln(a.Stderr, "warning: "+emptyInputWarning)
		if o.format == "json" {
			_, err := fmt.Fprintln(w, "[]")
			return err
		}
		return nil
	}

	renderer := lipgloss.NewRenderer(w)
	var err error
	switch o.format {
	case "cards":
		_, err = fmt.Fprintf(w, "%s\n%s\n",
			emolipgloss.RenderCards(records, a.Theme, renderer, o.width),
			emolipgloss.RenderSummary(records, a.Theme, renderer))
	case "table":
		_, err = fmt.Fprintln(w, emolipgloss.RenderTable(records, a.Theme, renderer, o.width))
	case "json":
		var data []byte
		data, err = json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, chroma.NewHighlighter(a.Theme.Palette(), renderer).JSON(string(data)))
	case "jsonl":
		err = jsonl.NewEncoder(w).Encode(records)
	case "plain":
		_, err = io.WriteString(w, emoscope.FormatPlain(records))
	}
	return err
}

const emptyInputWarning = "Please enter some text."
