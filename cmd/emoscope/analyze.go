package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/emoscope/jsonl"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		out       outputFlags
		file      string
		jsonInput bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Classify text from arguments, a file, or stdin",
		Long: `Classify every non-empty line of the input.

Each argument is analyzed as its own line. Without arguments the text is read
from --file, or from stdin when it is piped. With --jsonl the input is JSON
Lines of the form {"text": "..."}.`,
		Example: `  emoscope analyze "I can't wait for the weekend!"
  git log --format=%s | emoscope analyze --format table
  emoscope analyze --file notes.txt --format jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			raw, err := app.readInput(args, file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var texts []string
			if jsonInput {
				texts, err = jsonl.NewLoader().Read(strings.NewReader(raw))
				if err != nil {
					return fmt.Errorf("parse jsonl input: %w", err)
				}
			} else {
				texts = strings.Split(raw, "\n")
			}

			records, err := app.analyzeTexts(ctx, texts)
			if err != nil {
				return err
			}
			return app.writeResults(app.Stdout, records, out)
		},
	}
	out.register(cmd)
	cmd.Flags().StringVar(&file, "file", "", `read input from file ("-" for stdin)`)
	cmd.Flags().BoolVar(&jsonInput, "jsonl", false, `input is JSON Lines of {"text": ...}`)
	return cmd
}

// readInput picks the input text: arguments first, then --file, then stdin.
func (a *App) readInput(args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, "\n"), nil
	case file == "-":
		return a.readStdin()
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return a.readStdin()
	}
}
