package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/emoscope/bubbletea"
	"github.com/fwojciec/emoscope/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTUICmd(app *App) *cobra.Command {
	var (
		text string
		view string
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive analyzer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []bubbletea.Option{
				bubbletea.WithTheme(app.Theme),
				bubbletea.WithRenderer(lipgloss.DefaultRenderer()),
			}
			if text != "" {
				opts = append(opts, bubbletea.WithInitialText(text))
			}
			switch view {
			case "table":
				opts = append(opts, bubbletea.WithView(bubbletea.ViewTable))
			case "json":
				opts = append(opts, bubbletea.WithView(bubbletea.ViewJSON))
			}
			if clip, err := clipboard.Detect(); err == nil {
				opts = append(opts, bubbletea.WithClipboard(clip))
			} else {
				app.Logger.Debug("clipboard disabled", zap.Error(err))
			}

			return bubbletea.Run(cmd.Context(), bubbletea.NewModel(app.Analyzer, opts...))
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "initial editor text")
	cmd.Flags().StringVar(&view, "view", "cards", "initial result view: cards, table, json")
	return cmd
}
