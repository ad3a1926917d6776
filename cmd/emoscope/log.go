package main

import (
	"github.com/fwojciec/emoscope/git"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var (
		out   outputFlags
		limit int
	)
	cmd := &cobra.Command{
		Use:   "log [repo]",
		Short: "Classify recent commit subjects",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			repo := "."
			if len(args) == 1 {
				repo = args[0]
			}
			src := &git.LogSource{Runner: git.NewRunner(), RepoPath: repo, Limit: limit}
			records, err := app.analyzeSource(cmd.Context(), src)
			if err != nil {
				return err
			}
			return app.writeResults(app.Stdout, records, out)
		},
	}
	out.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of commits (0 for all)")
	return cmd
}
