package main

import (
	"io"
	"os"
	"strings"

	"github.com/fwojciec/emoscope"
	"github.com/fwojciec/emoscope/git"
	"github.com/fwojciec/emoscope/gitdiff"
	"github.com/spf13/cobra"
)

func newDiffCmd(app *App) *cobra.Command {
	var (
		out     outputFlags
		commit  string
		repo    string
		deleted bool
	)
	cmd := &cobra.Command{
		Use:   "diff [patch]",
		Short: "Classify the lines a patch adds",
		Long: `Classify the mood of a patch: every non-blank line it adds is analyzed.

The patch is read from the given file, from stdin, or with --commit from
git show in --repo.`,
		Example: `  git diff | emoscope diff
  emoscope diff --commit HEAD~1 --format table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			ctx := cmd.Context()

			var r io.Reader
			switch {
			case commit != "":
				patch, err := git.NewRunner().Show(ctx, repo, commit)
				if err != nil {
					return err
				}
				r = strings.NewReader(patch)
			case len(args) == 1 && args[0] != "-":
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			default:
				raw, err := app.readStdin()
				if err != nil {
					return err
				}
				r = strings.NewReader(raw)
			}

			var opts []gitdiff.ParserOption
			if deleted {
				opts = append(opts, gitdiff.WithDeleted())
			}
			var src emoscope.MessageSource = gitdiff.NewSource(r, opts...)
			records, err := app.analyzeSource(ctx, src)
			if err != nil {
				return err
			}
			return app.writeResults(app.Stdout, records, out)
		},
	}
	out.register(cmd)
	cmd.Flags().StringVar(&commit, "commit", "", "analyze the patch of this commit")
	cmd.Flags().StringVar(&repo, "repo", ".", "repository for --commit")
	cmd.Flags().BoolVar(&deleted, "deleted", false, "also analyze removed lines")
	return cmd
}
