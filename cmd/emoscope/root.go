package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "emoscope",
		Short: "Detect the dominant emotion of each line of text",
		Long: `emoscope classifies every non-empty line of its input with a pretrained
emotion model and reports the dominant emotion and its confidence.

Text can come from arguments, a file, stdin, a patch, or git history. The
same classifier also backs an interactive terminal UI and an HTTP API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			app.teardown()
		},
	}
	root.SetIn(app.Stdin)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)
	app.registerFlags(root)

	root.AddCommand(
		newAnalyzeCmd(app),
		newTUICmd(app),
		newServeCmd(app),
		newDiffCmd(app),
		newLogCmd(app),
	)
	return root
}
