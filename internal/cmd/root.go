package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for fsxlint.
// Running it without a subcommand lints the given project root.
func NewRootCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "fsxlint [root]",
		Short: "Lint FAKE build scripts that #load each other",
		Long: `fsxlint is a linter for build systems composed of many FAKE .fsx scripts
that #load each other. Every file matching "*.fsx" inside the project root
is assumed to be a build script.

Checks:
  - #load directives pointing at files that do not exist
  - target names declared by more than one script
  - target names declared twice in the same script
  - #loads that never reference a target of the loaded script (--pedantic)

Extraction is text based; the scripts are never compiled or run.

Exit code: 0 if no errors were found, 1 otherwise`,
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runLint(cmd, root, flags)
		},
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints errors so lint failures can exit quietly
		SilenceErrors: true,
	}

	flags.register(cmd)
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
