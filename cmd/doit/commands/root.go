package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/doit-client/internal/printer"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version reported by --version.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCmd builds the whole command tree. Every call returns a fresh tree
// with its own flag state.
func NewRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "doit",
		Short: "doit - client for the doit todo service",
		Long: `doit talks to a doit backend: log in, manage your notes and, as an
administrator, manage users.

The session cookie the backend sets at login is kept in a session file
(DOIT_SESSION_FILE) so later commands stay logged in.

Configuration comes from the environment (DOIT_API_URL, LOG_LEVEL, ...)
and an optional YAML file at DOIT_CONFIG or ~/.config/doit/config.yaml.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVarP(&e.output, "output", "o", outputTable, "Output format: table or json")
	root.PersistentFlags().StringVar(&e.apiURL, "api-url", "", "Backend base URL (overrides DOIT_API_URL)")

	root.AddCommand(
		newLoginCmd(e),
		newLogoutCmd(e),
		newWhoamiCmd(e),
		newStatusCmd(e),
		newOptionsCmd(e),
		newNotesCmd(e),
		newUsersCmd(e),
		newTUICmd(e),
	)
	return root
}

// Execute runs the CLI with os.Args. Errors cobra raises before a command
// runs (unknown commands, bad flags or arguments) are printed here.
func Execute(ctx context.Context) error {
	cmd, err := NewRootCmd().ExecuteContextC(ctx)
	if err != nil && !printer.IsReported(err) {
		return printer.Error(err.Error(), "", []string{
			fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath()),
		})
	}
	return err
}
