package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/doit-client/internal/api"
	"github.com/jaekwang-park/doit-client/internal/app"
	"github.com/jaekwang-park/doit-client/internal/model"
	"github.com/jaekwang-park/doit-client/internal/printer"
)

func newLoginCmd(e *env) *cobra.Command {
	var (
		username      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		Long: `Log in with a username and password.

The password is prompted for without echo. For scripts, pass it as the
first line of stdin with --password-stdin.

Examples:
  doit login --username admin
  printf '%s\n' "$PASSWORD" | doit login -u admin --password-stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				if passwordStdin {
					return printer.Error(
						"username required",
						"--password-stdin needs --username because stdin carries the password.",
						[]string{"doit login --username NAME --password-stdin"},
					)
				}
				var err error
				if username, err = e.prompt(cmd, "Username: "); err != nil {
					return err
				}
			}
			password, err := e.readPassword(cmd, passwordStdin)
			if err != nil {
				return err
			}

			if _, err := e.client.Login(cmd.Context(), username, password); err != nil {
				return e.apiError(err)
			}
			if err := e.saveSession(); err != nil {
				return err
			}
			printer.Success("Logged in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted for when omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget it locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logoutErr := e.client.Logout(cmd.Context())
			// The local session goes either way; a backend that already
			// forgot it answers 401.
			if err := e.jar.Clear(); err != nil {
				return printer.Error("could not remove session", err.Error(), nil)
			}
			if logoutErr != nil && api.KindOf(logoutErr) != api.KindUnauthenticated {
				return e.apiError(logoutErr)
			}
			printer.Success("Logged out\n")
			return nil
		},
	}
}

func newWhoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := e.client.CurrentUser(cmd.Context())
			if err != nil {
				return e.apiError(err)
			}
			return e.render(cmd.OutOrStdout(), user, userHeaders, userRows([]model.User{user}))
		},
	}
}

type statusReport struct {
	LoggedIn bool   `json:"logged_in"`
	API      string `json:"api"`
	Gate     string `json:"gate"`
	Redirect string `json:"redirect,omitempty"`
	Error    string `json:"error,omitempty"`
}

func newStatusCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the stored session is still valid",
		Long: `Ask the backend whether the stored session is valid, and show what the
session gate would decide for the notes page under the configured policy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, g, err := app.NewNavigation(e.client, e.cfg.ParseGatePolicy(), e.logger)
			if err != nil {
				return err
			}
			decision := g.Evaluate(ctx, app.NotesPath)

			report := statusReport{
				LoggedIn: decision.Err == nil && decision.Redirect == "",
				API:      e.cfg.APIURL,
				Gate:     fmt.Sprintf("%s (%s)", decision.State, g.Policy()),
				Redirect: decision.Redirect,
			}
			if decision.Err != nil {
				report.Error = decision.Err.Error()
			}

			if e.output == outputJSON {
				return e.render(cmd.OutOrStdout(), report, nil, nil)
			}
			switch {
			case decision.Err != nil:
				printer.Warning("Could not check the session: %v\n", decision.Err)
			case report.LoggedIn:
				printer.Success("Logged in\n")
			default:
				printer.Info("Not logged in\n")
			}
			printer.Printf("API:  %s\nGate: %s\n", report.API, report.Gate)
			if report.Redirect != "" {
				printer.Printf("      redirects to %s\n", report.Redirect)
			}
			return nil
		},
	}
}
