package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/doit-client/internal/model"
	"github.com/jaekwang-park/doit-client/internal/printer"
)

func newUsersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users (administrators only)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newUsersListCmd(e),
		newUsersGetCmd(e),
		newUsersAddCmd(e),
		newUsersUpdateCmd(e),
		newUsersDeleteCmd(e),
	)
	return cmd
}

func newUsersListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := e.client.Users(cmd.Context())
			if err != nil {
				return e.apiError(err)
			}
			return e.render(cmd.OutOrStdout(), users, userHeaders, userRows(users))
		},
	}
}

func newUsersGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			user, err := e.client.User(cmd.Context(), userID)
			if err != nil {
				return e.apiError(err)
			}
			return e.render(cmd.OutOrStdout(), user, userHeaders, userRows([]model.User{user}))
		},
	}
}

type userFlags struct {
	username      string
	email         string
	name          string
	surname       string
	admin         bool
	external      bool
	active        bool
	passwordStdin bool
}

func (f *userFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.username, "username", "", "Username")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.name, "name", "", "First name")
	cmd.Flags().StringVar(&f.surname, "surname", "", "Surname")
	cmd.Flags().BoolVar(&f.admin, "admin", false, "Grant administrator rights")
	cmd.Flags().BoolVar(&f.external, "external", false, "Mark as an external account")
	cmd.Flags().BoolVar(&f.passwordStdin, "password-stdin", false, "Read the password from stdin")
}

func (f *userFlags) apply(cmd *cobra.Command, user *model.User) {
	changed := cmd.Flags().Changed
	if changed("username") {
		user.Username = f.username
	}
	if changed("email") {
		user.Email = f.email
	}
	if changed("name") {
		user.Name = f.name
	}
	if changed("surname") {
		user.Surname = f.surname
	}
	if changed("admin") {
		user.Admin = f.admin
	}
	if changed("external") {
		user.External = f.external
	}
	if changed("active") {
		user.Active = f.active
	}
}

func newUsersAddCmd(e *env) *cobra.Command {
	var flags userFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		Long: `Create a user. The password is prompted for, or read from stdin with
--password-stdin.

Example:
  doit users add --username jdoe --email jdoe@example.com --name John --surname Doe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := model.User{Active: true}
			flags.apply(cmd, &user)

			password, err := e.readPassword(cmd, flags.passwordStdin)
			if err != nil {
				return err
			}
			user.Password = password

			created, err := e.client.AddUser(cmd.Context(), user)
			if err != nil {
				return e.apiError(err)
			}
			if e.output == outputJSON {
				return e.render(cmd.OutOrStdout(), created, nil, nil)
			}
			printer.Success("User %s created with ID %d\n", created.Username, created.ID)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.active, "active", true, "Whether the account can log in")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newUsersUpdateCmd(e *env) *cobra.Command {
	var flags userFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a user",
		Long: `Change the given fields of a user; fields without a flag keep their
current value. --password-stdin also replaces the password.

Example:
  doit users update 4 --admin=false --active=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			user, err := e.client.User(ctx, userID)
			if err != nil {
				return e.apiError(err)
			}
			flags.apply(cmd, &user)
			user.Password = ""
			if flags.passwordStdin {
				if user.Password, err = e.readPassword(cmd, true); err != nil {
					return err
				}
			}

			updated, err := e.client.ModifyUser(ctx, user)
			if err != nil {
				return e.apiError(err)
			}
			if e.output == outputJSON {
				return e.render(cmd.OutOrStdout(), updated, nil, nil)
			}
			printer.Success("User %d updated\n", updated.ID)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.active, "active", false, "Whether the account can log in")
	return cmd
}

func newUsersDeleteCmd(e *env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a user",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := e.confirm(cmd, "confirm-delete-user", fmt.Sprintf("Delete user %d?", userID))
				if err != nil {
					return err
				}
				if !ok {
					printer.Info("Cancelled\n")
					return nil
				}
			}

			msg, err := e.client.DeleteUser(cmd.Context(), userID)
			if err != nil {
				return e.apiError(err)
			}
			printer.Success("User %d deleted%s\n", userID, suffix(msg))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
