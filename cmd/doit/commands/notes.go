package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/doit-client/internal/model"
	"github.com/jaekwang-park/doit-client/internal/printer"
)

func newNotesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note", "todo", "todos"},
		Short:   "List and change your notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newNotesListCmd(e),
		newNotesAddCmd(e),
		newNotesUpdateCmd(e),
		newNotesDeleteCmd(e),
	)
	return cmd
}

func newNotesListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			notes, err := e.client.FetchNotes(ctx)
			if err != nil {
				return e.apiError(err)
			}
			if e.output == outputJSON {
				return e.render(cmd.OutOrStdout(), notes, nil, nil)
			}

			opts, err := e.client.Options(ctx)
			if err != nil {
				printer.Warning("Showing raw IDs: %v\n", err)
			}
			return e.render(cmd.OutOrStdout(), notes, noteHeaders, noteRows(notes, opts))
		},
	}
}

// noteFlags are shared by add and update; update only applies the flags
// that were set.
type noteFlags struct {
	title       string
	description string
	state       int64
	priority    int64
	color       int64
	expires     string
	noExpire    bool
}

func (f *noteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Title")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Description")
	cmd.Flags().Int64Var(&f.state, "state", 0, "State ID (see doit options)")
	cmd.Flags().Int64Var(&f.priority, "priority", 0, "Priority ID (see doit options)")
	cmd.Flags().Int64Var(&f.color, "color", 0, "Color ID (see doit options)")
	cmd.Flags().StringVar(&f.expires, "expires", "", "Expiration date; the note then expires")
}

func (f *noteFlags) apply(cmd *cobra.Command, todo *model.Todo) {
	changed := cmd.Flags().Changed
	if changed("title") {
		todo.Title = f.title
	}
	if changed("description") {
		todo.Description = f.description
	}
	if changed("state") {
		todo.StateID = f.state
	}
	if changed("priority") {
		todo.PriorityID = f.priority
	}
	if changed("color") {
		todo.ColorID = f.color
	}
	if changed("expires") {
		todo.Expiration = model.Expiration{DoesExpire: true, Date: f.expires}
	}
	if f.noExpire {
		todo.Expiration = model.Expiration{}
	}
}

func newNotesAddCmd(e *env) *cobra.Command {
	var flags noteFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Long: `Add a note. IDs for --state, --priority and --color come from
'doit options'.

Example:
  doit notes add --title "Buy milk" --state 1 --priority 2 --color 3 --expires 2025-12-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var todo model.Todo
			flags.apply(cmd, &todo)

			msg, err := e.client.AddTodo(cmd.Context(), todo)
			if err != nil {
				return e.apiError(err)
			}
			printer.Success("Note added%s\n", suffix(msg))
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotesUpdateCmd(e *env) *cobra.Command {
	var flags noteFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a note",
		Long: `Change the given fields of a note; fields without a flag keep their
current value.

Example:
  doit notes update 12 --state 2 --no-expire`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			notes, err := e.client.FetchNotes(ctx)
			if err != nil {
				return e.apiError(err)
			}
			todo, ok := findNote(notes, noteID)
			if !ok {
				return printer.Error(
					fmt.Sprintf("note %d not found", noteID),
					"You have no note with that ID.",
					[]string{"List your notes:\n  doit notes list"},
				)
			}
			flags.apply(cmd, &todo)

			msg, err := e.client.UpdateTodo(ctx, todo)
			if err != nil {
				return e.apiError(err)
			}
			printer.Success("Note %d updated%s\n", noteID, suffix(msg))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.noExpire, "no-expire", false, "Make the note never expire")
	cmd.MarkFlagsMutuallyExclusive("expires", "no-expire")
	return cmd
}

func newNotesDeleteCmd(e *env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := e.confirm(cmd, "confirm-delete-note", fmt.Sprintf("Delete note %d?", noteID))
				if err != nil {
					return err
				}
				if !ok {
					printer.Info("Cancelled\n")
					return nil
				}
			}

			msg, err := e.client.DeleteTodo(cmd.Context(), noteID)
			if err != nil {
				return e.apiError(err)
			}
			printer.Success("Note %d deleted%s\n", noteID, suffix(msg))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func findNote(notes []model.Todo, noteID int64) (model.Todo, bool) {
	for _, n := range notes {
		if n.ID == noteID {
			return n, true
		}
	}
	return model.Todo{}, false
}

func parseID(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, printer.Error(
			fmt.Sprintf("invalid ID %q", s),
			"IDs are non-negative whole numbers.",
			nil,
		)
	}
	return v, nil
}

// suffix renders a backend confirmation text after a success message.
// JSON echoes of the record are left out.
func suffix(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" || strings.HasPrefix(msg, "{") || strings.HasPrefix(msg, "[") {
		return ""
	}
	return ": " + msg
}
