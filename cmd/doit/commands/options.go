package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newOptionsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the states, priorities and colors notes can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := e.client.Options(cmd.Context())
			if err != nil {
				return e.apiError(err)
			}
			if e.output == outputJSON {
				return e.render(cmd.OutOrStdout(), opts, nil, nil)
			}

			states := make([][]string, 0, len(opts.States))
			for _, s := range opts.States {
				states = append(states, []string{id(s.ID), s.State})
			}
			priorities := make([][]string, 0, len(opts.Priorities))
			for _, p := range opts.Priorities {
				priorities = append(priorities, []string{id(p.ID), strconv.Itoa(int(p.Priority))})
			}
			colors := make([][]string, 0, len(opts.Colors))
			for _, c := range opts.Colors {
				colors = append(colors, []string{id(c.ID), c.Hex})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "States")
			fmt.Fprintln(w, renderTable([]string{"ID", "STATE"}, states))
			fmt.Fprintln(w, "Priorities")
			fmt.Fprintln(w, renderTable([]string{"ID", "PRIORITY"}, priorities))
			fmt.Fprintln(w, "Colors")
			fmt.Fprintln(w, renderTable([]string{"ID", "HEX"}, colors))
			return nil
		},
	}
}
