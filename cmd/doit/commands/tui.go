package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jaekwang-park/doit-client/internal/app"
	"github.com/jaekwang-park/doit-client/internal/printer"
	"github.com/jaekwang-park/doit-client/internal/tui"
)

func newTUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal client",
		Long: `Open a full-screen client with a login screen, the notes list and the
user list. Pages behind the session gate send you to the login screen
when the session is missing or expired.

The terminal is taken over, so logs go to DOIT_LOG_FILE when it is set
and are dropped otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return printer.Error(
					"terminal required",
					"doit tui needs an interactive terminal on stdout.",
					[]string{"Use the notes and users commands in scripts"},
				)
			}

			logger, closeLog, err := e.tuiLogger()
			if err != nil {
				return err
			}
			defer closeLog()

			client, err := e.newClient(logger)
			if err != nil {
				return err
			}
			router, _, err := app.NewNavigation(client, e.cfg.ParseGatePolicy(), logger)
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), tui.Config{
				Backend:    client,
				Navigation: router,
				Modals:     e.modals,
				Logger:     logger,
				OnLogin:    e.jar.Save,
				OnLogout:   e.jar.Clear,
			})
		},
	}
}

func (e *env) tuiLogger() (*slog.Logger, func(), error) {
	if e.cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(e.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, printer.ErrorWithContext(
			"could not open log file",
			err.Error(),
			[][2]string{{"Log file", e.cfg.LogFile}},
			[]string{"Point DOIT_LOG_FILE at a writable location or unset it"},
		)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: e.cfg.ParseLogLevel()}))
	return logger, func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}, nil
}
