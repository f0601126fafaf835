package commands

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/doit-client/internal/api"
	"github.com/jaekwang-park/doit-client/internal/config"
	"github.com/jaekwang-park/doit-client/internal/modal"
	"github.com/jaekwang-park/doit-client/internal/printer"
)

// env is what every subcommand needs once flags are parsed.
type env struct {
	output string
	apiURL string

	cfg    config.Config
	logger *slog.Logger
	jar    *api.FileJar
	client *api.Client
	modals *modal.Coordinator
	stdin  *bufio.Reader
}

func (e *env) setup(cmd *cobra.Command) error {
	printer.Out = cmd.OutOrStdout()
	printer.ErrOut = cmd.ErrOrStderr()

	if e.output != outputTable && e.output != outputJSON {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", e.output),
			[]string{"Valid formats: table, json"},
		)
	}

	cfg, err := config.Load()
	if err != nil {
		return printer.Error("invalid configuration", err.Error(), []string{
			"Fix or remove the file named by DOIT_CONFIG",
		})
	}
	if e.apiURL != "" {
		cfg.APIURL = e.apiURL
	}
	if err := cfg.Validate(); err != nil {
		return printer.Error("invalid configuration", err.Error(), nil)
	}
	e.cfg = cfg

	e.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))

	base, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}
	jar, err := api.OpenFileJar(cfg.SessionFile, base)
	if err != nil {
		return printer.ErrorWithContext(
			"could not read session",
			err.Error(),
			[][2]string{{"Session file", cfg.SessionFile}},
			[]string{fmt.Sprintf("Remove the file and log in again:\n  rm %s\n  doit login", cfg.SessionFile)},
		)
	}
	e.jar = jar

	e.client, err = e.newClient(e.logger)
	if err != nil {
		return err
	}
	e.modals = modal.New()
	return nil
}

// newClient returns an API client sharing the session jar.
func (e *env) newClient(logger *slog.Logger) (*api.Client, error) {
	client, err := api.New(e.cfg.APIURL,
		api.WithJar(e.jar),
		api.WithLogger(logger),
		api.WithTimeout(e.cfg.ParseRequestTimeout()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

// apiError prints err with suggestions for its kind.
func (e *env) apiError(err error) error {
	return printer.APIError(err, e.cfg.APIURL)
}

// saveSession persists the jar after the backend may have set cookies.
func (e *env) saveSession() error {
	if err := e.jar.Save(); err != nil {
		return printer.ErrorWithContext(
			"could not save session",
			err.Error(),
			[][2]string{{"Session file", e.cfg.SessionFile}},
			[]string{"Point DOIT_SESSION_FILE at a writable location"},
		)
	}
	return nil
}
