package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jaekwang-park/doit-client/internal/modal"
	"github.com/jaekwang-park/doit-client/internal/printer"
)

func (e *env) input(cmd *cobra.Command) *bufio.Reader {
	if e.stdin == nil {
		e.stdin = bufio.NewReader(cmd.InOrStdin())
	}
	return e.stdin
}

// readLine returns one line without its line ending. A final line without
// a newline is returned as is; only an empty stream is io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (e *env) prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := readLine(e.input(cmd))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword takes the password from the first line of stdin when
// fromStdin is set, otherwise prompts on the terminal without echo.
func (e *env) readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		line, err := readLine(e.input(cmd))
		if err != nil {
			return "", fmt.Errorf("failed to read password from stdin: %w", err)
		}
		return line, nil
	}

	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", printer.Error(
			"password required",
			"Standard input is not a terminal, so the password cannot be prompted for.",
			[]string{"Pass it on stdin:\n  printf '%s\\n' \"$PASSWORD\" | doit login --username NAME --password-stdin"},
		)
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

// confirm asks a yes/no question through the modal coordinator; stdin
// settles the dialog. Anything but y/yes, including end of input, is a no.
func (e *env) confirm(cmd *cobra.Command, name, question string) (bool, error) {
	outcome := e.modals.Show(name)
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", question)

	in := e.input(cmd)
	go func() {
		line, err := readLine(in)
		if err != nil {
			e.modals.Reject(err)
			return
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			e.modals.Accept()
		default:
			e.modals.Reject()
		}
	}()

	_, err := outcome.Wait(cmd.Context())
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, modal.ErrRejected):
		return false, nil
	default:
		return false, err
	}
}
