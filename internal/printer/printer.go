// Package printer writes the CLI's human-facing output.
package printer

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/jaekwang-park/doit-client/internal/api"
)

// Out and ErrOut are swapped by tests.
var (
	Out    io.Writer = os.Stdout
	ErrOut io.Writer = os.Stderr
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a green message with a checkmark prefix.
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(Out, msg)
}

func Info(format string, a ...any) {
	fmt.Fprintf(Out, format, a...)
}

// Warning goes to stderr so it never mixes with --output json.
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠") {
		msg = "⚠  " + msg
	}
	yellow.Fprint(ErrOut, msg)
}

func Step(format string, a ...any) {
	cyan.Fprintf(ErrOut, "→ %s", fmt.Sprintf(format, a...))
}

// Error prints a titled explanation with suggestions to stderr and returns
// an error holding only the title, for a root command that silences its own
// error output.
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(ErrOut, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(ErrOut, "%s\n", explanation)
	}
	writeSuggestions(suggestions)
	return &reportedError{title: title}
}

// ErrorWithContext is Error plus key/value details printed in the given order.
func ErrorWithContext(title string, explanation string, context [][2]string, suggestions []string) error {
	red.Fprintf(ErrOut, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(ErrOut, "%s\n", explanation)
	}
	if len(context) > 0 {
		fmt.Fprintln(ErrOut)
		for _, kv := range context {
			fmt.Fprintf(ErrOut, "  %s: %s\n", kv[0], kv[1])
		}
	}
	writeSuggestions(suggestions)
	return &reportedError{title: title}
}

// reportedError is returned once the details have been printed.
type reportedError struct {
	title string
}

func (e *reportedError) Error() string {
	return e.title
}

// IsReported reports whether err came from Error or ErrorWithContext and
// so has already been shown to the user.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

func writeSuggestions(suggestions []string) {
	switch len(suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(ErrOut, "\n%s\n", suggestions[0])
	default:
		fmt.Fprintf(ErrOut, "\nEither:\n")
		for i, s := range suggestions {
			fmt.Fprintf(ErrOut, "  %d. %s\n", i+1, s)
		}
	}
}

// APIError reports a failed backend call. The title is the API error's own
// message; the suggestions depend on its kind.
func APIError(err error, baseURL string) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return Error(err.Error(), "", nil)
	}

	switch apiErr.Kind {
	case api.KindUnauthenticated:
		return Error(apiErr.Error(),
			"The session is missing or has expired.",
			[]string{"Log in again:\n  doit login"},
		)
	case api.KindTransport:
		ctx := [][2]string{{"API", baseURL}}
		if apiErr.Err != nil {
			ctx = append(ctx, [2]string{"Cause", apiErr.Err.Error()})
		}
		return ErrorWithContext(apiErr.Error(),
			"The backend could not be reached or sent an unreadable answer.",
			ctx,
			[]string{
				"Check that the backend is running",
				"Point the client elsewhere:\n  DOIT_API_URL=https://host/api doit ...",
			},
		)
	default:
		return ErrorWithContext(apiErr.Error(), "", [][2]string{
			{"Status", fmt.Sprintf("%d %s", apiErr.Status, statusText(apiErr.Status))},
		}, nil)
	}
}

func statusText(code int) string {
	if s := http.StatusText(code); s != "" {
		return s
	}
	return "Unknown"
}

func Println(a ...any) {
	fmt.Fprintln(Out, a...)
}

func Printf(format string, a ...any) {
	fmt.Fprintf(Out, format, a...)
}
