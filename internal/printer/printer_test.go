package printer

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaekwang-park/doit-client/internal/api"
)

func capture(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr, prevNoColor := Out, ErrOut, color.NoColor
	Out, ErrOut, color.NoColor = out, errOut, true
	t.Cleanup(func() {
		Out, ErrOut, color.NoColor = prevOut, prevErr, prevNoColor
	})
	return out, errOut
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "This is a test error", nil)
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "This is a test error")
	})

	t.Run("single suggestion is printed bare", func(t *testing.T) {
		_, errOut := capture(t)
		Error("Test Error", "Explanation", []string{"Try this fix"})
		assert.Contains(t, errOut.String(), "\nTry this fix\n")
		assert.NotContains(t, errOut.String(), "Either:")
	})

	t.Run("multiple suggestions are numbered", func(t *testing.T) {
		_, errOut := capture(t)
		Error("Test Error", "Explanation", []string{"First option", "Second option"})
		assert.Contains(t, errOut.String(), "Either:\n  1. First option\n  2. Second option\n")
	})
}

func TestIsReported(t *testing.T) {
	capture(t)
	assert.True(t, IsReported(Error("title", "", nil)))
	assert.True(t, IsReported(fmt.Errorf("wrapped: %w", Error("title", "", nil))))
	assert.False(t, IsReported(errors.New("plain")))
}

func TestErrorWithContext(t *testing.T) {
	_, errOut := capture(t)
	err := ErrorWithContext("Test Error", "", [][2]string{{"API", "http://x/api"}, {"Cause", "refused"}}, nil)
	require.Equal(t, "Test Error", err.Error())
	assert.Contains(t, errOut.String(), "  API: http://x/api\n  Cause: refused\n")
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantTitle string
		wantText  string
	}{
		{
			name:      "unauthenticated suggests login",
			err:       &api.Error{Kind: api.KindUnauthenticated, Op: "get notes", Message: "Not authenticated", Status: http.StatusUnauthorized},
			wantTitle: "Could not get notes: Not authenticated",
			wantText:  "doit login",
		},
		{
			name:      "transport shows base URL",
			err:       &api.Error{Kind: api.KindTransport, Op: "get states", Message: "connection refused", Err: errors.New("dial tcp: connection refused")},
			wantTitle: "Could not get states: connection refused",
			wantText:  "API: http://localhost:8080/api",
		},
		{
			name:      "rejected shows status",
			err:       &api.Error{Kind: api.KindRejected, Op: "get users", Message: "Forbidden", Status: http.StatusForbidden},
			wantTitle: "Could not get users: Forbidden",
			wantText:  "Status: 403 Forbidden",
		},
		{
			name:      "plain error keeps its text",
			err:       errors.New("boom"),
			wantTitle: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut := capture(t)
			err := APIError(tt.err, "http://localhost:8080/api")
			require.Error(t, err)
			assert.Equal(t, tt.wantTitle, err.Error())
			assert.Contains(t, errOut.String(), tt.wantTitle)
			if tt.wantText != "" {
				assert.Contains(t, errOut.String(), tt.wantText)
			}
		})
	}
}

func TestSuccessAndWarning(t *testing.T) {
	out, errOut := capture(t)

	Success("logged in as %s\n", "admin")
	Success("✓ already prefixed\n")
	Warning("careful\n")

	assert.Equal(t, "✓ logged in as admin\n✓ already prefixed\n", out.String())
	assert.Equal(t, "⚠  careful\n", errOut.String())
}
