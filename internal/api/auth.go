package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jaekwang-park/doit-client/internal/model"
)

func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	return sendJSON[model.User](ctx, c, call{
		op:           "get current user",
		method:       http.MethodGet,
		path:         LoginEndpoint,
		credentialed: true,
	})
}

// IsLoggedIn probes the session: true on 200, false on 401 and an error for
// anything else. It is the only operation where a 401 is not a failure.
func (c *Client) IsLoggedIn(ctx context.Context) (bool, error) {
	const op = "check if user is logged in"
	resp, err := c.roundTrip(ctx, call{
		op:           op,
		method:       http.MethodGet,
		path:         LoginEndpoint,
		credentialed: true,
	})
	if err != nil {
		return false, err
	}

	switch {
	case resp.status == http.StatusOK:
		return true, nil
	case resp.status == http.StatusUnauthorized:
		return false, nil
	default:
		return false, statusError(op, resp.status, fmt.Sprintf("unexpected status %d", resp.status))
	}
}

// Login starts a session. The backend answers with a text confirmation and
// sets the session cookie, which lands in the client's jar.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	return c.sendText(ctx, call{
		op:           "login",
		method:       http.MethodPost,
		path:         LoginEndpoint,
		body:         model.Credentials{Username: username, Password: password},
		credentialed: true,
	})
}

func (c *Client) Logout(ctx context.Context) (string, error) {
	return c.sendText(ctx, call{
		op:           "logout",
		method:       http.MethodDelete,
		path:         LoginEndpoint,
		credentialed: true,
	})
}
