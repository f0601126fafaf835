package api

import (
	"context"
	"net/http"

	"github.com/jaekwang-park/doit-client/internal/model"
)

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	return sendJSON[[]model.User](ctx, c, call{
		op:           "get users",
		method:       http.MethodGet,
		path:         UsersEndpoint,
		credentialed: true,
	})
}

func (c *Client) User(ctx context.Context, id int64) (model.User, error) {
	return sendJSON[model.User](ctx, c, call{
		op:           "get user",
		method:       http.MethodGet,
		path:         userPath(id),
		credentialed: true,
	})
}

func (c *Client) AddUser(ctx context.Context, user model.User) (model.User, error) {
	return sendJSON[model.User](ctx, c, call{
		op:           "create user",
		method:       http.MethodPost,
		path:         UsersEndpoint,
		body:         user,
		credentialed: true,
	})
}

func (c *Client) ModifyUser(ctx context.Context, user model.User) (model.User, error) {
	return sendJSON[model.User](ctx, c, call{
		op:           "update user",
		method:       http.MethodPut,
		path:         userPath(user.ID),
		body:         user,
		credentialed: true,
	})
}

func (c *Client) DeleteUser(ctx context.Context, id int64) (string, error) {
	return c.sendText(ctx, call{
		op:           "delete user",
		method:       http.MethodDelete,
		path:         userPath(id),
		credentialed: true,
	})
}
