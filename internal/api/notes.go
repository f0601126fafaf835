package api

import (
	"context"
	"net/http"

	"github.com/jaekwang-park/doit-client/internal/model"
)

func (c *Client) FetchNotes(ctx context.Context) ([]model.Todo, error) {
	return sendJSON[[]model.Todo](ctx, c, call{
		op:           "get notes",
		method:       http.MethodGet,
		path:         NotesEndpoint,
		credentialed: true,
	})
}

// AddTodo creates a note. The server assigns the ID; the raw response body
// is returned as is.
func (c *Client) AddTodo(ctx context.Context, todo model.Todo) (string, error) {
	return c.sendText(ctx, call{
		op:           "add todo",
		method:       http.MethodPost,
		path:         NotesEndpoint,
		body:         todo,
		credentialed: true,
	})
}

func (c *Client) UpdateTodo(ctx context.Context, todo model.Todo) (string, error) {
	return c.sendText(ctx, call{
		op:           "update todo",
		method:       http.MethodPut,
		path:         notePath(todo.ID),
		body:         todo,
		credentialed: true,
	})
}

func (c *Client) DeleteTodo(ctx context.Context, id int64) (string, error) {
	return c.sendText(ctx, call{
		op:           "delete todo",
		method:       http.MethodDelete,
		path:         notePath(id),
		credentialed: true,
	})
}
