package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jaekwang-park/doit-client/internal/model"
)

// Reference data is public on the backend, so these calls carry no cookies.

func (c *Client) States(ctx context.Context) ([]model.TodoState, error) {
	return sendJSON[[]model.TodoState](ctx, c, call{
		op:     "get states",
		method: http.MethodGet,
		path:   StatesEndpoint,
	})
}

// State returns a single state. The backend has no per-state endpoint, so
// it is selected from the full list.
func (c *Client) State(ctx context.Context, id int64) (model.TodoState, error) {
	states, err := c.States(ctx)
	if err != nil {
		return model.TodoState{}, err
	}
	for _, s := range states {
		if s.ID == id {
			return s, nil
		}
	}
	return model.TodoState{}, statusError("get state", http.StatusNotFound, fmt.Sprintf("state %d does not exist", id))
}

func (c *Client) Priorities(ctx context.Context) ([]model.TodoPriority, error) {
	return sendJSON[[]model.TodoPriority](ctx, c, call{
		op:     "get priorities",
		method: http.MethodGet,
		path:   PrioritiesEndpoint,
	})
}

func (c *Client) Colors(ctx context.Context) ([]model.TodoColor, error) {
	return sendJSON[[]model.TodoColor](ctx, c, call{
		op:     "get colors",
		method: http.MethodGet,
		path:   ColorsEndpoint,
	})
}

// Options fetches states, priorities and colors, stopping at the first
// failure.
func (c *Client) Options(ctx context.Context) (model.Options, error) {
	var (
		opts model.Options
		err  error
	)
	if opts.States, err = c.States(ctx); err != nil {
		return model.Options{}, err
	}
	if opts.Priorities, err = c.Priorities(ctx); err != nil {
		return model.Options{}, err
	}
	if opts.Colors, err = c.Colors(ctx); err != nil {
		return model.Options{}, err
	}
	return opts, nil
}
