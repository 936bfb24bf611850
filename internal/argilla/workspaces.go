package argilla

import (
	"context"
	"fmt"
	"net/http"

	"github.com/annolab/anx/internal/shared"
)

// Workspaces retrieves all workspaces visible to the authenticated user.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	var response struct {
		Items []Workspace `json:"items"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/me/workspaces", nil, &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}

// Workspace retrieves a workspace by name.
// Returns an error wrapping [shared.ErrWorkspaceNotFound] when no workspace matches.
func (c *Client) Workspace(ctx context.Context, name string) (*Workspace, error) {
	workspaces, err := c.Workspaces(ctx)
	if err != nil {
		return nil, err
	}

	for _, ws := range workspaces {
		if ws.Name == name {
			return &ws, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", shared.ErrWorkspaceNotFound, name)
}

// CreateWorkspace creates a new workspace with the given name.
func (c *Client) CreateWorkspace(ctx context.Context, name string) (*Workspace, error) {
	body := map[string]string{"name": name}

	var ws Workspace
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/workspaces", body, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}
