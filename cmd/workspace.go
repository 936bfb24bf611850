package main

import (
	"context"
	"fmt"

	"github.com/annolab/anx/internal/shared"
	"github.com/urfave/cli/v3"
)

// WorkspaceList prints the workspaces visible to the authenticated user.
func (r *Runner) WorkspaceList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("listing workspaces")

	workspaces, err := r.client.Workspaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to list workspaces: %w", err)
	}

	if useJSON {
		return r.writeJSON(workspaces, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Workspaces (%d)", len(workspaces)))
	for _, ws := range workspaces {
		r.writePlain("%s  %s\n", ws.ID, ws.Name)
	}
	return nil
}

// WorkspaceCreate creates a new workspace.
func (r *Runner) WorkspaceCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: workspace name is required", shared.ErrMissingArgument)
	}

	r.logger.Info("creating workspace", "name", name)

	ws, err := r.client.CreateWorkspace(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	r.writePlain("✓ Workspace created: %s (%s)\n", ws.Name, ws.ID)
	return nil
}
