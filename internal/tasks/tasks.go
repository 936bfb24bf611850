// package tasks implements dataset management operations against an Argilla server.
//
// The core abstraction is [Manager], which orchestrates dataset creation,
// cloning, settings updates, deletion, and record migration between datasets.
// Long-running operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
package tasks

import (
	"context"

	"github.com/annolab/anx/internal/argilla"
)

// API defines the client surface the manager needs from the Argilla server.
// This abstraction allows for easier testing and decoupling from the concrete client.
type API interface {
	// Me retrieves the authenticated user, validating credentials.
	Me(ctx context.Context) (*argilla.User, error)

	// Workspaces lists the workspaces visible to the current user.
	Workspaces(ctx context.Context) ([]argilla.Workspace, error)

	// Workspace retrieves a workspace by name.
	Workspace(ctx context.Context, name string) (*argilla.Workspace, error)

	// CreateWorkspace creates a new workspace.
	CreateWorkspace(ctx context.Context, name string) (*argilla.Workspace, error)

	// Datasets lists all datasets in a workspace.
	Datasets(ctx context.Context, workspaceID string) ([]argilla.Dataset, error)

	// Dataset retrieves a dataset by name within a workspace.
	Dataset(ctx context.Context, workspaceID, name string) (*argilla.Dataset, error)

	// CreateDataset creates and publishes a dataset with the given settings.
	CreateDataset(ctx context.Context, workspaceID, name string, settings argilla.Settings) (*argilla.Dataset, error)

	// UpdateDataset patches a dataset's mutable attributes in place.
	UpdateDataset(ctx context.Context, datasetID string, update argilla.DatasetUpdate) (*argilla.Dataset, error)

	// DeleteDataset removes a dataset and its records.
	DeleteDataset(ctx context.Context, datasetID string) error

	// Settings reconstructs a dataset's full annotation schema.
	Settings(ctx context.Context, dataset *argilla.Dataset) (*argilla.Settings, error)

	// Records retrieves one page of a dataset's records.
	Records(ctx context.Context, datasetID string, offset, limit int) (*argilla.RecordPage, error)

	// AddRecords appends a batch of records to a dataset.
	AddRecords(ctx context.Context, datasetID string, records []argilla.Record) error
}

var _ API = (*argilla.Client)(nil)
