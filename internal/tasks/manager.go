package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annolab/anx/internal/argilla"
	"github.com/annolab/anx/internal/models"
	"github.com/annolab/anx/internal/repositories"
	"github.com/annolab/anx/internal/shared"
	"github.com/charmbracelet/log"
)

// Manager orchestrates dataset operations against an Argilla server.
//
// Every public operation surfaces failures as a [DatasetError]; underlying
// client errors are never returned raw.
type Manager struct {
	api    API
	logger *log.Logger
	jobs   *repositories.JobRepository
	now    func() time.Time
}

// ManagerOpts contains configuration options for creating a Manager.
type ManagerOpts struct {
	API    API
	Logger *log.Logger
	// Jobs, when set, records migration runs in the local history database.
	Jobs *repositories.JobRepository
}

// NewManager creates a Manager and validates the client configuration by
// fetching the authenticated user.
func NewManager(ctx context.Context, opts ManagerOpts) (*Manager, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	if _, err := opts.API.Me(ctx); err != nil {
		return nil, &DatasetError{Op: "validate client", Offset: -1, Err: err}
	}

	return &Manager{
		api:    opts.API,
		logger: opts.Logger,
		jobs:   opts.Jobs,
		now:    time.Now,
	}, nil
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (m *Manager) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// ResolveWorkspace retrieves a workspace by name, creating it when absent and
// create is true. When the workspace is absent and create is false, the
// returned error wraps [shared.ErrWorkspaceNotFound].
func (m *Manager) ResolveWorkspace(ctx context.Context, name string, create bool) (*argilla.Workspace, error) {
	ws, err := m.api.Workspace(ctx, name)
	if err == nil {
		m.logger.Info("found existing workspace", "workspace", name)
		return ws, nil
	}

	if !errors.Is(err, shared.ErrWorkspaceNotFound) || !create {
		return nil, wrapErr(err, "resolve workspace", name, "")
	}

	m.logger.Info("creating new workspace", "workspace", name)
	ws, err = m.api.CreateWorkspace(ctx, name)
	if err != nil {
		return nil, wrapErr(err, "create workspace", name, "")
	}
	return ws, nil
}

// CreateDataset creates a new published dataset in the given workspace,
// creating the workspace first when it does not exist.
func (m *Manager) CreateDataset(ctx context.Context, workspace, dataset string, settings argilla.Settings) (*argilla.Dataset, error) {
	ws, err := m.ResolveWorkspace(ctx, workspace, true)
	if err != nil {
		return nil, err
	}

	m.logger.Info("creating dataset", "workspace", workspace, "dataset", dataset)

	ds, err := m.api.CreateDataset(ctx, ws.ID, dataset, settings)
	if err != nil {
		return nil, wrapErr(err, "create dataset", workspace, dataset)
	}
	return ds, nil
}

// GetOrCreateDataset retrieves a dataset by name, creating it with the given
// settings when absent.
func (m *Manager) GetOrCreateDataset(ctx context.Context, workspace, dataset string, settings argilla.Settings) (*argilla.Dataset, error) {
	ws, err := m.ResolveWorkspace(ctx, workspace, true)
	if err != nil {
		return nil, err
	}

	ds, err := m.api.Dataset(ctx, ws.ID, dataset)
	if err == nil {
		return ds, nil
	}
	if !errors.Is(err, shared.ErrDatasetNotFound) {
		return nil, wrapErr(err, "get dataset", workspace, dataset)
	}

	return m.CreateDataset(ctx, workspace, dataset, settings)
}

// UpdateSettings updates dataset settings, optionally creating a new version.
//
// When createNewVersion is true, the records are migrated into a fresh dataset
// named with a timestamp suffix and the original dataset is left untouched.
// Otherwise the mutable attributes (guidelines, extra-metadata flag) are
// patched in place; schema attributes that cannot change after publication
// (fields, questions) are skipped.
func (m *Manager) UpdateSettings(ctx context.Context, workspace, dataset string, settings argilla.Settings, createNewVersion bool, progress chan<- ProgressUpdate) (*argilla.Dataset, error) {
	if createNewVersion {
		newName := shared.VersionName(dataset, m.now())
		m.logger.Info("creating new dataset version", "dataset", newName)

		return m.Migrate(ctx, MigrateOpts{
			SourceWorkspace: workspace,
			SourceDataset:   dataset,
			TargetWorkspace: workspace,
			TargetDataset:   newName,
			Settings:        settings,
		}, progress)
	}

	ws, err := m.ResolveWorkspace(ctx, workspace, false)
	if err != nil {
		return nil, err
	}

	ds, err := m.api.Dataset(ctx, ws.ID, dataset)
	if err != nil {
		return nil, wrapErr(err, "update settings", workspace, dataset)
	}

	// Fields and questions are immutable once a dataset is published; a
	// partial in-place update applies only what the live dataset accepts.
	if len(settings.Fields) > 0 || len(settings.Questions) > 0 {
		m.logger.Debug("skipping immutable schema attributes",
			"fields", len(settings.Fields), "questions", len(settings.Questions))
	}

	// A nil AllowExtraMetadata means the caller did not ask for a change;
	// leaving it out of the patch keeps the server value intact.
	update := argilla.DatasetUpdate{
		AllowExtraMetadata: settings.AllowExtraMetadata,
	}
	if settings.Guidelines != "" {
		update.Guidelines = &settings.Guidelines
	}

	updated, err := m.api.UpdateDataset(ctx, ds.ID, update)
	if err != nil {
		return nil, wrapErr(err, "update settings", workspace, dataset)
	}
	return updated, nil
}

// Clone creates an exact copy of a dataset under a new name, optionally in a
// different workspace. The clone's settings equal the source's settings at
// clone time.
func (m *Manager) Clone(ctx context.Context, workspace, dataset, newName, newWorkspace string, progress chan<- ProgressUpdate) (*argilla.Dataset, error) {
	ws, err := m.ResolveWorkspace(ctx, workspace, false)
	if err != nil {
		return nil, err
	}

	source, err := m.api.Dataset(ctx, ws.ID, dataset)
	if err != nil {
		return nil, wrapErr(err, "clone dataset", workspace, dataset)
	}

	settings, err := m.api.Settings(ctx, source)
	if err != nil {
		return nil, wrapErr(err, "clone dataset", workspace, dataset)
	}

	targetWorkspace := newWorkspace
	if targetWorkspace == "" {
		targetWorkspace = workspace
	}

	return m.Migrate(ctx, MigrateOpts{
		SourceWorkspace: workspace,
		SourceDataset:   dataset,
		TargetWorkspace: targetWorkspace,
		TargetDataset:   newName,
		Settings:        *settings,
	}, progress)
}

// Delete removes a dataset from a workspace. The workspace is never created
// as a side effect of deletion.
func (m *Manager) Delete(ctx context.Context, workspace, dataset string) error {
	ws, err := m.ResolveWorkspace(ctx, workspace, false)
	if err != nil {
		return err
	}

	ds, err := m.api.Dataset(ctx, ws.ID, dataset)
	if err != nil {
		return wrapErr(err, "delete dataset", workspace, dataset)
	}

	m.logger.Warn("deleting dataset", "workspace", workspace, "dataset", dataset)

	if err := m.api.DeleteDataset(ctx, ds.ID); err != nil {
		return wrapErr(err, "delete dataset", workspace, dataset)
	}

	m.logger.Info("dataset deleted", "workspace", workspace, "dataset", dataset)
	return nil
}

// recordJob persists a new migration job when history tracking is enabled.
func (m *Manager) recordJob(job *models.MigrationJob) {
	if m.jobs == nil {
		return
	}
	if err := m.jobs.Create(job); err != nil {
		m.logger.Warn("failed to record migration job", "error", err)
	}
}

// updateJob persists job progress when history tracking is enabled.
func (m *Manager) updateJob(job *models.MigrationJob) {
	if m.jobs == nil || job.ID() == "" {
		return
	}
	if err := m.jobs.Update(job); err != nil {
		m.logger.Warn("failed to update migration job", "error", err)
	}
}
