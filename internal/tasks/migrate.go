package tasks

import (
	"context"
	"fmt"

	"github.com/annolab/anx/internal/argilla"
	"github.com/annolab/anx/internal/models"
)

// defaultBatchSize is the number of records fetched and appended per batch.
const defaultBatchSize = 100

// TransformFunc rewrites a single record during migration. Returning an error
// aborts the whole migration.
type TransformFunc func(argilla.Record) (argilla.Record, error)

// MigrateOpts contains configuration for a record migration between datasets.
type MigrateOpts struct {
	SourceWorkspace string
	SourceDataset   string
	TargetWorkspace string
	TargetDataset   string
	Settings        argilla.Settings // Settings for the target dataset
	Transform       TransformFunc    // Optional per-record transform
	BatchSize       int              // Records per batch (default 100)
}

// Migrate copies all records from a source dataset into a newly created
// target dataset, preserving order.
//
// The loop is sequential: fetch a batch, optionally transform it, append it
// to the target, report progress, repeat until the source is exhausted (an
// empty page or the offset reaching the total count). The source dataset is
// never mutated. Any failure aborts the migration immediately and surfaces a
// [DatasetError] carrying the offset reached.
func (m *Manager) Migrate(ctx context.Context, opts MigrateOpts, progress chan<- ProgressUpdate) (*argilla.Dataset, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	m.logger.Info("starting dataset migration",
		"source", opts.SourceWorkspace+"/"+opts.SourceDataset,
		"target", opts.TargetWorkspace+"/"+opts.TargetDataset)

	m.sendProgress(progress, resolveWorkspaceUpdate(opts.SourceWorkspace))

	sourceWS, err := m.ResolveWorkspace(ctx, opts.SourceWorkspace, false)
	if err != nil {
		return nil, err
	}

	m.sendProgress(progress, fetchSourceUpdate(opts.SourceWorkspace, opts.SourceDataset))

	source, err := m.api.Dataset(ctx, sourceWS.ID, opts.SourceDataset)
	if err != nil {
		return nil, wrapErr(err, "migrate", opts.SourceWorkspace, opts.SourceDataset)
	}

	m.sendProgress(progress, createTargetUpdate(opts.TargetWorkspace, opts.TargetDataset))

	target, err := m.CreateDataset(ctx, opts.TargetWorkspace, opts.TargetDataset, opts.Settings)
	if err != nil {
		return nil, err
	}

	job := models.NewMigrationJob(opts.SourceWorkspace, opts.SourceDataset, opts.TargetWorkspace, opts.TargetDataset)
	m.recordJob(job)

	offset := 0
	migrated := 0
	total := -1

	for total < 0 || offset < total {
		m.sendProgress(progress, fetchBatchUpdate(migrated, max(total, 0)))

		page, err := m.api.Records(ctx, source.ID, offset, batchSize)
		if err != nil {
			err = fmt.Errorf("failed to fetch records: %w", err)
			job.MarkFailed(migrated, err)
			m.updateJob(job)
			return nil, wrapErrAt(err, "migrate", opts.SourceWorkspace, opts.SourceDataset, offset)
		}

		if total < 0 {
			total = page.Total
			m.logger.Info("found records to migrate", "total", total)
			job.MarkRunning(total)
			m.updateJob(job)
		}

		if len(page.Items) == 0 {
			break
		}

		records := page.Items
		if opts.Transform != nil {
			m.sendProgress(progress, transformBatchUpdate(migrated, total, len(records)))

			transformed := make([]argilla.Record, len(records))
			for i, record := range records {
				out, terr := opts.Transform(record)
				if terr != nil {
					terr = fmt.Errorf("record transformation failed: %w", terr)
					job.MarkFailed(migrated, terr)
					m.updateJob(job)
					return nil, wrapErrAt(terr, "migrate", opts.SourceWorkspace, opts.SourceDataset, offset)
				}
				transformed[i] = out
			}
			records = transformed
		}

		if err := m.api.AddRecords(ctx, target.ID, records); err != nil {
			err = fmt.Errorf("failed to add records: %w", err)
			job.MarkFailed(migrated, err)
			m.updateJob(job)
			return nil, wrapErrAt(err, "migrate", opts.TargetWorkspace, opts.TargetDataset, offset)
		}

		offset += len(page.Items)
		migrated += len(page.Items)
		m.sendProgress(progress, appendBatchUpdate(migrated, total))
	}

	job.MarkCompleted(migrated)
	m.updateJob(job)

	m.logger.Info("migration completed successfully", "records", migrated)
	m.sendProgress(progress, completedUpdate(target, migrated))

	return target, nil
}
