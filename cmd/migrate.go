package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/annolab/anx/internal/argilla"
	"github.com/annolab/anx/internal/models"
	"github.com/annolab/anx/internal/shared"
	"github.com/annolab/anx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MigrateRun copies records from one dataset into a freshly created target.
func (r *Runner) MigrateRun(ctx context.Context, cmd *cli.Command) error {
	sourceWorkspace := cmd.String("source-workspace")
	sourceDataset := cmd.String("source-dataset")
	targetWorkspace := cmd.String("target-workspace")
	targetDataset := cmd.String("target-dataset")

	r.logger.Info("starting migration",
		"source", sourceWorkspace+"/"+sourceDataset,
		"target", targetWorkspace+"/"+targetDataset)
	r.writePlain("Starting record migration...\n")
	r.writePlain("Source: %s/%s\n", sourceWorkspace, sourceDataset)
	r.writePlain("Target: %s/%s\n\n", targetWorkspace, targetDataset)

	var transform tasks.TransformFunc
	if tag := cmd.String("tag"); tag != "" {
		key, value, ok := strings.Cut(tag, "=")
		if !ok || key == "" {
			return fmt.Errorf("%w: --tag must be key=value", shared.ErrInvalidFlag)
		}
		transform = func(rec argilla.Record) (argilla.Record, error) {
			if rec.Metadata == nil {
				rec.Metadata = map[string]any{}
			}
			rec.Metadata[key] = value
			return rec, nil
		}
	}

	manager, err := r.manager(ctx)
	if err != nil {
		return err
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go r.printProgress(progressCh)

	target, err := manager.Migrate(ctx, tasks.MigrateOpts{
		SourceWorkspace: sourceWorkspace,
		SourceDataset:   sourceDataset,
		TargetWorkspace: targetWorkspace,
		TargetDataset:   targetDataset,
		Settings:        argilla.DefaultSettings(cmd.String("guidelines"), cmd.StringSlice("label")),
		Transform:       transform,
		BatchSize:       cmd.Int("batch-size"),
	}, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Migration Complete!")
	r.writePlain("Target: %s/%s (%s)\n", targetWorkspace, target.Name, target.ID)
	return nil
}

// MigrateHistory lists past migration jobs recorded in the local database.
func (r *Runner) MigrateHistory(ctx context.Context, cmd *cli.Command) error {
	jobs := r.jobRepository()
	if jobs == nil {
		return fmt.Errorf("%w: job database not initialized, run 'anx setup' first", shared.ErrServiceUnavailable)
	}

	criteria := map[string]any{}
	if status := cmd.String("status"); status != "" {
		criteria["status"] = status
	}

	history, err := jobs.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list migration jobs: %w", err)
	}

	if cmd.Bool("json") {
		entries := make([]map[string]any, 0, len(history))
		for _, job := range history {
			entries = append(entries, jobEntry(job))
		}
		return r.writeJSON(entries, true)
	}

	r.writePlainHeader(fmt.Sprintf("Migration Jobs (%d)", len(history)))
	for _, job := range history {
		r.writePlain("#%d %s → %s [%s] %d/%d records",
			job.Sequence(),
			job.SourceWorkspace()+"/"+job.SourceDataset(),
			job.TargetWorkspace()+"/"+job.TargetDataset(),
			job.Status(),
			job.RecordsMigrated(),
			job.RecordsTotal())
		if job.ErrorMessage() != "" {
			r.writePlain("  (%s)", job.ErrorMessage())
		}
		r.writePlain("\n")
	}
	return nil
}

// jobEntry flattens a migration job for JSON output.
func jobEntry(job *models.MigrationJob) map[string]any {
	entry := map[string]any{
		"id":               job.ID(),
		"sequence":         job.Sequence(),
		"source_workspace": job.SourceWorkspace(),
		"source_dataset":   job.SourceDataset(),
		"target_workspace": job.TargetWorkspace(),
		"target_dataset":   job.TargetDataset(),
		"status":           job.Status(),
		"records_total":    job.RecordsTotal(),
		"records_migrated": job.RecordsMigrated(),
		"created_at":       job.CreatedAt(),
	}
	if job.ErrorMessage() != "" {
		entry["error"] = job.ErrorMessage()
	}
	if t := job.StartedAt(); t != nil {
		entry["started_at"] = t
	}
	if t := job.CompletedAt(); t != nil {
		entry["completed_at"] = t
	}
	return entry
}
