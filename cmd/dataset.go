package main

import (
	"context"
	"fmt"

	"github.com/annolab/anx/internal/argilla"
	"github.com/annolab/anx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// DatasetList prints the datasets in a workspace.
func (r *Runner) DatasetList(ctx context.Context, cmd *cli.Command) error {
	workspace := cmd.String("workspace")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("listing datasets", "workspace", workspace)

	manager, err := r.manager(ctx)
	if err != nil {
		return err
	}

	ws, err := manager.ResolveWorkspace(ctx, workspace, false)
	if err != nil {
		return err
	}

	datasets, err := r.client.Datasets(ctx, ws.ID)
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}

	if useJSON {
		return r.writeJSON(datasets, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Datasets in '%s' (%d)", workspace, len(datasets)))
	for _, ds := range datasets {
		r.writePlain("%s  %s [%s]\n", ds.ID, ds.Name, ds.Status)
	}
	return nil
}

// DatasetCreate creates and publishes a dataset, creating the workspace when missing.
func (r *Runner) DatasetCreate(ctx context.Context, cmd *cli.Command) error {
	workspace := cmd.String("workspace")
	name := cmd.String("name")
	guidelines := cmd.String("guidelines")
	labels := cmd.StringSlice("label")

	r.logger.Info("creating dataset", "workspace", workspace, "name", name)

	manager, err := r.manager(ctx)
	if err != nil {
		return err
	}

	settings := argilla.DefaultSettings(guidelines, labels)
	ds, err := manager.CreateDataset(ctx, workspace, name, settings)
	if err != nil {
		return err
	}

	r.writePlain("✓ Dataset created: %s/%s (%s)\n", workspace, ds.Name, ds.ID)
	return nil
}

// DatasetClone copies a dataset's settings and records into a new dataset.
func (r *Runner) DatasetClone(ctx context.Context, cmd *cli.Command) error {
	workspace := cmd.String("workspace")
	name := cmd.String("name")
	target := cmd.String("target")
	targetWorkspace := cmd.String("target-workspace")

	r.logger.Info("cloning dataset", "workspace", workspace, "dataset", name, "target", target)
	r.writePlain("Cloning %s/%s...\n\n", workspace, name)

	manager, err := r.manager(ctx)
	if err != nil {
		return err
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go r.printProgress(progressCh)

	clone, err := manager.Clone(ctx, workspace, name, target, targetWorkspace, progressCh)
	close(progressCh)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Clone created: %s (%s)", clone.Name, clone.ID)
	return nil
}

// DatasetDelete removes a dataset after confirmation.
func (r *Runner) DatasetDelete(ctx context.Context, cmd *cli.Command) error {
	workspace := cmd.String("workspace")
	name := cmd.String("name")

	if !cmd.Bool("yes") {
		r.writePlain("This permanently deletes %s/%s and all of its records.\n", workspace, name)
		r.writePlain("Re-run with --yes to confirm.\n")
		return nil
	}

	manager, err := r.manager(ctx)
	if err != nil {
		return err
	}

	if err := manager.Delete(ctx, workspace, name); err != nil {
		return err
	}

	r.writePlain("✓ Dataset deleted: %s/%s\n", workspace, name)
	return nil
}

// DatasetUpdate patches a dataset's settings in place, or clones it into a
// timestamped new version when --new-version is set.
func (r *Runner) DatasetUpdate(ctx context.Context, cmd *cli.Command) error {
	workspace := cmd.String("workspace")
	name := cmd.String("name")
	guidelines := cmd.String("guidelines")
	labels := cmd.StringSlice("label")
	newVersion := cmd.Bool("new-version")

	r.logger.Info("updating dataset settings", "workspace", workspace, "dataset", name, "new_version", newVersion)

	manager, err := r.manager(ctx)
	if err != nil {
		return err
	}

	settings := argilla.DefaultSettings(guidelines, labels)
	if cmd.IsSet("extra-metadata") {
		allow := cmd.Bool("extra-metadata")
		settings.AllowExtraMetadata = &allow
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go r.printProgress(progressCh)

	ds, err := manager.UpdateSettings(ctx, workspace, name, settings, newVersion, progressCh)
	close(progressCh)
	if err != nil {
		return err
	}

	if newVersion {
		r.writePlainln("✓ New version created: %s (%s)", ds.Name, ds.ID)
	} else {
		r.writePlainln("✓ Settings updated: %s/%s", workspace, ds.Name)
	}
	return nil
}

// DatasetExport writes every dataset in a workspace to files on disk.
func (r *Runner) DatasetExport(ctx context.Context, cmd *cli.Command) error {
	workspace := cmd.String("workspace")
	format := cmd.String("format")
	output := cmd.String("output")

	r.logger.Info("exporting workspace", "workspace", workspace, "format", format)
	r.writePlain("Exporting workspace '%s'...\n\n", workspace)

	manager, err := r.manager(ctx)
	if err != nil {
		return err
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go r.printProgress(progressCh)

	result, err := manager.ExportWorkspace(ctx, progressCh, workspace, tasks.ExportOpts{
		Format:    format,
		OutputDir: output,
	})
	close(progressCh)
	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Datasets: %d\n", result.TotalDatasets)
	r.writePlain("Succeeded: %d\n", result.SuccessfulExports)
	r.writePlain("Failed: %d\n", result.FailedExports)
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	if result.FailedExports > 0 {
		r.writePlain("\nFailed datasets:\n")
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.DatasetName, res.Error)
			}
		}
	}
	return nil
}

// printProgress renders progress updates from a manager operation.
func (r *Runner) printProgress(progressCh <-chan tasks.ProgressUpdate) {
	for update := range progressCh {
		switch update.Phase {
		case tasks.ResolveWorkspace, tasks.FetchSource, tasks.CreateTarget:
			r.writePlain("📥 %s\n", update.Message)
		case tasks.FetchRecords, tasks.TransformRecords:
			r.writePlain("   %s\n", update.Message)
		case tasks.AppendRecords, tasks.ExportDataset:
			r.writePlain("📝 %s\n", update.Message)
		case tasks.Completed:
			r.writePlain("\n✓ %s\n", update.Message)
		}
	}
}
