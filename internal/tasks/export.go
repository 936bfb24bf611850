package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/annolab/anx/internal/argilla"
	"github.com/annolab/anx/internal/formatter"
)

// ExportOpts contains configuration for workspace exports.
type ExportOpts struct {
	Format    string // Export format: json, csv, markdown, txt
	OutputDir string // Base output directory (default: argilla_export_{epoch})
	BatchSize int    // Records fetched per request (default: 100)
}

// DatasetExportResult records the outcome of exporting a single dataset.
type DatasetExportResult struct {
	DatasetID   string
	DatasetName string
	Success     bool
	Files       []string
	Error       error
}

// WorkspaceExportResult aggregates the outcomes of a workspace export run.
type WorkspaceExportResult struct {
	Workspace         string
	TotalDatasets     int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []DatasetExportResult
}

// ExportWorkspace exports every dataset in a workspace to files on disk.
//
// Datasets are processed one at a time. Partial failures are recorded in the
// result and manifest rather than aborting the run; only workspace resolution
// and manifest writing are fatal.
func (m *Manager) ExportWorkspace(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	workspace string,
	opts ExportOpts,
) (*WorkspaceExportResult, error) {
	ws, err := m.ResolveWorkspace(ctx, workspace, false)
	if err != nil {
		return nil, err
	}

	datasets, err := m.api.Datasets(ctx, ws.ID)
	if err != nil {
		return nil, wrapErr(err, "export workspace", workspace, "")
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("argilla_export_%d", time.Now().Unix())
	}
	if opts.Format == "" {
		opts.Format = "json"
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &WorkspaceExportResult{
		Workspace:       workspace,
		TotalDatasets:   len(datasets),
		OutputDirectory: opts.OutputDir,
		Results:         make([]DatasetExportResult, 0, len(datasets)),
	}

	for i, dataset := range datasets {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		m.sendProgress(prog, exportingDatasetUpdate(i+1, len(datasets), dataset.Name))

		res := m.exportSingleDataset(ctx, dataset, opts)
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			m.sendProgress(prog, exportCompletedUpdate(i+1, len(datasets), dataset.Name, len(res.Files)))
		} else {
			result.FailedExports++
			m.logger.Warn("Dataset export failed", "dataset", dataset.Name, "error", res.Error)
			m.sendProgress(prog, exportFailedUpdate(i+1, len(datasets), dataset.Name, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteExportManifest(buildManifest(result, opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	m.logger.Info("Workspace export complete",
		"workspace", workspace,
		"datasets", result.TotalDatasets,
		"succeeded", result.SuccessfulExports,
		"failed", result.FailedExports,
		"dir", opts.OutputDir)
	return result, nil
}

// exportSingleDataset fetches a dataset's schema and records and writes them
// in the requested format.
func (m *Manager) exportSingleDataset(ctx context.Context, dataset argilla.Dataset, opts ExportOpts) DatasetExportResult {
	result := DatasetExportResult{
		DatasetID:   dataset.ID,
		DatasetName: dataset.Name,
		Files:       []string{},
	}

	settings, err := m.api.Settings(ctx, &dataset)
	if err != nil {
		result.Error = fmt.Errorf("failed to fetch settings: %w", err)
		return result
	}

	records, err := m.fetchAllRecords(ctx, dataset.ID, opts.BatchSize)
	if err != nil {
		result.Error = fmt.Errorf("failed to fetch records: %w", err)
		return result
	}

	export := &formatter.DatasetExport{
		Dataset:  dataset,
		Settings: *settings,
		Records:  records,
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, dataset.Name)
		csvRes, err := formatter.WriteCSVExport(export, baseFilepath)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.RecordsFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, dataset.Name)
		mdRes, err := formatter.WriteMarkdownExport(export, outputDir)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_records.txt", dataset.Name))
		path, err := formatter.WriteTextExport(export, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", dataset.Name))
		path, err := formatter.WriteJSONExport(export, jsonPath)
		if err != nil {
			result.Error = fmt.Errorf("JSON export failed: %w", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true
	}
	return result
}

// fetchAllRecords pages through a dataset's records until the reported total
// is reached.
func (m *Manager) fetchAllRecords(ctx context.Context, datasetID string, batchSize int) ([]argilla.Record, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	var records []argilla.Record
	offset := 0
	total := -1

	for total < 0 || offset < total {
		page, err := m.api.Records(ctx, datasetID, offset, batchSize)
		if err != nil {
			return nil, err
		}
		if total < 0 {
			total = page.Total
		}
		if len(page.Items) == 0 {
			break
		}
		records = append(records, page.Items...)
		offset += len(page.Items)
	}

	return records, nil
}

// buildManifest converts a WorkspaceExportResult into its manifest form.
func buildManifest(result *WorkspaceExportResult, format string) *formatter.ExportManifest {
	manifest := &formatter.ExportManifest{
		Format:            format,
		ExportedAt:        time.Now().UTC(),
		Workspace:         result.Workspace,
		TotalDatasets:     result.TotalDatasets,
		SuccessfulExports: result.SuccessfulExports,
		FailedExports:     result.FailedExports,
		Entries:           make([]formatter.ManifestEntry, 0, len(result.Results)),
	}

	for _, res := range result.Results {
		entry := formatter.ManifestEntry{
			DatasetID:   res.DatasetID,
			DatasetName: res.DatasetName,
			Status:      "success",
			Files:       res.Files,
		}
		if !res.Success {
			entry.Status = "failed"
			if res.Error != nil {
				entry.Error = res.Error.Error()
			}
		}
		manifest.Entries = append(manifest.Entries, entry)
	}
	return manifest
}
