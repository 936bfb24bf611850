package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/annolab/anx/internal/argilla"
	"github.com/annolab/anx/internal/formatter"
	"github.com/annolab/anx/internal/shared"
	tu "github.com/annolab/anx/internal/testing"
)

func TestExportWorkspace(t *testing.T) {
	t.Run("exports every dataset to JSON with manifest", func(t *testing.T) {
		f := newFixture()
		wsID, _ := f.seed("research", "reviews", sampleRecords(3), argilla.DefaultSettings("g", nil))
		second := argilla.Dataset{ID: f.id("ds"), Name: "tickets", WorkspaceID: wsID, Status: "ready"}
		f.datasets[wsID] = append(f.datasets[wsID], second)
		f.records[second.ID] = sampleRecords(2)
		f.settings[second.ID] = argilla.DefaultSettings("", nil)
		manager := newTestManager(t, f.api)

		outputDir := t.TempDir()
		result, err := manager.ExportWorkspace(context.Background(), nil, "research", ExportOpts{
			Format:    "json",
			OutputDir: outputDir,
		})
		if err != nil {
			t.Fatalf("ExportWorkspace() error = %v", err)
		}

		if result.TotalDatasets != 2 || result.SuccessfulExports != 2 || result.FailedExports != 0 {
			t.Errorf("result = %+v", result)
		}

		tu.AssertFileExists(t, filepath.Join(outputDir, "reviews.json"))
		tu.AssertFileExists(t, filepath.Join(outputDir, "tickets.json"))
		tu.AssertFileExists(t, result.ManifestPath)

		var manifest formatter.ExportManifest
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, result.ManifestPath)), &manifest); err != nil {
			t.Fatalf("failed to parse manifest: %v", err)
		}
		if manifest.Format != "json" || manifest.TotalDatasets != 2 {
			t.Errorf("manifest = %+v", manifest)
		}
		if manifest.Workspace != "research" {
			t.Errorf("manifest workspace = %s", manifest.Workspace)
		}
	})

	t.Run("exported JSON round-trips records", func(t *testing.T) {
		f := newFixture()
		f.seed("research", "reviews", sampleRecords(3), argilla.DefaultSettings("g", nil))
		manager := newTestManager(t, f.api)

		outputDir := t.TempDir()
		if _, err := manager.ExportWorkspace(context.Background(), nil, "research", ExportOpts{OutputDir: outputDir}); err != nil {
			t.Fatalf("ExportWorkspace() error = %v", err)
		}

		var export formatter.DatasetExport
		content := tu.MustReadFile(t, filepath.Join(outputDir, "reviews.json"))
		if err := json.Unmarshal([]byte(content), &export); err != nil {
			t.Fatalf("failed to parse export: %v", err)
		}
		if len(export.Records) != 3 {
			t.Errorf("exported %d records, want 3", len(export.Records))
		}
		if export.Settings.Guidelines != "g" {
			t.Errorf("settings guidelines = %q", export.Settings.Guidelines)
		}
	})

	t.Run("CSV format writes records and metadata files", func(t *testing.T) {
		f := newFixture()
		f.seed("research", "reviews", sampleRecords(2), argilla.DefaultSettings("", nil))
		manager := newTestManager(t, f.api)

		outputDir := t.TempDir()
		result, err := manager.ExportWorkspace(context.Background(), nil, "research", ExportOpts{
			Format:    "csv",
			OutputDir: outputDir,
		})
		if err != nil {
			t.Fatalf("ExportWorkspace() error = %v", err)
		}
		if len(result.Results[0].Files) != 2 {
			t.Fatalf("files = %v", result.Results[0].Files)
		}
		tu.AssertFileExists(t, filepath.Join(outputDir, "reviews_records.csv"))
		tu.AssertFileExists(t, filepath.Join(outputDir, "reviews_metadata.json"))
	})

	t.Run("partial failures are recorded, not fatal", func(t *testing.T) {
		f := newFixture()
		wsID, brokenID := f.seed("research", "broken", sampleRecords(1), argilla.Settings{})
		good := argilla.Dataset{ID: f.id("ds"), Name: "good", WorkspaceID: wsID, Status: "ready"}
		f.datasets[wsID] = append(f.datasets[wsID], good)
		f.records[good.ID] = sampleRecords(1)
		f.settings[good.ID] = argilla.Settings{}

		inner := f.api.RecordsFunc
		f.api.RecordsFunc = func(ctx context.Context, datasetID string, offset, limit int) (*argilla.RecordPage, error) {
			if datasetID == brokenID {
				return nil, errors.New("records endpoint down")
			}
			return inner(ctx, datasetID, offset, limit)
		}
		manager := newTestManager(t, f.api)

		result, err := manager.ExportWorkspace(context.Background(), nil, "research", ExportOpts{
			OutputDir: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("ExportWorkspace() error = %v", err)
		}
		if result.SuccessfulExports != 1 || result.FailedExports != 1 {
			t.Errorf("result = %+v", result)
		}
		for _, res := range result.Results {
			if res.DatasetName == "broken" && res.Success {
				t.Error("broken dataset reported success")
			}
		}
	})

	t.Run("missing workspace fails", func(t *testing.T) {
		f := newFixture()
		manager := newTestManager(t, f.api)

		_, err := manager.ExportWorkspace(context.Background(), nil, "ghost", ExportOpts{OutputDir: t.TempDir()})
		if !errors.Is(err, shared.ErrWorkspaceNotFound) {
			t.Errorf("expected ErrWorkspaceNotFound, got %v", err)
		}
	})
}
