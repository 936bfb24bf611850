package formatter

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/annolab/anx/internal/argilla"
	tu "github.com/annolab/anx/internal/testing"
)

func sampleExport() *DatasetExport {
	return &DatasetExport{
		Dataset: argilla.Dataset{
			ID:     "ds-1",
			Name:   "reviews",
			Status: "ready",
		},
		Settings: argilla.Settings{
			Guidelines: "Label the sentiment of each review.",
			Fields: []argilla.TextField{
				{Name: "text", Title: "Text", Required: true},
			},
			Questions: []argilla.LabelQuestion{
				{Name: "label", Title: "Label", Required: true, Labels: []string{"positive", "negative"}},
			},
		},
		Records: []argilla.Record{
			{ID: "rec-1", ExternalID: "ext-1", Fields: map[string]any{"text": "great product"}},
			{ID: "rec-2", ExternalID: "ext-2", Fields: map[string]any{"text": "terrible, broke in a day"}},
			{ID: "rec-3", ExternalID: "ext-3", Fields: map[string]any{}},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleExport())
	if err != nil {
		t.Fatalf("ExportToCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "ID,ExternalID,text" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "rec-1,ext-1,great product" {
		t.Errorf("first row = %q", lines[1])
	}
	if !strings.Contains(lines[2], `"terrible, broke in a day"`) {
		t.Errorf("expected quoted comma field, got %q", lines[2])
	}
	if lines[3] != "rec-3,ext-3," {
		t.Errorf("empty field row = %q", lines[3])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(sampleExport())
	if err != nil {
		t.Fatalf("ExportToMarkdown() error = %v", err)
	}

	content := string(data)
	for _, want := range []string{
		"# reviews",
		"**Guidelines**: Label the sentiment of each review.",
		"**Records**: 3",
		"- label: positive, negative",
		"1. great product",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleExport())
	if err != nil {
		t.Fatalf("ExportToText() error = %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "Dataset: reviews") {
		t.Errorf("text missing dataset header:\n%s", content)
	}
	if !strings.Contains(content, "2. terrible, broke in a day") {
		t.Errorf("text missing numbered record:\n%s", content)
	}
}

func TestToMetadataJSON(t *testing.T) {
	data, err := ToMetadataJSON(sampleExport())
	if err != nil {
		t.Fatalf("ToMetadataJSON() error = %v", err)
	}

	var meta struct {
		Dataset  argilla.Dataset  `json:"dataset"`
		Settings argilla.Settings `json:"settings"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatalf("metadata is not valid JSON: %v", err)
	}
	if meta.Dataset.Name != "reviews" {
		t.Errorf("dataset name = %s", meta.Dataset.Name)
	}
	if strings.Contains(string(data), `"records"`) {
		t.Error("metadata should not include records")
	}
}

func TestWriteExports(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "reviews")

		result, err := WriteCSVExport(sampleExport(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport() error = %v", err)
		}

		tu.AssertFileExists(t, result.RecordsFile)
		tu.AssertFileExists(t, result.MetadataFile)
		if !strings.HasSuffix(result.RecordsFile, "_records.csv") {
			t.Errorf("records file = %s", result.RecordsFile)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reviews.json")

		got, err := WriteJSONExport(sampleExport(), path)
		if err != nil {
			t.Fatalf("WriteJSONExport() error = %v", err)
		}
		if got != path {
			t.Errorf("returned path = %s", got)
		}

		var export DatasetExport
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, path)), &export); err != nil {
			t.Fatalf("exported JSON does not parse: %v", err)
		}
		if len(export.Records) != 3 {
			t.Errorf("round-tripped records = %d, want 3", len(export.Records))
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reviews_md")

		result, err := WriteMarkdownExport(sampleExport(), dir)
		if err != nil {
			t.Fatalf("WriteMarkdownExport() error = %v", err)
		}

		tu.AssertDirExists(t, result.Directory)
		if len(result.Files) != 1 {
			t.Fatalf("expected one file, got %d", len(result.Files))
		}
		tu.AssertFileExists(t, result.Files[0])
		if filepath.Base(result.Files[0]) != "README.md" {
			t.Errorf("file = %s", result.Files[0])
		}
	})

	t.Run("Text", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reviews.txt")

		got, err := WriteTextExport(sampleExport(), path)
		if err != nil {
			t.Fatalf("WriteTextExport() error = %v", err)
		}
		tu.AssertFileExists(t, got)
	})
}

func TestWriteExportManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export_manifest.json")

	manifest := &ExportManifest{
		Format:            "json",
		ExportedAt:        time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
		Workspace:         "prod",
		TotalDatasets:     2,
		SuccessfulExports: 1,
		FailedExports:     1,
		Entries: []ManifestEntry{
			{DatasetID: "ds-1", DatasetName: "reviews", Status: "success", Files: []string{"reviews.json"}},
			{DatasetID: "ds-2", DatasetName: "intents", Status: "failed", Error: "connection reset"},
		},
	}

	if err := WriteExportManifest(manifest, path); err != nil {
		t.Fatalf("WriteExportManifest() error = %v", err)
	}

	var got ExportManifest
	if err := json.Unmarshal([]byte(tu.MustReadFile(t, path)), &got); err != nil {
		t.Fatalf("manifest does not parse: %v", err)
	}
	if got.Workspace != "prod" || got.FailedExports != 1 {
		t.Errorf("manifest round trip mismatch: %+v", got)
	}
	if got.Entries[1].Error != "connection reset" {
		t.Errorf("entry error = %q", got.Entries[1].Error)
	}
}
