package formatter

import (
	"fmt"
	"os"
	"time"

	"github.com/annolab/anx/internal/shared"
)

// ExportManifest summarizes a workspace export run.
type ExportManifest struct {
	Format            string          `json:"format"`
	ExportedAt        time.Time       `json:"exported_at"`
	Workspace         string          `json:"workspace"`
	TotalDatasets     int             `json:"total_datasets"`
	SuccessfulExports int             `json:"successful_exports"`
	FailedExports     int             `json:"failed_exports"`
	Entries           []ManifestEntry `json:"entries"`
}

// ManifestEntry records the outcome of a single dataset export.
type ManifestEntry struct {
	DatasetID   string   `json:"dataset_id"`
	DatasetName string   `json:"dataset_name"`
	Status      string   `json:"status"`
	Files       []string `json:"files,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// WriteExportManifest serializes an ExportManifest to a JSON file.
func WriteExportManifest(manifest *ExportManifest, path string) error {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	return nil
}
