// package formatter provides functions to export dataset records to various formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/annolab/anx/internal/argilla"
	"github.com/annolab/anx/internal/shared"
)

// DatasetExport bundles a dataset with its settings and full record listing for export.
type DatasetExport struct {
	Dataset  argilla.Dataset  `json:"dataset"`
	Settings argilla.Settings `json:"settings"`
	Records  []argilla.Record `json:"records"`
}

// fieldColumns returns the record field names in schema order.
func fieldColumns(export *DatasetExport) []string {
	names := make([]string, 0, len(export.Settings.Fields))
	for _, field := range export.Settings.Fields {
		names = append(names, field.Name)
	}
	return names
}

// fieldValue stringifies a record's field payload for tabular output.
func fieldValue(record argilla.Record, name string) string {
	v, ok := record.Fields[name]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// ExportToCSV converts a DatasetExport to CSV with one column per schema field,
// prefixed by the record ID and external ID.
func ExportToCSV(export *DatasetExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	columns := fieldColumns(export)
	headers := append([]string{"ID", "ExternalID"}, columns...)
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range export.Records {
		row := []string{record.ID, record.ExternalID}
		for _, name := range columns {
			row = append(row, fieldValue(record, name))
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a DatasetExport to Markdown with schema summary and record listing.
func ExportToMarkdown(export *DatasetExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Dataset.Name))

	if export.Settings.Guidelines != "" {
		buf.WriteString(fmt.Sprintf("**Guidelines**: %s\n\n", export.Settings.Guidelines))
	}

	buf.WriteString(fmt.Sprintf("**Records**: %d\n", len(export.Records)))
	buf.WriteString(fmt.Sprintf("**Status**: %s\n\n", export.Dataset.Status))

	if len(export.Settings.Questions) > 0 {
		buf.WriteString("## Questions\n\n")
		for _, question := range export.Settings.Questions {
			buf.WriteString(fmt.Sprintf("- %s: %s\n", question.Name, strings.Join(question.Labels, ", ")))
		}
		buf.WriteString("\n")
	}

	columns := fieldColumns(export)
	buf.WriteString("## Records\n\n")
	for i, record := range export.Records {
		values := make([]string, 0, len(columns))
		for _, name := range columns {
			values = append(values, fieldValue(record, name))
		}
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.Join(values, " | ")))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a DatasetExport to plain text format
func ExportToText(export *DatasetExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Dataset: %s\n", export.Dataset.Name))
	if export.Settings.Guidelines != "" {
		buf.WriteString(fmt.Sprintf("Guidelines: %s\n", export.Settings.Guidelines))
	}
	buf.WriteString(fmt.Sprintf("Records: %d\n\n", len(export.Records)))

	columns := fieldColumns(export)
	for i, record := range export.Records {
		values := make([]string, 0, len(columns))
		for _, name := range columns {
			values = append(values, fieldValue(record, name))
		}
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.Join(values, " | ")))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of dataset metadata (without records)
func ToMetadataJSON(export *DatasetExport) ([]byte, error) {
	meta := struct {
		Dataset  argilla.Dataset  `json:"dataset"`
		Settings argilla.Settings `json:"settings"`
	}{export.Dataset, export.Settings}
	return shared.MarshalJSON(meta, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	RecordsFile  string
	MetadataFile string
}

// WriteCSVExport exports a dataset to CSV format with accompanying metadata JSON file.
//
// Defaults to the dataset name as the base filename & creates {base}_records.csv and {base}_metadata.json
func WriteCSVExport(export *DatasetExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.Dataset.Name
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	recordsFile := baseFilepath + "_records.csv"
	if err := os.WriteFile(recordsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		RecordsFile:  recordsFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteJSONExport exports a dataset with settings and records to a single JSON file.
func WriteJSONExport(export *DatasetExport, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s.json", export.Dataset.Name)
	}

	data, err := shared.MarshalJSON(export, true)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return path, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
}

// WriteMarkdownExport exports a dataset to Markdown format in a dedicated directory.
//
// Directory name defaults to the dataset name. Creates {dir}/README.md.
func WriteMarkdownExport(export *DatasetExport, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = export.Dataset.Name
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{mdFile},
	}, nil
}

// WriteTextExport exports a dataset to plain text format.
//
// Defaults to {dataset}_records.txt as the filename.
func WriteTextExport(export *DatasetExport, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s_records.txt", export.Dataset.Name)
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}
