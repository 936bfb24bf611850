package tasks

import (
	"fmt"

	"github.com/annolab/anx/internal/argilla"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveWorkspace Phase = iota
	FetchSource
	CreateTarget
	FetchRecords
	TransformRecords
	AppendRecords
	ExportDataset
	Completed
)

func (p Phase) String() string {
	switch p {
	case ResolveWorkspace:
		return "resolve_workspace"
	case FetchSource:
		return "fetch_source"
	case CreateTarget:
		return "create_target"
	case FetchRecords:
		return "fetch_records"
	case TransformRecords:
		return "transform_records"
	case AppendRecords:
		return "append_records"
	case ExportDataset:
		return "export_dataset"
	case Completed:
		return "completed"
	default:
		return ""
	}
}

func resolveWorkspaceUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveWorkspace,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving workspace %s...", name),
	}
}

func fetchSourceUpdate(workspace, dataset string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching source dataset %s/%s...", workspace, dataset),
	}
}

func createTargetUpdate(workspace, dataset string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateTarget,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating target dataset %s/%s...", workspace, dataset),
	}
}

func fetchBatchUpdate(migrated, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRecords,
		Step:    migrated,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching records...", migrated, total),
	}
}

func transformBatchUpdate(migrated, total, batch int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TransformRecords,
		Step:    migrated,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Transforming %d records...", migrated, total, batch),
	}
}

func appendBatchUpdate(migrated, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AppendRecords,
		Step:    migrated,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Records migrated", migrated, total),
	}
}

func completedUpdate(target *argilla.Dataset, migrated int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Completed,
		Step:    migrated,
		Total:   migrated,
		Message: fmt.Sprintf("Migration complete: %d records copied to %s", migrated, target.Name),
		Data:    target,
	}
}

func exportingDatasetUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportDataset,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportDataset,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportDataset,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
