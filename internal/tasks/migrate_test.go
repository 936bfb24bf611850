package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/annolab/anx/internal/argilla"
)

func TestMigrate(t *testing.T) {
	t.Run("copies all records in order", func(t *testing.T) {
		f := newFixture()
		f.seed("source-ws", "source-ds", sampleRecords(250), argilla.Settings{})
		manager := newTestManager(t, f.api)

		target, err := manager.Migrate(context.Background(), MigrateOpts{
			SourceWorkspace: "source-ws",
			SourceDataset:   "source-ds",
			TargetWorkspace: "target-ws",
			TargetDataset:   "target-ds",
			Settings:        argilla.DefaultSettings("", nil),
		}, nil)
		if err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}

		added := f.added[target.ID]
		if len(added) != 250 {
			t.Fatalf("migrated %d records, want 250", len(added))
		}
		for i, rec := range added {
			if rec.ExternalID != fmt.Sprintf("ext-%d", i) {
				t.Fatalf("record %d out of order: %s", i, rec.ExternalID)
			}
		}
	})

	t.Run("respects batch size", func(t *testing.T) {
		f := newFixture()
		f.seed("source-ws", "source-ds", sampleRecords(10), argilla.Settings{})

		var limits []int
		inner := f.api.RecordsFunc
		f.api.RecordsFunc = func(ctx context.Context, datasetID string, offset, limit int) (*argilla.RecordPage, error) {
			limits = append(limits, limit)
			return inner(ctx, datasetID, offset, limit)
		}
		manager := newTestManager(t, f.api)

		_, err := manager.Migrate(context.Background(), MigrateOpts{
			SourceWorkspace: "source-ws",
			SourceDataset:   "source-ds",
			TargetWorkspace: "target-ws",
			TargetDataset:   "target-ds",
			BatchSize:       4,
		}, nil)
		if err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}

		if len(limits) != 3 {
			t.Fatalf("made %d fetches, want 3", len(limits))
		}
		for _, limit := range limits {
			if limit != 4 {
				t.Errorf("limit = %d, want 4", limit)
			}
		}
	})

	t.Run("empty source creates empty target", func(t *testing.T) {
		f := newFixture()
		f.seed("source-ws", "source-ds", nil, argilla.Settings{})
		manager := newTestManager(t, f.api)

		target, err := manager.Migrate(context.Background(), MigrateOpts{
			SourceWorkspace: "source-ws",
			SourceDataset:   "source-ds",
			TargetWorkspace: "target-ws",
			TargetDataset:   "target-ds",
		}, nil)
		if err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}
		if len(f.added[target.ID]) != 0 {
			t.Errorf("added %d records to empty target", len(f.added[target.ID]))
		}
	})

	t.Run("applies transform to every record", func(t *testing.T) {
		f := newFixture()
		f.seed("source-ws", "source-ds", sampleRecords(5), argilla.Settings{})
		manager := newTestManager(t, f.api)

		target, err := manager.Migrate(context.Background(), MigrateOpts{
			SourceWorkspace: "source-ws",
			SourceDataset:   "source-ds",
			TargetWorkspace: "target-ws",
			TargetDataset:   "target-ds",
			Transform: func(rec argilla.Record) (argilla.Record, error) {
				if rec.Metadata == nil {
					rec.Metadata = map[string]any{}
				}
				rec.Metadata["batch"] = "2025-01"
				return rec, nil
			},
		}, nil)
		if err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}

		for i, rec := range f.added[target.ID] {
			if rec.Metadata["batch"] != "2025-01" {
				t.Errorf("record %d missing transform metadata", i)
			}
		}
	})

	t.Run("transform failure aborts with offset", func(t *testing.T) {
		f := newFixture()
		f.seed("source-ws", "source-ds", sampleRecords(10), argilla.Settings{})
		manager := newTestManager(t, f.api)

		calls := 0
		_, err := manager.Migrate(context.Background(), MigrateOpts{
			SourceWorkspace: "source-ws",
			SourceDataset:   "source-ds",
			TargetWorkspace: "target-ws",
			TargetDataset:   "target-ds",
			BatchSize:       4,
			Transform: func(rec argilla.Record) (argilla.Record, error) {
				calls++
				if calls > 5 {
					return rec, errors.New("malformed field")
				}
				return rec, nil
			},
		}, nil)

		var de *DatasetError
		if !errors.As(err, &de) {
			t.Fatalf("expected DatasetError, got %v", err)
		}
		if de.Offset != 4 {
			t.Errorf("Offset = %d, want 4", de.Offset)
		}
		if !strings.Contains(de.Error(), "record transformation failed") {
			t.Errorf("Error() = %q", de.Error())
		}
	})

	t.Run("append failure reports target names", func(t *testing.T) {
		f := newFixture()
		f.seed("source-ws", "source-ds", sampleRecords(3), argilla.Settings{})
		f.api.AddRecordsFunc = func(ctx context.Context, datasetID string, records []argilla.Record) error {
			return errors.New("server unavailable")
		}
		manager := newTestManager(t, f.api)

		_, err := manager.Migrate(context.Background(), MigrateOpts{
			SourceWorkspace: "source-ws",
			SourceDataset:   "source-ds",
			TargetWorkspace: "target-ws",
			TargetDataset:   "target-ds",
		}, nil)

		var de *DatasetError
		if !errors.As(err, &de) {
			t.Fatalf("expected DatasetError, got %v", err)
		}
		if de.Workspace != "target-ws" || de.Dataset != "target-ds" {
			t.Errorf("error names = %s/%s, want target-ws/target-ds", de.Workspace, de.Dataset)
		}
		if de.Offset != 0 {
			t.Errorf("Offset = %d, want 0", de.Offset)
		}
	})

	t.Run("source records are never mutated", func(t *testing.T) {
		f := newFixture()
		_, sourceID := f.seed("source-ws", "source-ds", sampleRecords(5), argilla.Settings{})
		manager := newTestManager(t, f.api)

		_, err := manager.Migrate(context.Background(), MigrateOpts{
			SourceWorkspace: "source-ws",
			SourceDataset:   "source-ds",
			TargetWorkspace: "target-ws",
			TargetDataset:   "target-ds",
			Transform: func(rec argilla.Record) (argilla.Record, error) {
				rec.Fields = map[string]any{"text": "rewritten"}
				return rec, nil
			},
		}, nil)
		if err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}

		for i, rec := range f.records[sourceID] {
			if rec.Fields["text"] != fmt.Sprintf("record %d", i) {
				t.Errorf("source record %d was mutated: %v", i, rec.Fields)
			}
		}
	})

	t.Run("emits progress updates per phase", func(t *testing.T) {
		f := newFixture()
		f.seed("source-ws", "source-ds", sampleRecords(5), argilla.Settings{})
		manager := newTestManager(t, f.api)

		progressCh := make(chan ProgressUpdate, 100)
		_, err := manager.Migrate(context.Background(), MigrateOpts{
			SourceWorkspace: "source-ws",
			SourceDataset:   "source-ds",
			TargetWorkspace: "target-ws",
			TargetDataset:   "target-ds",
		}, progressCh)
		close(progressCh)
		if err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}

		seen := map[Phase]bool{}
		for update := range progressCh {
			seen[update.Phase] = true
		}
		for _, phase := range []Phase{ResolveWorkspace, FetchSource, CreateTarget, FetchRecords, AppendRecords, Completed} {
			if !seen[phase] {
				t.Errorf("missing progress phase %s", phase)
			}
		}
	})

	t.Run("full channel never blocks the migration", func(t *testing.T) {
		f := newFixture()
		f.seed("source-ws", "source-ds", sampleRecords(50), argilla.Settings{})
		manager := newTestManager(t, f.api)

		// Capacity 1 with no reader: all but one send is dropped.
		progressCh := make(chan ProgressUpdate, 1)
		_, err := manager.Migrate(context.Background(), MigrateOpts{
			SourceWorkspace: "source-ws",
			SourceDataset:   "source-ds",
			TargetWorkspace: "target-ws",
			TargetDataset:   "target-ds",
			BatchSize:       10,
		}, progressCh)
		if err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}
	})
}
