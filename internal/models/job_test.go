package models

import (
	"errors"
	"testing"
)

func TestMigrationJob(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		job := NewMigrationJob("prod", "reviews", "staging", "reviews_copy")

		if job.Status() != JobPending {
			t.Errorf("Status() = %s, want pending", job.Status())
		}
		if job.CreatedAt().IsZero() || job.UpdatedAt().IsZero() {
			t.Error("expected timestamps to be set")
		}
	})

	t.Run("lifecycle transitions", func(t *testing.T) {
		job := NewMigrationJob("prod", "reviews", "staging", "reviews_copy")

		job.MarkRunning(500)
		if job.Status() != JobRunning {
			t.Errorf("Status() = %s, want running", job.Status())
		}
		if job.RecordsTotal() != 500 {
			t.Errorf("RecordsTotal() = %d, want 500", job.RecordsTotal())
		}
		if job.StartedAt() == nil {
			t.Error("expected StartedAt after MarkRunning")
		}

		job.MarkCompleted(500)
		if job.Status() != JobCompleted {
			t.Errorf("Status() = %s, want completed", job.Status())
		}
		if job.CompletedAt() == nil {
			t.Error("expected CompletedAt after MarkCompleted")
		}
	})

	t.Run("failure records cause", func(t *testing.T) {
		job := NewMigrationJob("prod", "reviews", "staging", "reviews_copy")
		job.MarkRunning(500)
		job.MarkFailed(120, errors.New("server unavailable"))

		if job.Status() != JobFailed {
			t.Errorf("Status() = %s, want failed", job.Status())
		}
		if job.RecordsMigrated() != 120 {
			t.Errorf("RecordsMigrated() = %d, want 120", job.RecordsMigrated())
		}
		if job.ErrorMessage() != "server unavailable" {
			t.Errorf("ErrorMessage() = %q", job.ErrorMessage())
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name    string
			job     *MigrationJob
			wantErr bool
		}{
			{"valid", NewMigrationJob("a", "b", "c", "d"), false},
			{"missing source", NewMigrationJob("", "b", "c", "d"), true},
			{"missing target", NewMigrationJob("a", "b", "c", ""), true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.job.Validate(); (err != nil) != tt.wantErr {
					t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			})
		}

		t.Run("bad status", func(t *testing.T) {
			job := NewMigrationJob("a", "b", "c", "d")
			job.SetStatus(JobStatus("exploded"))
			if err := job.Validate(); err == nil {
				t.Error("expected error for unknown status")
			}
		})
	})
}
