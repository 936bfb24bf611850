package models

import (
	"fmt"
	"time"
)

// JobStatus enumerates the lifecycle states of a migration job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// MigrationJob records a single dataset migration run: source and target
// coordinates, progress counters, and final status.
type MigrationJob struct {
	id              string
	sequence        int
	sourceWorkspace string
	sourceDataset   string
	targetWorkspace string
	targetDataset   string
	status          JobStatus
	recordsTotal    int
	recordsMigrated int
	errorMessage    string
	startedAt       *time.Time
	completedAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time
	deletedAt       *time.Time
}

// NewMigrationJob creates a pending job for a migration between the given datasets.
func NewMigrationJob(sourceWorkspace, sourceDataset, targetWorkspace, targetDataset string) *MigrationJob {
	now := time.Now()
	return &MigrationJob{
		sourceWorkspace: sourceWorkspace,
		sourceDataset:   sourceDataset,
		targetWorkspace: targetWorkspace,
		targetDataset:   targetDataset,
		status:          JobPending,
		createdAt:       now,
		updatedAt:       now,
	}
}

func (j *MigrationJob) ID() string              { return j.id }
func (j *MigrationJob) Sequence() int           { return j.sequence }
func (j *MigrationJob) SourceWorkspace() string { return j.sourceWorkspace }
func (j *MigrationJob) SourceDataset() string   { return j.sourceDataset }
func (j *MigrationJob) TargetWorkspace() string { return j.targetWorkspace }
func (j *MigrationJob) TargetDataset() string   { return j.targetDataset }
func (j *MigrationJob) Status() JobStatus       { return j.status }
func (j *MigrationJob) RecordsTotal() int       { return j.recordsTotal }
func (j *MigrationJob) RecordsMigrated() int    { return j.recordsMigrated }
func (j *MigrationJob) ErrorMessage() string    { return j.errorMessage }
func (j *MigrationJob) StartedAt() *time.Time   { return j.startedAt }
func (j *MigrationJob) CompletedAt() *time.Time { return j.completedAt }
func (j *MigrationJob) CreatedAt() time.Time    { return j.createdAt }
func (j *MigrationJob) UpdatedAt() time.Time    { return j.updatedAt }
func (j *MigrationJob) DeletedAt() *time.Time   { return j.deletedAt }

func (j *MigrationJob) SetID(id string)             { j.id = id }
func (j *MigrationJob) SetSequence(seq int)         { j.sequence = seq }
func (j *MigrationJob) SetCreatedAt(t time.Time)    { j.createdAt = t }
func (j *MigrationJob) SetUpdatedAt(t time.Time)    { j.updatedAt = t }
func (j *MigrationJob) SetDeletedAt(t *time.Time)   { j.deletedAt = t }
func (j *MigrationJob) SetStatus(status JobStatus)  { j.status = status }
func (j *MigrationJob) SetRecordsTotal(n int)       { j.recordsTotal = n }
func (j *MigrationJob) SetRecordsMigrated(n int)    { j.recordsMigrated = n }
func (j *MigrationJob) SetErrorMessage(msg string)  { j.errorMessage = msg }
func (j *MigrationJob) SetStartedAt(t *time.Time)   { j.startedAt = t }
func (j *MigrationJob) SetCompletedAt(t *time.Time) { j.completedAt = t }

// MarkRunning transitions the job to running with the discovered record count.
func (j *MigrationJob) MarkRunning(total int) {
	now := time.Now()
	j.status = JobRunning
	j.recordsTotal = total
	j.startedAt = &now
	j.updatedAt = now
}

// MarkCompleted transitions the job to completed with the final migrated count.
func (j *MigrationJob) MarkCompleted(migrated int) {
	now := time.Now()
	j.status = JobCompleted
	j.recordsMigrated = migrated
	j.completedAt = &now
	j.updatedAt = now
}

// MarkFailed transitions the job to failed, recording the migrated count so far and the cause.
func (j *MigrationJob) MarkFailed(migrated int, err error) {
	now := time.Now()
	j.status = JobFailed
	j.recordsMigrated = migrated
	if err != nil {
		j.errorMessage = err.Error()
	}
	j.completedAt = &now
	j.updatedAt = now
}

// Validate checks that the job references both datasets and holds a known status.
func (j *MigrationJob) Validate() error {
	if j.sourceWorkspace == "" || j.sourceDataset == "" {
		return fmt.Errorf("migration job missing source dataset reference")
	}
	if j.targetWorkspace == "" || j.targetDataset == "" {
		return fmt.Errorf("migration job missing target dataset reference")
	}
	switch j.status {
	case JobPending, JobRunning, JobCompleted, JobFailed:
	default:
		return fmt.Errorf("invalid job status: %s", j.status)
	}
	return nil
}

var _ Model = (*MigrationJob)(nil)
