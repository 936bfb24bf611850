package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/annolab/anx/internal/models"
	"github.com/annolab/anx/internal/shared"
)

// JobRepository implements models.Repository[*models.MigrationJob] for migration tracking.
//
// Handles migration job CRUD operations with soft delete support and status-based queries.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository with the given database connection
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new migration job into the database with generated ID and sequence
func (r *JobRepository) Create(job *models.MigrationJob) error {
	sequence, err := NextSequence(r.db, "jobs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	job.SetID(id)
	job.SetSequence(sequence)

	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO jobs (
			id, sequence, source_workspace, source_dataset,
			target_workspace, target_dataset, status, records_total,
			records_migrated, error_message, started_at, completed_at,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var errorMessage any = job.ErrorMessage()
	if errorMessage == "" {
		errorMessage = nil
	}

	_, err = r.db.Exec(query,
		id,
		sequence,
		job.SourceWorkspace(),
		job.SourceDataset(),
		job.TargetWorkspace(),
		job.TargetDataset(),
		string(job.Status()),
		job.RecordsTotal(),
		job.RecordsMigrated(),
		errorMessage,
		job.StartedAt(),
		job.CompletedAt(),
		job.CreatedAt(),
		job.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	return nil
}

// Get retrieves a migration job by ID, excluding soft-deleted jobs
func (r *JobRepository) Get(id string) (*models.MigrationJob, error) {
	query := `
		SELECT
			id, sequence, source_workspace, source_dataset,
			target_workspace, target_dataset, status, records_total,
			records_migrated, error_message, started_at, completed_at,
			created_at, updated_at, deleted_at
		FROM jobs
		WHERE id = ? AND deleted_at IS NULL
	`

	return scanJob(r.db.QueryRow(query, id))
}

// Update modifies an existing migration job in the database
func (r *JobRepository) Update(job *models.MigrationJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	job.SetUpdatedAt(now)

	query := `
		UPDATE jobs
		SET status = ?, records_total = ?, records_migrated = ?,
			error_message = ?, started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	var errorMessage any = job.ErrorMessage()
	if errorMessage == "" {
		errorMessage = nil
	}

	result, err := r.db.Exec(query,
		string(job.Status()),
		job.RecordsTotal(),
		job.RecordsMigrated(),
		errorMessage,
		job.StartedAt(),
		job.CompletedAt(),
		now,
		job.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job not found or already deleted: %s", job.ID())
	}

	return nil
}

// Delete soft-deletes a migration job by ID
func (r *JobRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE jobs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all migration jobs matching the given criteria, excluding soft-deleted jobs
func (r *JobRepository) List(criteria map[string]any) ([]*models.MigrationJob, error) {
	query := `
		SELECT
			id, sequence, source_workspace, source_dataset,
			target_workspace, target_dataset, status, records_total,
			records_migrated, error_message, started_at, completed_at,
			created_at, updated_at, deleted_at
		FROM jobs
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if workspace, ok := criteria["source_workspace"].(string); ok && workspace != "" {
		query += " AND source_workspace = ?"
		args = append(args, workspace)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.MigrationJob
	for rows.Next() {
		job, err := scanJobRow(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return jobs, nil
}

// scanJob scans a single row into a [models.MigrationJob]
func scanJob(row *sql.Row) (*models.MigrationJob, error) {
	job, err := scanJobFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job not found")
	}
	return job, err
}

// scanJobRow scans a row from [sql.Rows] into a [models.MigrationJob]
func scanJobRow(rows *sql.Rows) (*models.MigrationJob, error) {
	return scanJobFields(rows.Scan)
}

func scanJobFields(scan func(...any) error) (*models.MigrationJob, error) {
	var (
		id              string
		sequence        int
		sourceWorkspace string
		sourceDataset   string
		targetWorkspace string
		targetDataset   string
		status          string
		recordsTotal    int
		recordsMigrated int
		errorMessage    sql.NullString
		startedAt       sql.NullTime
		completedAt     sql.NullTime
		createdAt       time.Time
		updatedAt       time.Time
		deletedAt       sql.NullTime
	)

	err := scan(&id, &sequence, &sourceWorkspace, &sourceDataset,
		&targetWorkspace, &targetDataset, &status, &recordsTotal,
		&recordsMigrated, &errorMessage, &startedAt, &completedAt,
		&createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	job := models.NewMigrationJob(sourceWorkspace, sourceDataset, targetWorkspace, targetDataset)
	job.SetID(id)
	job.SetSequence(sequence)
	job.SetStatus(models.JobStatus(status))
	job.SetRecordsTotal(recordsTotal)
	job.SetRecordsMigrated(recordsMigrated)
	if errorMessage.Valid {
		job.SetErrorMessage(errorMessage.String)
	}
	if startedAt.Valid {
		job.SetStartedAt(&startedAt.Time)
	}
	if completedAt.Valid {
		job.SetCompletedAt(&completedAt.Time)
	}
	job.SetCreatedAt(createdAt)
	job.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		job.SetDeletedAt(&deletedAt.Time)
	}

	return job, nil
}
