package jobs

import (
	"context"
	"time"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeImportBatch represents a CSV import-batch job.
	JobTypeImportBatch JobType = "import_batch"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// ImportBatchJob represents one run of the CSV import pipeline over a
// directory of scraper drops.
type ImportBatchJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// CSVDir is the directory holding the exports to import.
	CSVDir string `json:"csv_dir"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	// Imported is the number of transactions the run appended.
	Imported int `json:"imported"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	// RetryCount is the number of times this job has been retried.
	RetryCount int `json:"retry_count"`

	// MaxRetries is the maximum number of retries allowed.
	MaxRetries int `json:"max_retries"`
}

// Job is a generic interface for all job types.
type Job interface {
	GetID() string
	GetType() JobType
	GetStatus() JobStatus
}

// GetID implements the Job interface.
func (j *ImportBatchJob) GetID() string {
	return j.JobID
}

// GetType implements the Job interface.
func (j *ImportBatchJob) GetType() JobType {
	return JobTypeImportBatch
}

// GetStatus implements the Job interface.
func (j *ImportBatchJob) GetStatus() JobStatus {
	return j.Status
}

// Publisher defines the interface for publishing jobs to a queue. The
// abstraction allows swapping the in-memory queue for Cloud Tasks or
// Pub/Sub without touching callers.
type Publisher interface {
	// PublishImportBatch publishes an import-batch job.
	PublishImportBatch(ctx context.Context, job *ImportBatchJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs; handler is called for each job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler processes one job. A returned error marks the job failed and
// eligible for retry.
type JobHandler func(ctx context.Context, job Job) error

// JobStore stores and retrieves job state, so runs can be inspected after
// the fact.
type JobStore interface {
	SaveJob(ctx context.Context, job *ImportBatchJob) error
	GetJob(ctx context.Context, jobID string) (*ImportBatchJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*ImportBatchJob, error)
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	// Status filters jobs by status.
	Status JobStatus

	// Limit limits the number of results; zero means no limit.
	Limit int
}
