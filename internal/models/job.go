package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// JobStatus represents the status of a job in the queue
type JobStatus string

const (
	JobStatusPending           JobStatus = "pending"
	JobStatusProcessing        JobStatus = "processing"
	JobStatusCompleted         JobStatus = "completed"
	JobStatusFailed            JobStatus = "failed"
	JobStatusPermanentlyFailed JobStatus = "permanently_failed"
	JobStatusCancelled         JobStatus = "cancelled"
)

// JobType represents the task name a job was submitted under
type JobType string

const (
	JobTypePodcastDownload JobType = "podcast-download"
)

// Job represents a background job in the queue
type Job struct {
	gorm.Model
	Type           JobType    `json:"type" gorm:"not null;index:idx_jobs_type_status"`
	Exchange       string     `json:"exchange" gorm:"index"`
	Status         JobStatus  `json:"status" gorm:"default:'pending';index:idx_jobs_type_status;index:idx_jobs_status_priority"`
	Payload        JobPayload `json:"payload" gorm:"type:json"`
	Priority       int        `json:"priority" gorm:"default:0;index:idx_jobs_status_priority"`
	MaxRetries     int        `json:"max_retries" gorm:"default:3"`
	RetryCount     int        `json:"retry_count" gorm:"default:0"`
	StartedAt      *time.Time `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	LastFailedAt   *time.Time `json:"last_failed_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at" gorm:"index"`
	Error          string     `json:"error,omitempty"`
	Result         JobResult  `json:"result,omitempty" gorm:"type:json"`
	WorkerID       string     `json:"worker_id,omitempty"`
}

// JobPayload represents the input data for a job
type JobPayload map[string]interface{}

// Value implements driver.Valuer interface for JobPayload
func (p JobPayload) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner interface for JobPayload
func (p *JobPayload) Scan(value interface{}) error {
	return scanJSON(value, (*map[string]interface{})(p))
}

// JobResult represents the output data from a completed job
type JobResult map[string]interface{}

// Value implements driver.Valuer interface for JobResult
func (r JobResult) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner interface for JobResult
func (r *JobResult) Scan(value interface{}) error {
	return scanJSON(value, (*map[string]interface{})(r))
}

func scanJSON(value interface{}, dst *map[string]interface{}) error {
	switch v := value.(type) {
	case nil:
		*dst = make(map[string]interface{})
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
}

// IsRetryable returns true if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// IsTerminal returns true if the job is in a terminal state
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted ||
		j.Status == JobStatusCancelled ||
		j.Status == JobStatusPermanentlyFailed ||
		(j.Status == JobStatusFailed && !j.IsRetryable())
}

// GetPayloadString safely retrieves a string value from the payload
func (j *Job) GetPayloadString(key string) (string, bool) {
	return lookupString(j.Payload, key)
}

// GetPayloadInt safely retrieves an int value from the payload
func (j *Job) GetPayloadInt(key string) (int, bool) {
	return lookupInt(j.Payload, key)
}

// GetResultString safely retrieves a string value from the result
func (j *Job) GetResultString(key string) (string, bool) {
	return lookupString(j.Result, key)
}

// GetResultInt safely retrieves an int value from the result
func (j *Job) GetResultInt(key string) (int, bool) {
	return lookupInt(j.Result, key)
}

// SetResult sets a result value
func (j *Job) SetResult(key string, value interface{}) {
	if j.Result == nil {
		j.Result = make(JobResult)
	}
	j.Result[key] = value
}

func lookupString(m map[string]interface{}, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	str, ok := m[key].(string)
	return str, ok
}

func lookupInt(m map[string]interface{}, key string) (int, bool) {
	if m == nil {
		return 0, false
	}

	// JSON numbers decode as float64
	switch v := m[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// TableName specifies the table name for GORM
func (Job) TableName() string {
	return "jobs"
}
