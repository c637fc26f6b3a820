package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
)

// RequestStatus is the state of a generation request.
type RequestStatus string

const (
	StatusQueued     RequestStatus = "queued"
	StatusProcessing RequestStatus = "processing"
	StatusDone       RequestStatus = "done"
	StatusError      RequestStatus = "error"
	StatusCancelled  RequestStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == StatusDone || s == StatusError || s == StatusCancelled
}

// Generation types understood by the lifecycle. Providers interpret the
// generation parameter bag themselves; these only drive user statistics.
const (
	GenerationTypeText2Image  = "text2image"
	GenerationTypeImage2Image = "image2image"
	GenerationTypeText2Video  = "text2video"
	GenerationTypeImage2Video = "image2video"
)

// GenRequest is one unit of billable generation work. It is created in the
// queued state with funds already debited and moves through exactly one of
// the terminal states done, error or cancelled.
type GenRequest struct {
	ID              uint64
	RunCode         string
	UserID          uint64
	ChatID          int64
	ModelID         uint64
	ModelSlug       string
	Prompt          string
	GenerationType  string
	Quantity        int
	InputImages     []string
	GenerationParams map[string]any

	Cost    decimal.Decimal
	CostUSD decimal.Decimal

	Status          RequestStatus
	TransactionID   *uint64
	ParentRequestID *uint64

	ResultURLs   []string
	FileSizes    []int64
	ErrorMessage string

	Duration        *int
	VideoResolution string
	AspectRatio     string

	CreatedAt      time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
	ProcessingTime float64
}

// NewRunCode returns a unique identifier for a generation run.
func NewRunCode() string {
	return uuid.NewString()
}

// Start moves the request into processing.
func (r *GenRequest) Start(now time.Time) error {
	if r.Status != StatusQueued {
		return errs.NewValidationError("generation request is not queued")
	}
	r.Status = StatusProcessing
	r.StartedAt = &now
	return nil
}

// Complete resolves the request as done and stores results. ProcessingTime is
// derived when the request was started.
func (r *GenRequest) Complete(resultURLs []string, fileSizes []int64, now time.Time) error {
	if r.Status.Terminal() {
		return errs.NewValidationError("generation request is already resolved")
	}
	r.Status = StatusDone
	r.CompletedAt = &now
	r.ResultURLs = resultURLs
	r.FileSizes = fileSizes
	r.computeProcessingTime(now)
	return nil
}

// Fail resolves the request as errored.
func (r *GenRequest) Fail(errorMessage string, now time.Time) error {
	if r.Status.Terminal() {
		return errs.NewValidationError("generation request is already resolved")
	}
	r.Status = StatusError
	r.ErrorMessage = errorMessage
	r.CompletedAt = &now
	r.computeProcessingTime(now)
	return nil
}

// Cancel resolves the request as cancelled.
func (r *GenRequest) Cancel(now time.Time) error {
	if r.Status.Terminal() {
		return errs.NewValidationError("generation request is already resolved")
	}
	r.Status = StatusCancelled
	r.CompletedAt = &now
	r.computeProcessingTime(now)
	return nil
}

func (r *GenRequest) computeProcessingTime(now time.Time) {
	if r.StartedAt != nil {
		r.ProcessingTime = now.Sub(*r.StartedAt).Seconds()
	}
}
