package sheets

import (
	"context"
	"fmt"

	"vmake/models"
)

// AppendResult reports where a submission row landed.
type AppendResult struct {
	SubmissionID string `json:"submissionId,omitempty"`
	UpdatedRange string `json:"updatedRange,omitempty"`
}

// Repo is the row-store behind project submissions. One row per submission,
// columns A:J on append, K:M overwritten on status update.
type Repo interface {
	Append(ctx context.Context, sub models.ProjectSubmission, results *models.ProjectResults) (*AppendResult, error)
	Projects(ctx context.Context) ([]models.StoredProject, error)
	UpdateStatus(ctx context.Context, upd models.StatusUpdate) error
}

// StoreError wraps a failure of the backing spreadsheet call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("storeError: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NotFoundError signals that no row matched the update key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notFoundError: no project found for %q", e.Key)
}
