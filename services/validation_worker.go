package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"activity-portal-api/config"
	"activity-portal-api/models"

	"gorm.io/gorm"
)

// ErrQueueFull is returned by Enqueue when the validation backlog is full.
var ErrQueueFull = errors.New("validation queue is full")

// ValidationWorker runs document validation off the request path. Each job
// gets a bounded number of attempts; when every attempt fails the
// submission still advances to manual review with a visible critical
// finding, so a dead validation service can never strand a submission in
// Pending Validation.
type ValidationWorker struct {
	db        *gorm.DB
	validator Validator

	jobs           chan string
	maxAttempts    int
	retryDelay     time.Duration
	attemptTimeout time.Duration
}

// NewValidationWorker constructs a worker. A nil db falls back to the
// global connection, matching how other services are wired.
func NewValidationWorker(db *gorm.DB, validator Validator) *ValidationWorker {
	if db == nil {
		db = config.DB
	}

	maxAttempts := 3
	if raw := os.Getenv("VALIDATION_MAX_ATTEMPTS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			maxAttempts = parsed
		}
	}

	return &ValidationWorker{
		db:             db,
		validator:      validator,
		jobs:           make(chan string, 64),
		maxAttempts:    maxAttempts,
		retryDelay:     10 * time.Second,
		attemptTimeout: 60 * time.Second,
	}
}

// Start consumes jobs until ctx is canceled.
func (w *ValidationWorker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case submissionID := <-w.jobs:
				w.Process(ctx, submissionID)
			}
		}
	}()
}

// Enqueue schedules a submission for validation.
func (w *ValidationWorker) Enqueue(submissionID string) error {
	select {
	case w.jobs <- submissionID:
		return nil
	default:
		return ErrQueueFull
	}
}

// Process validates one submission and advances its status. Exported so
// tests and the trigger endpoint's synchronous mode can drive it directly.
func (w *ValidationWorker) Process(ctx context.Context, submissionID string) {
	var submission models.Submission
	if err := w.db.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		log.Printf("Validation job dropped, submission %s not found: %v", submissionID, err)
		return
	}

	if submission.Status != models.StatusPendingValidation {
		log.Printf("Validation skipped for %s: status is %q", submissionID, submission.Status)
		return
	}

	newComments := w.runValidation(ctx, &submission)

	oldStatus := submission.Status
	newStatus, err := Transition(oldStatus, ActionValidationComplete, "")
	if err != nil {
		log.Printf("Validation transition failed for %s: %v", submissionID, err)
		return
	}

	comments := append(submission.Comments, newComments...)
	updates := map[string]interface{}{
		"status":     newStatus,
		"comments":   comments,
		"updated_at": time.Now(),
	}
	if err := w.db.Model(&models.Submission{}).Where("id = ?", submission.ID).Updates(updates).Error; err != nil {
		log.Printf("Failed to store validation result for %s: %v", submissionID, err)
		return
	}

	RecordStatusChange(w.db, "system", "automated-validation", &submission, oldStatus, newStatus)
}

// runValidation performs the bounded retry loop and maps the outcome to
// comment entries.
func (w *ValidationWorker) runValidation(ctx context.Context, submission *models.Submission) []models.Comment {
	if len(submission.Documents) == 0 {
		comment := models.NewComment("Automated Validation", "system",
			"No documents were attached; the submission moves directly to manual review.")
		comment.Severity = "info"
		comment.Field = "documents"
		return []models.Comment{comment}
	}

	documentPath := w.localDocumentPath(submission.Documents[len(submission.Documents)-1])

	var findings []Finding
	var lastErr error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, w.attemptTimeout)
		findings, lastErr = w.validator.Validate(attemptCtx, submission.FormType, documentPath)
		cancel()

		if lastErr == nil {
			return findingComments(findings)
		}

		log.Printf("Validation attempt %d/%d failed for %s: %v", attempt, w.maxAttempts, submission.ID, lastErr)
		if attempt < w.maxAttempts {
			select {
			case <-ctx.Done():
				attempt = w.maxAttempts
			case <-time.After(w.retryDelay):
			}
		}
	}

	failure := models.NewComment("Automated Validation", "system",
		fmt.Sprintf("Automated validation failed after %d attempts; the document requires manual review.", w.maxAttempts))
	failure.Field = "document-validation"
	failure.Severity = "critical"
	failure.SuggestedFix = "Check the server logs for more details."
	return []models.Comment{failure}
}

// localDocumentPath maps a stored "/uploads/name.pdf" reference to the
// file on disk.
func (w *ValidationWorker) localDocumentPath(reference string) string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return filepath.Join(uploadPath, path.Base(reference))
}

func findingComments(findings []Finding) []models.Comment {
	if len(findings) == 0 {
		comment := models.NewComment("Automated Validation", "system",
			"Automated validation found no issues.")
		comment.Severity = "info"
		return []models.Comment{comment}
	}

	comments := make([]models.Comment, 0, len(findings))
	for _, f := range findings {
		comment := models.NewComment("Automated Validation", "system", f.Message)
		comment.Field = f.Field
		comment.Severity = f.Severity
		comment.SuggestedFix = f.SuggestedFix
		comments = append(comments, comment)
	}
	return comments
}
