package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"go-applicant-intake/internal/domain"
	"go-applicant-intake/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type submissionUsecase struct {
	repo     domain.SubmissionRepository
	resume   *ResumeHandler
	notifier domain.Notifier
	validate *validator.Validate
	log      *slog.Logger
}

// NewSubmissionUsecase wires the submission orchestrator. notifier may be
// nil when no sink is configured.
func NewSubmissionUsecase(
	repo domain.SubmissionRepository,
	resume *ResumeHandler,
	notifier domain.Notifier,
	validate *validator.Validate,
	log *slog.Logger,
) domain.SubmissionUsecase {
	return &submissionUsecase{
		repo:     repo,
		resume:   resume,
		notifier: notifier,
		validate: validate,
		log:      log,
	}
}

// Submit runs one request through the pipeline: normalize, handle the
// resume, persist, fan out. It returns once the record is durable; the
// fanout runs detached and never influences the outcome.
func (uc *submissionUsecase) Submit(ctx context.Context, fields map[string][]string, file *multipart.FileHeader) (*domain.StoredRecord, error) {
	sub, err := NormalizeSubmission(uc.validate, fields)
	if err != nil {
		return nil, err
	}

	blob, err := uc.resume.Handle(ctx, file)
	if err != nil {
		return nil, err
	}
	sub.Resume = blob

	// The audit record must be written even if the caller disconnects
	// mid-request.
	rec, err := uc.repo.Create(context.WithoutCancel(ctx), sub)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to persist submission: %w", err))
	}

	// Persist-then-notify: no sink ever sees a record that is not durable.
	// The response does not wait on sinks; the detached goroutine joins
	// every attempt before logging the settled outcome.
	if uc.notifier != nil {
		go uc.dispatch(context.WithoutCancel(ctx), rec)
	}

	return rec, nil
}

func (uc *submissionUsecase) dispatch(ctx context.Context, rec *domain.StoredRecord) {
	results := uc.notifier.Dispatch(ctx, rec)
	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	uc.log.Info("notification fanout settled",
		"record_id", rec.ID,
		"sinks", len(results),
		"failed", failed,
	)
}
