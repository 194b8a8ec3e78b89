package domain

import (
	"context"
	"encoding/base64"
	"mime/multipart"
	"time"
)

// EducationEntry is one row of the education group, composed positionally
// from the form's parallel arrays.
type EducationEntry struct {
	HighestEducation string `json:"highestEducation"`
	FieldOfStudy     string `json:"fieldOfStudy"`
	Institute        string `json:"institute"`
}

// ExperienceEntry is one row of the experience group.
type ExperienceEntry struct {
	CompanyName       string  `json:"companyName"`
	PositionTitle     string  `json:"positionTitle"`
	YearsOfExperience float64 `json:"yearsOfExperience"`
}

// ResumeBlob carries an uploaded resume. Encoded is always set when a file
// was uploaded; ExternalLink is only set when the object-storage upload
// succeeded.
type ResumeBlob struct {
	Filename     string `json:"filename"`
	Data         []byte `json:"-"`
	Encoded      string `json:"encoded"`
	ExternalLink string `json:"externalLink,omitempty"`
}

// Decode restores the original uploaded bytes from the portable encoding.
func (b *ResumeBlob) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(b.Encoded)
}

// Submission is the canonical, array-shape-resolved application form.
// Downstream components never see the raw form encoding.
type Submission struct {
	FirstName   string            `json:"firstName" validate:"required"`
	LastName    string            `json:"lastName" validate:"required"`
	Email       string            `json:"email" validate:"required,email"`
	Phone       string            `json:"phone" validate:"required"`
	Profession  string            `json:"profession,omitempty"`
	Address     string            `json:"address,omitempty"`
	Education   []EducationEntry  `json:"education"`
	Experience  []ExperienceEntry `json:"experience"`
	Skills      []string          `json:"skills"`
	Resume      *ResumeBlob       `json:"resume,omitempty"`
	JobPosition string            `json:"jobPosition,omitempty"`
}

// StoredRecord is a persisted submission. Records are append-only: once
// created they are never updated or deleted, forming an audit trail.
type StoredRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Submission
}

// SubmissionRepository persists canonical submissions. There is deliberately
// no update or delete path.
type SubmissionRepository interface {
	// Create durably stores the submission and returns it with a
	// server-generated identifier and creation timestamp.
	Create(ctx context.Context, sub *Submission) (*StoredRecord, error)
	// List returns every stored record, oldest first. Used by the offline
	// resume export job.
	List(ctx context.Context) ([]StoredRecord, error)
}

// Sink is one independent downstream consumer of a persisted record.
// Deliver is attempted exactly once per record; failures are isolated to
// the sink and never affect persistence or other sinks.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, rec *StoredRecord) error
}

// SinkResult is the settled outcome of one sink's delivery attempt.
type SinkResult struct {
	Sink    string
	Err     error
	Elapsed time.Duration
}

func (r SinkResult) OK() bool { return r.Err == nil }

// Notifier dispatches a persisted record to every configured sink and
// reports per-sink outcomes. Dispatch never returns an error: sink failures
// are captured in the results, not propagated.
type Notifier interface {
	Dispatch(ctx context.Context, rec *StoredRecord) []SinkResult
}

// SubmissionUsecase orchestrates one submission end to end:
// normalize, handle the resume, persist, fan out.
type SubmissionUsecase interface {
	Submit(ctx context.Context, fields map[string][]string, file *multipart.FileHeader) (*StoredRecord, error)
}
