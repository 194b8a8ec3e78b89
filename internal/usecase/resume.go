package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"

	"go-applicant-intake/internal/domain"
	"go-applicant-intake/pkg/apperror"

	"github.com/google/uuid"
)

// Uploader stores a resume externally and returns a shareable link.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// ResumeHandler converts an uploaded resume into its portable base64 form
// and, when an uploader is configured, a best-effort external link.
type ResumeHandler struct {
	store     Uploader // nil when object-storage upload is disabled
	uploadDir string
	log       *slog.Logger
}

func NewResumeHandler(store Uploader, uploadDir string, log *slog.Logger) *ResumeHandler {
	return &ResumeHandler{
		store:     store,
		uploadDir: uploadDir,
		log:       log,
	}
}

// Handle processes an optional uploaded file. The returned blob's encoded
// bytes round-trip exactly to the uploaded bytes. The temporary on-disk copy
// is removed on every exit path. Upload failure is non-fatal: the pipeline
// proceeds with the inline encoding and no link.
func (h *ResumeHandler) Handle(ctx context.Context, fh *multipart.FileHeader) (*domain.ResumeBlob, error) {
	if fh == nil {
		return nil, nil
	}

	src, err := fh.Open()
	if err != nil {
		return nil, apperror.BadRequest("failed to open uploaded resume")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperror.BadRequest("failed to read uploaded resume")
	}

	blob := &domain.ResumeBlob{
		Filename: filepath.Base(fh.Filename),
		Data:     data,
		Encoded:  base64.StdEncoding.EncodeToString(data),
	}

	if h.store != nil {
		if link, err := h.uploadCopy(ctx, blob, contentType(fh)); err != nil {
			// Non-fatal: the inline encoding is the record of truth.
			h.log.Warn("resume upload failed, continuing without link",
				"filename", blob.Filename, "error", err)
		} else {
			blob.ExternalLink = link
		}
	}

	return blob, nil
}

// uploadCopy stages the resume in a scoped temporary file and uploads it.
// The file is deleted before returning regardless of outcome.
func (h *ResumeHandler) uploadCopy(ctx context.Context, blob *domain.ResumeBlob, contentType string) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	tmp, err := os.CreateTemp(h.uploadDir, "resume-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(blob.Data); err != nil {
		return "", fmt.Errorf("failed to stage resume: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind staged resume: %w", err)
	}

	key := fmt.Sprintf("resumes/%s_%s", uuid.NewString(), blob.Filename)
	return h.store.Upload(ctx, key, contentType, tmp)
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
