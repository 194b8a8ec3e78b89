package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-applicant-intake/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type submissionRepo struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates the append-only application store
func NewSubmissionRepository(db *pgxpool.Pool) domain.SubmissionRepository {
	return &submissionRepo{db: db}
}

// Create inserts one application record. The table has no update or delete
// path; every submission becomes one immutable row.
func (r *submissionRepo) Create(ctx context.Context, sub *domain.Submission) (*domain.StoredRecord, error) {
	query := `
		INSERT INTO applications
			(id, first_name, last_name, email, phone, profession, address,
			 education, experience, skills, job_position,
			 resume_filename, resume_base64, resume_link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	education, err := json.Marshal(sub.Education)
	if err != nil {
		return nil, fmt.Errorf("failed to encode education: %w", err)
	}
	experience, err := json.Marshal(sub.Experience)
	if err != nil {
		return nil, fmt.Errorf("failed to encode experience: %w", err)
	}
	skills, err := json.Marshal(sub.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}

	var resumeFilename, resumeBase64, resumeLink *string
	if sub.Resume != nil {
		resumeFilename = &sub.Resume.Filename
		resumeBase64 = &sub.Resume.Encoded
		if sub.Resume.ExternalLink != "" {
			resumeLink = &sub.Resume.ExternalLink
		}
	}

	rec := &domain.StoredRecord{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Submission: *sub,
	}

	_, err = r.db.Exec(ctx, query,
		rec.ID,
		sub.FirstName,
		sub.LastName,
		sub.Email,
		sub.Phone,
		sub.Profession,
		sub.Address,
		// JSON text, not raw bytes: []byte would encode as bytea
		string(education),
		string(experience),
		string(skills),
		sub.JobPosition,
		resumeFilename,
		resumeBase64,
		resumeLink,
		rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns every stored application, oldest first. The offline resume
// export job is the only consumer.
func (r *submissionRepo) List(ctx context.Context) ([]domain.StoredRecord, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, profession, address,
		       education, experience, skills, job_position,
		       resume_filename, resume_base64, resume_link, created_at
		FROM applications
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.StoredRecord
	for rows.Next() {
		var (
			rec                                   domain.StoredRecord
			education, experience, skills         []byte
			resumeFilename, resumeB64, resumeLink *string
		)
		if err := rows.Scan(
			&rec.ID, &rec.FirstName, &rec.LastName, &rec.Email, &rec.Phone,
			&rec.Profession, &rec.Address,
			&education, &experience, &skills, &rec.JobPosition,
			&resumeFilename, &resumeB64, &resumeLink, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(education, &rec.Education); err != nil {
			return nil, fmt.Errorf("failed to decode education for %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal(experience, &rec.Experience); err != nil {
			return nil, fmt.Errorf("failed to decode experience for %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal(skills, &rec.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills for %s: %w", rec.ID, err)
		}

		if resumeB64 != nil {
			rec.Resume = &domain.ResumeBlob{Encoded: *resumeB64}
			if resumeFilename != nil {
				rec.Resume.Filename = *resumeFilename
			}
			if resumeLink != nil {
				rec.Resume.ExternalLink = *resumeLink
			}
		}

		records = append(records, rec)
	}
	return records, rows.Err()
}
