package notify

import (
	"context"
	"strings"
	"time"

	"go-applicant-intake/internal/domain"
	"go-applicant-intake/pkg/email"
)

// applicationMailer is the slice of pkg/email the sink needs.
type applicationMailer interface {
	SendApplicationEmail(data email.ApplicationEmailData, att *email.Attachment) error
}

// EmailSink mails each stored record to the configured recipient with the
// resume attached when one was uploaded.
type EmailSink struct {
	mailer applicationMailer
}

func NewEmailSink(mailer applicationMailer) *EmailSink {
	return &EmailSink{mailer: mailer}
}

func (s *EmailSink) Name() string { return "email" }

func (s *EmailSink) Deliver(_ context.Context, rec *domain.StoredRecord) error {
	data := email.ApplicationEmailData{
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		Email:       rec.Email,
		Phone:       rec.Phone,
		Profession:  rec.Profession,
		Address:     rec.Address,
		JobPosition: rec.JobPosition,
		Skills:      strings.Join(rec.Skills, ", "),
		SubmittedAt: rec.CreatedAt.Format(time.RFC1123),
	}
	for _, e := range rec.Education {
		data.Education = append(data.Education, email.EducationRow{
			HighestEducation: e.HighestEducation,
			FieldOfStudy:     e.FieldOfStudy,
			Institute:        e.Institute,
		})
	}
	for _, e := range rec.Experience {
		data.Experience = append(data.Experience, email.ExperienceRow{
			CompanyName:       e.CompanyName,
			PositionTitle:     e.PositionTitle,
			YearsOfExperience: e.YearsOfExperience,
		})
	}

	// The attachment rides the portable encoding; when no file was
	// uploaded the mail simply goes out without one.
	var att *email.Attachment
	if rec.Resume != nil {
		att = &email.Attachment{
			Filename:      rec.Resume.Filename,
			ContentBase64: rec.Resume.Encoded,
		}
		data.ResumeLink = rec.Resume.ExternalLink
	}

	return s.mailer.SendApplicationEmail(data, att)
}
