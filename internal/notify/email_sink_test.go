package notify

import (
	"context"
	"testing"

	"go-applicant-intake/internal/domain"
	"go-applicant-intake/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	data email.ApplicationEmailData
	att  *email.Attachment
	err  error
}

func (m *fakeMailer) SendApplicationEmail(data email.ApplicationEmailData, att *email.Attachment) error {
	m.data = data
	m.att = att
	return m.err
}

func TestEmailSink(t *testing.T) {
	t.Run("Should flatten the record and attach the resume", func(t *testing.T) {
		rec := sampleRecord()
		rec.Resume = &domain.ResumeBlob{
			Filename:     "cv.pdf",
			Encoded:      "aGk=",
			ExternalLink: "https://bucket/cv.pdf",
		}

		mailer := &fakeMailer{}
		sink := NewEmailSink(mailer)
		require.NoError(t, sink.Deliver(context.Background(), rec))

		assert.Equal(t, "Jane", mailer.data.FirstName)
		assert.Equal(t, "jane@x.com", mailer.data.Email)
		assert.Equal(t, "JS, SQL", mailer.data.Skills)
		assert.Len(t, mailer.data.Education, 2)
		assert.Len(t, mailer.data.Experience, 1)
		assert.Equal(t, "https://bucket/cv.pdf", mailer.data.ResumeLink)

		require.NotNil(t, mailer.att)
		assert.Equal(t, "cv.pdf", mailer.att.Filename)
		assert.Equal(t, "aGk=", mailer.att.ContentBase64)
	})

	t.Run("Should send without an attachment when no resume exists", func(t *testing.T) {
		mailer := &fakeMailer{}
		sink := NewEmailSink(mailer)
		require.NoError(t, sink.Deliver(context.Background(), sampleRecord()))
		assert.Nil(t, mailer.att)
	})

	t.Run("Should surface send errors to the fanout", func(t *testing.T) {
		mailer := &fakeMailer{err: assert.AnError}
		sink := NewEmailSink(mailer)
		assert.Error(t, sink.Deliver(context.Background(), sampleRecord()))
	})
}
