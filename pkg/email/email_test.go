package email_test

import (
	"testing"

	"go-applicant-intake/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderApplicationEmail(t *testing.T) {
	data := email.ApplicationEmailData{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane@x.com",
		Phone:      "555",
		Profession: "Engineer",
		Education: []email.EducationRow{
			{HighestEducation: "BSc", FieldOfStudy: "CS", Institute: "X"},
			{HighestEducation: "MSc", FieldOfStudy: "AI", Institute: "Y"},
		},
		Experience: []email.ExperienceRow{
			{CompanyName: "Co1", PositionTitle: "Eng", YearsOfExperience: 3},
		},
		Skills:     "JS, SQL",
		ResumeLink: "https://bucket/cv.pdf",
	}

	body, err := email.RenderApplicationEmail(data)
	require.NoError(t, err)

	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "jane@x.com")
	assert.Contains(t, body, "BSc")
	assert.Contains(t, body, "AI")
	assert.Contains(t, body, "Co1")
	assert.Contains(t, body, "JS, SQL")
	assert.Contains(t, body, "https://bucket/cv.pdf")
}

func TestRenderApplicationEmailEscapesHTML(t *testing.T) {
	data := email.ApplicationEmailData{
		FirstName: "<script>alert(1)</script>",
		LastName:  "Doe",
	}

	body, err := email.RenderApplicationEmail(data)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>alert(1)</script>")
}

func TestRenderApplicationEmailOmitsEmptySections(t *testing.T) {
	body, err := email.RenderApplicationEmail(email.ApplicationEmailData{
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "Education:")
	assert.NotContains(t, body, "Experience:")
	assert.NotContains(t, body, "Resume:")
}
