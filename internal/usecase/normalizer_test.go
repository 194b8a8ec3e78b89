package usecase_test

import (
	"testing"

	"go-applicant-intake/internal/domain"
	"go-applicant-intake/internal/usecase"
	"go-applicant-intake/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseFields() map[string][]string {
	return map[string][]string{
		"firstName": {"Jane"},
		"lastName":  {"Doe"},
		"email":     {"jane@x.com"},
		"phone":     {"555"},
	}
}

func TestNormalizeSubmission(t *testing.T) {
	validate := validator.New()

	t.Run("Should zip parallel arrays positionally", func(t *testing.T) {
		fields := baseFields()
		fields["highestEducation"] = []string{"BSc", "MSc"}
		fields["fieldOfStudy"] = []string{"CS", "AI"}
		fields["institute"] = []string{"X", "Y"}
		fields["companyName"] = []string{"Co1"}
		fields["positionTitle"] = []string{"Eng"}
		fields["yearsOfExperience"] = []string{"3"}
		fields["skills"] = []string{"JS,SQL"}

		sub, err := usecase.NormalizeSubmission(validate, fields)
		require.NoError(t, err)

		require.Len(t, sub.Education, 2)
		assert.Equal(t, domain.EducationEntry{HighestEducation: "BSc", FieldOfStudy: "CS", Institute: "X"}, sub.Education[0])
		assert.Equal(t, domain.EducationEntry{HighestEducation: "MSc", FieldOfStudy: "AI", Institute: "Y"}, sub.Education[1])

		require.Len(t, sub.Experience, 1)
		assert.Equal(t, domain.ExperienceEntry{CompanyName: "Co1", PositionTitle: "Eng", YearsOfExperience: 3}, sub.Experience[0])

		assert.Equal(t, []string{"JS", "SQL"}, sub.Skills)
		assert.Nil(t, sub.Resume)
	})

	t.Run("Should reject unequal parallel array lengths", func(t *testing.T) {
		fields := baseFields()
		fields["highestEducation"] = []string{"BSc", "MSc"}
		fields["fieldOfStudy"] = []string{"CS"}
		fields["institute"] = []string{"X", "Y"}

		sub, err := usecase.NormalizeSubmission(validate, fields)
		require.Error(t, err)
		assert.Nil(t, sub)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Contains(t, appErr.Message, "education")
	})

	t.Run("Should treat a scalar entry like a one-element array", func(t *testing.T) {
		scalar := baseFields()
		scalar["highestEducation"] = []string{"BSc"}
		scalar["fieldOfStudy"] = []string{"CS"}
		scalar["institute"] = []string{"X"}

		fromScalar, err := usecase.NormalizeSubmission(validate, scalar)
		require.NoError(t, err)
		require.Len(t, fromScalar.Education, 1)
		assert.Equal(t, domain.EducationEntry{HighestEducation: "BSc", FieldOfStudy: "CS", Institute: "X"}, fromScalar.Education[0])
	})

	t.Run("Should accept bracket-suffixed group keys", func(t *testing.T) {
		fields := baseFields()
		fields["highestEducation[]"] = []string{"BSc"}
		fields["fieldOfStudy[]"] = []string{"CS"}
		fields["institute[]"] = []string{"X"}

		sub, err := usecase.NormalizeSubmission(validate, fields)
		require.NoError(t, err)
		require.Len(t, sub.Education, 1)
		assert.Equal(t, "BSc", sub.Education[0].HighestEducation)
	})

	t.Run("Should fail when required scalar fields are missing", func(t *testing.T) {
		fields := baseFields()
		delete(fields, "email")

		_, err := usecase.NormalizeSubmission(validate, fields)
		require.Error(t, err)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Contains(t, appErr.Message, "Email")
	})

	t.Run("Should fail when a required field is blank", func(t *testing.T) {
		fields := baseFields()
		fields["firstName"] = []string{"   "}

		_, err := usecase.NormalizeSubmission(validate, fields)
		require.Error(t, err)
	})

	t.Run("Should split a single delimited skills string", func(t *testing.T) {
		fields := baseFields()
		fields["skills"] = []string{" Go , SQL ,, Docker "}

		sub, err := usecase.NormalizeSubmission(validate, fields)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "SQL", "Docker"}, sub.Skills)
	})

	t.Run("Should keep repeated skills values in order", func(t *testing.T) {
		fields := baseFields()
		fields["skills"] = []string{"Go", "SQL", "Docker"}

		sub, err := usecase.NormalizeSubmission(validate, fields)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "SQL", "Docker"}, sub.Skills)
	})

	t.Run("Should reject non-numeric years of experience", func(t *testing.T) {
		fields := baseFields()
		fields["companyName"] = []string{"Co1"}
		fields["positionTitle"] = []string{"Eng"}
		fields["yearsOfExperience"] = []string{"three"}

		_, err := usecase.NormalizeSubmission(validate, fields)
		require.Error(t, err)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("Should allow empty groups and optional fields", func(t *testing.T) {
		sub, err := usecase.NormalizeSubmission(validate, baseFields())
		require.NoError(t, err)
		assert.Empty(t, sub.Education)
		assert.Empty(t, sub.Experience)
		assert.Empty(t, sub.Skills)
		assert.Empty(t, sub.Profession)
		assert.Empty(t, sub.JobPosition)
	})
}
