package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"go-applicant-intake/internal/domain"
	"go-applicant-intake/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// Form field names as sent by the web form. Repeated-group fields may arrive
// either as repeated keys ("institute") or PHP-style bracket keys
// ("institute[]"); both are accepted.
const (
	fieldFirstName        = "firstName"
	fieldLastName         = "lastName"
	fieldEmail            = "email"
	fieldPhone            = "phone"
	fieldProfession       = "profession"
	fieldAddress          = "address"
	fieldJobPosition      = "jobPosition"
	fieldSkills           = "skills"
	fieldHighestEducation = "highestEducation"
	fieldFieldOfStudy     = "fieldOfStudy"
	fieldInstitute        = "institute"
	fieldCompanyName      = "companyName"
	fieldPositionTitle    = "positionTitle"
	fieldYearsExperience  = "yearsOfExperience"
)

// NormalizeSubmission turns the raw multipart field map into a canonical
// Submission. It is a pure transformation: no I/O, no side effects.
//
// Repeated groups (education, experience) arrive as parallel arrays, one per
// sub-field. Entry i across a group's arrays composes one logical entry, in
// original order. Unequal lengths within a group are rejected outright rather
// than truncated or padded: silent truncation would misattribute an
// applicant's education or experience data.
func NormalizeSubmission(validate *validator.Validate, fields map[string][]string) (*domain.Submission, error) {
	sub := &domain.Submission{
		FirstName:   scalar(fields, fieldFirstName),
		LastName:    scalar(fields, fieldLastName),
		Email:       scalar(fields, fieldEmail),
		Phone:       scalar(fields, fieldPhone),
		Profession:  scalar(fields, fieldProfession),
		Address:     scalar(fields, fieldAddress),
		JobPosition: scalar(fields, fieldJobPosition),
	}

	education, err := zipEducation(
		group(fields, fieldHighestEducation),
		group(fields, fieldFieldOfStudy),
		group(fields, fieldInstitute),
	)
	if err != nil {
		return nil, err
	}
	sub.Education = education

	experience, err := zipExperience(
		group(fields, fieldCompanyName),
		group(fields, fieldPositionTitle),
		group(fields, fieldYearsExperience),
	)
	if err != nil {
		return nil, err
	}
	sub.Experience = experience

	sub.Skills = normalizeSkills(group(fields, fieldSkills))

	if err := validate.Struct(sub); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fe.Field())
			}
			return nil, apperror.BadRequest(fmt.Sprintf("missing or invalid required fields: %s", strings.Join(missing, ", ")))
		}
		return nil, apperror.BadRequest(err.Error())
	}

	return sub, nil
}

// scalar returns the first trimmed value for the key. A single-valued field
// and a one-element array are indistinguishable in form encoding; both land
// here.
func scalar(fields map[string][]string, key string) string {
	if vals := fields[key]; len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}

// group collects a repeated sub-field's parallel array, coercing a scalar
// submission into a one-element sequence and accepting bracket-suffixed keys.
func group(fields map[string][]string, key string) []string {
	vals := append([]string(nil), fields[key]...)
	vals = append(vals, fields[key+"[]"]...)
	return vals
}

func zipEducation(highest, study, institute []string) ([]domain.EducationEntry, error) {
	n, err := groupLength("education", len(highest), len(study), len(institute))
	if err != nil {
		return nil, err
	}
	entries := make([]domain.EducationEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, domain.EducationEntry{
			HighestEducation: strings.TrimSpace(highest[i]),
			FieldOfStudy:     strings.TrimSpace(study[i]),
			Institute:        strings.TrimSpace(institute[i]),
		})
	}
	return entries, nil
}

func zipExperience(company, title, years []string) ([]domain.ExperienceEntry, error) {
	n, err := groupLength("experience", len(company), len(title), len(years))
	if err != nil {
		return nil, err
	}
	entries := make([]domain.ExperienceEntry, 0, n)
	for i := 0; i < n; i++ {
		yearVal, err := parseYears(years[i])
		if err != nil {
			return nil, apperror.BadRequest(fmt.Sprintf("experience entry %d: yearsOfExperience must be numeric", i+1))
		}
		entries = append(entries, domain.ExperienceEntry{
			CompanyName:       strings.TrimSpace(company[i]),
			PositionTitle:     strings.TrimSpace(title[i]),
			YearsOfExperience: yearVal,
		})
	}
	return entries, nil
}

// groupLength verifies that a group's parallel arrays agree on entry count.
// All-empty means the group was simply not filled in.
func groupLength(name string, lengths ...int) (int, error) {
	n := lengths[0]
	for _, l := range lengths[1:] {
		if l != n {
			return 0, apperror.BadRequest(fmt.Sprintf("%s fields must have the same number of entries", name))
		}
	}
	return n, nil
}

func parseYears(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// normalizeSkills accepts either one delimited string ("JS,SQL") or a
// repeated sequence, and yields trimmed non-empty values in order.
func normalizeSkills(values []string) []string {
	if len(values) == 1 {
		values = strings.Split(values[0], ",")
	}
	skills := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			skills = append(skills, v)
		}
	}
	return skills
}
