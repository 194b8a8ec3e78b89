package notify

import (
	"context"
	"strings"

	"go-applicant-intake/internal/domain"
)

// rowAppender is the slice of pkg/sheets the sink needs.
type rowAppender interface {
	AppendRow(ctx context.Context, row []interface{}) error
}

// SheetSink appends exactly one spreadsheet row per stored record.
type SheetSink struct {
	client rowAppender
}

func NewSheetSink(client rowAppender) *SheetSink {
	return &SheetSink{client: client}
}

func (s *SheetSink) Name() string { return "spreadsheet" }

func (s *SheetSink) Deliver(ctx context.Context, rec *domain.StoredRecord) error {
	return s.client.AppendRow(ctx, buildRow(rec))
}

// buildRow flattens a record into the fixed column order downstream
// consumers depend on: the six personal fields, the education triples in
// submission order, the experience triples in submission order, the skills
// as one delimited cell, and the resume link when present. There is no
// maximum-entries contract, so row width varies with the number of
// education/experience entries.
func buildRow(rec *domain.StoredRecord) []interface{} {
	row := []interface{}{
		rec.FirstName,
		rec.LastName,
		rec.Email,
		rec.Phone,
		rec.Profession,
		rec.Address,
	}
	for _, e := range rec.Education {
		row = append(row, e.HighestEducation, e.FieldOfStudy, e.Institute)
	}
	for _, e := range rec.Experience {
		row = append(row, e.CompanyName, e.PositionTitle, e.YearsOfExperience)
	}
	row = append(row, strings.Join(rec.Skills, ", "))
	if rec.Resume != nil && rec.Resume.ExternalLink != "" {
		row = append(row, rec.Resume.ExternalLink)
	}
	return row
}
