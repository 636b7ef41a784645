package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"upwork-analytics/models"
	"upwork-analytics/utils"
)

// CSVWriter writes enriched postings as CSV
type CSVWriter struct {
	logger *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(logger *utils.Logger) *CSVWriter {
	return &CSVWriter{logger: logger}
}

var enrichedHeader = []string{
	"id", "posting_date", "job_title", "job_url", "client_country",
	"payment_type", "project_duration", "experience_level", "client_rating",
	"payment_type_category", "hourly_rate", "fixed_price",
	"estimated_total_pay", "extracted_skills",
}

// WritePostings writes one row per posting; missing numbers are empty cells
// and skills are joined with "|"
func (w *CSVWriter) WritePostings(out io.Writer, postings []*models.Posting) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(enrichedHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range postings {
		row := []string{
			p.ID,
			p.PostingDate,
			p.JobTitle,
			p.JobURL,
			p.ClientCountry,
			p.PaymentType,
			p.ProjectDuration,
			p.ExperienceLevel,
			formatOptional(p.ClientRating),
			string(p.PaymentTypeCategory),
			formatOptional(p.HourlyRate),
			formatOptional(p.FixedPrice),
			formatOptional(p.EstimatedTotalPay),
			strings.Join(p.ExtractedSkills, "|"),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", p.Row, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	w.logger.Debug("Exported %d enriched postings as CSV", len(postings))
	return nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
