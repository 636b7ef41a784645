package services

import (
	"fmt"
	"strings"

	"upwork-analytics/errors"
	"upwork-analytics/models"
)

// ColumnMap maps the scraper's CSS-derived headers to semantic names
var ColumnMap = map[string]string{
	"text-light 2":           "posting_date",
	"air3-link":              "job_title",
	"air3-link href":         "job_url",
	"highlight":              "primary_skill",
	"air3-badge-tagline":     "payment_status",
	"sr-only 3":              "rating_label",
	"air3-rating-value-text": "client_rating",
	"air3-popper-content":    "rating_details",
	"total_spent":            "client_spent",
	"air3-badge-tagline 3":   "spent_label",
	"air3-badge-tagline 4":   "client_country",
	"job-tile-info-list":     "payment_type",
	"job-tile-info-list 2":   "experience_level",
	"mr-1":                   "estimated_time_label",
	"job-tile-info-list 3":   "project_duration",
	"mb-0":                   "job_description",
	"highlight 2":            "skill_1_highlight",
	"air3-token":             "skill_1",
	"air3-token 2":           "skill_2",
	"air3-token 3":           "skill_3",
	"font-weight-light":      "proposals_label",
	"num_proposals":          "proposal_count",
	"air3-token 4":           "skill_4",
	"air3-token 5":           "skill_5",
	"highlight 3":            "skill_2_highlight",
	"highlight 4":            "skill_3_highlight",
	"highlight 5":            "skill_4_highlight",
	"highlight 6":            "skill_5_highlight",
	"highlight-color":        "highlight_color_1",
	"highlight-color 2":      "highlight_color_2",
	"air3-token 6":           "skill_6",
}

// RequiredColumns must exist after renaming for enrichment to run
var RequiredColumns = []string{
	"payment_type",
	"project_duration",
	"client_rating",
	"experience_level",
}

// RenameColumns returns a copy of the table with mapped headers renamed.
// Rows are shared with the input; unmapped headers pass through unchanged.
func RenameColumns(table *models.Table) *models.Table {
	header := make([]string, len(table.Header))
	for i, h := range table.Header {
		if renamed, ok := ColumnMap[h]; ok {
			header[i] = renamed
		} else {
			header[i] = h
		}
	}
	return &models.Table{Header: header, Rows: table.Rows}
}

// BuildRawPostings turns a renamed table into raw postings, failing if any
// required column is missing
func BuildRawPostings(table *models.Table) ([]*models.RawPosting, error) {
	var missing []string
	for _, col := range RequiredColumns {
		if table.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.InvalidInput(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil)
	}

	postings := make([]*models.RawPosting, 0, len(table.Rows))
	for i, row := range table.Rows {
		cols := make(map[string]string, len(table.Header))
		for j, h := range table.Header {
			if j < len(row) {
				// the first occurrence wins when headers repeat
				if _, dup := cols[h]; !dup {
					cols[h] = row[j]
				}
			}
		}
		postings = append(postings, &models.RawPosting{Row: i, Columns: cols})
	}
	return postings, nil
}
