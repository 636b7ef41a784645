package services

import (
	"upwork-analytics/models"
)

var fixtureHeader = []string{
	"air3-link", "air3-link href", "job-tile-info-list", "job-tile-info-list 2",
	"job-tile-info-list 3", "air3-rating-value-text", "highlight",
	"air3-token", "air3-token 2", "air3-token 3", "scraped_by",
}

// fixtureTable mirrors the export layout: three hourly, two fixed and one
// unknown posting
func fixtureTable() *models.Table {
	return &models.Table{
		Header: fixtureHeader,
		Rows: [][]string{
			{"Go API", "https://upwork.test/jobs/1", "Hourly: $20.00 - $30.00", " Expert ", "30+ hrs/week, 1 to 3 months", "4.9", "Go", "Go", "PostgreSQL", "", "bot"},
			{"Python ETL", "https://upwork.test/jobs/2", "Hourly: $10.00 - $20.00", "Intermediate", "Less than 30 hrs/week, Less than 1 month", "n/a", "Python", "SQL", "", "", "bot"},
			{"Logo", "https://upwork.test/jobs/3", "Fixed price: $1,200", "Entry level", "", "", "", "Design", "", "", "bot"},
			{"Go CLI", "https://upwork.test/jobs/4", "Fixed price", "Expert", "", "5.0", "Go", "", "", "", "bot"},
			{"Scraper", "", "Hourly", "Intermediate", "More than 6 months", "", "Python", "Go", "", "", "bot"},
			{"Misc", "https://upwork.test/jobs/6", "", "", "", "", "", "", "", "", "bot"},
		},
	}
}

type stubSource struct {
	key   string
	table *models.Table
	err   error
	reads int
}

func (s *stubSource) Key() string { return s.key }

func (s *stubSource) ReadTable() (*models.Table, error) {
	s.reads++
	if s.err != nil {
		return nil, s.err
	}
	return s.table, nil
}

func ptr(v float64) *float64 { return &v }
