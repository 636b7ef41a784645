package storage

import (
	"io"

	"upwork-analytics/models"
)

// TableSource yields the raw posting table the pipeline starts from
type TableSource interface {
	// Key identifies the input for caching; equal keys mean equal contents
	Key() string
	ReadTable() (*models.Table, error)
}

// PostingExporter writes enriched postings in some tabular format
type PostingExporter interface {
	WritePostings(w io.Writer, postings []*models.Posting) error
}
