package models

import "time"

// Table is a parsed CSV file: a header row plus records. Empty cells are
// treated as missing values.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of a column in the header, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// PaymentType classifies how a posting pays
type PaymentType string

const (
	PaymentHourly  PaymentType = "Hourly"
	PaymentFixed   PaymentType = "Fixed"
	PaymentUnknown PaymentType = "Unknown"
)

// RawPosting is one scraped listing after column renaming, before any
// derived field is computed
type RawPosting struct {
	Row     int               // zero-based record index in the source file
	Columns map[string]string // every renamed column, including pass-through ones
}

// Get returns the value of a renamed column, or "" when missing
func (r *RawPosting) Get(column string) string {
	return r.Columns[column]
}

// Posting is a RawPosting enriched with derived pay and skill fields
type Posting struct {
	ID                  string            `json:"id"`
	Row                 int               `json:"row"`
	PostingDate         string            `json:"posting_date,omitempty"`
	JobTitle            string            `json:"job_title,omitempty"`
	JobURL              string            `json:"job_url,omitempty"`
	ClientCountry       string            `json:"client_country,omitempty"`
	PaymentType         string            `json:"payment_type,omitempty"`
	ProjectDuration     string            `json:"project_duration,omitempty"`
	ExperienceLevel     string            `json:"experience_level"`
	ClientRating        *float64          `json:"client_rating"`
	PaymentTypeCategory PaymentType       `json:"payment_type_category"`
	HourlyRate          *float64          `json:"hourly_rate"`
	FixedPrice          *float64          `json:"fixed_price"`
	EstimatedTotalPay   *float64          `json:"estimated_total_pay"`
	ExtractedSkills     []string          `json:"extracted_skills"`
	Columns             map[string]string `json:"columns,omitempty"`
}

// HasSkill reports whether the posting lists the given skill
func (p *Posting) HasSkill(skill string) bool {
	for _, s := range p.ExtractedSkills {
		if s == skill {
			return true
		}
	}
	return false
}

// SkillAggregate is the per-skill rollup across all postings
type SkillAggregate struct {
	Skill    string   `json:"skill"`
	JobCount int      `json:"job_count"`
	AvgPay   *float64 `json:"avg_pay"` // nil when no posting with this skill has a pay estimate
}

// InsightReport holds the dashboard metrics computed from the enriched postings
type InsightReport struct {
	TotalJobs           int                 `json:"total_jobs"`
	AvgHourlyRate       *float64            `json:"avg_hourly_rate"`
	AvgFixedPrice       *float64            `json:"avg_fixed_price"`
	AvgEstimatedPay     *float64            `json:"avg_estimated_total_pay"`
	JobsByPaymentType   map[PaymentType]int `json:"jobs_by_payment_type"`
	JobsByExperience    map[string]int      `json:"jobs_by_experience_level"`
	TopSkills           []SkillAggregate    `json:"top_skills"`
	DistinctSkillsCount int                 `json:"distinct_skills"`
}

// Dataset is the fully computed, read-only result of one pipeline run
type Dataset struct {
	SourcePath string
	LoadedAt   time.Time
	Postings   []*Posting
	Skills     []SkillAggregate // every skill, ordered by job count
	Report     *InsightReport

	byID map[string]*Posting
}

// NewDataset assembles a dataset and indexes postings by id
func NewDataset(source string, loadedAt time.Time, postings []*Posting, skills []SkillAggregate, report *InsightReport) *Dataset {
	byID := make(map[string]*Posting, len(postings))
	for _, p := range postings {
		// postings sharing a job URL share an id; the first one wins
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}
	return &Dataset{
		SourcePath: source,
		LoadedAt:   loadedAt,
		Postings:   postings,
		Skills:     skills,
		Report:     report,
		byID:       byID,
	}
}

// Posting looks up a posting by id
func (d *Dataset) Posting(id string) (*Posting, bool) {
	p, ok := d.byID[id]
	return p, ok
}
