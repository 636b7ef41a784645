package services

import (
	"strconv"
	"strings"

	"upwork-analytics/models"
	"upwork-analytics/utils"

	"github.com/google/uuid"
)

var postingNamespace = uuid.NameSpaceURL

// Enricher derives pay, skill and classification fields for raw postings
type Enricher struct {
	logger *utils.Logger
}

// NewEnricher creates a new Enricher
func NewEnricher(logger *utils.Logger) *Enricher {
	return &Enricher{logger: logger}
}

// Enrich converts raw postings one by one; no field depends on another row
func (e *Enricher) Enrich(raw []*models.RawPosting) []*models.Posting {
	postings := make([]*models.Posting, 0, len(raw))
	var hourly, fixed, estimated int

	for _, r := range raw {
		p := EnrichPosting(r)
		if p.HourlyRate != nil {
			hourly++
		}
		if p.FixedPrice != nil {
			fixed++
		}
		if p.EstimatedTotalPay != nil {
			estimated++
		}
		postings = append(postings, p)
	}

	e.logger.Info("Enriched %d postings (%d hourly rates, %d fixed prices, %d pay estimates)",
		len(postings), hourly, fixed, estimated)
	return postings
}

// EnrichPosting computes every derived field of a single raw posting
func EnrichPosting(r *models.RawPosting) *models.Posting {
	paymentType := r.Get("payment_type")
	duration := r.Get("project_duration")

	p := &models.Posting{
		ID:                  postingID(r),
		Row:                 r.Row,
		PostingDate:         strings.TrimSpace(r.Get("posting_date")),
		JobTitle:            strings.TrimSpace(r.Get("job_title")),
		JobURL:              strings.TrimSpace(r.Get("job_url")),
		ClientCountry:       strings.TrimSpace(r.Get("client_country")),
		PaymentType:         paymentType,
		ProjectDuration:     duration,
		ExperienceLevel:     strings.TrimSpace(r.Get("experience_level")),
		ClientRating:        ParseClientRating(r.Get("client_rating")),
		PaymentTypeCategory: ClassifyPaymentType(paymentType),
		Columns:             r.Columns,
	}

	if rate, ok := ExtractHourlyRate(paymentType); ok {
		p.HourlyRate = &rate
	}
	// "Hourly" wins the category, so a mixed text never carries a fixed price
	if p.PaymentTypeCategory == models.PaymentFixed {
		if price, ok := ExtractFixedPrice(paymentType); ok {
			p.FixedPrice = &price
		}
	}
	p.EstimatedTotalPay = EstimateTotalPay(p.HourlyRate, p.FixedPrice, duration)

	values := make([]string, 0, len(SkillColumns))
	for _, col := range SkillColumns {
		values = append(values, r.Get(col))
	}
	p.ExtractedSkills = ExtractSkills(values...)

	return p
}

// postingID is stable across runs: derived from the job URL, or from the
// row index when the URL is missing
func postingID(r *models.RawPosting) string {
	key := strings.TrimSpace(r.Get("job_url"))
	if key == "" {
		key = "row:" + strconv.Itoa(r.Row)
	}
	return uuid.NewSHA1(postingNamespace, []byte(key)).String()
}
