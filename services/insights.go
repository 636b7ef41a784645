package services

import (
	"upwork-analytics/models"
	"upwork-analytics/utils"
)

// InsightService computes dashboard metrics from the enriched dataset
type InsightService struct {
	logger    *utils.Logger
	topSkills int
}

// NewInsightService creates a new InsightService showing topSkills skills
func NewInsightService(logger *utils.Logger, topSkills int) *InsightService {
	return &InsightService{logger: logger, topSkills: topSkills}
}

// Generate computes all metrics from the postings and their skill aggregates
func (s *InsightService) Generate(postings []*models.Posting, skills []models.SkillAggregate) *models.InsightReport {
	report := &models.InsightReport{
		TotalJobs:           len(postings),
		JobsByPaymentType:   make(map[models.PaymentType]int),
		JobsByExperience:    make(map[string]int),
		TopSkills:           TopSkills(skills, s.topSkills),
		DistinctSkillsCount: len(skills),
	}

	if len(postings) == 0 {
		s.logger.Warn("No postings to generate insights from")
		return report
	}

	var hourly, fixed, total mean
	for _, p := range postings {
		report.JobsByPaymentType[p.PaymentTypeCategory]++
		if p.ExperienceLevel != "" {
			report.JobsByExperience[p.ExperienceLevel]++
		}

		switch p.PaymentTypeCategory {
		case models.PaymentHourly:
			hourly.add(p.HourlyRate)
		case models.PaymentFixed:
			fixed.add(p.FixedPrice)
		}
		total.add(p.EstimatedTotalPay)
	}

	report.AvgHourlyRate = hourly.value()
	report.AvgFixedPrice = fixed.value()
	report.AvgEstimatedPay = total.value()

	return report
}

// mean accumulates present values and skips missing ones
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.n++
}

// value is nil when nothing was added
func (m *mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	avg := m.sum / float64(m.n)
	return &avg
}
