package services

import (
	"sort"

	"upwork-analytics/models"
	"upwork-analytics/utils"
)

// SkillAggregator rolls postings up into per-skill counts and average pay
type SkillAggregator struct {
	logger *utils.Logger
}

// NewSkillAggregator creates a new SkillAggregator
func NewSkillAggregator(logger *utils.Logger) *SkillAggregator {
	return &SkillAggregator{logger: logger}
}

// Aggregate counts, for every distinct skill, the postings listing it and
// averages their estimated pay. Postings without an estimate count towards
// JobCount but not towards AvgPay. Output is ordered by JobCount descending,
// then by skill name.
func (a *SkillAggregator) Aggregate(postings []*models.Posting) []models.SkillAggregate {
	type acc struct {
		count  int
		paySum float64
		payN   int
	}
	bySkill := make(map[string]*acc)

	for _, p := range postings {
		for _, skill := range p.ExtractedSkills {
			s, ok := bySkill[skill]
			if !ok {
				s = &acc{}
				bySkill[skill] = s
			}
			s.count++
			if p.EstimatedTotalPay != nil {
				s.paySum += *p.EstimatedTotalPay
				s.payN++
			}
		}
	}

	aggs := make([]models.SkillAggregate, 0, len(bySkill))
	for skill, s := range bySkill {
		agg := models.SkillAggregate{Skill: skill, JobCount: s.count}
		if s.payN > 0 {
			avg := s.paySum / float64(s.payN)
			agg.AvgPay = &avg
		}
		aggs = append(aggs, agg)
	}

	sort.Slice(aggs, func(i, j int) bool {
		if aggs[i].JobCount != aggs[j].JobCount {
			return aggs[i].JobCount > aggs[j].JobCount
		}
		return aggs[i].Skill < aggs[j].Skill
	})

	a.logger.Info("Aggregated %d distinct skills", len(aggs))
	return aggs
}

// TopSkills returns the first n aggregates of a slice already ordered by
// Aggregate. n <= 0 returns all of them.
func TopSkills(aggs []models.SkillAggregate, n int) []models.SkillAggregate {
	if n <= 0 || n > len(aggs) {
		n = len(aggs)
	}
	top := make([]models.SkillAggregate, n)
	copy(top, aggs[:n])
	return top
}
