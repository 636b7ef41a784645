package services

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"upwork-analytics/models"
)

var (
	hourlyRangeRegex = regexp.MustCompile(`\$(\d+\.\d+)\s*-\s*\$(\d+\.\d+)`)
	fixedPriceRegex  = regexp.MustCompile(`\$(\d+(?:,\d+)?(?:\.\d+)?)`)
)

// SkillColumns are the renamed columns a posting's skills are read from, in order
var SkillColumns = []string{
	"primary_skill", "skill_1", "skill_2", "skill_3", "skill_4", "skill_5", "skill_6",
}

// ClassifyPaymentType buckets the raw payment text. "Hourly" wins over "Fixed".
func ClassifyPaymentType(paymentType string) models.PaymentType {
	switch {
	case strings.Contains(paymentType, "Hourly"):
		return models.PaymentHourly
	case strings.Contains(paymentType, "Fixed"):
		return models.PaymentFixed
	default:
		return models.PaymentUnknown
	}
}

// ExtractHourlyRate returns the midpoint of the first "$min - $max" range in
// an hourly payment text
func ExtractHourlyRate(paymentType string) (float64, bool) {
	if !strings.Contains(paymentType, "Hourly") {
		return 0, false
	}

	matches := hourlyRangeRegex.FindStringSubmatch(paymentType)
	if len(matches) < 3 {
		return 0, false
	}

	minRate, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, false
	}
	maxRate, err := strconv.ParseFloat(matches[2], 64)
	if err != nil {
		return 0, false
	}
	return (minRate + maxRate) / 2, true
}

// ExtractFixedPrice returns the first "$amount" in a fixed-price payment
// text, with the thousands separator removed
func ExtractFixedPrice(paymentType string) (float64, bool) {
	if !strings.Contains(paymentType, "Fixed") {
		return 0, false
	}

	matches := fixedPriceRegex.FindStringSubmatch(paymentType)
	if len(matches) < 2 {
		return 0, false
	}

	budget, err := strconv.ParseFloat(strings.ReplaceAll(matches[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return budget, true
}

// HoursPerWeek estimates weekly hours from the duration text.
// Heuristic calibration; keep the constants as they are.
func HoursPerWeek(duration string) float64 {
	d := strings.ToLower(duration)
	switch {
	case strings.Contains(d, "30+ hrs/week"):
		return 35
	case strings.Contains(d, "less than 30 hrs/week"):
		return 20
	default:
		return 25
	}
}

// ProjectWeeks estimates project length in weeks from the duration text.
// Heuristic calibration; keep the constants as they are.
func ProjectWeeks(duration string) float64 {
	d := strings.ToLower(duration)
	switch {
	case strings.Contains(d, "less than 1 month"):
		return 3
	case strings.Contains(d, "1 to 3 months"):
		return 8
	case strings.Contains(d, "3 to 6 months"):
		return 18
	case strings.Contains(d, "more than 6 months"):
		return 30
	default:
		return 8
	}
}

// EstimateTotalPay projects total earnings for a posting. Hourly postings
// use rate × hours/week × weeks; otherwise the fixed budget is used as is.
// The result is a rough estimate, not a contractual value, and is nil when
// neither input is present or the projection is not positive.
func EstimateTotalPay(hourlyRate, fixedPrice *float64, duration string) *float64 {
	var total float64
	switch {
	case hourlyRate != nil:
		total = *hourlyRate * HoursPerWeek(duration) * ProjectWeeks(duration)
	case fixedPrice != nil:
		total = *fixedPrice
	default:
		return nil
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil
	}
	return &total
}

// ExtractSkills trims, drops empty values and deduplicates. The result is
// sorted so that equal inputs always give equal output.
func ExtractSkills(values ...string) []string {
	seen := make(map[string]struct{}, len(values))
	skills := make([]string, 0, len(values))
	for _, v := range values {
		s := strings.TrimSpace(v)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// ParseClientRating coerces the rating text to a number; anything
// unparsable is missing
func ParseClientRating(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return nil
	}
	return &val
}
