package services

import (
	"reflect"
	"testing"

	"upwork-analytics/models"
)

func TestEnrichPosting(t *testing.T) {
	postings := enrichedFixture(t)
	if len(postings) != 6 {
		t.Fatalf("len(postings) = %d, want 6", len(postings))
	}

	tests := []struct {
		row       int
		category  models.PaymentType
		hourly    *float64
		fixed     *float64
		estimated *float64
		skills    []string
	}{
		{0, models.PaymentHourly, ptr(25), nil, ptr(7000), []string{"Go", "PostgreSQL"}},
		{1, models.PaymentHourly, ptr(15), nil, ptr(900), []string{"Python", "SQL"}},
		{2, models.PaymentFixed, nil, ptr(1200), ptr(1200), []string{"Design"}},
		{3, models.PaymentFixed, nil, nil, nil, []string{"Go"}},
		{4, models.PaymentHourly, nil, nil, nil, []string{"Go", "Python"}},
		{5, models.PaymentUnknown, nil, nil, nil, []string{}},
	}

	for _, tt := range tests {
		p := postings[tt.row]
		if p.PaymentTypeCategory != tt.category {
			t.Errorf("row %d category = %s, want %s", tt.row, p.PaymentTypeCategory, tt.category)
		}
		if !reflect.DeepEqual(p.HourlyRate, tt.hourly) {
			t.Errorf("row %d HourlyRate = %v, want %v", tt.row, p.HourlyRate, tt.hourly)
		}
		if !reflect.DeepEqual(p.FixedPrice, tt.fixed) {
			t.Errorf("row %d FixedPrice = %v, want %v", tt.row, p.FixedPrice, tt.fixed)
		}
		if !reflect.DeepEqual(p.EstimatedTotalPay, tt.estimated) {
			t.Errorf("row %d EstimatedTotalPay = %v, want %v", tt.row, p.EstimatedTotalPay, tt.estimated)
		}
		if !reflect.DeepEqual(p.ExtractedSkills, tt.skills) {
			t.Errorf("row %d skills = %q, want %q", tt.row, p.ExtractedSkills, tt.skills)
		}
		if p.PaymentTypeCategory == models.PaymentUnknown && p.EstimatedTotalPay != nil {
			t.Errorf("row %d is Unknown but has an estimate", tt.row)
		}
	}

	if got := postings[0].ExperienceLevel; got != "Expert" {
		t.Errorf("ExperienceLevel = %q, want trimmed Expert", got)
	}
	if postings[0].ClientRating == nil || *postings[0].ClientRating != 4.9 {
		t.Errorf("ClientRating = %v, want 4.9", postings[0].ClientRating)
	}
	if postings[1].ClientRating != nil {
		t.Errorf("ClientRating = %v, want nil for n/a", *postings[1].ClientRating)
	}
}

func TestEnrichPostingIDsAreStable(t *testing.T) {
	first := enrichedFixture(t)
	second := enrichedFixture(t)

	seen := make(map[string]bool)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("row %d id changed between runs: %s vs %s", i, first[i].ID, second[i].ID)
		}
		if seen[first[i].ID] {
			t.Fatalf("row %d id %s is not unique", i, first[i].ID)
		}
		seen[first[i].ID] = true
	}
}

func TestEnrichPostingMixedPaymentText(t *testing.T) {
	p := EnrichPosting(&models.RawPosting{
		Row: 0,
		Columns: map[string]string{
			"payment_type":     "Hourly (Fixed schedule) budget $500",
			"project_duration": "1 to 3 months",
		},
	})

	if p.PaymentTypeCategory != models.PaymentHourly {
		t.Fatalf("category = %s, want Hourly", p.PaymentTypeCategory)
	}
	if p.FixedPrice != nil {
		t.Errorf("FixedPrice = %v, want nil for an Hourly posting", *p.FixedPrice)
	}
	if p.HourlyRate != nil {
		t.Errorf("HourlyRate = %v, want nil without a rate range", *p.HourlyRate)
	}
	if p.EstimatedTotalPay != nil {
		t.Errorf("EstimatedTotalPay = %v, want nil", *p.EstimatedTotalPay)
	}
}
