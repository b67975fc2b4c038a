package store

import (
	"time"

	"leadscout-engine/internal/domain"
)

// ReportSummary is a point-in-time snapshot of the collection. Each
// call recomputes it from the live store, so repeated calls reflect
// every intervening mutation.
type ReportSummary struct {
	GeneratedAt  time.Time      `json:"generated_at"`
	TotalLeads   int            `json:"total_leads"`
	PeopleCount  int            `json:"people_count"`
	CompanyCount int            `json:"company_count"`
	Tags         map[string]int `json:"tags"`
	Categories   map[string]int `json:"categories"`
}

// Report builds a fresh summary. Tag counts come out of the index, so
// the category counts always sum to the company count.
func (s *LeadStore) Report() ReportSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := ReportSummary{
		GeneratedAt: time.Now().UTC(),
		TotalLeads:  len(s.leads),
		Tags:        s.index.TagCounts(),
		Categories:  s.index.CategoryCounts(),
	}
	for _, l := range s.leads {
		switch l.LeadKind() {
		case domain.KindPerson:
			sum.PeopleCount++
		case domain.KindCompany:
			sum.CompanyCount++
		}
	}
	return sum
}
