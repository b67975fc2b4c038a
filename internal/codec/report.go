package codec

import (
	"fmt"
	"strings"
	"time"

	"leadscout-engine/internal/domain"
)

// WriteReport renders the human-readable summary: a header block with
// the generation time and counts, one paragraph per lead grouped by
// kind (people first), and a literal end marker.
func (c *Codec) WriteReport(leads []domain.Lead, path string) error {
	var people []*domain.Person
	var companies []*domain.Company
	for _, l := range leads {
		switch v := l.(type) {
		case *domain.Person:
			people = append(people, v)
		case *domain.Company:
			companies = append(companies, v)
		}
	}

	var b strings.Builder
	b.WriteString("LeadScout Leads Report\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Leads: %d\n", len(leads))
	fmt.Fprintf(&b, "People: %d\n", len(people))
	fmt.Fprintf(&b, "Companies: %d\n\n", len(companies))

	if len(people) > 0 {
		b.WriteString("=== People Leads ===\n\n")
		for _, p := range people {
			fmt.Fprintf(&b, "Name: %s\n", p.Name)
			fmt.Fprintf(&b, "Headline: %s\n", p.Headline)
			fmt.Fprintf(&b, "Company: %s\n", p.CurrentCompany)
			fmt.Fprintf(&b, "Location: %s\n", p.Location)
			fmt.Fprintf(&b, "Profile URL: %s\n", p.ProfileURL)
			fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(p.Tags, ", "))
		}
	}
	if len(companies) > 0 {
		b.WriteString("=== Company Leads ===\n\n")
		for _, co := range companies {
			fmt.Fprintf(&b, "Name: %s\n", co.Name)
			fmt.Fprintf(&b, "Industry: %s\n", co.Industry)
			fmt.Fprintf(&b, "Size: %s\n", co.Size)
			fmt.Fprintf(&b, "Location: %s\n", co.Location)
			fmt.Fprintf(&b, "Website: %s\n", co.Website)
			fmt.Fprintf(&b, "Company URL: %s\n", co.CompanyURL)
			fmt.Fprintf(&b, "Category: %s\n\n", co.Category)
		}
	}
	b.WriteString("=== End of Report ===\n")

	return c.writeLocked(path, []byte(b.String()))
}
