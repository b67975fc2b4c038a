package sample

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/source"
)

var firstNames = []string{
	"James", "John", "Robert", "Michael", "William", "David", "Richard",
	"Joseph", "Thomas", "Charles", "Mary", "Patricia", "Jennifer", "Linda",
	"Elizabeth", "Barbara", "Susan", "Jessica", "Sarah", "Karen",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Jones", "Brown", "Davis", "Miller",
	"Wilson", "Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White",
	"Harris", "Martin", "Thompson", "Garcia", "Martinez", "Robinson",
}

var jobTitles = []string{
	"Software Engineer", "Product Manager", "Data Scientist",
	"Marketing Manager", "Sales Director", "CEO", "CTO", "CFO",
	"HR Manager", "Operations Manager",
}

var personIndustries = []string{
	"Technology", "Software", "Information Technology", "Financial Services",
	"Marketing", "Advertising", "Healthcare", "Education", "Consulting",
}

var companyIndustries = []string{
	"Technology", "Software", "Information Technology", "Financial Services",
	"Marketing", "Advertising", "Healthcare", "Education", "Consulting",
	"E-commerce", "Retail", "Manufacturing", "Telecommunications",
}

var employerNames = []string{
	"Northlight", "Vantiva", "Crestway", "Bluepeak", "Orbital", "Lumora",
	"Hexaform", "Parallax", "Quantel", "Silverbirch", "Mintaka", "Ardent",
	"Coreline", "Zephyrus",
}

var namePrefixes = []string{
	"Tech", "Global", "Advanced", "Smart", "Digital", "Future", "Next",
	"Innovative", "Strategic", "Dynamic", "Integrated", "Connected",
}

var nameSuffixes = []string{
	"Solutions", "Systems", "Technologies", "Innovations", "Group",
	"Partners", "Associates", "Enterprises", "Networks", "Labs",
}

var locations = []string{
	"New York, NY", "San Francisco, CA", "London, UK", "Berlin, Germany",
	"Toronto, Canada", "Sydney, Australia", "Singapore", "Tokyo, Japan",
}

var companySizes = []string{
	"1-10", "11-50", "51-200", "201-500", "501-1000",
	"1001-5000", "5001-10000", "10001+",
}

// Source generates realistic lead records locally. The same seed yields
// the same sequence, which keeps demos and tests reproducible. Seed 0
// picks a time-based seed.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

func (s *Source) Name() string { return "sample" }

func (s *Source) FetchPeople(ctx context.Context, q source.Query) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: sample: %v", domain.ErrSourceUnavailable, err)
	}
	n := q.Limit
	if n <= 0 {
		n = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.RawRecord, 0, n)
	for i := 0; i < n; i++ {
		first := s.pick(firstNames)
		last := s.pick(lastNames)
		id := fmt.Sprintf("%s-%s-%d", strings.ToLower(first), strings.ToLower(last), s.intn(10000, 99999))

		title := matchKeyword(q.Keywords, jobTitles)
		if title == "" {
			title = s.pick(jobTitles)
		}
		company := s.pick(employerNames)

		loc := q.Location
		if loc == "" {
			loc = s.pick(locations)
		}
		ind := q.Industry
		if ind == "" {
			ind = s.pick(personIndustries)
		}

		out = append(out, domain.RawRecord{
			ID:             id,
			Name:           first + " " + last,
			Headline:       title + " at " + company,
			Location:       loc,
			Industry:       ind,
			ProfileURL:     "https://leads.example.com/in/" + id + "/",
			CurrentCompany: company,
		})
	}
	return out, nil
}

func (s *Source) FetchCompanies(ctx context.Context, q source.Query) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: sample: %v", domain.ErrSourceUnavailable, err)
	}
	n := q.Limit
	if n <= 0 {
		n = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.RawRecord, 0, n)
	for i := 0; i < n; i++ {
		name := s.companyName()
		id := fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(name, " ", "-")), s.intn(10000, 99999))

		ind := matchKeyword(q.Keywords, companyIndustries)
		if ind == "" {
			ind = q.Industry
		}
		if ind == "" {
			ind = s.pick(companyIndustries)
		}
		size := q.Size
		if size == "" {
			size = s.pick(companySizes)
		}

		out = append(out, domain.RawRecord{
			ID:          id,
			Name:        name,
			Industry:    ind,
			Size:        size,
			Location:    s.pick(locations),
			Website:     "https://www." + id + ".com",
			CompanyURL:  "https://leads.example.com/company/" + id + "/",
			Description: fmt.Sprintf("A leading provider of %s solutions.", strings.ToLower(ind)),
			Founded:     fmt.Sprintf("%d", s.intn(1990, 2020)),
		})
	}
	return out, nil
}

// companyName is either prefix+suffix ("TechSolutions") or a short
// all-caps initialism, roughly half and half.
func (s *Source) companyName() string {
	if s.rng.Float64() < 0.5 {
		return s.pick(namePrefixes) + s.pick(nameSuffixes)
	}
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	n := s.intn(2, 4)
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[s.rng.Intn(len(letters))]
	}
	return string(b)
}

func (s *Source) pick(table []string) string {
	return table[s.rng.Intn(len(table))]
}

// intn returns a value in [lo, hi] inclusive.
func (s *Source) intn(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

// matchKeyword returns the first table entry containing the keywords,
// so a search for "software" yields "Software Engineer" rather than a
// random title.
func matchKeyword(keywords string, table []string) string {
	kw := strings.ToLower(strings.TrimSpace(keywords))
	if kw == "" {
		return ""
	}
	for _, entry := range table {
		if strings.Contains(strings.ToLower(entry), kw) {
			return entry
		}
	}
	return ""
}
