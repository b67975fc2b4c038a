package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Kind discriminates the two lead variants.
type Kind string

const (
	KindPerson  Kind = "person"
	KindCompany Kind = "company"
)

// Lead is either a *Person or a *Company. Identity is the ID string;
// index membership is always decided by ID, never by pointer equality.
type Lead interface {
	LeadID() string
	LeadKind() Kind
}

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindPerson:
		return KindPerson, nil
	case KindCompany:
		return KindCompany, nil
	}
	return "", ErrInvalidLeadKind
}

// RawRecord is the loosely typed shape a result source yields before
// ingestion decides which lead variant it becomes. It is the superset of
// person and company fields; irrelevant fields stay empty.
type RawRecord struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	Headline       string   `json:"headline,omitempty"`
	Location       string   `json:"location,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	ProfileURL     string   `json:"profile_url,omitempty"`
	CurrentCompany string   `json:"current_company,omitempty"`
	Size           string   `json:"size,omitempty"`
	Website        string   `json:"website,omitempty"`
	CompanyURL     string   `json:"company_url,omitempty"`
	Description    string   `json:"description,omitempty"`
	Founded        string   `json:"founded,omitempty"`
	Specialties    []string `json:"specialties,omitempty"`
}

// PersonFromRaw builds a person lead. Records arriving without an id get a
// generated one so index membership stays well defined.
func PersonFromRaw(r RawRecord) *Person {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return &Person{
		ID:             id,
		Name:           r.Name,
		Headline:       r.Headline,
		Location:       r.Location,
		Industry:       r.Industry,
		ProfileURL:     r.ProfileURL,
		CurrentCompany: r.CurrentCompany,
		Tags:           []string{},
	}
}

// CompanyFromRaw builds a company lead. Category is left empty here; the
// caller assigns it before the lead becomes visible.
func CompanyFromRaw(r RawRecord) *Company {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return &Company{
		ID:          id,
		Name:        r.Name,
		Industry:    r.Industry,
		Size:        r.Size,
		Location:    r.Location,
		Website:     r.Website,
		CompanyURL:  r.CompanyURL,
		Description: r.Description,
		Founded:     r.Founded,
		Specialties: append([]string(nil), r.Specialties...),
	}
}
