package store

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"leadscout-engine/internal/classify"
	"leadscout-engine/internal/codec"
	"leadscout-engine/internal/domain"
)

// LeadStore owns the canonical insertion-ordered lead sequence plus the
// TagIndex derived from it. It starts empty and never deletes a lead.
// One RWMutex covers both structures, so readers observe every mutation
// either fully applied or not at all; everything handed out is a clone.
type LeadStore struct {
	mu    sync.RWMutex
	leads []domain.Lead
	byID  map[string]domain.Lead
	index *TagIndex
	codec *codec.Codec
}

func New(log *zap.Logger) *LeadStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &LeadStore{
		byID:  make(map[string]domain.Lead),
		index: NewTagIndex(),
		codec: codec.New(log),
	}
}

// Ingest converts raw records into leads of the given kind and appends
// them. Companies are categorized here, so no company lead is ever
// visible without a category. People are never auto-tagged; that is the
// caller's opt-in.
func (s *LeadStore) Ingest(kind domain.Kind, raws []domain.RawRecord) ([]domain.Lead, error) {
	switch kind {
	case domain.KindPerson, domain.KindCompany:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLeadKind, kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Lead, 0, len(raws))
	for _, raw := range raws {
		switch kind {
		case domain.KindPerson:
			p := domain.PersonFromRaw(raw)
			s.leads = append(s.leads, p)
			s.byID[p.ID] = p
			out = append(out, p.Clone())
		case domain.KindCompany:
			c := domain.CompanyFromRaw(raw)
			s.index.SetCompanyCategory(c, classify.CategorizeCompany(*c))
			s.leads = append(s.leads, c)
			s.byID[c.ID] = c
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

// Tag applies a label to the lead with the given id. For a person the
// tag is appended idempotently; for a company it replaces the category.
// Returns the updated lead as a clone.
func (s *LeadStore) Tag(id, tag string) (domain.Lead, error) {
	tag = strings.TrimSpace(tag)
	if strings.TrimSpace(id) == "" || tag == "" {
		return nil, fmt.Errorf("%w: id and tag are required", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: lead %q", domain.ErrNotFound, id)
	}

	switch l := lead.(type) {
	case *domain.Person:
		if s.index.AddPersonTag(l, tag) {
			l.AddTag(tag)
		}
		return l.Clone(), nil
	case *domain.Company:
		s.index.SetCompanyCategory(l, tag)
		return l.Clone(), nil
	default:
		return nil, fmt.Errorf("%w: unrecognized lead variant", domain.ErrInvalidLeadKind)
	}
}

// Find returns the lead with the given id as a clone.
func (s *LeadStore) Find(id string) (domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lead, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: lead %q", domain.ErrNotFound, id)
	}
	return cloneLead(lead), nil
}

// All returns the canonical sequence in insertion order, cloned.
func (s *LeadStore) All() []domain.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		out = append(out, cloneLead(l))
	}
	return out
}

// LeadsByTag returns the people tagged with tag, in first-tagged order.
// A missing tag yields an empty slice, never an error.
func (s *LeadStore) LeadsByTag(tag string) []*domain.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.index.PeopleByTag(tag)
	out := make([]*domain.Person, 0, len(bucket))
	for _, p := range bucket {
		out = append(out, p.Clone())
	}
	return out
}

// LeadsByCategory returns the companies currently assigned to category.
func (s *LeadStore) LeadsByCategory(category string) []*domain.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.index.CompaniesByCategory(category)
	out := make([]*domain.Company, 0, len(bucket))
	for _, c := range bucket {
		out = append(out, c.Clone())
	}
	return out
}

// FilterByTags returns the leads matching any of the given labels, in
// insertion order. A person matches when it carries at least one of the
// tags; a company matches when its category equals one of them. Blank
// entries are ignored; no usable label yields an empty slice.
func (s *LeadStore) FilterByTags(tags []string) []domain.Lead {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			want[t] = true
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Lead, 0)
	for _, l := range s.leads {
		switch v := l.(type) {
		case *domain.Person:
			for _, t := range v.Tags {
				if want[t] {
					out = append(out, v.Clone())
					break
				}
			}
		case *domain.Company:
			if want[v.Category] {
				out = append(out, v.Clone())
			}
		}
	}
	return out
}

// Save writes the full collection to path in the given format.
func (s *LeadStore) Save(path, format string) error {
	return s.codec.Save(s.All(), path, format)
}

// SaveLeads writes an explicit subset (e.g. one tag's bucket) to path.
func (s *LeadStore) SaveLeads(leads []domain.Lead, path, format string) error {
	return s.codec.Save(leads, path, format)
}

// Load reads leads from path and appends them to the store. Index
// entries are re-derived from each record's own tags/category fields;
// nothing is re-classified. On failure the store is untouched and an
// empty (non-nil) slice is returned next to the error.
func (s *LeadStore) Load(path, format string) ([]domain.Lead, error) {
	loaded, err := s.codec.Load(path, format)
	if err != nil {
		return []domain.Lead{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Lead, 0, len(loaded))
	for _, l := range loaded {
		switch v := l.(type) {
		case *domain.Person:
			s.leads = append(s.leads, v)
			s.byID[v.ID] = v
			for _, tag := range v.Tags {
				s.index.AddPersonTag(v, tag)
			}
			out = append(out, v.Clone())
		case *domain.Company:
			s.leads = append(s.leads, v)
			s.byID[v.ID] = v
			if v.Category != "" {
				s.index.SetCompanyCategory(v, v.Category)
			}
			out = append(out, v.Clone())
		}
	}
	return out, nil
}

// WriteReport renders the plain-text report for the full collection.
func (s *LeadStore) WriteReport(path string) error {
	return s.codec.WriteReport(s.All(), path)
}

func cloneLead(l domain.Lead) domain.Lead {
	switch v := l.(type) {
	case *domain.Person:
		return v.Clone()
	case *domain.Company:
		return v.Clone()
	}
	return l
}
