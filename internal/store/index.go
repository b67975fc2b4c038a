package store

import "leadscout-engine/internal/domain"

// TagIndex holds the two derived mappings: tag -> people and
// category -> companies. Buckets preserve first-tagged order and hold at
// most one entry per lead id. Not safe for concurrent use on its own;
// LeadStore's lock covers it.
type TagIndex struct {
	byTag      map[string][]*domain.Person
	byCategory map[string][]*domain.Company
	tagMembers map[string]map[string]bool // tag -> lead id -> present
}

func NewTagIndex() *TagIndex {
	return &TagIndex{
		byTag:      make(map[string][]*domain.Person),
		byCategory: make(map[string][]*domain.Company),
		tagMembers: make(map[string]map[string]bool),
	}
}

// AddPersonTag records p under tag, keyed by lead id. Re-tagging neither
// duplicates the bucket entry nor reorders it. Returns true when the
// membership actually changed.
func (ix *TagIndex) AddPersonTag(p *domain.Person, tag string) bool {
	members := ix.tagMembers[tag]
	if members == nil {
		members = make(map[string]bool)
		ix.tagMembers[tag] = members
	}
	if members[p.ID] {
		return false
	}
	members[p.ID] = true
	ix.byTag[tag] = append(ix.byTag[tag], p)
	return true
}

// SetCompanyCategory moves c into the category bucket and removes it from
// its previous one, so bucket membership always matches c.Category.
// A company sits in exactly one bucket at a time.
func (ix *TagIndex) SetCompanyCategory(c *domain.Company, category string) {
	if old := c.Category; old != "" && old != category {
		ix.byCategory[old] = withoutCompany(ix.byCategory[old], c.ID)
	}
	c.Category = category

	bucket := ix.byCategory[category]
	for _, existing := range bucket {
		if existing.ID == c.ID {
			return
		}
	}
	ix.byCategory[category] = append(bucket, c)
}

func withoutCompany(bucket []*domain.Company, id string) []*domain.Company {
	out := bucket[:0]
	for _, c := range bucket {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// PeopleByTag returns the internal bucket; callers must not retain it
// past the store's lock. Missing tags yield an empty bucket.
func (ix *TagIndex) PeopleByTag(tag string) []*domain.Person {
	return ix.byTag[tag]
}

// CompaniesByCategory mirrors PeopleByTag for the category mapping.
func (ix *TagIndex) CompaniesByCategory(category string) []*domain.Company {
	return ix.byCategory[category]
}

func (ix *TagIndex) TagCounts() map[string]int {
	out := make(map[string]int, len(ix.byTag))
	for tag, bucket := range ix.byTag {
		out[tag] = len(bucket)
	}
	return out
}

func (ix *TagIndex) CategoryCounts() map[string]int {
	out := make(map[string]int, len(ix.byCategory))
	for category, bucket := range ix.byCategory {
		out[category] = len(bucket)
	}
	return out
}
