package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"person", KindPerson, false},
		{"Person", KindPerson, false},
		{" company ", KindCompany, false},
		{"org", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidLeadKind, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestPersonFromRaw(t *testing.T) {
	p := PersonFromRaw(RawRecord{
		ID:             "jane-doe-12345",
		Name:           "Jane Doe",
		Headline:       "Engineering Manager at TechSolutions",
		Location:       "Austin, TX",
		Industry:       "Software",
		ProfileURL:     "https://example.com/in/jane-doe-12345",
		CurrentCompany: "TechSolutions",
	})

	assert.Equal(t, "jane-doe-12345", p.ID)
	assert.Equal(t, KindPerson, p.LeadKind())
	assert.Equal(t, "TechSolutions", p.CurrentCompany)
	require.NotNil(t, p.Tags, "tags must marshal as [] not null")
	assert.Empty(t, p.Tags)
}

func TestPersonFromRaw_GeneratesID(t *testing.T) {
	a := PersonFromRaw(RawRecord{Name: "No ID"})
	b := PersonFromRaw(RawRecord{Name: "No ID"})

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestPersonAddTag_Idempotent(t *testing.T) {
	p := PersonFromRaw(RawRecord{ID: "p1", Name: "P"})

	assert.True(t, p.AddTag("decision_maker"))
	assert.False(t, p.AddTag("decision_maker"))
	assert.True(t, p.AddTag("executive"))

	assert.Equal(t, []string{"decision_maker", "executive"}, p.Tags)
}

func TestPersonClone_Isolated(t *testing.T) {
	p := PersonFromRaw(RawRecord{ID: "p1", Name: "P"})
	p.AddTag("executive")

	c := p.Clone()
	c.AddTag("decision_maker")
	c.Name = "Q"

	assert.Equal(t, []string{"executive"}, p.Tags)
	assert.Equal(t, "P", p.Name)
	assert.Equal(t, []string{"executive", "decision_maker"}, c.Tags)
}

func TestCompanyFromRaw(t *testing.T) {
	raw := RawRecord{
		ID:          "techsolutions-54321",
		Name:        "TechSolutions",
		Industry:    "Software",
		Size:        "51-200",
		Location:    "Berlin, Germany",
		Website:     "https://www.techsolutions.com",
		CompanyURL:  "https://example.com/company/techsolutions-54321",
		Specialties: []string{"cloud", "venture"},
	}
	c := CompanyFromRaw(raw)

	assert.Equal(t, KindCompany, c.LeadKind())
	assert.Equal(t, "", c.Category, "category is assigned at ingest, not here")
	assert.Equal(t, []string{"cloud", "venture"}, c.Specialties)

	// conversion must not alias the raw slice
	raw.Specialties[0] = "changed"
	assert.Equal(t, "cloud", c.Specialties[0])
}

func TestCompanyClone_Isolated(t *testing.T) {
	c := CompanyFromRaw(RawRecord{ID: "c1", Name: "C", Specialties: []string{"x"}})
	c.Category = "other"

	cl := c.Clone()
	cl.Category = "retail"
	cl.Specialties[0] = "y"

	assert.Equal(t, "other", c.Category)
	assert.Equal(t, "x", c.Specialties[0])
}
