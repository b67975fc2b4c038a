package store

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscout-engine/internal/classify"
	"leadscout-engine/internal/domain"
)

func personRaw(id, name string) domain.RawRecord {
	return domain.RawRecord{
		ID:       id,
		Name:     name,
		Headline: "Engineering Manager at Acme",
		Location: "Austin, TX",
	}
}

func companyRaw(id, name, industry, size string) domain.RawRecord {
	return domain.RawRecord{
		ID:       id,
		Name:     name,
		Industry: industry,
		Size:     size,
	}
}

func TestIngestPeopleStartUntagged(t *testing.T) {
	s := New(nil)

	out, err := s.Ingest(domain.KindPerson, []domain.RawRecord{
		personRaw("p1", "Jane Doe"),
		personRaw("p2", "John Roe"),
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	for _, l := range out {
		p, ok := l.(*domain.Person)
		require.True(t, ok)
		assert.NotNil(t, p.Tags)
		assert.Empty(t, p.Tags)
	}
	assert.Len(t, s.All(), 2)
}

func TestIngestCompaniesAutoCategorize(t *testing.T) {
	s := New(nil)

	out, err := s.Ingest(domain.KindCompany, []domain.RawRecord{
		companyRaw("c1", "Acme Soft", "Software", "51-200"),
		companyRaw("c2", "First Bank", "Banking", "1,001-5,000"),
		companyRaw("c3", "Oddity", "xyz unknown", ""),
	})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, classify.CategoryTechMidMarket, out[0].(*domain.Company).Category)
	assert.Equal(t, classify.CategoryFinancialServices, out[1].(*domain.Company).Category)
	assert.Equal(t, classify.CategoryOther, out[2].(*domain.Company).Category)

	// Every ingested company lands in exactly one category bucket.
	counts := s.Report().Categories
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 3, total)
}

func TestIngestRejectsUnknownKind(t *testing.T) {
	s := New(nil)

	_, err := s.Ingest(domain.Kind("robot"), []domain.RawRecord{personRaw("p1", "x")})
	assert.ErrorIs(t, err, domain.ErrInvalidLeadKind)
	assert.Empty(t, s.All())
}

func TestTagPersonIdempotent(t *testing.T) {
	s := New(nil)
	_, err := s.Ingest(domain.KindPerson, []domain.RawRecord{personRaw("p1", "Jane Doe")})
	require.NoError(t, err)

	first, err := s.Tag("p1", "warm")
	require.NoError(t, err)
	second, err := s.Tag("p1", "warm")
	require.NoError(t, err)

	assert.Equal(t, []string{"warm"}, first.(*domain.Person).Tags)
	assert.Equal(t, []string{"warm"}, second.(*domain.Person).Tags)
	assert.Len(t, s.LeadsByTag("warm"), 1)
}

func TestTagPersonPreservesOrder(t *testing.T) {
	s := New(nil)
	_, err := s.Ingest(domain.KindPerson, []domain.RawRecord{personRaw("p1", "Jane Doe")})
	require.NoError(t, err)

	_, err = s.Tag("p1", "warm")
	require.NoError(t, err)
	lead, err := s.Tag("p1", "decision_maker")
	require.NoError(t, err)

	assert.Equal(t, []string{"warm", "decision_maker"}, lead.(*domain.Person).Tags)
}

func TestTagCompanyMovesBuckets(t *testing.T) {
	s := New(nil)
	_, err := s.Ingest(domain.KindCompany, []domain.RawRecord{
		companyRaw("c1", "Acme Soft", "Software", "51-200"),
	})
	require.NoError(t, err)
	require.Len(t, s.LeadsByCategory(classify.CategoryTechMidMarket), 1)

	lead, err := s.Tag("c1", "strategic_account")
	require.NoError(t, err)
	assert.Equal(t, "strategic_account", lead.(*domain.Company).Category)

	// Overwrite moved the company; the old bucket is empty and the
	// category counts still sum to the company count.
	assert.Empty(t, s.LeadsByCategory(classify.CategoryTechMidMarket))
	require.Len(t, s.LeadsByCategory("strategic_account"), 1)

	total := 0
	for _, n := range s.Report().Categories {
		total += n
	}
	assert.Equal(t, 1, total)
}

func TestTagValidation(t *testing.T) {
	s := New(nil)
	_, err := s.Ingest(domain.KindPerson, []domain.RawRecord{personRaw("p1", "Jane Doe")})
	require.NoError(t, err)

	_, err = s.Tag("", "warm")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = s.Tag("p1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = s.Tag("ghost", "warm")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotIsolation(t *testing.T) {
	s := New(nil)
	_, err := s.Ingest(domain.KindPerson, []domain.RawRecord{personRaw("p1", "Jane Doe")})
	require.NoError(t, err)
	_, err = s.Tag("p1", "warm")
	require.NoError(t, err)

	snap := s.All()
	snap[0].(*domain.Person).Tags[0] = "mutated"
	snap[0].(*domain.Person).Name = "Renamed"

	lead, err := s.Find("p1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", lead.(*domain.Person).Name)
	assert.Equal(t, []string{"warm"}, lead.(*domain.Person).Tags)

	bucket := s.LeadsByTag("warm")
	require.Len(t, bucket, 1)
	bucket[0].Tags[0] = "mutated"
	assert.Equal(t, []string{"warm"}, s.LeadsByTag("warm")[0].Tags)
}

func TestFilterByTags(t *testing.T) {
	s := New(nil)
	_, err := s.Ingest(domain.KindPerson, []domain.RawRecord{
		personRaw("p1", "Jane Doe"),
		personRaw("p2", "John Roe"),
	})
	require.NoError(t, err)
	_, err = s.Ingest(domain.KindCompany, []domain.RawRecord{
		companyRaw("c1", "Acme Soft", "Software", "51-200"),
		companyRaw("c2", "First Bank", "Banking", "1,001-5,000"),
	})
	require.NoError(t, err)
	_, err = s.Tag("p1", "warm")
	require.NoError(t, err)
	_, err = s.Tag("p2", "cold")
	require.NoError(t, err)

	// Person tag and company category match through the same label set,
	// insertion order preserved.
	got := s.FilterByTags([]string{"warm", classify.CategoryFinancialServices})
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].LeadID())
	assert.Equal(t, "c2", got[1].LeadID())

	// Any-of across person tags.
	got = s.FilterByTags([]string{"warm", "cold"})
	require.Len(t, got, 2)

	// Blank labels are dropped; an uncategorized match never fires.
	assert.Empty(t, s.FilterByTags([]string{" ", ""}))
	assert.NotNil(t, s.FilterByTags([]string{"ghost"}))
	assert.Empty(t, s.FilterByTags([]string{"ghost"}))
}

func TestFind(t *testing.T) {
	s := New(nil)
	_, err := s.Ingest(domain.KindCompany, []domain.RawRecord{
		companyRaw("c1", "Acme Soft", "Software", "51-200"),
	})
	require.NoError(t, err)

	lead, err := s.Find("c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Soft", lead.(*domain.Company).Name)

	_, err = s.Find("ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportTotalsIdentity(t *testing.T) {
	s := New(nil)
	_, err := s.Ingest(domain.KindPerson, []domain.RawRecord{
		personRaw("p1", "Jane Doe"),
		personRaw("p2", "John Roe"),
	})
	require.NoError(t, err)
	_, err = s.Ingest(domain.KindCompany, []domain.RawRecord{
		companyRaw("c1", "Acme Soft", "Software", "51-200"),
	})
	require.NoError(t, err)
	_, err = s.Tag("p1", "warm")
	require.NoError(t, err)

	rep := s.Report()
	assert.Equal(t, 3, rep.TotalLeads)
	assert.Equal(t, 2, rep.PeopleCount)
	assert.Equal(t, 1, rep.CompanyCount)
	assert.Equal(t, rep.TotalLeads, rep.PeopleCount+rep.CompanyCount)
	assert.Equal(t, 1, rep.Tags["warm"])
	assert.False(t, rep.GeneratedAt.IsZero())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := New(nil)
	_, err := src.Ingest(domain.KindPerson, []domain.RawRecord{personRaw("p1", "Jane Doe")})
	require.NoError(t, err)
	_, err = src.Ingest(domain.KindCompany, []domain.RawRecord{
		companyRaw("c1", "Acme Soft", "Software", "51-200"),
	})
	require.NoError(t, err)
	_, err = src.Tag("p1", "warm")
	require.NoError(t, err)
	// Manual category survives the round trip untouched.
	_, err = src.Tag("c1", "strategic_account")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "leads.json")
	require.NoError(t, src.Save(path, "json"))

	dst := New(nil)
	loaded, err := dst.Load(path, "json")
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Index entries come from the stored fields, not reclassification.
	assert.Len(t, dst.LeadsByTag("warm"), 1)
	assert.Len(t, dst.LeadsByCategory("strategic_account"), 1)
	assert.Empty(t, dst.LeadsByCategory(classify.CategoryTechMidMarket))

	all := dst.All()
	require.Len(t, all, 2)
	assert.Equal(t, "p1", all[0].LeadID())
	assert.Equal(t, "c1", all[1].LeadID())
}

func TestLoadFailureLeavesStoreUntouched(t *testing.T) {
	s := New(nil)
	_, err := s.Ingest(domain.KindPerson, []domain.RawRecord{personRaw("p1", "Jane Doe")})
	require.NoError(t, err)

	out, err := s.Load(filepath.Join(t.TempDir(), "missing.json"), "json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Len(t, s.All(), 1)
}

func TestConcurrentIngestAndRead(t *testing.T) {
	s := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := s.Ingest(domain.KindPerson, []domain.RawRecord{
				personRaw(fmt.Sprintf("p%d", n), "Worker"),
			})
			assert.NoError(t, err)
			s.All()
			s.Report()
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.All(), 8)
}
