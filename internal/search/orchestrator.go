package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"leadscout-engine/internal/classify"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/source"
	"leadscout-engine/internal/store"
)

// DefaultLimit applies when a caller leaves Limit at zero.
const DefaultLimit = 10

// Params is one search request. Keywords is required; the rest narrows
// the result set. AutoTag only affects person searches and is opt-in.
type Params struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
	Industry string `json:"industry,omitempty"`
	Size     string `json:"size,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	AutoTag  bool   `json:"auto_tag,omitempty"`
}

// Orchestrator runs the fetch -> ingest -> tag pipeline against one
// result source.
type Orchestrator struct {
	src    source.Source
	store  *store.LeadStore
	tagger classify.Tagger
	log    *zap.Logger

	// OnNew fires once per ingested lead, after auto-tagging, with the
	// source name. The daemon hangs the archive, event hub and metrics
	// off this hook.
	OnNew func(l domain.Lead, src string)
}

func New(src source.Source, st *store.LeadStore, tagger classify.Tagger, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{src: src, store: st, tagger: tagger, log: log}
}

// Source reports which result source this orchestrator queries.
func (o *Orchestrator) Source() string { return o.src.Name() }

// SearchPeople fetches person leads, ingests them and optionally tags
// them by headline. A source failure propagates; it never collapses
// into an empty result.
func (o *Orchestrator) SearchPeople(ctx context.Context, p Params) ([]*domain.Person, error) {
	p, err := normalizeParams(p)
	if err != nil {
		return nil, err
	}

	raws, err := o.src.FetchPeople(ctx, o.query(p))
	if err != nil {
		return nil, fmt.Errorf("people search: %w", err)
	}
	if len(raws) > p.Limit {
		raws = raws[:p.Limit]
	}

	leads, err := o.store.Ingest(domain.KindPerson, raws)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Person, 0, len(leads))
	for _, l := range leads {
		person := l.(*domain.Person)
		if p.AutoTag {
			for _, tag := range o.tagger.RoleTags(person.Headline, p.Keywords) {
				tagged, err := o.store.Tag(person.ID, tag)
				if err != nil {
					o.log.Warn("auto tag failed",
						zap.String("id", person.ID), zap.String("tag", tag), zap.Error(err))
					continue
				}
				person = tagged.(*domain.Person)
			}
		}
		if o.OnNew != nil {
			o.OnNew(person.Clone(), o.src.Name())
		}
		out = append(out, person)
	}

	o.log.Info("people search",
		zap.String("source", o.src.Name()),
		zap.String("keywords", p.Keywords),
		zap.Int("results", len(out)),
		zap.Bool("auto_tag", p.AutoTag))
	return out, nil
}

// SearchCompanies fetches company leads and ingests them; every company
// comes back categorized.
func (o *Orchestrator) SearchCompanies(ctx context.Context, p Params) ([]*domain.Company, error) {
	p, err := normalizeParams(p)
	if err != nil {
		return nil, err
	}

	raws, err := o.src.FetchCompanies(ctx, o.query(p))
	if err != nil {
		return nil, fmt.Errorf("company search: %w", err)
	}
	if len(raws) > p.Limit {
		raws = raws[:p.Limit]
	}

	leads, err := o.store.Ingest(domain.KindCompany, raws)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Company, 0, len(leads))
	for _, l := range leads {
		company := l.(*domain.Company)
		if o.OnNew != nil {
			o.OnNew(company.Clone(), o.src.Name())
		}
		out = append(out, company)
	}

	o.log.Info("company search",
		zap.String("source", o.src.Name()),
		zap.String("keywords", p.Keywords),
		zap.Int("results", len(out)))
	return out, nil
}

// SearchCombined runs the people and company searches concurrently and
// returns both result sets. Either failure fails the whole call.
func (o *Orchestrator) SearchCombined(ctx context.Context, p Params) ([]*domain.Person, []*domain.Company, error) {
	if _, err := normalizeParams(p); err != nil {
		return nil, nil, err
	}

	var (
		people    []*domain.Person
		companies []*domain.Company
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		people, err = o.SearchPeople(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		companies, err = o.SearchCompanies(gctx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return people, companies, nil
}

func normalizeParams(p Params) (Params, error) {
	p.Keywords = strings.TrimSpace(p.Keywords)
	if p.Keywords == "" {
		return p, fmt.Errorf("%w: keywords are required", domain.ErrInvalidArgument)
	}
	if p.Limit < 0 {
		return p, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidArgument)
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	return p, nil
}

func (o *Orchestrator) query(p Params) source.Query {
	return source.Query{
		Keywords: p.Keywords,
		Location: p.Location,
		Industry: p.Industry,
		Size:     p.Size,
		Limit:    p.Limit,
	}
}
