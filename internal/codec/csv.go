package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"leadscout-engine/internal/domain"
)

var (
	personColumns = []string{
		"id", "name", "headline", "location", "industry",
		"profile_url", "current_company", "tags",
	}
	companyColumns = []string{
		"id", "name", "industry", "size", "location", "website",
		"company_url", "category", "description", "founded", "specialties",
	}
)

// saveCSV writes the header from the first record's field set and
// projects every later record onto it: fields the record lacks come
// out blank, fields the header lacks are dropped. Mixed collections
// therefore lose data; that is the documented contract of this format.
func (c *Codec) saveCSV(leads []domain.Lead, path string) error {
	if len(leads) == 0 {
		return fmt.Errorf("%w: cannot derive a csv header", domain.ErrEmptyCollection)
	}

	header := personColumns
	if leads[0].LeadKind() == domain.KindCompany {
		header = companyColumns
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrWrite, path, err)
	}
	for _, l := range leads {
		fields := leadFields(l)
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = fields[col]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrWrite, path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrWrite, path, err)
	}
	return c.writeLocked(path, buf.Bytes())
}

// loadCSV reads rows back as string-valued records. The header decides
// the variant for the whole file: a tags column means people, a
// category column means companies. No type coercion happens here.
func (c *Codec) loadCSV(path string) ([]domain.Lead, error) {
	data, err := c.readLocked(path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, path, err)
	}
	if len(rows) == 0 {
		return []domain.Lead{}, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}
	_, isPerson := cols["tags"]
	_, isCompany := cols["category"]
	if !isPerson && !isCompany {
		c.log.Warn("csv header has no tags or category column, skipping file",
			zap.String("path", path))
		return []domain.Lead{}, nil
	}

	leads := make([]domain.Lead, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}
		if isPerson {
			leads = append(leads, &domain.Person{
				ID:             cell("id"),
				Name:           cell("name"),
				Headline:       cell("headline"),
				Location:       cell("location"),
				Industry:       cell("industry"),
				ProfileURL:     cell("profile_url"),
				CurrentCompany: cell("current_company"),
				Tags:           splitList(cell("tags")),
			})
			continue
		}
		leads = append(leads, &domain.Company{
			ID:          cell("id"),
			Name:        cell("name"),
			Industry:    cell("industry"),
			Size:        cell("size"),
			Location:    cell("location"),
			Website:     cell("website"),
			CompanyURL:  cell("company_url"),
			Category:    cell("category"),
			Description: cell("description"),
			Founded:     cell("founded"),
			Specialties: splitList(cell("specialties")),
		})
	}
	return leads, nil
}

func leadFields(l domain.Lead) map[string]string {
	switch v := l.(type) {
	case *domain.Person:
		return map[string]string{
			"id":              v.ID,
			"name":            v.Name,
			"headline":        v.Headline,
			"location":        v.Location,
			"industry":        v.Industry,
			"profile_url":     v.ProfileURL,
			"current_company": v.CurrentCompany,
			"tags":            strings.Join(v.Tags, ";"),
		}
	case *domain.Company:
		return map[string]string{
			"id":          v.ID,
			"name":        v.Name,
			"industry":    v.Industry,
			"size":        v.Size,
			"location":    v.Location,
			"website":     v.Website,
			"company_url": v.CompanyURL,
			"category":    v.Category,
			"description": v.Description,
			"founded":     v.Founded,
			"specialties": strings.Join(v.Specialties, ";"),
		}
	}
	return map[string]string{}
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
