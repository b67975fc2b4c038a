package classify

import (
	"strings"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/domain"
)

// Category labels assigned to company leads.
const (
	CategoryTechStartup       = "tech_startup"
	CategoryTechEnterprise    = "tech_enterprise"
	CategoryTechMidMarket     = "tech_mid_market"
	CategoryVentureCapital    = "venture_capital"
	CategoryInsurance         = "insurance"
	CategoryFinancialServices = "financial_services"
	CategoryBiotechPharma     = "biotech_pharma"
	CategoryHealthcare        = "healthcare"
	CategoryManufacturing     = "manufacturing"
	CategoryEcommerce         = "ecommerce"
	CategoryRetail            = "retail"
	CategoryEducation         = "education"
	CategoryOther             = "other"
)

// Built-in role tags for person leads.
const (
	TagDecisionMaker = "decision_maker"
	TagExecutive     = "executive"
)

// Headcount bands used to refine the tech group. Size strings are
// compared after lower-casing and stripping commas, so "5,001-10,000"
// and "5001-10000" land in the same band.
var (
	startupSizes    = map[string]bool{"1-10": true, "11-50": true}
	enterpriseSizes = map[string]bool{"5001-10000": true, "10001+": true}
)

// CategorizeCompany maps a company to exactly one category. Keyword
// groups are tested in declaration order against the lower-cased
// industry; the first matching group wins and its refinements consult
// size and specialties. Always returns a category; the fallback is
// CategoryOther.
func CategorizeCompany(c domain.Company) string {
	industry := strings.ToLower(c.Industry)
	size := normalizeSize(c.Size)

	industryAny := func(needles ...string) bool {
		for _, n := range needles {
			if strings.Contains(industry, n) {
				return true
			}
		}
		return false
	}

	switch {
	case industryAny("tech", "software", "it", "computer"):
		if strings.Contains(industry, "startup") || startupSizes[size] {
			return CategoryTechStartup
		}
		if enterpriseSizes[size] {
			return CategoryTechEnterprise
		}
		return CategoryTechMidMarket

	case industryAny("finance", "banking", "investment"):
		if strings.Contains(industry, "venture") || specialtyContains(c.Specialties, "venture") {
			return CategoryVentureCapital
		}
		if strings.Contains(industry, "insurance") {
			return CategoryInsurance
		}
		return CategoryFinancialServices

	case industryAny("health", "medical", "pharma", "biotech"):
		if industryAny("biotech", "pharmaceutical") {
			return CategoryBiotechPharma
		}
		return CategoryHealthcare

	case industryAny("manufacturing", "industrial"):
		return CategoryManufacturing

	case industryAny("retail", "consumer"):
		if strings.Contains(industry, "e-commerce") || specialtyContains(c.Specialties, "e-commerce") {
			return CategoryEcommerce
		}
		return CategoryRetail

	case industryAny("education", "academic", "school", "university"):
		return CategoryEducation

	default:
		return CategoryOther
	}
}

func normalizeSize(size string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(size)), ",", "")
}

func specialtyContains(specialties []string, needle string) bool {
	for _, s := range specialties {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// Tagger derives role tags for person leads from their headline. The
// built-in rules always apply; Extra extends them from config.
type Tagger struct {
	Extra []config.RoleRule
}

func builtinRules() []config.RoleRule {
	return []config.RoleRule{
		{Tag: TagDecisionMaker, Any: []string{"manager"}},
		{Tag: TagExecutive, Any: []string{"director", "ceo"}},
	}
}

// RoleTags returns the tags a headline earns. When the search keyword
// itself appears in the headline, "{keyword}_professional" is added.
// Returns an empty slice when nothing matches.
func (t Tagger) RoleTags(headline, keyword string) []string {
	text := strings.ToLower(headline)

	var tags []string
	applyRules := func(rules []config.RoleRule) {
		for _, r := range rules {
			for _, needle := range r.Any {
				n := strings.ToLower(strings.TrimSpace(needle))
				if n == "" {
					continue
				}
				if strings.Contains(text, n) {
					tags = append(tags, r.Tag)
					break
				}
			}
		}
	}

	applyRules(builtinRules())
	applyRules(t.Extra)

	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw != "" && strings.Contains(text, kw) {
		tags = append(tags, strings.ReplaceAll(kw, " ", "_")+"_professional")
	}

	return uniq(tags)
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
