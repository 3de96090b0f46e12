package relevance

import (
	"math"
	"regexp"
	"strings"

	"github.com/mentorhub/contextd/internal/core"
)

// Sub-score weights; together they sum to 1.0.
const (
	industryWeight     = 0.30
	orgUnitWeight      = 0.30
	relationshipWeight = 0.25
	engagementWeight   = 0.15
)

// Catalogue entries carry an ordering prefix like "3. Marketing" or
// "2.1. Prodaja"; membership checks run against the stripped form too.
var orderPrefix = regexp.MustCompile(`^\d+(\.\d+)*\.?\s*`)

// Input carries the per-call signals for scoring one candidate concept.
// Every field except Category is optional; missing signals degrade to
// neutral defaults instead of erroring, so concept filtering never blocks
// on incomplete tenant metadata.
type Input struct {
	Category       string
	TenantIndustry string

	// PriorEngagementIDs are the concept ids the tenant has already
	// explored, used only as a coarse any-activity signal when the
	// category set below is absent.
	PriorEngagementIDs []string

	// PriorEngagementCategories, when non-nil, is the finer-grained set of
	// category labels already explored.
	PriorEngagementCategories []string

	// OrgUnit is the viewer's department; nil means an owner-level,
	// unrestricted viewpoint.
	OrgUnit *string

	// Role selects the acceptance threshold; it never enters the score.
	Role string

	Relationship core.Relationship
}

// Scorer computes a 0..1 relevance score for surfacing discoverable
// concepts to a tenant. Pure computation: no I/O, no error paths.
type Scorer struct {
	tables Tables
}

func NewScorer(tables Tables) *Scorer {
	return &Scorer{tables: tables}
}

// StripOrderPrefix removes a leading numeric ordering token.
func StripOrderPrefix(category string) string {
	return orderPrefix.ReplaceAllString(category, "")
}

// Score returns the weighted relevance of the candidate in [0, 1].
// Foundation categories override everything and score 1.0 outright.
func (s *Scorer) Score(in Input) float64 {
	stripped := StripOrderPrefix(in.Category)

	if contains(s.tables.Foundation, in.Category) || contains(s.tables.Foundation, stripped) {
		return 1.0
	}

	score := industryWeight*s.industryScore(in.TenantIndustry, stripped) +
		orgUnitWeight*s.orgUnitScore(in.OrgUnit, stripped) +
		relationshipWeight*relationshipScore(in.Relationship) +
		engagementWeight*s.engagementScore(in, stripped)

	// Weights sum to 1.0, so this is a safety bound rather than a normal
	// code path.
	return math.Min(score, 1.0)
}

// Threshold returns the acceptance cut-off for the given role. Owner-tier
// roles browse the full catalogue, so they get a lower bar; unrecognized
// roles get the default.
func (s *Scorer) Threshold(role string) float64 {
	switch role {
	case core.RolePlatformOwner, core.RoleTenantOwner:
		return OwnerThreshold
	default:
		return DefaultThreshold
	}
}

const (
	OwnerThreshold   = 0.15
	DefaultThreshold = 0.30
)

func (s *Scorer) industryScore(industry, category string) float64 {
	if industry == "" {
		return 0.5
	}

	lower := strings.ToLower(industry)
	for keyword, categories := range s.tables.IndustryKeywords {
		if strings.Contains(lower, keyword) && contains(categories, category) {
			return 1.0
		}
	}
	if contains(s.tables.Universal, category) {
		return 0.6
	}
	return 0.2
}

func (s *Scorer) orgUnitScore(orgUnit *string, category string) float64 {
	if orgUnit == nil {
		// Owner-level viewpoint: everything is broadly relevant.
		return 0.7
	}

	categories, ok := s.tables.OrgUnits[strings.ToLower(*orgUnit)]
	if !ok {
		return 0.5
	}
	if contains(categories, category) {
		return 1.0
	}
	return 0.3
}

func relationshipScore(rel core.Relationship) float64 {
	switch rel {
	case core.RelPrerequisite:
		return 1.0
	case core.RelRelated:
		return 0.6
	case core.RelAdvanced:
		return 0.2
	default:
		return 0.5
	}
}

func (s *Scorer) engagementScore(in Input, stripped string) float64 {
	if in.PriorEngagementCategories != nil {
		if contains(in.PriorEngagementCategories, stripped) || contains(in.PriorEngagementCategories, in.Category) {
			return 0.8
		}
		return 0.3
	}

	// Coarse fallback: any prior activity at all.
	if len(in.PriorEngagementIDs) > 0 {
		return 0.8
	}
	return 0.3
}
