package relevance

import (
	"math/rand"
	"testing"

	"github.com/mentorhub/contextd/internal/core"
)

func strPtr(s string) *string { return &s }

func TestStripOrderPrefix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no_prefix", "Marketing", "Marketing"},
		{"simple_prefix", "3. Marketing", "Marketing"},
		{"nested_prefix", "2.1. Prodaja", "Prodaja"},
		{"prefix_without_dot", "4 Financije", "Financije"},
		{"deep_prefix", "1.2.3. Vodstvo", "Vodstvo"},
		{"only_number", "12.", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripOrderPrefix(tt.input); got != tt.want {
				t.Errorf("StripOrderPrefix(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestScorer_FoundationOverride(t *testing.T) {
	s := NewScorer(DefaultTables())

	// Deliberately adversarial signals: empty industry, ADVANCED
	// relationship, no prior activity. The override must still win.
	adversarial := Input{
		TenantIndustry: "",
		Relationship:   core.RelAdvanced,
		OrgUnit:        nil,
	}

	for _, category := range []string{"Uvod u Poslovanje", "1. Uvod u Poslovanje"} {
		in := adversarial
		in.Category = category
		if got := s.Score(in); got != 1.0 {
			t.Errorf("Score(%q) = %v, want exactly 1.0", category, got)
		}
	}
}

func TestScorer_RelationshipMonotonicity(t *testing.T) {
	s := NewScorer(DefaultTables())

	base := Input{
		Category:       "Tehnologija",
		TenantIndustry: "software development",
		OrgUnit:        strPtr("IT"),
	}

	score := func(rel core.Relationship) float64 {
		in := base
		in.Relationship = rel
		return s.Score(in)
	}

	prereq := score(core.RelPrerequisite)
	related := score(core.RelRelated)
	advanced := score(core.RelAdvanced)

	if !(prereq > related && related > advanced) {
		t.Errorf("want PREREQUISITE > RELATED > ADVANCED, got %v, %v, %v", prereq, related, advanced)
	}
}

func TestScorer_UnknownRelationshipIsNeutral(t *testing.T) {
	s := NewScorer(DefaultTables())

	in := Input{Category: "Tehnologija", TenantIndustry: "software"}
	in.Relationship = core.Relationship("SIDEWAYS")
	unknown := s.Score(in)
	in.Relationship = ""
	absent := s.Score(in)

	if unknown != absent {
		t.Errorf("unknown relationship = %v, absent = %v, want identical neutral default", unknown, absent)
	}
}

func TestScorer_IndustryMatchBeatsNoMatch(t *testing.T) {
	s := NewScorer(DefaultTables())

	base := Input{
		TenantIndustry: "software development",
		OrgUnit:        strPtr("nepoznato"),
		Relationship:   core.RelRelated,
	}

	matched := base
	matched.Category = "Tehnologija"
	unmatched := base
	unmatched.Category = "Računovodstvo"

	if sm, su := s.Score(matched), s.Score(unmatched); sm <= su {
		t.Errorf("Tehnologija (%v) must outscore Računovodstvo (%v) under a software tenant", sm, su)
	}

	// Sub-score check via the weighted difference: 1.0 vs 0.2 on a 0.30
	// weight is a 0.24 gap.
	diff := s.Score(matched) - s.Score(unmatched)
	if diff < 0.23 || diff > 0.25 {
		t.Errorf("weighted industry gap = %v, want 0.24", diff)
	}
}

func TestScorer_EmptyIndustryIsNeutral(t *testing.T) {
	s := NewScorer(DefaultTables())

	neutral := s.Score(Input{Category: "Tehnologija", TenantIndustry: ""})
	unmatchedIndustry := s.Score(Input{Category: "Tehnologija", TenantIndustry: "poljoprivreda"})

	// 0.5 neutral vs 0.2 miss on the 0.30 industry weight.
	if neutral <= unmatchedIndustry {
		t.Errorf("empty industry (%v) must not score below a mismatched one (%v)", neutral, unmatchedIndustry)
	}
}

func TestScorer_OrgUnit(t *testing.T) {
	s := NewScorer(DefaultTables())

	base := Input{Category: "Marketing", TenantIndustry: "trgovina"}

	owner := base // nil org unit
	inUnit := base
	inUnit.OrgUnit = strPtr("Marketing")
	offUnit := base
	offUnit.OrgUnit = strPtr("Prodaja")
	unknownUnit := base
	unknownUnit.OrgUnit = strPtr("skladište")

	so, si, sf, su := s.Score(owner), s.Score(inUnit), s.Score(offUnit), s.Score(unknownUnit)

	if !(si > so && so > su && su > sf) {
		t.Errorf("want in-unit > owner > unknown-unit > off-unit, got %v, %v, %v, %v", si, so, su, sf)
	}
}

func TestScorer_PriorEngagement(t *testing.T) {
	s := NewScorer(DefaultTables())

	base := Input{Category: "3. Tehnologija", TenantIndustry: "software"}

	withCategories := base
	withCategories.PriorEngagementCategories = []string{"Tehnologija"}
	withoutMatch := base
	withoutMatch.PriorEngagementCategories = []string{"Prodaja"}
	coarseActive := base
	coarseActive.PriorEngagementIDs = []string{"concept-7"}
	inactive := base

	if s.Score(withCategories) <= s.Score(withoutMatch) {
		t.Error("stripped-category membership in the explored set must boost the score")
	}
	if s.Score(coarseActive) <= s.Score(inactive) {
		t.Error("any prior activity must boost the score when categories are absent")
	}

	// An empty (but non-nil) category set must NOT fall back to the coarse
	// signal.
	emptySet := base
	emptySet.PriorEngagementCategories = []string{}
	emptySet.PriorEngagementIDs = []string{"concept-7"}
	if s.Score(emptySet) != s.Score(withoutMatch) {
		t.Error("a supplied empty category set overrides the coarse id fallback")
	}
}

func TestScorer_ThresholdTable(t *testing.T) {
	s := NewScorer(DefaultTables())

	platform := s.Threshold("PLATFORM_OWNER")
	tenant := s.Threshold("TENANT_OWNER")
	member := s.Threshold("MEMBER")
	unknown := s.Threshold("anything-unrecognized")

	if platform != tenant {
		t.Errorf("owner thresholds differ: %v vs %v", platform, tenant)
	}
	if member != unknown {
		t.Errorf("non-owner thresholds differ: %v vs %v", member, unknown)
	}
	if platform >= member {
		t.Errorf("owner threshold (%v) must be below the default (%v)", platform, member)
	}
}

func TestScorer_ScoreAlwaysBounded(t *testing.T) {
	s := NewScorer(DefaultTables())
	rnd := rand.New(rand.NewSource(42))

	categories := []string{"Tehnologija", "Računovodstvo", "3. Marketing", "Uvod u Poslovanje", "Nepoznata Tema", "", "1.2. Prodaja"}
	industries := []string{"", "software development", "trgovina na malo", "ugostiteljstvo", "xyz"}
	units := []*string{nil, strPtr("Marketing"), strPtr("IT"), strPtr("nešto drugo")}
	relationships := []core.Relationship{"", core.RelPrerequisite, core.RelRelated, core.RelAdvanced, "BOGUS"}

	for i := 0; i < 1000; i++ {
		in := Input{
			Category:       categories[rnd.Intn(len(categories))],
			TenantIndustry: industries[rnd.Intn(len(industries))],
			OrgUnit:        units[rnd.Intn(len(units))],
			Relationship:   relationships[rnd.Intn(len(relationships))],
		}
		if rnd.Intn(2) == 0 {
			in.PriorEngagementIDs = []string{"id-1"}
		}
		if rnd.Intn(3) == 0 {
			in.PriorEngagementCategories = []string{"Marketing", "Prodaja"}
		}

		got := s.Score(in)
		if got < 0 || got > 1 {
			t.Fatalf("Score(%+v) = %v, out of [0, 1]", in, got)
		}
	}
}
