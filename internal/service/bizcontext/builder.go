package bizcontext

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mentorhub/contextd/internal/core"
	"github.com/mentorhub/contextd/pkg/log"
	"github.com/mentorhub/contextd/pkg/tokens"
)

const (
	DefaultTokenBudget  = 1500
	DefaultFooterMargin = 100
	DefaultMaxRecords   = 100
	DefaultCacheTTL     = 5 * time.Minute
)

const (
	contextHeader = "=== POSLOVNI KONTEKST KLIJENTA ===\n"
	contextFooter = "\n=== KRAJ POSLOVNOG KONTEKSTA ===\n" +
		"Koristi gornje informacije za personalizaciju savjeta.\n" +
		"Ne spominji izravno da vodiš evidenciju o klijentu.\n"
)

// Builder assembles the tenant-wide business context block injected into
// LLM prompts. Blocks are cached per tenant; the memory write path calls
// Invalidate after every mutation, and entries expire on their own via the
// cache TTL. Concurrent cold builds for the same tenant may both do the
// work and both write the cache; last write wins and both results are
// equivalent for the same data snapshot.
type Builder struct {
	repo      core.MemoryRepository
	cache     core.ContextCache
	estimator tokens.Estimator
	labels    Labels

	TokenBudget  int
	FooterMargin int
	MaxRecords   int
}

func NewBuilder(repo core.MemoryRepository, cache core.ContextCache, estimator tokens.Estimator, labels Labels) *Builder {
	if estimator == nil {
		estimator = tokens.NewHeuristic(tokens.DefaultCharsPerToken)
	}
	if labels == nil {
		labels = DefaultLabels()
	}
	return &Builder{
		repo:         repo,
		cache:        cache,
		estimator:    estimator,
		labels:       labels,
		TokenBudget:  DefaultTokenBudget,
		FooterMargin: DefaultFooterMargin,
		MaxRecords:   DefaultMaxRecords,
	}
}

// Build returns the context block for the tenant, rebuilding it from the
// memory store unless a live cached copy exists. A tenant with no records
// gets "" with nothing cached, so the first saved fact shows up on the
// next call instead of after the TTL. Fetch failures propagate to the
// caller, who decides whether to proceed without context.
func (b *Builder) Build(ctx context.Context, tenantID string) (string, error) {
	logger := log.FromCtx(ctx)

	if cached, ok := b.cache.Get(tenantID); ok {
		logger.Debug().Str("tenant", tenantID).Msg("business context cache hit")
		return cached, nil
	}

	records, err := b.repo.GetRecent(ctx, tenantID, b.MaxRecords)
	if err != nil {
		return "", fmt.Errorf("fetch memories: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	block := b.assemble(records)
	b.cache.Set(tenantID, block)

	logger.Debug().
		Str("tenant", tenantID).
		Int("records", len(records)).
		Int("bytes", len(block)).
		Msg("business context rebuilt")
	return block, nil
}

// Invalidate drops the tenant's cached block. Idempotent. A build that was
// already in flight when Invalidate is called may still write a stale
// block afterwards; the TTL bounds that staleness window.
func (b *Builder) Invalidate(tenantID string) {
	b.cache.Delete(tenantID)
}

// assemble packs records into the block greedily: sections in first-seen
// type order, lines in the supplied newest-first order, until the content
// budget (total minus the footer margin) runs out. Once a section header
// no longer fits, all remaining sections are skipped — ordered-greedy, not
// best-effort bin packing.
func (b *Builder) assemble(records []core.MemoryRecord) string {
	groups, order := groupByType(records)

	var sb strings.Builder
	sb.WriteString(contextHeader)
	used := b.estimator.Estimate(contextHeader)
	maxContent := b.TokenBudget - b.FooterMargin

	for _, t := range order {
		header := "\n[" + b.labels.For(t) + "]\n"
		headerTokens := b.estimator.Estimate(header)
		if used+headerTokens > maxContent {
			break
		}
		sb.WriteString(header)
		used += headerTokens

		for _, rec := range groups[t] {
			line := formatLine(rec)
			lineTokens := b.estimator.Estimate(line)
			if used+lineTokens > maxContent {
				break
			}
			sb.WriteString(line)
			used += lineTokens
		}
	}

	sb.WriteString(contextFooter)
	return sb.String()
}

// groupByType buckets records by type. The caller-supplied newest-first
// order is preserved within each group, and the group order itself is the
// order in which each type was first seen during the scan — kept as an
// explicit list instead of relying on map iteration.
func groupByType(records []core.MemoryRecord) (map[core.MemoryType][]core.MemoryRecord, []core.MemoryType) {
	groups := make(map[core.MemoryType][]core.MemoryRecord)
	order := make([]core.MemoryType, 0, 4)

	for _, rec := range records {
		if _, seen := groups[rec.Type]; !seen {
			order = append(order, rec.Type)
		}
		groups[rec.Type] = append(groups[rec.Type], rec)
	}
	return groups, order
}

func formatLine(rec core.MemoryRecord) string {
	if rec.Subject != "" {
		return "- " + rec.Content + " (" + rec.Subject + ")\n"
	}
	return "- " + rec.Content + "\n"
}
