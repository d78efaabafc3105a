// Package rates - Versioned read-only rate feed
// A feed is built once at process start, content-hashed, and shared
// across concurrent quotes without locking. No table is ever mutated
// after construction.
package rates

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/shopspring/decimal"

	"titlequote/core/geography"
	"titlequote/core/types"
	"titlequote/internal/errors"
)

var one = decimal.NewFromInt(1)

// Tables is the raw table bundle a feed source produces.
type Tables struct {
	// RateTiers is the title premium rate card
	RateTiers []types.RateTier `json:"rateTiers"`

	// EscrowResale is the purchase escrow schedule
	EscrowResale []types.EscrowResaleRule `json:"escrowResale"`

	// EscrowRefinance is the refinance escrow schedule
	EscrowRefinance []types.EscrowRefinanceRule `json:"escrowRefinance"`

	// TransferTax is the documentary transfer tax schedule
	TransferTax []types.TransferTaxRule `json:"transferTax"`

	// Endorsements is the endorsement catalog
	Endorsements []types.Endorsement `json:"endorsements"`

	// Fees is the flat fee catalog
	Fees []types.Fee `json:"fees"`

	// Zones is the zone → city geography hierarchy
	Zones []types.Zone `json:"zones"`
}

// Feed is an immutable, indexed view over one version of the rate
// tables. Its identity is the sha256 hash of the canonical table JSON,
// so two feeds with identical content have identical ids.
type Feed struct {
	id          string
	contentHash string
	tables      Tables
	geo         *geography.Index
}

// NewFeed validates the tables, content-hashes them, and builds the
// indexed feed.
func NewFeed(tables Tables) (*Feed, error) {
	if err := validateTiers(tables.RateTiers); err != nil {
		return nil, err
	}

	data, err := json.Marshal(tables)
	if err != nil {
		return nil, errors.Feed("failed to serialize tables", err)
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	return &Feed{
		id:          "rates-" + hash[:12],
		contentHash: hash,
		tables:      tables,
		geo:         geography.NewIndex(tables.Zones),
	}, nil
}

// ID returns the feed's snapshot identifier.
func (f *Feed) ID() string {
	return f.id
}

// ContentHash returns the sha256 hash of the canonical table JSON.
func (f *Feed) ContentHash() string {
	return f.contentHash
}

// Tables returns the underlying tables. Callers must treat them as
// read-only.
func (f *Feed) Tables() Tables {
	return f.tables
}

// Geography returns the zone → city index.
func (f *Feed) Geography() *geography.Index {
	return f.geo
}

// Counts returns per-table row counts for feed introspection.
func (f *Feed) Counts() map[string]int {
	return map[string]int{
		"rate_tiers":       len(f.tables.RateTiers),
		"escrow_resale":    len(f.tables.EscrowResale),
		"escrow_refinance": len(f.tables.EscrowRefinance),
		"transfer_tax":     len(f.tables.TransferTax),
		"endorsements":     len(f.tables.Endorsements),
		"fees":             len(f.tables.Fees),
		"zones":            len(f.tables.Zones),
	}
}

// validateTiers enforces the rate card invariant: tiers partition the
// non-negative amount axis from zero without gaps or overlaps, with
// whole-dollar boundaries, and only the final tier may be open-ended.
func validateTiers(tiers []types.RateTier) error {
	if len(tiers) == 0 {
		return errors.New(errors.TypeFeed, "rate card has no tiers")
	}

	if !tiers[0].MinRange.IsZero() {
		return errors.Newf(errors.TypeFeed, "first tier must start at 0, got %s", tiers[0].MinRange)
	}

	for i := range tiers {
		tier := &tiers[i]
		last := i == len(tiers)-1

		if tier.Unbounded && !last {
			return errors.Newf(errors.TypeFeed, "tier %d is open-ended but not last", i)
		}
		if !tier.Unbounded && tier.MaxRange.LessThan(tier.MinRange) {
			return errors.Newf(errors.TypeFeed, "tier %d has inverted range [%s, %s]", i, tier.MinRange, tier.MaxRange)
		}
		if i == 0 {
			continue
		}

		prev := &tiers[i-1]
		if !tier.MinRange.Equal(prev.MaxRange.Add(one)) {
			return errors.Newf(errors.TypeFeed,
				"tier %d starts at %s, expected %s (previous tier ends at %s)",
				i, tier.MinRange, prev.MaxRange.Add(one), prev.MaxRange)
		}
	}

	return nil
}
