// Package types - Rate table row types
//
// All tables are read-only after feed construction and shared across
// concurrent quotes without locking.
package types

import "github.com/shopspring/decimal"

// RateTier is one row of the title premium rate card: a contiguous,
// inclusive amount range paired with the rate columns for that range.
// The final published tier may carry zero primary rates, meaning the
// amount exceeds the priced range; the resolver surfaces that as an
// explicit unpriced result, never as a zero premium.
type RateTier struct {
	// MinRange is the inclusive lower bound of the range
	MinRange decimal.Decimal `json:"minRange"`

	// MaxRange is the inclusive upper bound of the range
	MaxRange decimal.Decimal `json:"maxRange"`

	// Unbounded marks the final open-ended tier; MaxRange is ignored
	Unbounded bool `json:"unbounded,omitempty"`

	// Owner is the CLTA standard coverage owner's policy premium
	Owner decimal.Decimal `json:"owner"`

	// EnhancedOwner is the ALTA homeowner's policy premium
	EnhancedOwner decimal.Decimal `json:"enhancedOwner"`

	// ConcurrentLender is the lender premium when issued concurrently
	// with an owner's policy
	ConcurrentLender decimal.Decimal `json:"concurrentLender"`

	// StandaloneLender is the residential standalone lender premium
	StandaloneLender decimal.Decimal `json:"standaloneLender"`

	// FullLender is the full non-concurrent lender premium
	FullLender decimal.Decimal `json:"fullLender"`
}

// Contains reports whether the amount falls inside the tier's range,
// inclusive on both ends.
func (t *RateTier) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(t.MinRange) {
		return false
	}
	return t.Unbounded || amount.LessThanOrEqual(t.MaxRange)
}

// Unpriced reports whether the tier encodes the "no rate published"
// sentinel: both primary columns zero.
func (t *RateTier) Unpriced() bool {
	return t.Owner.IsZero() && t.ConcurrentLender.IsZero()
}

// EscrowResaleRule is one row of the purchase escrow fee schedule,
// keyed by zone and amount range. At most one computation mode is
// authoritative: a non-zero FlatRate wins outright; otherwise the
// base-plus-per-thousand formula applies with MinimumRate as a floor;
// a rule with a minimum and no formula charges the minimum verbatim.
type EscrowResaleRule struct {
	// Zone is the county-equivalent zone key
	Zone string `json:"zone"`

	// MinRange is the inclusive lower bound of the range
	MinRange decimal.Decimal `json:"minRange"`

	// MaxRange is the inclusive upper bound of the range
	MaxRange decimal.Decimal `json:"maxRange"`

	// Unbounded marks an open-ended final range
	Unbounded bool `json:"unbounded,omitempty"`

	// FlatRate, when non-zero, is used verbatim
	FlatRate decimal.Decimal `json:"flatRate"`

	// MinimumRate is the fee floor for the formula, or the fee itself
	// when no formula exists
	MinimumRate decimal.Decimal `json:"minimumRate"`

	// BaseAmount is the formula base
	BaseAmount decimal.Decimal `json:"baseAmount"`

	// PerThousand is the formula rate per $1000 of price
	PerThousand decimal.Decimal `json:"perThousandPrice"`
}

// Contains reports whether the amount falls inside the rule's range.
func (r *EscrowResaleRule) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(r.MinRange) {
		return false
	}
	return r.Unbounded || amount.LessThanOrEqual(r.MaxRange)
}

// HasFormula reports whether the rule carries a per-thousand formula.
func (r *EscrowResaleRule) HasFormula() bool {
	return !r.PerThousand.IsZero()
}

// EscrowRefinanceRule is one row of the refinance escrow fee schedule:
// a direct tiered rate, no formula.
type EscrowRefinanceRule struct {
	// Zone is the county-equivalent zone key
	Zone string `json:"zone"`

	// MinRange is the inclusive lower bound of the range
	MinRange decimal.Decimal `json:"minRange"`

	// MaxRange is the inclusive upper bound of the range
	MaxRange decimal.Decimal `json:"maxRange"`

	// Unbounded marks an open-ended final range
	Unbounded bool `json:"unbounded,omitempty"`

	// Rate is the escrow fee for the range
	Rate decimal.Decimal `json:"escrowRate"`
}

// Contains reports whether the amount falls inside the rule's range.
func (r *EscrowRefinanceRule) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(r.MinRange) {
		return false
	}
	return r.Unbounded || amount.LessThanOrEqual(r.MaxRange)
}

// TransferTaxRule carries the documentary transfer tax rates for one
// county identifier. The identifier may represent a specific city or a
// zone-wide "All Cities" aggregate.
type TransferTaxRule struct {
	// CountyID joins against the geography hierarchy
	CountyID string `json:"countyId"`

	// CountyRate is the county tax per $1000 of sale price
	CountyRate decimal.Decimal `json:"countyRate"`

	// CityRate is the city tax per $1000 of sale price
	CityRate decimal.Decimal `json:"cityRate"`
}

// EndorsementPartition splits the endorsement catalog by transaction type
type EndorsementPartition string

const (
	// PartitionResale holds endorsements available on purchases
	PartitionResale EndorsementPartition = "Resale"

	// PartitionRefinance holds endorsements available on refinances
	PartitionRefinance EndorsementPartition = "Re-finance"
)

// Endorsement is an add-on title policy rider priced as a flat fee.
type Endorsement struct {
	// ID uniquely identifies the endorsement within the catalog
	ID int `json:"id"`

	// Name is the endorsement form name
	Name string `json:"name"`

	// Partition scopes the endorsement to a transaction type
	Partition EndorsementPartition `json:"partition"`

	// Fee is the flat endorsement fee
	Fee decimal.Decimal `json:"fee"`

	// Default marks endorsements auto-included on every quote
	Default bool `json:"default"`
}

// FeeCategory classifies flat fee line items
type FeeCategory string

const (
	// CategoryEscrow fees fold into the escrow total
	CategoryEscrow FeeCategory = "escrow"

	// CategoryRecording fees cover document recording
	CategoryRecording FeeCategory = "recording"

	// CategoryMisc covers everything else
	CategoryMisc FeeCategory = "misc"
)

// Fee is a flat, transaction-type- and category-scoped line item.
type Fee struct {
	// Name is the line item label
	Name string `json:"name"`

	// Category classifies the fee
	Category FeeCategory `json:"category"`

	// TransactionType scopes the fee
	TransactionType TransactionType `json:"transactionType"`

	// Amount is the flat fee
	Amount decimal.Decimal `json:"amount"`

	// Active disables retired fees without deleting rows
	Active bool `json:"active"`
}

// AllCitiesName is the synthetic city representing a zone-wide default.
const AllCitiesName = "All Cities"

// City is one city within a zone, carrying the identifier used to join
// transfer tax rules.
type City struct {
	// Name is the city name
	Name string `json:"name"`

	// CountyID joins against TransferTaxRule rows
	CountyID string `json:"countyId"`
}

// Zone is a county-equivalent grouping of cities.
type Zone struct {
	// Name is the zone name
	Name string `json:"name"`

	// Cities are the zone's cities, including the "All Cities" default
	Cities []City `json:"cities"`
}
