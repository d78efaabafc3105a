// Package title resolves tiered title insurance premiums.
//
// Rate lookups return a tagged result so the rate card's zero-rate
// sentinel for unpublished tiers is never confused with a legitimate
// zero premium.
package title

import (
	"github.com/shopspring/decimal"

	"titlequote/core/types"
)

// Status classifies a tier lookup
type Status int

const (
	// StatusNoTier means no tier contains the amount
	StatusNoTier Status = iota

	// StatusPriced means the matched tier carries published rates
	StatusPriced

	// StatusUnpriced means the amount exceeds the priced range and the
	// transaction must be quoted manually
	StatusUnpriced
)

// TierMatch is the tagged result of a tier lookup
type TierMatch struct {
	// Status classifies the match
	Status Status

	// Tier is the matched row, nil when Status is StatusNoTier
	Tier *types.RateTier
}

// PolicyQuote is a resolved policy premium
type PolicyQuote struct {
	// Premium is the policy premium, zero when no policy is issued or
	// the amount is unpriced
	Premium decimal.Decimal

	// Label names the policy form, empty when no policy is issued
	Label string

	// Unpriced flags amounts above the priced range
	Unpriced bool
}

// Policy form labels.
const (
	LabelOwnerStandard    = "CLTA Standard Coverage Owner's Policy"
	LabelOwnerEnhanced    = "ALTA Homeowner's Policy"
	LabelLenderConcurrent = "ALTA Lender's Policy (Concurrent)"
	LabelLenderStandalone = "ALTA Lender's Policy (Standalone)"
)

// Resolver maps dollar amounts to rate card tiers and derives policy
// premiums. It holds the rate card read-only.
type Resolver struct {
	tiers []types.RateTier
}

// NewResolver creates a resolver over the given rate card.
func NewResolver(tiers []types.RateTier) *Resolver {
	return &Resolver{tiers: tiers}
}

// Lookup finds the tier containing the amount. Bounds are inclusive on
// both ends; negative amounts match nothing. The card is small, so a
// linear scan suffices.
func (r *Resolver) Lookup(amount decimal.Decimal) TierMatch {
	for idx := range r.tiers {
		tier := &r.tiers[idx]
		if !tier.Contains(amount) {
			continue
		}
		if tier.Unpriced() {
			return TierMatch{Status: StatusUnpriced, Tier: tier}
		}
		return TierMatch{Status: StatusPriced, Tier: tier}
	}
	return TierMatch{Status: StatusNoTier}
}

// OwnerPremium resolves the owner's policy premium for a purchase at
// the given sale price. An unpriced tier yields a zero premium with the
// Unpriced flag set; the caller surfaces that as call-for-quote.
func (r *Resolver) OwnerPremium(salesPrice decimal.Decimal, policyType types.PolicyType) PolicyQuote {
	match := r.Lookup(salesPrice)
	switch match.Status {
	case StatusNoTier:
		return PolicyQuote{}
	case StatusUnpriced:
		return PolicyQuote{Label: ownerLabel(policyType), Unpriced: true}
	}

	premium := match.Tier.Owner
	if policyType == types.PolicyEnhanced {
		premium = match.Tier.EnhancedOwner
	}
	return PolicyQuote{Premium: premium, Label: ownerLabel(policyType)}
}

// LenderPremium resolves the lender's policy premium against the loan
// amount's own tier. Concurrent issuance uses the concurrent column;
// standalone issuance (refinance, or a purchase without an owner's
// policy) uses the residential standalone column. The full
// non-concurrent column is carried on the tier but selected by neither
// path.
func (r *Resolver) LenderPremium(loanAmount decimal.Decimal, concurrent bool) PolicyQuote {
	match := r.Lookup(loanAmount)
	switch match.Status {
	case StatusNoTier:
		return PolicyQuote{}
	case StatusUnpriced:
		return PolicyQuote{Label: lenderLabel(concurrent), Unpriced: true}
	}

	premium := match.Tier.StandaloneLender
	if concurrent {
		premium = match.Tier.ConcurrentLender
	}
	return PolicyQuote{Premium: premium, Label: lenderLabel(concurrent)}
}

func ownerLabel(policyType types.PolicyType) string {
	if policyType == types.PolicyEnhanced {
		return LabelOwnerEnhanced
	}
	return LabelOwnerStandard
}

func lenderLabel(concurrent bool) string {
	if concurrent {
		return LabelLenderConcurrent
	}
	return LabelLenderStandalone
}
