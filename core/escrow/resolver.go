// Package escrow computes escrow settlement fees for purchase and
// refinance transactions.
package escrow

import (
	"github.com/shopspring/decimal"

	"titlequote/core/fees"
	"titlequote/core/types"
)

var oneThousand = decimal.NewFromInt(1000)

// Resolver computes the escrow section of a quote. Rules are keyed by
// zone and matched by amount range; fee math is rounded half up to two
// decimal places.
type Resolver struct {
	resale map[string][]types.EscrowResaleRule
	refi   map[string][]types.EscrowRefinanceRule
	fees   *fees.Aggregator
}

// NewResolver creates a resolver over the escrow schedules and the fee
// catalog.
func NewResolver(resale []types.EscrowResaleRule, refi []types.EscrowRefinanceRule, agg *fees.Aggregator) *Resolver {
	r := &Resolver{
		resale: make(map[string][]types.EscrowResaleRule),
		refi:   make(map[string][]types.EscrowRefinanceRule),
		fees:   agg,
	}
	for _, rule := range resale {
		r.resale[rule.Zone] = append(r.resale[rule.Zone], rule)
	}
	for _, rule := range refi {
		r.refi[rule.Zone] = append(r.refi[rule.Zone], rule)
	}
	return r
}

// Resolve computes the escrow fees for a transaction. Missing rules
// resolve to a zero base fee; the supplemental escrow-category fees are
// added regardless.
func (r *Resolver) Resolve(txType types.TransactionType, zone string, amount decimal.Decimal) types.EscrowFees {
	var base decimal.Decimal
	if txType == types.TransactionRefinance {
		base = r.refinanceFee(zone, amount)
	} else {
		base = r.resaleFee(zone, amount)
	}

	supplements := r.fees.EscrowItems(txType)
	total := base
	for _, item := range supplements {
		total = total.Add(item.Fee)
	}

	return types.EscrowFees{
		BaseFee:        base,
		AdditionalFees: supplements,
		Total:          total,
	}
}

// resaleFee applies the purchase schedule: flat rate verbatim when set;
// otherwise the minimum verbatim when no formula exists; otherwise
// base + amount/1000 * perThousand, clamped up to the minimum.
func (r *Resolver) resaleFee(zone string, amount decimal.Decimal) decimal.Decimal {
	rule, ok := matchResale(r.resale[zone], amount)
	if !ok {
		return decimal.Zero
	}

	if !rule.FlatRate.IsZero() {
		return rule.FlatRate
	}

	if !rule.HasFormula() {
		return rule.MinimumRate
	}

	fee := rule.BaseAmount.Add(amount.Div(oneThousand).Mul(rule.PerThousand))
	fee = fee.Round(2)
	if fee.LessThan(rule.MinimumRate) {
		return rule.MinimumRate
	}
	return fee
}

// refinanceFee applies the refinance schedule: a direct tiered rate.
// Zone keys must match exactly; the permissive prefix matching of older
// schedules is not honored because it can select a similarly named
// zone's rule.
func (r *Resolver) refinanceFee(zone string, amount decimal.Decimal) decimal.Decimal {
	for _, rule := range r.refi[zone] {
		if rule.Contains(amount) {
			return rule.Rate
		}
	}
	return decimal.Zero
}

func matchResale(rules []types.EscrowResaleRule, amount decimal.Decimal) (types.EscrowResaleRule, bool) {
	for _, rule := range rules {
		if rule.Contains(amount) {
			return rule, true
		}
	}
	return types.EscrowResaleRule{}, false
}
