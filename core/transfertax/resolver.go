// Package transfertax computes county and city documentary transfer
// taxes on purchase transactions.
package transfertax

import (
	"github.com/shopspring/decimal"

	"titlequote/core/geography"
	"titlequote/core/types"
)

var oneThousand = decimal.NewFromInt(1000)

// DefaultCountyRate is the statutory documentary transfer tax rate,
// $1.10 per $1000, applied when no rule exists for the city or zone.
var DefaultCountyRate = decimal.NewFromFloat(1.10)

// Resolver computes the transfer tax section of a quote. Resolution
// chain: city-specific rule, then the zone's "All Cities" rule, then
// the statutory default with a zero city rate.
type Resolver struct {
	rules map[string]types.TransferTaxRule
	geo   *geography.Index
}

// NewResolver creates a resolver over the transfer tax rules and the
// geography index.
func NewResolver(rules []types.TransferTaxRule, geo *geography.Index) *Resolver {
	r := &Resolver{
		rules: make(map[string]types.TransferTaxRule, len(rules)),
		geo:   geo,
	}
	for _, rule := range rules {
		r.rules[rule.CountyID] = rule
	}
	return r
}

// Resolve computes the transfer taxes for a transaction. Refinances and
// non-positive sale prices owe nothing; the rates still reflect the
// resolved jurisdiction so the quote can display them.
func (r *Resolver) Resolve(txType types.TransactionType, zone, city string, salesPrice decimal.Decimal) types.TransferTaxes {
	countyRate, cityRate := r.ratesFor(zone, city)

	if txType != types.TransactionPurchase || !salesPrice.IsPositive() {
		return types.TransferTaxes{
			CountyRate: countyRate,
			CityRate:   cityRate,
		}
	}

	perThousand := salesPrice.Div(oneThousand)
	countyTax := perThousand.Mul(countyRate).Round(2)
	cityTax := perThousand.Mul(cityRate).Round(2)

	return types.TransferTaxes{
		CountyTax:  countyTax,
		CityTax:    cityTax,
		CountyRate: countyRate,
		CityRate:   cityRate,
		Total:      countyTax.Add(cityTax),
	}
}

// ratesFor walks the fallback chain to the applicable per-$1000 rates.
func (r *Resolver) ratesFor(zone, city string) (decimal.Decimal, decimal.Decimal) {
	if id, ok := r.geo.Resolve(zone, city); ok {
		if rule, ok := r.rules[id]; ok {
			return rule.CountyRate, rule.CityRate
		}
	}

	if id, ok := r.geo.ZoneDefault(zone); ok {
		if rule, ok := r.rules[id]; ok {
			return rule.CountyRate, rule.CityRate
		}
	}

	return DefaultCountyRate, decimal.Zero
}
