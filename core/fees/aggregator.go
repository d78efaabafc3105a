// Package fees aggregates flat fee line items from the fee catalog.
package fees

import (
	"github.com/shopspring/decimal"

	"titlequote/core/types"
)

// Aggregator filters the flat fee catalog by transaction type and
// category. Escrow-category fees fold into the escrow section; every
// other active category is reported as an additional fee.
type Aggregator struct {
	catalog []types.Fee
}

// NewAggregator creates an aggregator over the fee catalog.
func NewAggregator(catalog []types.Fee) *Aggregator {
	return &Aggregator{catalog: catalog}
}

// EscrowItems returns the active escrow-category fees scoped to the
// transaction type. These are always included, never optional.
func (a *Aggregator) EscrowItems(txType types.TransactionType) []types.LineItem {
	items := []types.LineItem{}
	for _, f := range a.catalog {
		if !f.Active || f.Category != types.CategoryEscrow || f.TransactionType != txType {
			continue
		}
		items = append(items, types.LineItem{Name: f.Name, Fee: f.Amount})
	}
	return items
}

// AdditionalItems returns the active non-escrow fees scoped to the
// transaction type, with their total.
func (a *Aggregator) AdditionalItems(txType types.TransactionType) ([]types.CategorizedLineItem, decimal.Decimal) {
	items := []types.CategorizedLineItem{}
	total := decimal.Zero
	for _, f := range a.catalog {
		if !f.Active || f.Category == types.CategoryEscrow || f.TransactionType != txType {
			continue
		}
		items = append(items, types.CategorizedLineItem{
			Name:     f.Name,
			Fee:      f.Amount,
			Category: f.Category,
		})
		total = total.Add(f.Amount)
	}
	return items, total
}
