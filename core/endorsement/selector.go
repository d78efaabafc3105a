// Package endorsement selects active title policy endorsements.
package endorsement

import (
	"github.com/shopspring/decimal"

	"titlequote/core/types"
)

// Selector filters the endorsement catalog by transaction type and
// merges mandatory defaults with caller selections.
type Selector struct {
	byPartition map[types.EndorsementPartition][]types.Endorsement
}

// NewSelector creates a selector over the endorsement catalog.
func NewSelector(catalog []types.Endorsement) *Selector {
	s := &Selector{
		byPartition: make(map[types.EndorsementPartition][]types.Endorsement),
	}
	for _, e := range catalog {
		s.byPartition[e.Partition] = append(s.byPartition[e.Partition], e)
	}
	return s
}

// Select returns the active endorsement line items for a transaction:
// every default endorsement in the transaction type's partition, plus
// any selected ids found in that partition. Ids outside the partition
// are silently ignored. The second return is the fee total.
func (s *Selector) Select(txType types.TransactionType, selectedIDs []int) ([]types.LineItem, decimal.Decimal) {
	selected := make(map[int]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	items := []types.LineItem{}
	total := decimal.Zero
	for _, e := range s.byPartition[txType.Partition()] {
		if !e.Default && !selected[e.ID] {
			continue
		}
		items = append(items, types.LineItem{Name: e.Name, Fee: e.Fee})
		total = total.Add(e.Fee)
	}
	return items, total
}

// Catalog returns the endorsements available to a transaction type, in
// catalog order.
func (s *Selector) Catalog(txType types.TransactionType) []types.Endorsement {
	return s.byPartition[txType.Partition()]
}
