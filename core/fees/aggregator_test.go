package fees

import (
	"testing"

	"github.com/shopspring/decimal"

	"titlequote/core/types"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func testCatalog() []types.Fee {
	return []types.Fee{
		{Name: "Loan tie-in fee", Category: types.CategoryEscrow, TransactionType: types.TransactionPurchase, Amount: d(75), Active: true},
		{Name: "Recording fee", Category: types.CategoryRecording, TransactionType: types.TransactionPurchase, Amount: d(120), Active: true},
		{Name: "Courier fee", Category: types.CategoryMisc, TransactionType: types.TransactionPurchase, Amount: d(30), Active: true},
		{Name: "Old recording fee", Category: types.CategoryRecording, TransactionType: types.TransactionPurchase, Amount: d(95), Active: false},
		{Name: "Reconveyance fee", Category: types.CategoryRecording, TransactionType: types.TransactionRefinance, Amount: d(65), Active: true},
	}
}

func TestEscrowItemsScopedByType(t *testing.T) {
	a := NewAggregator(testCatalog())

	items := a.EscrowItems(types.TransactionPurchase)
	if len(items) != 1 {
		t.Fatalf("got %d escrow items, want 1", len(items))
	}
	if items[0].Name != "Loan tie-in fee" {
		t.Errorf("escrow item = %q", items[0].Name)
	}

	if got := a.EscrowItems(types.TransactionRefinance); len(got) != 0 {
		t.Errorf("refinance escrow items = %d, want 0", len(got))
	}
}

func TestAdditionalItemsExcludeEscrowAndInactive(t *testing.T) {
	a := NewAggregator(testCatalog())

	items, total := a.AdditionalItems(types.TransactionPurchase)
	if len(items) != 2 {
		t.Fatalf("got %d additional items, want 2", len(items))
	}
	if !total.Equal(d(150)) {
		t.Errorf("total = %s, want 150 (120 recording + 30 courier)", total)
	}
	for _, item := range items {
		if item.Category == types.CategoryEscrow {
			t.Errorf("escrow-category fee %q leaked into additional fees", item.Name)
		}
	}
}

func TestAdditionalItemsForRefinance(t *testing.T) {
	a := NewAggregator(testCatalog())

	items, total := a.AdditionalItems(types.TransactionRefinance)
	if len(items) != 1 || items[0].Name != "Reconveyance fee" {
		t.Fatalf("unexpected refinance items: %+v", items)
	}
	if !total.Equal(d(65)) {
		t.Errorf("total = %s, want 65", total)
	}
}
