package endorsement

import (
	"testing"

	"github.com/shopspring/decimal"

	"titlequote/core/types"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func testCatalog() []types.Endorsement {
	return []types.Endorsement{
		{ID: 1, Name: "CLTA 100 (ALTA 9)", Partition: types.PartitionResale, Fee: d(25), Default: true},
		{ID: 2, Name: "CLTA 116 (ALTA 22)", Partition: types.PartitionResale, Fee: d(25), Default: true},
		{ID: 3, Name: "CLTA 103.1", Partition: types.PartitionResale, Fee: d(50), Default: false},
		{ID: 4, Name: "CLTA 110.9 (ALTA 8.1)", Partition: types.PartitionRefinance, Fee: d(25), Default: true},
		{ID: 5, Name: "CLTA 111.5 (ALTA 6)", Partition: types.PartitionRefinance, Fee: d(50), Default: false},
	}
}

func TestDefaultsAlwaysIncluded(t *testing.T) {
	s := NewSelector(testCatalog())

	items, total := s.Select(types.TransactionPurchase, nil)
	if len(items) != 2 {
		t.Fatalf("got %d endorsements, want 2 defaults", len(items))
	}
	if !total.Equal(d(50)) {
		t.Errorf("total = %s, want 50", total)
	}
}

func TestSelectionUnionsWithDefaults(t *testing.T) {
	s := NewSelector(testCatalog())

	items, total := s.Select(types.TransactionPurchase, []int{3})
	if len(items) != 3 {
		t.Fatalf("got %d endorsements, want 2 defaults + 1 selected", len(items))
	}
	if !total.Equal(d(100)) {
		t.Errorf("total = %s, want 100", total)
	}
}

func TestSelectingDefaultDoesNotDuplicate(t *testing.T) {
	s := NewSelector(testCatalog())

	items, total := s.Select(types.TransactionPurchase, []int{1, 2})
	if len(items) != 2 {
		t.Fatalf("got %d endorsements, want 2 (no duplicates)", len(items))
	}
	if !total.Equal(d(50)) {
		t.Errorf("total = %s, want 50", total)
	}
}

func TestCrossPartitionSelectionIgnored(t *testing.T) {
	s := NewSelector(testCatalog())

	// Id 5 is refinance-only; selecting it on a purchase is a no-op.
	items, total := s.Select(types.TransactionPurchase, []int{5})
	if len(items) != 2 {
		t.Fatalf("got %d endorsements, want 2: out-of-partition id must be ignored", len(items))
	}
	if !total.Equal(d(50)) {
		t.Errorf("total = %s, want 50", total)
	}
}

func TestRefinancePartition(t *testing.T) {
	s := NewSelector(testCatalog())

	items, total := s.Select(types.TransactionRefinance, []int{5})
	if len(items) != 2 {
		t.Fatalf("got %d endorsements, want 2", len(items))
	}
	if !total.Equal(d(75)) {
		t.Errorf("total = %s, want 75", total)
	}
}

func TestUnknownIDIgnored(t *testing.T) {
	s := NewSelector(testCatalog())

	items, _ := s.Select(types.TransactionPurchase, []int{999})
	if len(items) != 2 {
		t.Fatalf("got %d endorsements, want 2: unknown id must be ignored", len(items))
	}
}
