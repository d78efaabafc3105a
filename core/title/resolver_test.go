package title

import (
	"testing"

	"github.com/shopspring/decimal"

	"titlequote/core/types"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// testCard is a four-tier rate card ending in an unpriced tier.
func testCard() []types.RateTier {
	return []types.RateTier{
		{MinRange: d(0), MaxRange: d(100000), Owner: d(450), EnhancedOwner: d(500), ConcurrentLender: d(150), StandaloneLender: d(300), FullLender: d(350)},
		{MinRange: d(100001), MaxRange: d(500000), Owner: d(900), EnhancedOwner: d(1000), ConcurrentLender: d(300), StandaloneLender: d(600), FullLender: d(700)},
		{MinRange: d(500001), MaxRange: d(3000000), Owner: d(1500), EnhancedOwner: d(1700), ConcurrentLender: d(500), StandaloneLender: d(900), FullLender: d(1100)},
		{MinRange: d(3000001), Unbounded: true},
	}
}

func TestTierContainmentInclusiveBounds(t *testing.T) {
	r := NewResolver(testCard())

	cases := []struct {
		amount    int64
		wantOwner int64
	}{
		{0, 450},
		{50000, 450},
		{100000, 450},
		{100001, 900},
		{500000, 900},
		{500001, 1500},
		{3000000, 1500},
	}

	for _, tc := range cases {
		match := r.Lookup(d(tc.amount))
		if match.Status != StatusPriced {
			t.Fatalf("amount %d: expected priced tier, got status %d", tc.amount, match.Status)
		}
		if !match.Tier.Owner.Equal(d(tc.wantOwner)) {
			t.Errorf("amount %d: selected tier with owner rate %s, want %d",
				tc.amount, match.Tier.Owner, tc.wantOwner)
		}
	}
}

func TestLookupNegativeAmountMatchesNothing(t *testing.T) {
	r := NewResolver(testCard())

	match := r.Lookup(d(-1))
	if match.Status != StatusNoTier {
		t.Errorf("expected StatusNoTier for negative amount, got %d", match.Status)
	}
	if match.Tier != nil {
		t.Error("expected nil tier for negative amount")
	}
}

func TestLookupUnpricedTier(t *testing.T) {
	r := NewResolver(testCard())

	match := r.Lookup(d(3500000))
	if match.Status != StatusUnpriced {
		t.Fatalf("expected StatusUnpriced above the priced range, got %d", match.Status)
	}
	if match.Tier == nil {
		t.Fatal("unpriced match should still carry its tier")
	}
}

func TestOwnerPremiumPolicyTypeSelection(t *testing.T) {
	r := NewResolver(testCard())

	standard := r.OwnerPremium(d(50000), types.PolicyStandard)
	if !standard.Premium.Equal(d(450)) {
		t.Errorf("standard owner premium = %s, want 450", standard.Premium)
	}
	if standard.Label != LabelOwnerStandard {
		t.Errorf("standard owner label = %q", standard.Label)
	}

	enhanced := r.OwnerPremium(d(50000), types.PolicyEnhanced)
	if !enhanced.Premium.Equal(d(500)) {
		t.Errorf("enhanced owner premium = %s, want 500", enhanced.Premium)
	}
	if enhanced.Label != LabelOwnerEnhanced {
		t.Errorf("enhanced owner label = %q", enhanced.Label)
	}
}

func TestOwnerPremiumUnpricedAmount(t *testing.T) {
	r := NewResolver(testCard())

	q := r.OwnerPremium(d(3500000), types.PolicyStandard)
	if !q.Premium.IsZero() {
		t.Errorf("unpriced owner premium = %s, want 0", q.Premium)
	}
	if !q.Unpriced {
		t.Error("expected Unpriced flag above the priced range")
	}
}

func TestLenderPremiumConcurrentVsStandalone(t *testing.T) {
	r := NewResolver(testCard())

	concurrent := r.LenderPremium(d(80000), true)
	if !concurrent.Premium.Equal(d(150)) {
		t.Errorf("concurrent lender premium = %s, want 150 (concurrent column)", concurrent.Premium)
	}
	if concurrent.Premium.Equal(d(350)) {
		t.Error("concurrent issuance must never use the full non-concurrent column")
	}

	standalone := r.LenderPremium(d(80000), false)
	if !standalone.Premium.Equal(d(300)) {
		t.Errorf("standalone lender premium = %s, want 300 (residential column)", standalone.Premium)
	}
}

func TestLenderPremiumResolvedAgainstLoanTier(t *testing.T) {
	r := NewResolver(testCard())

	// Loan in the second tier, regardless of any sale price.
	q := r.LenderPremium(d(250000), true)
	if !q.Premium.Equal(d(300)) {
		t.Errorf("lender premium for 250000 = %s, want 300 from the loan's own tier", q.Premium)
	}
}
