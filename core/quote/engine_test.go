package quote

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"titlequote/core/rates"
	"titlequote/core/types"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func df(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// fixtureFeed builds a complete feed: a four-tier rate card ending in
// an unpriced tier, escrow schedules for the Orange zone, transfer tax
// rules with a city-specific and a zone-default row, endorsement
// defaults in both partitions, and escrow plus recording fees.
func fixtureFeed(t *testing.T) *rates.Feed {
	t.Helper()

	feed, err := rates.NewFeed(rates.Tables{
		RateTiers: []types.RateTier{
			{MinRange: d(0), MaxRange: d(100000), Owner: d(450), EnhancedOwner: d(500), ConcurrentLender: d(150), StandaloneLender: d(300), FullLender: d(350)},
			{MinRange: d(100001), MaxRange: d(500000), Owner: d(900), EnhancedOwner: d(1000), ConcurrentLender: d(300), StandaloneLender: d(600), FullLender: d(700)},
			{MinRange: d(500001), MaxRange: d(3000000), Owner: d(1500), EnhancedOwner: d(1700), ConcurrentLender: d(500), StandaloneLender: d(900), FullLender: d(1100)},
			{MinRange: d(3000001), Unbounded: true},
		},
		EscrowResale: []types.EscrowResaleRule{
			{Zone: "Orange", MinRange: d(0), MaxRange: d(1000000), BaseAmount: d(300), PerThousand: df(1.5), MinimumRate: d(500)},
			{Zone: "Orange", MinRange: d(1000001), Unbounded: true, FlatRate: d(2500)},
		},
		EscrowRefinance: []types.EscrowRefinanceRule{
			{Zone: "Orange", MinRange: d(0), MaxRange: d(500000), Rate: d(400)},
			{Zone: "Orange", MinRange: d(500001), Unbounded: true, Rate: d(650)},
		},
		TransferTax: []types.TransferTaxRule{
			{CountyID: "orange-irvine", CountyRate: df(1.10), CityRate: df(4.50)},
			{CountyID: "orange-all", CountyRate: df(1.10), CityRate: d(0)},
		},
		Endorsements: []types.Endorsement{
			{ID: 1, Name: "CLTA 100 (ALTA 9)", Partition: types.PartitionResale, Fee: d(25), Default: true},
			{ID: 2, Name: "CLTA 116 (ALTA 22)", Partition: types.PartitionResale, Fee: d(25), Default: true},
			{ID: 3, Name: "CLTA 103.1", Partition: types.PartitionResale, Fee: d(50), Default: false},
			{ID: 4, Name: "CLTA 110.9 (ALTA 8.1)", Partition: types.PartitionRefinance, Fee: d(25), Default: true},
		},
		Fees: []types.Fee{
			{Name: "Loan tie-in fee", Category: types.CategoryEscrow, TransactionType: types.TransactionPurchase, Amount: d(75), Active: true},
			{Name: "Recording fee", Category: types.CategoryRecording, TransactionType: types.TransactionPurchase, Amount: d(120), Active: true},
			{Name: "Courier fee", Category: types.CategoryMisc, TransactionType: types.TransactionPurchase, Amount: d(30), Active: true},
			{Name: "Reconveyance fee", Category: types.CategoryRecording, TransactionType: types.TransactionRefinance, Amount: d(65), Active: true},
		},
		Zones: []types.Zone{
			{
				Name: "Orange",
				Cities: []types.City{
					{Name: types.AllCitiesName, CountyID: "orange-all"},
					{Name: "Irvine", CountyID: "orange-irvine"},
					{Name: "Smalltown", CountyID: "orange-smalltown"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("fixture feed: %v", err)
	}
	return feed
}

func TestPurchaseQuoteItemization(t *testing.T) {
	engine := NewEngine(fixtureFeed(t))

	result := engine.Quote(&types.QuoteRequest{
		TransactionType:    types.TransactionPurchase,
		CountyZone:         "Orange",
		CityName:           "Irvine",
		SalesPrice:         d(250000),
		LoanAmount:         d(200000),
		OwnerPolicyType:    types.PolicyStandard,
		IncludeOwnerPolicy: true,
	})

	if !result.TitleFees.OwnerPolicy.Equal(d(900)) {
		t.Errorf("owner policy = %s, want 900", result.TitleFees.OwnerPolicy)
	}
	if !result.TitleFees.LenderPolicy.Equal(d(300)) {
		t.Errorf("lender policy = %s, want 300 (concurrent)", result.TitleFees.LenderPolicy)
	}
	if !result.TitleFees.EndorsementTotal.Equal(d(50)) {
		t.Errorf("endorsement total = %s, want 50", result.TitleFees.EndorsementTotal)
	}
	if !result.TitleFees.Total.Equal(d(1250)) {
		t.Errorf("title total = %s, want 1250", result.TitleFees.Total)
	}

	// 300 + 250*1.5 = 675 base, plus the 75 loan tie-in supplement.
	if !result.EscrowFees.BaseFee.Equal(d(675)) {
		t.Errorf("escrow base = %s, want 675", result.EscrowFees.BaseFee)
	}
	if !result.EscrowFees.Total.Equal(d(750)) {
		t.Errorf("escrow total = %s, want 750", result.EscrowFees.Total)
	}

	// 250 * 1.10 = 275 county, 250 * 4.50 = 1125 city.
	if !result.TransferTaxes.Total.Equal(d(1400)) {
		t.Errorf("transfer tax total = %s, want 1400", result.TransferTaxes.Total)
	}

	if !result.AdditionalFeesTotal.Equal(d(150)) {
		t.Errorf("additional fees total = %s, want 150", result.AdditionalFeesTotal)
	}

	if !result.GrandTotal.Equal(d(3550)) {
		t.Errorf("grand total = %s, want 3550", result.GrandTotal)
	}
	if result.CallForQuote {
		t.Error("priced purchase must not be flagged call-for-quote")
	}
	if result.Disclaimer == "" {
		t.Error("disclaimer must always be present")
	}
}

func TestConcurrentVsStandaloneLenderSelection(t *testing.T) {
	engine := NewEngine(fixtureFeed(t))

	// Purchase with an owner's policy: concurrent column.
	purchase := engine.Quote(&types.QuoteRequest{
		TransactionType:    types.TransactionPurchase,
		CountyZone:         "Orange",
		CityName:           "Irvine",
		SalesPrice:         d(90000),
		LoanAmount:         d(80000),
		IncludeOwnerPolicy: true,
	})
	if !purchase.TitleFees.LenderPolicy.Equal(d(150)) {
		t.Errorf("concurrent lender policy = %s, want 150", purchase.TitleFees.LenderPolicy)
	}

	// Refinance: standalone column, same loan amount.
	refi := engine.Quote(&types.QuoteRequest{
		TransactionType: types.TransactionRefinance,
		CountyZone:      "Orange",
		LoanAmount:      d(80000),
	})
	if !refi.TitleFees.LenderPolicy.Equal(d(300)) {
		t.Errorf("standalone lender policy = %s, want 300", refi.TitleFees.LenderPolicy)
	}
}

func TestPurchaseDecliningOwnerPolicyIsStandalone(t *testing.T) {
	engine := NewEngine(fixtureFeed(t))

	result := engine.Quote(&types.QuoteRequest{
		TransactionType: types.TransactionPurchase,
		CountyZone:      "Orange",
		CityName:        "Irvine",
		SalesPrice:      d(90000),
		LoanAmount:      d(80000),
	})
	if !result.TitleFees.OwnerPolicy.IsZero() {
		t.Errorf("owner policy = %s, want 0 when not requested", result.TitleFees.OwnerPolicy)
	}
	if !result.TitleFees.LenderPolicy.Equal(d(300)) {
		t.Errorf("lender policy = %s, want 300 (standalone)", result.TitleFees.LenderPolicy)
	}
}

func TestConcurrentRequiresIssuedOwnerPolicy(t *testing.T) {
	engine := NewEngine(fixtureFeed(t))

	// Owner's policy requested but not issuable (no sale price): the
	// lender's policy must fall back to the standalone rate.
	result := engine.Quote(&types.QuoteRequest{
		TransactionType:    types.TransactionPurchase,
		CountyZone:         "Orange",
		CityName:           "Irvine",
		LoanAmount:         d(80000),
		IncludeOwnerPolicy: true,
	})
	if !result.TitleFees.OwnerPolicy.IsZero() {
		t.Errorf("owner policy = %s, want 0 without a sale price", result.TitleFees.OwnerPolicy)
	}
	if !result.TitleFees.LenderPolicy.Equal(d(300)) {
		t.Errorf("lender policy = %s, want 300 (standalone; no owner's policy issued)", result.TitleFees.LenderPolicy)
	}
}

func TestCallForQuoteBoundary(t *testing.T) {
	engine := NewEngine(fixtureFeed(t))

	above := engine.Quote(&types.QuoteRequest{
		TransactionType:    types.TransactionPurchase,
		CountyZone:         "Orange",
		CityName:           "Irvine",
		SalesPrice:         d(3500000),
		IncludeOwnerPolicy: true,
	})
	if !above.TitleFees.OwnerPolicy.IsZero() {
		t.Errorf("owner policy above the priced range = %s, want 0", above.TitleFees.OwnerPolicy)
	}
	if !above.CallForQuote {
		t.Error("expected call-for-quote above the priced range")
	}

	below := engine.Quote(&types.QuoteRequest{
		TransactionType:    types.TransactionPurchase,
		CountyZone:         "Orange",
		CityName:           "Irvine",
		SalesPrice:         d(99999),
		IncludeOwnerPolicy: true,
	})
	if !below.TitleFees.OwnerPolicy.Equal(d(450)) {
		t.Errorf("owner policy = %s, want 450", below.TitleFees.OwnerPolicy)
	}
	if below.CallForQuote {
		t.Error("priced amount must not be flagged call-for-quote")
	}
}

func TestRefinanceZeroTransferTax(t *testing.T) {
	engine := NewEngine(fixtureFeed(t))

	for _, loan := range []int64{50000, 500000, 5000000} {
		result := engine.Quote(&types.QuoteRequest{
			TransactionType: types.TransactionRefinance,
			CountyZone:      "Orange",
			CityName:        "Irvine",
			LoanAmount:      d(loan),
		})
		if !result.TransferTaxes.Total.IsZero() {
			t.Errorf("loan %d: refinance transfer tax = %s, want 0", loan, result.TransferTaxes.Total)
		}
	}
}

func TestDeterminism(t *testing.T) {
	engine := NewEngine(fixtureFeed(t))

	req := &types.QuoteRequest{
		TransactionType:        types.TransactionPurchase,
		CountyZone:             "Orange",
		CityName:               "Irvine",
		SalesPrice:             d(250000),
		LoanAmount:             d(200000),
		OwnerPolicyType:        types.PolicyEnhanced,
		SelectedEndorsementIDs: []int{3},
		IncludeOwnerPolicy:     true,
	}

	first, err := json.Marshal(engine.Quote(req))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(engine.Quote(req))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if string(first) != string(second) {
		t.Error("identical requests produced different results")
	}
}

func TestZeroAmountsProduceNoPolicies(t *testing.T) {
	engine := NewEngine(fixtureFeed(t))

	result := engine.Quote(&types.QuoteRequest{
		TransactionType:    types.TransactionPurchase,
		CountyZone:         "Orange",
		CityName:           "Irvine",
		IncludeOwnerPolicy: true,
	})
	if !result.TitleFees.OwnerPolicy.IsZero() || !result.TitleFees.LenderPolicy.IsZero() {
		t.Error("zero amounts must not produce policy premiums")
	}
	if result.TitleFees.OwnerPolicyLabel != "" || result.TitleFees.LenderPolicyLabel != "" {
		t.Error("zero amounts must not produce policy labels")
	}
	if result.CallForQuote {
		t.Error("zero amounts are not call-for-quote; they land in the first tier")
	}
}

func TestUnpricedLenderTriggersCallForQuote(t *testing.T) {
	engine := NewEngine(fixtureFeed(t))

	// Lookup amount is the sale price (priced), but the loan amount
	// lands in the unpriced tier; the quote must still be flagged.
	result := engine.Quote(&types.QuoteRequest{
		TransactionType:    types.TransactionPurchase,
		CountyZone:         "Orange",
		CityName:           "Irvine",
		SalesPrice:         d(2000000),
		LoanAmount:         d(3200000),
		IncludeOwnerPolicy: true,
	})
	if !result.TitleFees.LenderPolicy.IsZero() {
		t.Errorf("unpriced lender policy = %s, want 0", result.TitleFees.LenderPolicy)
	}
	if !result.CallForQuote {
		t.Error("unpriced lender tier must trigger call-for-quote")
	}
}
