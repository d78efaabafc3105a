// Package quote - Quote orchestration
// The engine composes the domain resolvers into a single itemized
// quote. It is a pure function of the request and the injected feed:
// no I/O, no shared mutable state, identical inputs produce identical
// results.
package quote

import (
	"go.uber.org/zap"

	"titlequote/core/endorsement"
	"titlequote/core/escrow"
	"titlequote/core/fees"
	"titlequote/core/rates"
	"titlequote/core/title"
	"titlequote/core/transfertax"
	"titlequote/core/types"
	"titlequote/internal/logging"
)

// Disclaimer is the fixed advisory text attached to every quote.
const Disclaimer = "This quote is an estimate based on rates in effect at the time of " +
	"calculation and is not a commitment to insure or a guarantee of final " +
	"charges. Actual fees are determined at closing. Please contact our " +
	"office for a formal written quote."

// Engine produces itemized quotes from an immutable rate feed.
type Engine struct {
	feed         *rates.Feed
	title        *title.Resolver
	escrow       *escrow.Resolver
	transferTax  *transfertax.Resolver
	endorsements *endorsement.Selector
	fees         *fees.Aggregator
	log          *zap.Logger
}

// NewEngine wires the resolvers over a feed. Geography is resolved
// through the feed's index; no resolver holds mutable state, so one
// engine serves arbitrarily many concurrent quotes.
func NewEngine(feed *rates.Feed) *Engine {
	tables := feed.Tables()
	agg := fees.NewAggregator(tables.Fees)

	return &Engine{
		feed:         feed,
		title:        title.NewResolver(tables.RateTiers),
		escrow:       escrow.NewResolver(tables.EscrowResale, tables.EscrowRefinance, agg),
		transferTax:  transfertax.NewResolver(tables.TransferTax, feed.Geography()),
		endorsements: endorsement.NewSelector(tables.Endorsements),
		fees:         agg,
		log:          logging.Named("quote"),
	}
}

// Feed returns the feed the engine was built over.
func (e *Engine) Feed() *rates.Feed {
	return e.feed
}

// Endorsements returns the endorsement catalog available to a
// transaction type, in catalog order.
func (e *Engine) Endorsements(txType types.TransactionType) []types.Endorsement {
	return e.endorsements.Catalog(txType)
}

// Quote produces the itemized result for one request. No request is
// ever rejected: amounts outside the priced range degrade to zero line
// items with the call-for-quote flag set.
func (e *Engine) Quote(req *types.QuoteRequest) *types.QuoteResult {
	txType := req.TransactionType
	if !txType.Valid() {
		txType = types.TransactionPurchase
	}

	titleFees, callForQuote := e.titleFees(txType, req)
	escrowFees := e.escrow.Resolve(txType, req.CountyZone, req.LookupAmount())
	transferTaxes := e.transferTax.Resolve(txType, req.CountyZone, req.CityName, req.SalesPrice)
	additional, additionalTotal := e.fees.AdditionalItems(txType)

	grandTotal := titleFees.Total.
		Add(escrowFees.Total).
		Add(transferTaxes.Total).
		Add(additionalTotal)

	if callForQuote {
		e.log.Debug("quote flagged for manual pricing",
			zap.String("zone", req.CountyZone),
			zap.String("amount", req.LookupAmount().String()))
	}

	return &types.QuoteResult{
		TitleFees:           titleFees,
		EscrowFees:          escrowFees,
		TransferTaxes:       transferTaxes,
		AdditionalFees:      additional,
		AdditionalFeesTotal: additionalTotal,
		GrandTotal:          grandTotal,
		CallForQuote:        callForQuote,
		Disclaimer:          Disclaimer,
	}
}

// titleFees resolves both policies and the endorsement set, and
// determines the call-for-quote flag.
func (e *Engine) titleFees(txType types.TransactionType, req *types.QuoteRequest) (types.TitleFees, bool) {
	includeOwner := txType == types.TransactionPurchase &&
		req.IncludeOwnerPolicy &&
		req.SalesPrice.IsPositive()

	var owner title.PolicyQuote
	if includeOwner {
		owner = e.title.OwnerPremium(req.SalesPrice, req.OwnerPolicyType)
	}

	// Concurrent rates apply only when an owner's policy is actually
	// issued on this quote, not merely requested.
	var lender title.PolicyQuote
	if req.LoanAmount.IsPositive() {
		lender = e.title.LenderPremium(req.LoanAmount, includeOwner)
	}

	endorsements, endorsementTotal := e.endorsements.Select(txType, req.SelectedEndorsementIDs)

	// Call for quote when the lookup amount falls outside the priced
	// card, or either resolved policy landed on an unpriced tier.
	match := e.title.Lookup(req.LookupAmount())
	callForQuote := match.Status != title.StatusPriced || owner.Unpriced || lender.Unpriced

	return types.TitleFees{
		OwnerPolicy:       owner.Premium,
		OwnerPolicyLabel:  owner.Label,
		LenderPolicy:      lender.Premium,
		LenderPolicyLabel: lender.Label,
		Endorsements:      endorsements,
		EndorsementTotal:  endorsementTotal,
		Total:             owner.Premium.Add(lender.Premium).Add(endorsementTotal),
	}, callForQuote
}
