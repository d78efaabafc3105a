// Package types - Quote request and transaction types
package types

import "github.com/shopspring/decimal"

// TransactionType identifies the kind of closing being quoted
type TransactionType string

const (
	// TransactionPurchase is a resale purchase transaction
	TransactionPurchase TransactionType = "purchase"

	// TransactionRefinance is a loan refinance transaction
	TransactionRefinance TransactionType = "refinance"
)

// String returns the string representation
func (t TransactionType) String() string {
	return string(t)
}

// Valid reports whether the transaction type is a known value
func (t TransactionType) Valid() bool {
	return t == TransactionPurchase || t == TransactionRefinance
}

// Partition returns the endorsement catalog partition for the
// transaction type. The catalog labels its partitions "Resale" and
// "Re-finance".
func (t TransactionType) Partition() EndorsementPartition {
	if t == TransactionRefinance {
		return PartitionRefinance
	}
	return PartitionResale
}

// PolicyType selects between the two title policy form families
type PolicyType string

const (
	// PolicyStandard is the CLTA standard coverage form
	PolicyStandard PolicyType = "standard"

	// PolicyEnhanced is the ALTA homeowner's (enhanced) form
	PolicyEnhanced PolicyType = "enhanced"
)

// QuoteRequest describes one transaction to be quoted.
// Unknown or out-of-range values never cause a rejection; the engine
// degrades to zero line items and the call-for-quote flag instead.
type QuoteRequest struct {
	// TransactionType is purchase or refinance
	TransactionType TransactionType `json:"transactionType"`

	// CountyZone is the county-equivalent zone name
	CountyZone string `json:"countyZone"`

	// CityName is the city within the zone
	CityName string `json:"cityName"`

	// SalesPrice is the contract sale price (purchase)
	SalesPrice decimal.Decimal `json:"salesPrice"`

	// LoanAmount is the new loan amount
	LoanAmount decimal.Decimal `json:"loanAmount"`

	// OwnerPolicyType selects the owner's policy form
	OwnerPolicyType PolicyType `json:"ownerPolicyType,omitempty"`

	// LenderPolicyType selects the lender's policy form
	LenderPolicyType PolicyType `json:"lenderPolicyType,omitempty"`

	// SelectedEndorsementIDs are optional endorsements chosen by the caller
	SelectedEndorsementIDs []int `json:"selectedEndorsementIds,omitempty"`

	// IncludeOwnerPolicy requests an owner's policy on a purchase
	IncludeOwnerPolicy bool `json:"includeOwnerPolicy,omitempty"`
}

// LookupAmount returns the amount the tier tables are consulted with:
// sale price for a purchase, loan amount for a refinance.
func (r *QuoteRequest) LookupAmount() decimal.Decimal {
	if r.TransactionType == TransactionRefinance {
		return r.LoanAmount
	}
	return r.SalesPrice
}
