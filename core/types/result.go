// Package types - Quote result types
package types

import "github.com/shopspring/decimal"

// LineItem is a single named fee on the quote
type LineItem struct {
	// Name is the line item label
	Name string `json:"name"`

	// Fee is the line item amount
	Fee decimal.Decimal `json:"fee"`
}

// CategorizedLineItem is a line item carrying its fee category
type CategorizedLineItem struct {
	// Name is the line item label
	Name string `json:"name"`

	// Fee is the line item amount
	Fee decimal.Decimal `json:"fee"`

	// Category is the fee category
	Category FeeCategory `json:"category"`
}

// TitleFees itemizes the title insurance section of a quote
type TitleFees struct {
	// OwnerPolicy is the owner's policy premium
	OwnerPolicy decimal.Decimal `json:"ownerPolicy"`

	// OwnerPolicyLabel names the owner's policy form, empty when no
	// owner's policy is issued
	OwnerPolicyLabel string `json:"ownerPolicyLabel,omitempty"`

	// LenderPolicy is the lender's policy premium
	LenderPolicy decimal.Decimal `json:"lenderPolicy"`

	// LenderPolicyLabel names the lender's policy form, empty when no
	// lender's policy is issued
	LenderPolicyLabel string `json:"lenderPolicyLabel,omitempty"`

	// Endorsements are the active endorsement line items
	Endorsements []LineItem `json:"endorsements"`

	// EndorsementTotal is the sum of endorsement fees
	EndorsementTotal decimal.Decimal `json:"endorsementTotal"`

	// Total is owner + lender + endorsements
	Total decimal.Decimal `json:"total"`
}

// EscrowFees itemizes the escrow settlement section of a quote
type EscrowFees struct {
	// BaseFee is the settlement fee from the escrow schedule
	BaseFee decimal.Decimal `json:"baseFee"`

	// AdditionalFees are the always-on escrow-category supplements
	AdditionalFees []LineItem `json:"additionalFees"`

	// Total is base + supplements
	Total decimal.Decimal `json:"total"`
}

// TransferTaxes itemizes the documentary transfer tax section
type TransferTaxes struct {
	// CountyTax is the county tax owed
	CountyTax decimal.Decimal `json:"countyTax"`

	// CityTax is the city tax owed
	CityTax decimal.Decimal `json:"cityTax"`

	// CountyRate is the applied county rate per $1000
	CountyRate decimal.Decimal `json:"countyRate"`

	// CityRate is the applied city rate per $1000
	CityRate decimal.Decimal `json:"cityRate"`

	// Total is county + city
	Total decimal.Decimal `json:"total"`
}

// QuoteResult is the itemized result of a quote request. It is a
// transient value with no persisted identity; identical requests
// against the same feed produce identical results.
type QuoteResult struct {
	// TitleFees is the title insurance section
	TitleFees TitleFees `json:"titleFees"`

	// EscrowFees is the escrow settlement section
	EscrowFees EscrowFees `json:"escrowFees"`

	// TransferTaxes is the transfer tax section
	TransferTaxes TransferTaxes `json:"transferTaxes"`

	// AdditionalFees are active non-escrow flat fees
	AdditionalFees []CategorizedLineItem `json:"additionalFees"`

	// AdditionalFeesTotal is the sum of AdditionalFees
	AdditionalFeesTotal decimal.Decimal `json:"additionalFeesTotal"`

	// GrandTotal sums all four sections
	GrandTotal decimal.Decimal `json:"grandTotal"`

	// CallForQuote flags amounts above the priced rate card
	CallForQuote bool `json:"callForQuote"`

	// Disclaimer is the fixed advisory text
	Disclaimer string `json:"disclaimer"`
}
