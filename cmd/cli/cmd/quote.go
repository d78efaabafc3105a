// Package cmd - quote command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"titlequote/adapters/feed"
	"titlequote/core/quote"
	"titlequote/core/types"
	"titlequote/internal/config"
	"titlequote/internal/logging"
)

var (
	quoteType         string
	quoteZone         string
	quoteCity         string
	quotePrice        float64
	quoteLoan         float64
	quoteOwnerPolicy  bool
	quoteOwnerType    string
	quoteLenderType   string
	quoteEndorsements []int
	quoteFormat       string
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Produce an itemized closing cost quote",
	Long: `Compute title, escrow, transfer tax, and endorsement fees for one
transaction.

Examples:
  titlequote quote --type purchase --zone "Orange" --city "Irvine" --price 750000 --loan 600000 --owner
  titlequote quote --type refinance --zone "Orange" --loan 400000
  titlequote quote --type purchase --zone "Orange" --city "Irvine" --price 500000 --endorsement 3 --endorsement 7`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteType, "type", "t", "purchase", "transaction type (purchase, refinance)")
	quoteCmd.Flags().StringVarP(&quoteZone, "zone", "z", "", "county zone")
	quoteCmd.Flags().StringVarP(&quoteCity, "city", "c", "", "city within the zone")
	quoteCmd.Flags().Float64VarP(&quotePrice, "price", "p", 0, "sale price")
	quoteCmd.Flags().Float64VarP(&quoteLoan, "loan", "l", 0, "loan amount")
	quoteCmd.Flags().BoolVarP(&quoteOwnerPolicy, "owner", "o", false, "include an owner's policy (purchase)")
	quoteCmd.Flags().StringVar(&quoteOwnerType, "owner-type", "standard", "owner's policy form (standard, enhanced)")
	quoteCmd.Flags().StringVar(&quoteLenderType, "lender-type", "standard", "lender's policy form (standard, enhanced)")
	quoteCmd.Flags().IntSliceVarP(&quoteEndorsements, "endorsement", "e", nil, "endorsement id to include (repeatable)")
	quoteCmd.Flags().StringVarP(&quoteFormat, "format", "f", "cli", "output format (cli, json)")

	quoteCmd.MarkFlagRequired("zone")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	src, err := feed.Open(config.Get().Feed)
	if err != nil {
		return fmt.Errorf("failed to open rate feed: %w", err)
	}
	rateFeed, err := feed.LoadFeed(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to load rate feed: %w", err)
	}
	logging.Debug("rate feed loaded")

	req := &types.QuoteRequest{
		TransactionType:        types.TransactionType(quoteType),
		CountyZone:             quoteZone,
		CityName:               quoteCity,
		SalesPrice:             decimal.NewFromFloat(quotePrice),
		LoanAmount:             decimal.NewFromFloat(quoteLoan),
		OwnerPolicyType:        types.PolicyType(quoteOwnerType),
		LenderPolicyType:       types.PolicyType(quoteLenderType),
		SelectedEndorsementIDs: quoteEndorsements,
		IncludeOwnerPolicy:     quoteOwnerPolicy,
	}
	if !req.TransactionType.Valid() {
		return fmt.Errorf("invalid transaction type: %s", quoteType)
	}

	engine := quote.NewEngine(rateFeed)
	result := engine.Quote(req)

	if quoteFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printQuote(req, result)
	return nil
}

func printQuote(req *types.QuoteRequest, result *types.QuoteResult) {
	fmt.Println("┌─────────────────────────────────────────────────────────────────────────┐")
	fmt.Println("│                         CLOSING COST QUOTE                              │")
	fmt.Println("├─────────────────────────────────────────────────────────────────────────┤")

	printSection("TITLE FEES", result.TitleFees.Total)
	if result.TitleFees.OwnerPolicyLabel != "" {
		printLine(result.TitleFees.OwnerPolicyLabel, result.TitleFees.OwnerPolicy)
	}
	if result.TitleFees.LenderPolicyLabel != "" {
		printLine(result.TitleFees.LenderPolicyLabel, result.TitleFees.LenderPolicy)
	}
	for _, e := range result.TitleFees.Endorsements {
		printLine(e.Name, e.Fee)
	}

	printSection("ESCROW FEES", result.EscrowFees.Total)
	printLine("Settlement fee", result.EscrowFees.BaseFee)
	for _, f := range result.EscrowFees.AdditionalFees {
		printLine(f.Name, f.Fee)
	}

	printSection("TRANSFER TAXES", result.TransferTaxes.Total)
	printLine(fmt.Sprintf("County tax ($%s/$1000)", result.TransferTaxes.CountyRate), result.TransferTaxes.CountyTax)
	printLine(fmt.Sprintf("City tax ($%s/$1000)", result.TransferTaxes.CityRate), result.TransferTaxes.CityTax)

	if len(result.AdditionalFees) > 0 {
		printSection("ADDITIONAL FEES", result.AdditionalFeesTotal)
		for _, f := range result.AdditionalFees {
			printLine(fmt.Sprintf("%s (%s)", f.Name, f.Category), f.Fee)
		}
	}

	fmt.Println("├─────────────────────────────────────────────────────────────────────────┤")
	fmt.Printf("│ %-50s %20s │\n", "GRAND TOTAL", "$"+result.GrandTotal.StringFixed(2))
	fmt.Println("└─────────────────────────────────────────────────────────────────────────┘")

	if result.CallForQuote {
		fmt.Println("\n⚠  Amount exceeds the published rate tables. Please call for a manual quote.")
	}
	fmt.Printf("\n%s\n", result.Disclaimer)
}

func printSection(name string, total decimal.Decimal) {
	fmt.Printf("│ %-50s %20s │\n", name, "$"+total.StringFixed(2))
}

func printLine(name string, fee decimal.Decimal) {
	fmt.Printf("│   └─ %-46s %18s │\n", truncate(name, 46), "$"+fee.StringFixed(2))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
