// Package api - API request/response types
package api

import "titlequote/core/types"

// QuoteResponse is the engine result plus API metadata.
type QuoteResponse struct {
	*types.QuoteResult

	// Metadata carries request provenance
	Metadata *ResponseMetadata `json:"metadata,omitempty"`
}

// ResponseMetadata carries provenance for a quote response.
type ResponseMetadata struct {
	// RequestID uniquely identifies this request
	RequestID string `json:"request_id"`

	// InputHash is the sha256 of the canonical request JSON
	InputHash string `json:"input_hash"`

	// FeedSnapshot is the rate feed snapshot id the quote was priced
	// against
	FeedSnapshot string `json:"feed_snapshot"`

	// DurationMs is the processing time in milliseconds
	DurationMs int64 `json:"duration_ms"`
}

// EndorsementList is the endorsement catalog for one transaction type.
type EndorsementList struct {
	// TransactionType scopes the catalog
	TransactionType types.TransactionType `json:"transactionType"`

	// Endorsements are the available endorsements, defaults included
	Endorsements []types.Endorsement `json:"endorsements"`
}

// ZoneInfo lists the quotable cities of one zone.
type ZoneInfo struct {
	// Zone is the zone name
	Zone string `json:"zone"`

	// Cities are the zone's city names, sorted
	Cities []string `json:"cities"`
}

// FeedInfo describes the loaded rate feed.
type FeedInfo struct {
	// ID is the feed snapshot id
	ID string `json:"id"`

	// ContentHash is the feed's sha256 content hash
	ContentHash string `json:"content_hash"`

	// Tables holds per-table row counts
	Tables map[string]int `json:"tables"`
}
