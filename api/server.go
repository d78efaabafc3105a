// Package api - Thin, deterministic API layer
// The API is only responsible for input ingestion, engine invocation,
// and output serialization. It never performs fee logic.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"titlequote/core/quote"
	"titlequote/core/types"
	"titlequote/internal/errors"
	"titlequote/internal/logging"
)

// Server is the API server
type Server struct {
	engine  *quote.Engine
	mux     *http.ServeMux
	version string
}

// NewServer creates a new API server over an engine.
func NewServer(version string, engine *quote.Engine) *Server {
	s := &Server{
		engine:  engine,
		mux:     http.NewServeMux(),
		version: version,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /quote", s.handleQuote)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.HandleFunc("GET /feed", s.handleFeed)
	s.mux.HandleFunc("GET /endorsements", s.handleEndorsements)
	s.mux.HandleFunc("GET /zones", s.handleZones)
	s.mux.HandleFunc("GET /zones/{zone}", s.handleZoneCities)
}

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req types.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeTypedError(w, errors.Wrapf(errors.TypeInput, err, "malformed request body"), http.StatusBadRequest)
		return
	}

	if err := validateQuoteRequest(&req); err != nil {
		s.writeTypedError(w, err, http.StatusBadRequest)
		return
	}

	requestID := uuid.New().String()
	result := s.engine.Quote(&req)

	logging.Debug("quote served",
		zap.String("request_id", requestID),
		zap.String("zone", req.CountyZone),
		zap.Bool("call_for_quote", result.CallForQuote))

	s.writeJSON(w, &QuoteResponse{
		QuoteResult: result,
		Metadata: &ResponseMetadata{
			RequestID:    requestID,
			InputHash:    computeInputHash(&req),
			FeedSnapshot: s.engine.Feed().ID(),
			DurationMs:   time.Since(start).Milliseconds(),
		},
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": s.version,
		"engine":  "titlequote",
	}, http.StatusOK)
}

// handleFeed handles GET /feed
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	feed := s.engine.Feed()
	s.writeJSON(w, &FeedInfo{
		ID:          feed.ID(),
		ContentHash: feed.ContentHash(),
		Tables:      feed.Counts(),
	}, http.StatusOK)
}

// handleEndorsements handles GET /endorsements
func (s *Server) handleEndorsements(w http.ResponseWriter, r *http.Request) {
	txType := types.TransactionPurchase
	if v := r.URL.Query().Get("transactionType"); v != "" {
		txType = types.TransactionType(v)
		if !txType.Valid() {
			s.writeTypedError(w,
				errors.Input("transactionType must be purchase or refinance"),
				http.StatusBadRequest)
			return
		}
	}

	s.writeJSON(w, &EndorsementList{
		TransactionType: txType,
		Endorsements:    s.engine.Endorsements(txType),
	}, http.StatusOK)
}

// handleZones handles GET /zones
func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string][]string{
		"zones": s.engine.Feed().Geography().Zones(),
	}, http.StatusOK)
}

// handleZoneCities handles GET /zones/{zone}
func (s *Server) handleZoneCities(w http.ResponseWriter, r *http.Request) {
	zone := r.PathValue("zone")
	geo := s.engine.Feed().Geography()
	if !geo.HasZone(zone) {
		s.writeTypedError(w,
			errors.Newf(errors.TypeGeography, "unknown zone: %s", zone),
			http.StatusNotFound)
		return
	}

	s.writeJSON(w, &ZoneInfo{
		Zone:   zone,
		Cities: geo.Cities(zone),
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeTypedError(w http.ResponseWriter, err *errors.Error, status int) {
	message := err.Message
	if err.Cause != nil {
		message = fmt.Sprintf("%s: %v", err.Message, err.Cause)
	}
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    string(err.Type),
			"message": message,
		},
	}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	if err := http.ListenAndServe(addr, s); err != nil {
		return errors.Internal("http server terminated", err)
	}
	return nil
}

// validateQuoteRequest checks request shape only. Out-of-range amounts
// are not rejected here; the engine degrades them to the call-for-quote
// flag instead.
func validateQuoteRequest(req *types.QuoteRequest) *errors.Error {
	if !req.TransactionType.Valid() {
		return errors.Input("transactionType must be purchase or refinance")
	}
	if req.CountyZone == "" {
		return errors.Input("countyZone is required")
	}
	return nil
}

func computeInputHash(req *types.QuoteRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
