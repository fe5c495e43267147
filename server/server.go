package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sambezza/hullpropertyanalysis/config"
	"github.com/sambezza/hullpropertyanalysis/models"
	"github.com/sambezza/hullpropertyanalysis/scraper/rightmove"
	"github.com/sambezza/hullpropertyanalysis/services"
	"github.com/sambezza/hullpropertyanalysis/storage"
	"github.com/sambezza/hullpropertyanalysis/utils"
)

// Server exposes the analysis pipeline as a JSON API.
type Server struct {
	logger   *utils.Logger
	fetcher  rightmove.Fetcher
	analyzer *services.Analyzer
	repo     storage.SalesRepository
	defaults models.InvestmentInputs
}

// New wires a Server from its service dependencies.
func New(logger *utils.Logger, fetcher rightmove.Fetcher, analyzer *services.Analyzer,
	repo storage.SalesRepository, defaults models.InvestmentInputs) *Server {
	return &Server{
		logger:   logger,
		fetcher:  fetcher,
		analyzer: analyzer,
		repo:     repo,
		defaults: defaults,
	}
}

// Router builds the mux router with all API routes registered.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/analyze", s.handleAnalyze).Methods(http.MethodPost)
	r.HandleFunc("/api/comparables", s.handleComparables).Methods(http.MethodGet)
	return r
}

// Run blocks serving the API on the given port.
func (s *Server) Run(port string) error {
	s.logger.Info("[server] Listening on :%s", port)
	return http.ListenAndServe(":"+port, s.Router())
}

// analyzeRequest is the POST /api/analyze body. Either a listing URL to
// fetch, or the property fields inline. Price overrides the fetched one;
// inputs default to the configured values when omitted.
type analyzeRequest struct {
	URL          string                   `json:"url"`
	Price        *int64                   `json:"price"`
	Street       string                   `json:"street"`
	Postcode     string                   `json:"postcode"`
	PropertyType string                   `json:"property_type"`
	Inputs       *models.InvestmentInputs `json:"inputs"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var listing *models.Listing
	if req.URL != "" {
		fetched, err := s.fetcher.Fetch(r.Context(), req.URL)
		if err != nil {
			s.logger.Error("[server] Fetch failed: %v", err)
			s.writeError(w, http.StatusBadGateway, "listing fetch failed: "+err.Error())
			return
		}
		listing = fetched
	} else {
		listing = &models.Listing{
			Street:   req.Street,
			Postcode: req.Postcode,
			Type:     models.PropertyTypeFromRaw(req.PropertyType),
		}
	}

	price := int64(0)
	switch {
	case req.Price != nil:
		price = *req.Price
	case listing.Price != nil:
		price = *listing.Price
	}

	inputs := s.defaults
	if req.Inputs != nil {
		inputs = *req.Inputs
	}
	inputs.StampDutyPercent = config.StampDutyPercent

	transactions, err := s.repo.All()
	if err != nil {
		s.logger.Error("[server] Sales repository read failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "sales data unavailable")
		return
	}

	report := s.analyzer.Analyze(listing, price, inputs, transactions)
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleComparables(w http.ResponseWriter, r *http.Request) {
	street := r.URL.Query().Get("street")
	rawType := r.URL.Query().Get("type")

	propType := models.PropertyTypeFromCode(rawType)
	if !propType.Known() {
		propType = models.PropertyTypeFromRaw(rawType)
	}

	transactions, err := s.repo.All()
	if err != nil {
		s.logger.Error("[server] Sales repository read failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "sales data unavailable")
		return
	}

	listing := &models.Listing{Street: street, Type: propType}
	set := services.NewMatcher(s.logger).Find(listing, transactions)
	s.writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("[server] Encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
