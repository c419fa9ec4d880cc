package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"memematch-service/internal/app"
	"memematch-service/internal/domain"
	"memematch-service/internal/scoring"
)

// APIHandler serves the REST surface: analytics queries, result writes,
// donations, and the static quiz definition.
type APIHandler struct {
	analytics *app.AnalyticsService
	results   *app.ResultService
	donations *app.DonationService
	log       zerolog.Logger
}

func NewAPIHandler(analytics *app.AnalyticsService, results *app.ResultService, donations *app.DonationService, log zerolog.Logger) *APIHandler {
	return &APIHandler{
		analytics: analytics,
		results:   results,
		donations: donations,
		log:       log.With().Str("component", "api").Logger(),
	}
}

// GlobalResults handles GET /api/global-results.
func (h *APIHandler) GlobalResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ResultFilter{
		Period: q.Get("period"),
		Animal: q.Get("animal"),
		Chain:  q.Get("blockchain"),
	}

	summary, err := h.analytics.GlobalResults(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("global results query failed")
		writeError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type saveResultRequest struct {
	WalletAddress     string       `json:"walletAddress"`
	Match             domain.Coin  `json:"memecoin_match"`
	Scores            domain.Tally `json:"scores"`
	AnimalRestriction string       `json:"animal_restriction"`
	ChainRestriction  string       `json:"blockchain_restriction"`
}

// SaveResult handles POST /api/results.
func (h *APIHandler) SaveResult(w http.ResponseWriter, r *http.Request) {
	var req saveResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.results.Save(r.Context(), app.ResultSubmission{
		WalletAddress:     req.WalletAddress,
		Match:             req.Match,
		Scores:            req.Scores,
		AnimalRestriction: req.AnimalRestriction,
		ChainRestriction:  req.ChainRestriction,
	})
	switch {
	case errors.Is(err, domain.ErrWalletRequired), errors.Is(err, domain.ErrUnknownCoin):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.log.Error().Err(err).Msg("result save failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
	}
}

type donateRequest struct {
	Command        string `json:"command"`
	DonationAmount string `json:"donationAmount"`
	SignerData     struct {
		Address string `json:"address"`
	} `json:"signerData"`
	DonateToDev bool   `json:"donateToDev"`
	TxHash      string `json:"txHash"`
}

// Donate handles POST /api/donate. A full command runs the donation flow
// and persists the row; a bare donationAmount only validates and quotes.
func (h *APIHandler) Donate(w http.ResponseWriter, r *http.Request) {
	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var quote domain.DonationQuote
	var err error
	switch {
	case req.Command != "":
		quote, err = h.donations.Donate(r.Context(), app.DonationRequest{
			Command:       req.Command,
			SignerAddress: req.SignerData.Address,
			DonateToDev:   req.DonateToDev,
			TxHash:        req.TxHash,
		})
	case req.DonationAmount != "":
		quote, err = h.donations.Quote(req.DonationAmount)
	default:
		writeError(w, http.StatusBadRequest, "donation amount is required")
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCommand),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrAmountTooLarge):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.log.Error().Err(err).Msg("donation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, quote)
	}
}

// Quiz handles GET /api/quiz: the static question bank and coin metadata.
func (h *APIHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	coins := make(map[domain.Coin]domain.CoinInfo, len(domain.Coins()))
	for _, c := range domain.Coins() {
		coins[c] = c.Info()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"questions":   scoring.Questions(),
		"memecoins":   coins,
		"animals":     domain.Animals(),
		"blockchains": domain.Blockchains(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
