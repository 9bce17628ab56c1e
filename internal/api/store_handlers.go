package api

import (
	"net/http"
)

func (s *Server) handleStore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"items": s.Shop.Items()})
}

type purchaseRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

type purchaseResponse struct {
	OK                bool     `json:"ok"`
	Currency          int      `json:"currency"`
	StreakFreezes     int      `json:"streakFreezes"`
	SpicyDiceUnlocked bool     `json:"spicyDiceUnlocked"`
	OwnedThemes       []string `json:"ownedThemes"`
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	u, err := s.Shop.Purchase(r.Context(), userIDFromContext(r.Context()), req.ItemID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	themes := u.OwnedThemes
	if themes == nil {
		themes = []string{}
	}
	writeJSON(w, r, http.StatusOK, purchaseResponse{
		OK:                true,
		Currency:          u.Currency,
		StreakFreezes:     u.StreakFreezes,
		SpicyDiceUnlocked: u.SpicyDiceUnlocked,
		OwnedThemes:       themes,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Summary.Summary(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sum)
}
