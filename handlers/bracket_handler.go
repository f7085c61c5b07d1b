package handlers

import (
	"net/http"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

type recordResultInput struct {
	Score models.Score `json:"score"`
}

// GenerateHandler godoc
// @Summary Generate the knockout bracket of a category
// @Tags brackets
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param categoryID path string true "Category ID"
// @Param request body services.GenerateBracketRequest true "Bracket options"
// @Success 201 {object} map[string][]models.Match
// @Router /api/tournaments/{tournamentID}/categories/{categoryID}/bracket [post]
func (h *BracketHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateBracketRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.bracketService.GenerateKnockout(r.Context(), tournamentID, categoryID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ValidateHandler godoc
// @Summary Check the stored knockout bracket of a category
// @Tags brackets
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param categoryID path string true "Category ID"
// @Success 200 {object} brackets.ValidationResult
// @Router /api/tournaments/{tournamentID}/categories/{categoryID}/bracket/validation [get]
func (h *BracketHandler) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.bracketService.ValidateKnockout(r.Context(), tournamentID, categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"validation": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResultHandler godoc
// @Summary Record the score of a match and advance the bracket
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path string true "Match ID"
// @Param request body recordResultInput true "Score"
// @Success 200 {object} services.ResultOutcome
// @Router /api/matches/{matchID}/result [post]
func (h *BracketHandler) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input recordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	outcome, err := h.bracketService.RecordResult(r.Context(), matchID, input.Score)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": outcome.Match, "advanced": outcome.Advanced}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
