package handlers

import (
	"net/http"

	"github.com/Dosada05/padel-tournament/services"
)

// PublicHandler serves the read-only views shown to players.
type PublicHandler struct {
	bracketService  services.BracketService
	scheduleService services.ScheduleService
}

func NewPublicHandler(bs services.BracketService, ss services.ScheduleService) *PublicHandler {
	return &PublicHandler{bracketService: bs, scheduleService: ss}
}

// ScheduleHandler godoc
// @Summary Public schedule of a tournament
// @Tags public
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param day query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} services.PublicSchedule
// @Router /public/tournaments/{tournamentID}/schedule [get]
func (h *PublicHandler) ScheduleHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.PublicSchedule(r.Context(), tournamentID, r.URL.Query().Get("day"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedule": schedule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CategoryMatchesHandler godoc
// @Summary Matches of a category
// @Tags public
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {object} map[string][]models.Match
// @Router /public/categories/{categoryID}/matches [get]
func (h *PublicHandler) CategoryMatchesHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.bracketService.CategoryMatches(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StandingsHandler godoc
// @Summary Group standings of a category
// @Tags public
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {object} map[string][]models.Standing
// @Router /public/categories/{categoryID}/standings [get]
func (h *PublicHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.bracketService.Standings(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
