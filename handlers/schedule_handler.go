package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/padel-tournament/scheduling"
	"github.com/Dosada05/padel-tournament/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(ss services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: ss}
}

type scheduleMatchInput struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	CourtID   string `json:"court_id"`
}

type applyChangesInput struct {
	Changes []scheduling.Change `json:"changes"`
}

// AutoScheduleHandler godoc
// @Summary Place every pending match of a tournament
// @Tags schedule
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} scheduling.Report
// @Router /api/tournaments/{tournamentID}/schedule/auto [post]
func (h *ScheduleHandler) AutoScheduleHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.scheduleService.AutoSchedule(r.Context(), tournamentID)
	if err != nil {
		if report != nil {
			partialFailureResponse(w, r, err, jsonResponse{"report": report, "summary": report.Summary()})
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"report": report, "summary": report.Summary()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ClearScheduleHandler godoc
// @Summary Unschedule matches, optionally limited to a day and a category
// @Tags schedule
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param day query string false "Day (YYYY-MM-DD)"
// @Param category_id query string false "Category ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/tournaments/{tournamentID}/schedule [delete]
func (h *ScheduleHandler) ClearScheduleHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	query := r.URL.Query()

	ids, err := h.scheduleService.ClearSchedule(r.Context(), tournamentID, query.Get("day"), query.Get("category_id"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"cleared": len(ids), "match_ids": ids}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ScheduleMatchHandler godoc
// @Summary Place one match by hand; overlaps are reported, not refused
// @Tags schedule
// @Accept json
// @Produce json
// @Param matchID path string true "Match ID"
// @Param request body scheduleMatchInput true "Placement"
// @Success 200 {object} services.ManualScheduleResult
// @Router /api/matches/{matchID}/schedule [put]
func (h *ScheduleHandler) ScheduleMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input scheduleMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.scheduleService.ScheduleMatch(r.Context(), matchID, input.Day, input.StartTime, input.CourtID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": result.Match, "conflicts": result.Conflicts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ApplyChangesHandler godoc
// @Summary Apply a batch of placement edits
// @Tags schedule
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param request body applyChangesInput true "Changes"
// @Success 200 {object} map[string][]models.Match
// @Router /api/tournaments/{tournamentID}/schedule/changes [post]
func (h *ScheduleHandler) ApplyChangesHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input applyChangesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Changes) == 0 {
		badRequestResponse(w, r, errors.New("changes must not be empty"))
		return
	}

	written, err := h.scheduleService.ApplyChanges(r.Context(), tournamentID, input.Changes)
	if err != nil {
		if len(written) > 0 {
			partialFailureResponse(w, r, err, jsonResponse{"matches": written})
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": written}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
