package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"deskhive/middleware"
	"deskhive/mq"
	"deskhive/utils"

	"github.com/julienschmidt/httprouter"
)

// Engine wired to Mongo; handlers below are thin HTTP glue over it.
var engine = NewEngine(NewMongoStore())

// DefaultEngine exposes the shared engine to the directory handlers for the
// workspace delete cascade.
func DefaultEngine() *Engine {
	return engine
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInterval):
		utils.RespondWithError(w, http.StatusBadRequest, "startTime must be before endTime")
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, ErrConflict):
		utils.RespondWithError(w, http.StatusConflict, "Time slot already booked")
	case errors.Is(err, ErrForbidden):
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal error")
	}
}

// GET /api/bookings/availability?workspaceId=&startTime=&endTime=
func CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	workspaceID := r.URL.Query().Get("workspaceId")
	if workspaceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing workspaceId")
		return
	}
	start, err1 := utils.ParseUTC(r.URL.Query().Get("startTime"))
	end, err2 := utils.ParseUTC(r.URL.Query().Get("endTime"))
	if err1 != nil || err2 != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "startTime and endTime must be ISO-8601")
		return
	}

	available, err := engine.CheckAvailability(r.Context(), workspaceID, start, end)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"available": available})
}

// POST /api/bookings
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		WorkspaceID string `json:"workspaceId"`
		StartTime   string `json:"startTime"`
		EndTime     string `json:"endTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if input.WorkspaceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing workspaceId")
		return
	}
	start, err1 := utils.ParseUTC(input.StartTime)
	end, err2 := utils.ParseUTC(input.EndTime)
	if err1 != nil || err2 != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "startTime and endTime must be ISO-8601")
		return
	}

	b, err := engine.CreateBooking(r.Context(), input.WorkspaceID, middleware.RequesterID(r), start, end)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	broadcastUpdate(b.WorkspaceID)
	mq.Emit("booking-created", mq.Event{EntityType: "workspace", EntityID: b.WorkspaceID, ItemID: b.ID})

	utils.RespondWithJSON(w, http.StatusCreated, b)
}

// GET /api/bookings/my
func MyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	details, err := engine.UserBookings(r.Context(), middleware.RequesterID(r))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, details)
}

// DELETE /api/bookings/:bookingid
func DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("bookingid")
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing id")
		return
	}

	b, err := engine.DeleteBooking(r.Context(), id, middleware.RequesterID(r), middleware.RequesterRole(r))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	broadcastUpdate(b.WorkspaceID)
	mq.Emit("booking-deleted", mq.Event{EntityType: "workspace", EntityID: b.WorkspaceID, ItemID: b.ID})

	w.WriteHeader(http.StatusNoContent)
}
