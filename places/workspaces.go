package places

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"deskhive/booking"
	"deskhive/db"
	"deskhive/models"
	"deskhive/mq"
	"deskhive/rdx"
	"deskhive/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const workspacesCacheKey = "workspaces"

// workspaceInput is the create payload. The canonical identity is
// title/view/description; "name" is kept as a deprecated alias for title from
// the earlier API revision.
type workspaceInput struct {
	OrganizationID string `json:"organizationId"`
	Title          string `json:"title"`
	Name           string `json:"name,omitempty"` // deprecated alias for title
	View           string `json:"view"`
	Capacity       int    `json:"capacity"`
	Floor          int    `json:"floor"`
	HasSocket      bool   `json:"hasSocket"`
	IsQuietZone    bool   `json:"isQuietZone"`
	Description    string `json:"description,omitempty"`
}

// normalizeWorkspace resolves the title alias and applies the clamp policy:
// capacity and floor are raised to 1 rather than rejected.
func normalizeWorkspace(in workspaceInput) (workspaceInput, error) {
	if in.Title == "" {
		in.Title = in.Name
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, errors.New("title is required")
	}
	if in.OrganizationID == "" {
		return in, errors.New("organizationId is required")
	}
	if in.Capacity < 1 {
		in.Capacity = 1
	}
	if in.Floor < 1 {
		in.Floor = 1
	}
	return in, nil
}

// GET /api/place/workspaces?organizationId=
// Also served at /api/workspaces as a deprecated alias.
func GetWorkspaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orgID := r.URL.Query().Get("organizationId")

	// Cache only the unfiltered listing
	if orgID == "" {
		if cached, _ := rdx.RdxGet(workspacesCacheKey); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	filter := bson.M{}
	if orgID != "" {
		filter["organization_id"] = orgID
	}

	workspaces, err := utils.FindAndDecode[models.Workspace](ctx, db.WorkspacesCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch workspaces")
		return
	}
	if workspaces == nil {
		workspaces = []models.Workspace{}
	}

	if orgID == "" {
		if data, err := json.Marshal(workspaces); err == nil {
			rdx.RdxSet(workspacesCacheKey, string(data))
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, workspaces)
}

// POST /api/place/workspaces
func CreateWorkspace(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input workspaceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	input, err := normalizeWorkspace(input)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// The owning organization must exist at creation time
	err = db.OrganizationsCollection.FindOne(ctx, bson.M{"id": input.OrganizationID}).Err()
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Organization not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	ws := models.Workspace{
		ID:             "w" + utils.GenerateRandomDigitString(16),
		OrganizationID: input.OrganizationID,
		Title:          input.Title,
		View:           input.View,
		Capacity:       input.Capacity,
		Floor:          input.Floor,
		HasSocket:      input.HasSocket,
		IsQuietZone:    input.IsQuietZone,
		Description:    input.Description,
		CreatedAt:      time.Now().UTC(),
	}

	if _, err := db.WorkspacesCollection.InsertOne(ctx, ws); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create workspace")
		return
	}

	if err := rdx.RdxDel(workspacesCacheKey); err != nil {
		log.Printf("Failed to invalidate workspace cache: %v", err)
	}
	mq.Emit("workspace-created", mq.Event{EntityType: "workspace", EntityID: ws.ID})
	utils.RespondWithJSON(w, http.StatusCreated, ws)
}

// DELETE /api/place/workspaces/:workspaceid
// Cascades into the workspace's bookings through the engine's per-workspace
// exclusive section. Deleting an id that is already gone reports 404 so the
// caller can detect a stale reference.
func DeleteWorkspace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("workspaceid")
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing id")
		return
	}

	err := booking.DefaultEngine().PurgeWorkspace(r.Context(), id)
	if errors.Is(err, booking.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Workspace not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete workspace")
		return
	}

	if err := rdx.RdxDel(workspacesCacheKey); err != nil {
		log.Printf("Failed to invalidate workspace cache: %v", err)
	}
	mq.Emit("workspace-deleted", mq.Event{EntityType: "workspace", EntityID: id})
	w.WriteHeader(http.StatusNoContent)
}
