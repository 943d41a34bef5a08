package places

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"deskhive/db"
	"deskhive/middleware"
	"deskhive/models"
	"deskhive/mq"
	"deskhive/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/place/organizations
func GetOrganizations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Stable order by creation time
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	orgs, err := utils.FindAndDecode[models.Organization](ctx, db.OrganizationsCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch organizations")
		return
	}
	if orgs == nil {
		orgs = []models.Organization{}
	}
	utils.RespondWithJSON(w, http.StatusOK, orgs)
}

// POST /api/place/organizations
func CreateOrganization(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	if input.Name == "" || input.Address == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and address are required")
		return
	}

	// Owner is always the token subject; a body-supplied ownerUserId is ignored.
	org := models.Organization{
		ID:          "o" + utils.GenerateRandomDigitString(16),
		Name:        input.Name,
		Address:     input.Address,
		OwnerUserID: middleware.RequesterID(r),
		CreatedAt:   time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.OrganizationsCollection.InsertOne(ctx, org); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create organization")
		return
	}

	mq.Emit("organization-created", mq.Event{EntityType: "organization", EntityID: org.ID})
	utils.RespondWithJSON(w, http.StatusCreated, org)
}
