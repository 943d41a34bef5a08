package places

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"deskhive/db"
	"deskhive/rdx"
	"deskhive/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const workspacePicDir = "./static/workspacepic"

// POST /api/place/workspaces/:workspaceid/photo
// Multipart upload under the "photo" key; saves the original and a 300px
// thumbnail, then records the photo path on the workspace.
func UploadWorkspacePhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("workspaceid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing photo file")
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image format")
		return
	}

	fileName := utils.GenerateRandomString(16) + ".jpg"
	thumbDir := filepath.Join(workspacePicDir, "thumb")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}

	if err := imaging.Save(img, filepath.Join(workspacePicDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	photoPath := "/static/workspacepic/" + fileName

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res, err := db.WorkspacesCollection.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"photo": photoPath}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update workspace")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Workspace not found")
		return
	}

	if err := rdx.RdxDel(workspacesCacheKey); err != nil {
		log.Printf("Failed to invalidate workspace cache: %v", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"photo":     photoPath,
		"thumbnail": fmt.Sprintf("/static/workspacepic/thumb/%s", fileName),
	})
}
