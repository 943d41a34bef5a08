package booking

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"deskhive/globals"
	"deskhive/middleware"
	"deskhive/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func passSecret() []byte {
	if s := os.Getenv("PASS_SECRET"); s != "" {
		return []byte(s)
	}
	return globals.JwtSecret
}

// passPayload returns bookingID|workspaceID|signature for embedding in a QR
// code that the front desk can scan.
func passPayload(bookingID, workspaceID string) string {
	data := fmt.Sprintf("%s|%s", bookingID, workspaceID)
	h := hmac.New(sha256.New, passSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyPassPayload checks a scanned payload's signature and splits it.
func VerifyPassPayload(payload string) (bookingID, workspaceID string, err error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return "", "", errors.New("malformed pass payload")
	}
	data := fmt.Sprintf("%s|%s", parts[0], parts[1])
	h := hmac.New(sha256.New, passSecret())
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(want), []byte(parts[2])) {
		return "", "", errors.New("invalid pass signature")
	}
	return parts[0], parts[1], nil
}

// GET /api/bookings/pass/:bookingid
func PrintPass(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("bookingid")

	b, err := engine.Booking(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if b.UserID != middleware.RequesterID(r) && middleware.RequesterRole(r) != globals.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	title := b.WorkspaceID
	view := ""
	if ws, err := engine.store.Workspace(r.Context(), b.WorkspaceID); err == nil {
		title = ws.Title
		view = ws.View
	}

	qrPNG, err := qrcode.Encode(passPayload(b.ID, b.WorkspaceID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Workspace Booking Pass")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Workspace: %s", title))
	pdf.Ln(8)
	if view != "" {
		pdf.Cell(0, 10, fmt.Sprintf("Location: %s", view))
		pdf.Ln(8)
	}
	pdf.Cell(0, 10, fmt.Sprintf("From: %s", b.StartTime.Format(time.RFC1123)))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Until: %s", b.EndTime.Format(time.RFC1123)))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Booking ID: %s", b.ID))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pass-"+b.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GET /api/bookings/verify?payload=...
func VerifyPass(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	payload := r.URL.Query().Get("payload")
	if payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing payload")
		return
	}

	bookingID, workspaceID, err := VerifyPassPayload(payload)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": false})
		return
	}

	b, err := engine.Booking(r.Context(), bookingID)
	if err != nil || b.WorkspaceID != workspaceID {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": false})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"valid":   true,
		"booking": b,
	})
}
