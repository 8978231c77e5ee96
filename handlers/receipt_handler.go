package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"givebridge/auth"
	"givebridge/models"
	"givebridge/repository"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReceiptRenderer turns receipt data into PDF bytes; utils.GenerateReceiptPDF in production.
type ReceiptRenderer func(ctx context.Context, data *models.ReceiptData) ([]byte, error)

type ReceiptHandler struct {
	Repo   *repository.ReceiptRepository
	Render ReceiptRenderer
}

// DonationReceipt streams the PDF receipt of a completed donation. Only the
// donor, the volunteer and the volunteer's NGO head may fetch it.
func (h *ReceiptHandler) DonationReceipt(w http.ResponseWriter, r *http.Request) error {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "itemID"))
	if err != nil {
		return invalidInputs(err)
	}

	data, err := h.Repo.GetReceiptData(r.Context(), itemID)
	if err != nil {
		return NewHTTPError("Something went wrong, please try again later.", http.StatusInternalServerError, err)
	}
	if data == nil {
		return NewHTTPError("Could not find item for the provided id.", http.StatusNotFound, nil)
	}
	if !canViewReceipt(auth.ClaimsFromContext(r.Context()), data) {
		return NewHTTPError("You are not allowed to do this.", http.StatusForbidden, nil)
	}
	if data.Item.Status != models.ItemStatusCompleted {
		return NewHTTPError("Receipt is only available for completed donations.", http.StatusUnprocessableEntity, nil)
	}

	pdf, err := h.Render(r.Context(), data)
	if err != nil {
		return NewHTTPError("Could not generate receipt, please try again later.", http.StatusInternalServerError, err)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt_%s.pdf"`, itemID.Hex()))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
	return nil
}

func canViewReceipt(claims *auth.Claims, data *models.ReceiptData) bool {
	if claims == nil {
		return false
	}
	switch claims.Email {
	case data.Item.Owner, data.Item.Volunteer:
		return true
	}
	return data.NGO != nil && data.NGO.Email == claims.Email
}
