package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"givebridge/auth"
	"givebridge/models"
	"givebridge/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ItemHandler struct {
	Repo      repository.ItemRepository
	Validator *Validator
}

type itemStatusRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

type createItemRequest struct {
	Title          string  `json:"title" validate:"required,max=200"`
	Description    string  `json:"description" validate:"max=2000"`
	Quantity       int     `json:"quantity" validate:"min=1"`
	EstimatedValue float64 `json:"estimatedValue" validate:"gte=0"`
	PickupAddress  string  `json:"pickupAddress" validate:"max=500"`
}

// ActiveDonationRequests lists items still waiting for a volunteer.
func (h *ItemHandler) ActiveDonationRequests(w http.ResponseWriter, r *http.Request) error {
	items, err := h.Repo.ListItemsByStatus(r.Context(), models.ItemStatusActive)
	if err != nil {
		return NewHTTPError("Fetching donation items failed, please try again later.", http.StatusInternalServerError, err)
	}
	if items == nil {
		items = []*models.DonationItem{}
	}
	writeJSON(w, http.StatusOK, items)
	return nil
}

func (h *ItemHandler) AcceptDonationRequest(w http.ResponseWriter, r *http.Request) error {
	return h.updateStatus(w, r, models.ItemStatusPending)
}

func (h *ItemHandler) CompleteDonationRequest(w http.ResponseWriter, r *http.Request) error {
	return h.updateStatus(w, r, models.ItemStatusCompleted)
}

// updateStatus loads the item named in the body, sets its status and saves it.
// Transitions are not checked.
func (h *ItemHandler) updateStatus(w http.ResponseWriter, r *http.Request, status string) error {
	var req itemStatusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		return invalidInputs(err)
	}
	if err := h.Validator.Validate(req); err != nil {
		return invalidInputs(err)
	}
	itemID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ItemID))
	if err != nil {
		return invalidInputs(err)
	}

	existingItem, err := h.Repo.GetItemByID(r.Context(), itemID)
	if err != nil {
		return NewHTTPError("Something went wrong, please try again later.", http.StatusInternalServerError, err)
	}
	if existingItem == nil {
		return NewHTTPError("Could not find item for the provided id.", http.StatusNotFound, nil)
	}

	existingItem.Status = status
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		if status == models.ItemStatusPending || existingItem.Volunteer == "" {
			existingItem.Volunteer = claims.Email
		}
	}
	existingItem.UpdatedAt = time.Now().UTC()

	if err := h.Repo.SaveItem(r.Context(), existingItem); err != nil {
		return NewHTTPError("Something went wrong, could not update item status.", http.StatusInternalServerError, err)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"item": existingItem})
	return nil
}

// CreateItem registers a new donation pledged by the calling homeowner.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) error {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		return NewHTTPError("Authentication failed!", http.StatusUnauthorized, nil)
	}

	var req createItemRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		return invalidInputs(err)
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := h.Validator.Validate(req); err != nil {
		return invalidInputs(err)
	}

	now := time.Now().UTC()
	item := &models.DonationItem{
		Title:          req.Title,
		Description:    strings.TrimSpace(req.Description),
		Quantity:       req.Quantity,
		EstimatedValue: req.EstimatedValue,
		PickupAddress:  strings.TrimSpace(req.PickupAddress),
		Owner:          claims.Email,
		Status:         models.ItemStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := h.Repo.CreateItem(r.Context(), item); err != nil {
		return NewHTTPError("Creating donation item failed, please try again later.", http.StatusInternalServerError, err)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"item": item})
	return nil
}
