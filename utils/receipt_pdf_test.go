package utils

import (
	"testing"
	"time"

	"givebridge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildReceiptHTML(t *testing.T) {
	id, _ := primitive.ObjectIDFromHex("65f0c0ffee0000000000abcd")
	data := &models.ReceiptData{
		Item: &models.DonationItem{
			ID:             id,
			Title:          "Winter jackets",
			Quantity:       4,
			EstimatedValue: 1500,
			Owner:          "home@example.com",
			Volunteer:      "vol@example.com",
			Status:         models.ItemStatusCompleted,
			UpdatedAt:      time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC),
		},
		Donor:     &models.HomeOwner{Name: "Hana Home", Email: "home@example.com"},
		Volunteer: &models.Volunteer{Name: "Vic Vol", Email: "vol@example.com"},
		NGO:       &models.NGOOwner{NameNGO: "Warm Hands", DescriptionNGO: "Clothes for everyone"},
	}

	html, err := BuildReceiptHTML(data)
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "Warm Hands")
	assert.Contains(t, out, "GB-65F0C0FFEE0000000000ABCD")
	assert.Contains(t, out, "09-Mar-2025")
	assert.Contains(t, out, "Hana Home")
	assert.Contains(t, out, "Vic Vol")
	assert.Contains(t, out, "1500.00")
	assert.Contains(t, out, "One Thousand Five Hundred Rupees Only")
}

func TestBuildReceiptHTML_EscapesInput(t *testing.T) {
	data := &models.ReceiptData{
		Item: &models.DonationItem{Title: "<script>alert(1)</script>", Owner: "home@example.com"},
	}

	html, err := BuildReceiptHTML(data)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>alert(1)</script>")
	assert.Contains(t, string(html), "GiveBridge")
	assert.Contains(t, string(html), "home@example.com")
}

func TestBuildReceiptHTML_NoItem(t *testing.T) {
	_, err := BuildReceiptHTML(&models.ReceiptData{})
	assert.Error(t, err)
}
