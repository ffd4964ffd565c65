package services

import (
	"net/http"
	"strings"
	"testing"

	"cashback-service/internal/models"
	"cashback-service/pkg/common"
)

func TestTrackClickReturnsRedirectWithClickId(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	stack := newTestStack()

	store := models.Store{Name: "TravelCo"}
	testDB.Create(&store)
	offer := models.Offer{
		Title:       "Deal at TravelCo",
		StoreId:     store.ID,
		OfferType:   models.OfferTypeDeal,
		TrackingUrl: "https://partner.example.com/go?aff=42",
	}
	testDB.Create(&offer)

	res, err := stack.Click.TrackClick(TrackClickDTO{UserId: 601, OfferId: offer.ID})
	if err != nil {
		t.Fatalf("TrackClick failed: %v", err)
	}

	success, ok := res.(common.SuccessResponse)
	if !ok || success.Status != http.StatusOK {
		t.Fatalf("Expected 200, got %+v", res)
	}

	data := success.Data.(map[string]interface{})
	clickId := data["clickId"].(string)
	redirect := data["redirectUrl"].(string)

	if clickId == "" {
		t.Fatal("Expected a click id")
	}
	if !strings.Contains(redirect, "click_id="+clickId) {
		t.Errorf("Expected redirect to carry click_id, got %s", redirect)
	}
	if !strings.Contains(redirect, "aff=42") {
		t.Errorf("Expected existing query params preserved, got %s", redirect)
	}

	var click models.Click
	if err := testDB.Where("click_id = ?", clickId).First(&click).Error; err != nil {
		t.Fatalf("click row not found: %v", err)
	}
	if click.UserId != 601 || click.OfferId != offer.ID {
		t.Errorf("Click row mismatch: %+v", click)
	}

	// A deal offer books no estimate.
	if n := countTransactions(t, 601); n != 0 {
		t.Errorf("Expected no estimate for deal offer, got %d transactions", n)
	}
}

func TestTrackClickBooksEstimateForCashbackOffer(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	stack := newTestStack()

	store := models.Store{Name: "TechMart"}
	testDB.Create(&store)
	offer := models.Offer{
		Title:         "Cashback at TechMart",
		StoreId:       store.ID,
		OfferType:     models.OfferTypeCashback,
		Category:      "Groceries",
		AvgOrderValue: 100.00,
		TrackingUrl:   "https://partner.example.com/track",
	}
	testDB.Create(&offer)

	res, err := stack.Click.TrackClick(TrackClickDTO{UserId: 602, OfferId: offer.ID, UserTier: "Gold"})
	if err != nil {
		t.Fatalf("TrackClick failed: %v", err)
	}
	success := res.(common.SuccessResponse)
	clickId := success.Data.(map[string]interface{})["clickId"].(string)

	var estimate models.Transaction
	if err := testDB.Where("click_id = ?", clickId).First(&estimate).Error; err != nil {
		t.Fatalf("estimate transaction not found: %v", err)
	}
	if estimate.Status != models.StatusPending {
		t.Errorf("Expected pending estimate, got %s", estimate.Status)
	}
	if estimate.ExternalTransactionId != nil {
		t.Error("Expected estimate without external transaction id")
	}
	if estimate.Amount != 3.20 {
		t.Errorf("Expected estimate 3.20 from avg order value 100, got %f", estimate.Amount)
	}

	wallet := fetchWallet(t, 602)
	if wallet.PendingCashback != 3.20 {
		t.Errorf("Expected pending 3.20, got %f", wallet.PendingCashback)
	}
}

func TestTrackClickUnknownOffer(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	stack := newTestStack()

	res, err := stack.Click.TrackClick(TrackClickDTO{UserId: 603, OfferId: 999999})
	if err != nil {
		t.Fatalf("TrackClick failed: %v", err)
	}
	if errRes, ok := res.(common.ErrorResponse); !ok || errRes.Status != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown offer, got %+v", res)
	}
}
