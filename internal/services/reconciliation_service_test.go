package services

import (
	"testing"
	"time"

	"cashback-service/internal/models"
	"cashback-service/pkg/common"
)

func TestSweepRepairsDriftedPendingBalance(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	stack := newTestStack()
	click := seedClick(t, 701)

	if _, err := stack.Webhook.HandlePurchase(PurchaseWebhookDTO{
		ClickId:        click.ClickId,
		PurchaseAmount: 100.00,
		TransactionId:  "ORD-4001",
		UserTier:       "Gold",
	}); err != nil {
		t.Fatalf("HandlePurchase failed: %v", err)
	}

	// Simulate drift: someone fat-fingered the wallet row.
	testDB.Model(&models.Wallet{}).Where("user_id = ?", 701).
		Update("pending_cashback", 99.99)

	svc := NewReconciliationService(testDB, stack.Helper)
	if err := svc.Sweep(); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	wallet := fetchWallet(t, 701)
	if wallet.PendingCashback != 3.20 {
		t.Errorf("Expected pending repaired to 3.20, got %f", wallet.PendingCashback)
	}
}

func TestSweepLeavesConsistentWalletsAlone(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	stack := newTestStack()
	click := seedClick(t, 702)

	if _, err := stack.Webhook.HandlePurchase(PurchaseWebhookDTO{
		ClickId:        click.ClickId,
		PurchaseAmount: 100.00,
		TransactionId:  "ORD-4002",
		UserTier:       "Gold",
	}); err != nil {
		t.Fatalf("HandlePurchase failed: %v", err)
	}

	before := fetchWallet(t, 702)

	svc := NewReconciliationService(testDB, stack.Helper)
	if err := svc.Sweep(); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	after := fetchWallet(t, 702)
	if after.PendingCashback != before.PendingCashback {
		t.Errorf("Expected pending untouched at %f, got %f", before.PendingCashback, after.PendingCashback)
	}
}

func TestArchiveMovesOldTerminalTransactions(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	old := time.Now().AddDate(0, -13, 0)
	terminal := models.Transaction{
		UserId:        703,
		TransactionNo: common.GenerateTrxNo(),
		Amount:        3.20,
		Kind:          models.KindCredit,
		Status:        models.StatusConfirmed,
	}
	testDB.Create(&terminal)
	testDB.Model(&terminal).UpdateColumn("created_at", old)

	stillPending := models.Transaction{
		UserId:        703,
		TransactionNo: common.GenerateTrxNo(),
		Amount:        1.00,
		Kind:          models.KindCredit,
		Status:        models.StatusPending,
	}
	testDB.Create(&stillPending)
	testDB.Model(&stillPending).UpdateColumn("created_at", old)

	svc := NewArchiveService(testDB)
	if err := svc.Run(); err != nil {
		t.Fatalf("archive run failed: %v", err)
	}

	// The confirmed row moved, the pending row stayed regardless of age.
	if n := countTransactions(t, 703); n != 1 {
		t.Errorf("Expected 1 live transaction, got %d", n)
	}
	var archived int64
	testDB.Model(&models.ArchivedTransaction{}).Where("user_id = ?", 703).Count(&archived)
	if archived != 1 {
		t.Errorf("Expected 1 archived transaction, got %d", archived)
	}

	var kept models.Transaction
	testDB.Where("user_id = ?", 703).First(&kept)
	if kept.Status != models.StatusPending {
		t.Errorf("Expected the pending row to survive, got %s", kept.Status)
	}
}
