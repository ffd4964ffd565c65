package services

import (
	"net/http"
	"testing"

	"cashback-service/internal/models"
	"cashback-service/pkg/common"
)

// pendingCredit books a pending cashback through the webhook path and
// returns the created transaction.
func pendingCredit(t *testing.T, stack testStack, userId int, orderId string) models.Transaction {
	t.Helper()
	click := seedClick(t, userId)

	res, err := stack.Webhook.HandlePurchase(PurchaseWebhookDTO{
		ClickId:        click.ClickId,
		PurchaseAmount: 100.00,
		TransactionId:  orderId,
		UserTier:       "Gold",
	})
	if err != nil {
		t.Fatalf("HandlePurchase failed: %v", err)
	}
	if success, ok := res.(common.SuccessResponse); !ok || success.Status != http.StatusCreated {
		t.Fatalf("Expected pending credit, got %+v", res)
	}

	var trx models.Transaction
	if err := testDB.Where("external_transaction_id = ?", orderId).First(&trx).Error; err != nil {
		t.Fatalf("pending transaction not found: %v", err)
	}
	return trx
}

func TestApproveTransactionMovesFunds(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	stack := newTestStack()
	trx := pendingCredit(t, stack, 301, "ORD-2001")

	res, err := stack.Admin.ApproveTransaction(trx.ID)
	if err != nil {
		t.Fatalf("ApproveTransaction failed: %v", err)
	}
	if success, ok := res.(common.SuccessResponse); !ok || success.Status != http.StatusOK {
		t.Fatalf("Expected 200, got %+v", res)
	}

	var confirmed models.Transaction
	testDB.First(&confirmed, trx.ID)
	if confirmed.Status != models.StatusConfirmed {
		t.Errorf("Expected status confirmed, got %s", confirmed.Status)
	}

	wallet := fetchWallet(t, 301)
	if wallet.PendingCashback != 0 {
		t.Errorf("Expected pending 0, got %f", wallet.PendingCashback)
	}
	if wallet.AvailableCashback != 3.20 {
		t.Errorf("Expected available 3.20, got %f", wallet.AvailableCashback)
	}
	if wallet.TotalCashback != 3.20 {
		t.Errorf("Expected total unchanged at 3.20, got %f", wallet.TotalCashback)
	}
}

func TestApproveTransactionTwiceIsRejected(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	stack := newTestStack()
	trx := pendingCredit(t, stack, 302, "ORD-2002")

	if _, err := stack.Admin.ApproveTransaction(trx.ID); err != nil {
		t.Fatalf("first approval failed: %v", err)
	}
	res, err := stack.Admin.ApproveTransaction(trx.ID)
	if err != nil {
		t.Fatalf("second approval failed: %v", err)
	}

	errRes, ok := res.(common.ErrorResponse)
	if !ok || errRes.Status != http.StatusBadRequest {
		t.Fatalf("Expected 400 for double approval, got %+v", res)
	}

	// Funds moved exactly once.
	wallet := fetchWallet(t, 302)
	if wallet.AvailableCashback != 3.20 {
		t.Errorf("Expected available 3.20 after double approval, got %f", wallet.AvailableCashback)
	}
	if wallet.PendingCashback != 0 {
		t.Errorf("Expected pending 0, got %f", wallet.PendingCashback)
	}
}

func TestRejectTransactionDropsPendingOnly(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	stack := newTestStack()
	trx := pendingCredit(t, stack, 303, "ORD-2003")

	res, err := stack.Admin.RejectTransaction(trx.ID, "suspicious order")
	if err != nil {
		t.Fatalf("RejectTransaction failed: %v", err)
	}
	if success, ok := res.(common.SuccessResponse); !ok || success.Status != http.StatusOK {
		t.Fatalf("Expected 200, got %+v", res)
	}

	var rejected models.Transaction
	testDB.First(&rejected, trx.ID)
	if rejected.Status != models.StatusFailed {
		t.Errorf("Expected status failed, got %s", rejected.Status)
	}
	if rejected.FailureReason != "suspicious order" {
		t.Errorf("Expected reason recorded, got %q", rejected.FailureReason)
	}

	wallet := fetchWallet(t, 303)
	if wallet.PendingCashback != 0 {
		t.Errorf("Expected pending 0, got %f", wallet.PendingCashback)
	}
	if wallet.AvailableCashback != 0 {
		t.Errorf("Expected available 0, got %f", wallet.AvailableCashback)
	}
}

func TestApproveRejectKindMismatch(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	stack := newTestStack()
	trx := pendingCredit(t, stack, 304, "ORD-2004")

	// A credit cannot go through the withdrawal surface.
	res, err := stack.Admin.ApproveWithdrawal(trx.ID)
	if err != nil {
		t.Fatalf("ApproveWithdrawal failed: %v", err)
	}
	if errRes, ok := res.(common.ErrorResponse); !ok || errRes.Status != http.StatusBadRequest {
		t.Fatalf("Expected 400 for kind mismatch, got %+v", res)
	}

	res, err = stack.Admin.ApproveTransaction(999999)
	if err != nil {
		t.Fatalf("ApproveTransaction failed: %v", err)
	}
	if errRes, ok := res.(common.ErrorResponse); !ok || errRes.Status != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown id, got %+v", res)
	}
}

func TestListPendingTransactions(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	stack := newTestStack()
	pendingCredit(t, stack, 305, "ORD-2005")
	pendingCredit(t, stack, 306, "ORD-2006")

	res, err := stack.Admin.ListPendingTransactions(models.KindCredit, 1, 10)
	if err != nil {
		t.Fatalf("ListPendingTransactions failed: %v", err)
	}
	if res.Count != 2 {
		t.Errorf("Expected 2 pending credits, got %d", res.Count)
	}

	res, err = stack.Admin.ListPendingTransactions(models.KindWithdrawalRequest, 1, 10)
	if err != nil {
		t.Fatalf("ListPendingTransactions failed: %v", err)
	}
	if res.Count != 0 {
		t.Errorf("Expected 0 pending withdrawals, got %d", res.Count)
	}
}
