package services

import (
	"fmt"
	"log"
	"math"

	"cashback-service/internal/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReconciliationService repairs drift between the wallets table and
// the transaction log. The transaction log is the source of truth: a
// wallet's pending bucket must equal the sum of its pending rows, and
// the sweep rewrites any wallet where it does not.
type ReconciliationService struct {
	DB     *gorm.DB
	Helper *HelperService
}

func NewReconciliationService(db *gorm.DB, helper *HelperService) *ReconciliationService {
	return &ReconciliationService{DB: db, Helper: helper}
}

type pendingTotal struct {
	UserId int
	Total  float64
}

// Sweep recomputes every wallet's pending bucket from the pending
// transaction rows and corrects mismatches beyond a cent. Runs from
// the scheduler; safe to run concurrently with live traffic because
// each repair re-checks the stored value inside the UPDATE.
func (s *ReconciliationService) Sweep() error {
	var totals []pendingTotal
	err := s.DB.Model(&models.Transaction{}).
		Select("user_id, COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", models.StatusPending).
		Group("user_id").
		Scan(&totals).Error
	if err != nil {
		return err
	}

	expected := make(map[int]float64, len(totals))
	for _, t := range totals {
		expected[t.UserId] = t.Total
	}

	var wallets []models.Wallet
	if err := s.DB.Find(&wallets).Error; err != nil {
		return err
	}

	repaired := 0
	for _, wallet := range wallets {
		want := expected[wallet.UserId]
		if math.Abs(wallet.PendingCashback-want) < 0.01 {
			continue
		}

		// Conditional on the drifted value so a concurrent legitimate
		// update between our read and this write is not clobbered.
		res := s.DB.Model(&models.Wallet{}).
			Where("user_id = ? AND pending_cashback = ?", wallet.UserId, wallet.PendingCashback).
			Update("pending_cashback", want)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			continue
		}

		repaired++
		log.Printf("reconciliation: wallet %d pending %.2f -> %.2f", wallet.UserId, wallet.PendingCashback, want)
		s.Helper.RecordActivity(wallet.UserId, "reconciliation",
			fmt.Sprintf("Pending balance corrected from %.2f to %.2f", wallet.PendingCashback, want))
	}

	if repaired > 0 {
		log.Printf("reconciliation sweep repaired %d wallet(s)", repaired)
	}
	return nil
}

// StartScheduler initializes the hourly reconciliation cron job
func (s *ReconciliationService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 * * * *", func() {
		log.Println("Running scheduled wallet reconciliation sweep...")
		if err := s.Sweep(); err != nil {
			log.Printf("reconciliation sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling reconciliation sweep: %v", err)
		return
	}
	c.Start()
	log.Println("Wallet Reconciliation Scheduler started (Hourly)")
}
