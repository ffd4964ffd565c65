package services

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"cashback-service/internal/models"
	"cashback-service/pkg/common"

	"gorm.io/gorm"
)

const defaultReferralBonus = 5.00

// ReferralService credits a referrer once their referred user earns a
// first confirmed cashback. Exactly-once is enforced by an atomic
// claim on the referral row, not by counting transactions: two
// concurrently confirming transactions race a count query, but only
// one of them can flip bonus_paid.
type ReferralService struct {
	DB          *gorm.DB
	Wallet      *WalletService
	Helper      *HelperService
	BonusAmount float64
}

func NewReferralService(db *gorm.DB, wallet *WalletService, helper *HelperService) *ReferralService {
	bonus := defaultReferralBonus
	if raw := os.Getenv("REFERRAL_BONUS_AMOUNT"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			bonus = v
		}
	}
	return &ReferralService{DB: db, Wallet: wallet, Helper: helper, BonusAmount: bonus}
}

// RegisterReferral links a newly signed-up user to their referrer.
// A user can only ever be referred once.
func (s *ReferralService) RegisterReferral(referrerId, referredId int) (interface{}, error) {
	if referrerId == referredId {
		return common.NewErrorResponse("Users cannot refer themselves", nil, http.StatusBadRequest), nil
	}

	var existing int64
	if err := s.DB.Model(&models.Referral{}).Where("referred_id = ?", referredId).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return common.NewErrorResponse("User already has a referrer", nil, http.StatusBadRequest), nil
	}

	referral := models.Referral{ReferrerId: referrerId, ReferredId: referredId}
	if err := s.DB.Create(&referral).Error; err != nil {
		return nil, err
	}

	return common.NewCreatedResponse(referral, "Referral registered"), nil
}

// MaybeAwardBonus fires after a transaction confirmation for the given
// user. The conditional update on bonus_paid is the one-time claim: it
// succeeds for exactly one caller across any number of concurrent
// confirmations, and every later call is a no-op.
func (s *ReferralService) MaybeAwardBonus(referredUserId int) error {
	var referral models.Referral
	if err := s.DB.Where("referred_id = ?", referredUserId).First(&referral).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	if referral.BonusPaid {
		return nil
	}

	// Claim and payout commit together: if the wallet credit or the
	// audit row fails, the claim rolls back and a later confirmation
	// can retry it.
	now := time.Now()
	awarded := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.Referral{}).
			Where("id = ? AND bonus_paid = ?", referral.ID, false).
			Updates(map[string]interface{}{
				"bonus_paid":    true,
				"bonus_paid_at": now,
				"earnings":      gorm.Expr("earnings + ?", s.BonusAmount),
			})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return nil
		}
		awarded = true

		if err := s.Wallet.EnsureWallet(tx, referral.ReferrerId); err != nil {
			return err
		}
		if err := s.Wallet.IncrementAvailable(tx, referral.ReferrerId, s.BonusAmount); err != nil {
			return err
		}
		if err := s.Wallet.IncrementTotal(tx, referral.ReferrerId, s.BonusAmount); err != nil {
			return err
		}

		bonus := models.Transaction{
			UserId:        referral.ReferrerId,
			TransactionNo: common.GenerateTrxNo(),
			Amount:        s.BonusAmount,
			Kind:          models.KindCredit,
			Status:        models.StatusConfirmed,
			Description:   fmt.Sprintf("Referral bonus: referred user #%d earned their first confirmed cashback", referredUserId),
		}
		return tx.Create(&bonus).Error
	})
	if err != nil {
		return err
	}
	if !awarded {
		return nil
	}

	log.Printf("referral bonus of %.2f credited to user %d for referred user %d",
		s.BonusAmount, referral.ReferrerId, referredUserId)
	s.Helper.RecordActivity(referral.ReferrerId, "referral",
		fmt.Sprintf("Referral bonus of %.2f credited for referred user #%d", s.BonusAmount, referredUserId))

	return nil
}

// GetReferralData aggregates a referrer's earnings and referred-user
// count.
func (s *ReferralService) GetReferralData(userId int) (interface{}, error) {
	var count int64
	if err := s.DB.Model(&models.Referral{}).Where("referrer_id = ?", userId).Count(&count).Error; err != nil {
		return nil, err
	}

	var earnings float64
	if err := s.DB.Model(&models.Referral{}).
		Where("referrer_id = ?", userId).
		Select("COALESCE(SUM(earnings), 0)").
		Scan(&earnings).Error; err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"referredUsersCount": count,
		"earnings":           earnings,
	}, "Referral data fetched"), nil
}

// GetReferralHistory lists the referrer's referral records.
func (s *ReferralService) GetReferralHistory(userId int) (interface{}, error) {
	var referrals []models.Referral
	if err := s.DB.Where("referrer_id = ?", userId).Order("created_at DESC").Find(&referrals).Error; err != nil {
		return nil, err
	}
	return common.NewSuccessResponse(referrals, "Referral history fetched"), nil
}
