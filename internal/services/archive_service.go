package services

import (
	"log"
	"time"

	"cashback-service/internal/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const archiveAfterMonths = 12

// ArchiveService moves terminal transactions older than a year into
// archived_transactions to keep the hot table small. Pending rows are
// never touched regardless of age.
type ArchiveService struct {
	DB *gorm.DB
}

func NewArchiveService(db *gorm.DB) *ArchiveService {
	return &ArchiveService{DB: db}
}

func (s *ArchiveService) Run() error {
	cutoff := time.Now().AddDate(0, -archiveAfterMonths, 0)

	var candidates []models.Transaction
	err := s.DB.Where("status <> ? AND created_at < ?", models.StatusPending, cutoff).
		Limit(1000).
		Find(&candidates).Error
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return nil
	}

	moved := 0
	for _, trx := range candidates {
		archived := models.ArchivedTransaction{
			UserId:                trx.UserId,
			TransactionNo:         trx.TransactionNo,
			Amount:                trx.Amount,
			Kind:                  trx.Kind,
			Status:                trx.Status,
			Description:           trx.Description,
			ExternalTransactionId: trx.ExternalTransactionId,
			ClickId:               trx.ClickId,
			FailureReason:         trx.FailureReason,
			CreatedAt:             trx.CreatedAt,
			UpdatedAt:             trx.UpdatedAt,
		}
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&archived).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Transaction{}, trx.ID).Error
		})
		if err != nil {
			log.Printf("archive: transaction %d skipped: %v", trx.ID, err)
			continue
		}
		moved++
	}

	log.Printf("archive run moved %d transaction(s) older than %s", moved, cutoff.Format("2006-01-02"))
	return nil
}

// StartScheduler initializes the cron job to run daily at midnight
func (s *ArchiveService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		log.Println("Running scheduled transaction archive task...")
		if err := s.Run(); err != nil {
			log.Printf("archive run failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling archive task: %v", err)
		return
	}
	c.Start()
	log.Println("Transaction Archive Scheduler started (Daily at 00:00)")
}
