package consumers

import (
	"log"
	"os"

	"cashback-service/internal/models"
	"cashback-service/internal/services"
	"cashback-service/pkg/common"

	"gorm.io/gorm"
)

// ActivityProcessor drains the activity queue: each task becomes a row
// in the audit feed and, when AUDIT_SINK_URL is set, a copy forwarded
// to the external audit collector.
type ActivityProcessor struct {
	DB      *gorm.DB
	SinkUrl string
}

func NewActivityProcessor(db *gorm.DB) *ActivityProcessor {
	return &ActivityProcessor{
		DB:      db,
		SinkUrl: os.Getenv("AUDIT_SINK_URL"),
	}
}

func (p *ActivityProcessor) ProcessActivity(payload services.ActivityPayload) error {
	activity := models.Activity{
		UserId:  payload.UserId,
		Type:    payload.Type,
		Message: payload.Message,
	}
	if err := p.DB.Create(&activity).Error; err != nil {
		return err
	}

	if p.SinkUrl != "" {
		if _, err := common.Post(p.SinkUrl, payload, nil); err != nil {
			// The row is already written; the external copy is best
			// effort.
			log.Printf("audit sink forward failed: user=%d type=%s err=%v", payload.UserId, payload.Type, err)
		}
	}

	return nil
}
