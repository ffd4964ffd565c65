package services

import (
	"encoding/json"
	"log"

	"cashback-service/internal/models"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// Task type for the background worker. Redeclared in internal/worker
// to avoid an import cycle.
const TypeActivityRecord = "activity:record"

// ActivityPayload is the queue payload for an audit feed append.
type ActivityPayload struct {
	UserId  int    `json:"userId"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type HelperService struct {
	DB    *gorm.DB
	Queue *asynq.Client
}

func NewHelperService(db *gorm.DB, queue *asynq.Client) *HelperService {
	return &HelperService{DB: db, Queue: queue}
}

// RecordActivity appends to the audit feed. The append is
// fire-and-forget: it goes through the queue when one is configured,
// falls back to a direct write otherwise, and never propagates an
// error to the money path.
func (s *HelperService) RecordActivity(userId int, actType, message string) {
	payload := ActivityPayload{UserId: userId, Type: actType, Message: message}

	if s.Queue != nil {
		data, err := json.Marshal(payload)
		if err == nil {
			if _, err := s.Queue.Enqueue(asynq.NewTask(TypeActivityRecord, data)); err == nil {
				return
			}
			log.Printf("activity enqueue failed, writing directly: user=%d type=%s", userId, actType)
		}
	}

	activity := models.Activity{UserId: userId, Type: actType, Message: message}
	if err := s.DB.Create(&activity).Error; err != nil {
		log.Printf("activity write failed: user=%d type=%s err=%v", userId, actType, err)
	}
}

// LogWebhook records a partner webhook delivery and the response we
// returned, keyed by the partner transaction id.
func (s *HelperService) LogWebhook(eventType, request string, response interface{}, status int, transactionId string) {
	respStr := ""
	if response != nil {
		if b, err := json.Marshal(response); err == nil {
			respStr = string(b)
		}
	}

	entry := models.WebhookLog{
		EventType:     eventType,
		Request:       request,
		Response:      respStr,
		Status:        status,
		TransactionId: transactionId,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("webhook log write failed: event=%s trx=%s err=%v", eventType, transactionId, err)
	}
}
