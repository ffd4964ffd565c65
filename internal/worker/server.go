package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cashback-service/internal/consumers"
	"cashback-service/internal/services"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Processor *consumers.ActivityProcessor
}

func NewWorker(processor *consumers.ActivityProcessor) *Worker {
	return &Worker{
		Processor: processor,
	}
}

func (w *Worker) HandleActivityRecord(ctx context.Context, t *asynq.Task) error {
	var p services.ActivityPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	return w.Processor.ProcessActivity(p)
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.ActivityProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeActivityRecord, worker.HandleActivityRecord)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
