package notification

import (
	"encoding/json"

	"carematch/config"
	"carematch/models"
	"carematch/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeDispatchNotice is the asynq task type for dispatch notices.
const TypeDispatchNotice = "dispatch:notify"

// Dispatcher enqueues dispatch notices onto the async worker queue. Enqueue
// failures are logged and swallowed; a lost notice never fails a dispatch
// operation.
type Dispatcher struct {
	client *asynq.Client
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

// EnqueueDispatchNotice queues one notice for background delivery.
func (d *Dispatcher) EnqueueDispatchNotice(p models.DispatchNoticePayload) {
	logger := utils.GetLogger()

	payload, err := json.Marshal(p)
	if err != nil {
		logger.Warn("could not marshal dispatch notice", zap.Error(err))
		return
	}
	task := asynq.NewTask(TypeDispatchNotice, payload)
	if _, err := d.client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		logger.Warn("could not enqueue dispatch notice",
			zap.String("providerId", p.ProviderID), zap.Error(err))
	}
}
