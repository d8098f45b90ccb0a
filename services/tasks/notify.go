package tasks

import (
	"encoding/json"

	"agendly/models"

	"github.com/hibiken/asynq"
)

const TypeAppointmentEvent = "appointment:event"

func NewAppointmentEventTask(payload models.NotificationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAppointmentEvent, b), nil
}
