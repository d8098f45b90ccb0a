package notification

import (
	"context"

	"agendly/models"
	"agendly/utils"

	"go.uber.org/zap"
)

// Sender delivers one event to the outside world. Delivery channels (SMS,
// email, push gateways) live behind this boundary; their failures are logged
// here and never surfaced to the booking caller.
type Sender interface {
	Send(ctx context.Context, payload models.NotificationPayload) error
}

// LogSender records the event and does nothing else. It is the default when
// no delivery gateway is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, payload models.NotificationPayload) error {
	utils.GetLogger().Info("appointment event",
		zap.String("appointmentID", payload.AppointmentID),
		zap.String("unitID", payload.UnitID),
		zap.String("event", string(payload.Event)),
	)
	return nil
}
