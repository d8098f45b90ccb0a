package booking

import "agendly/models"

// transitions is the allowed administrative state machine. Cancellation and
// no-show are reachable from every non-terminal state; completed, cancelled
// and no-show are terminal.
var transitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending: {
		models.StatusConfirmed,
		models.StatusInProgress,
		models.StatusCancelled,
		models.StatusNoShow,
	},
	models.StatusConfirmed: {
		models.StatusInProgress,
		models.StatusCancelled,
		models.StatusNoShow,
	},
	models.StatusInProgress: {
		models.StatusCompleted,
		models.StatusCancelled,
		models.StatusNoShow,
	},
}

// CanTransition reports whether an appointment may move from one status to
// another under administrative action.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// initialStatus is the creation status per booking origin: staff bookings
// start pending, public self-service bookings are confirmed immediately.
func initialStatus(origin models.BookingOrigin) models.AppointmentStatus {
	if origin == models.OriginPublic {
		return models.StatusConfirmed
	}
	return models.StatusPending
}
