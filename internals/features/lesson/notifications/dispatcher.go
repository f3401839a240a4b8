// file: internals/features/lesson/notifications/dispatcher.go
package notifications

import (
	"log"

	"github.com/google/uuid"
)

// EventType untuk notifikasi keluar. Konten/template email dikerjakan
// service notifikasi eksternal; core ini hanya mendispatch event-nya.
type EventType string

const (
	EventClassScheduled    EventType = "class_scheduled"
	EventClassStarted      EventType = "class_started"
	EventClassCompleted    EventType = "class_completed"
	EventClassCancelled    EventType = "class_cancelled"
	EventClassRescheduled  EventType = "class_rescheduled"
	EventVideoReminder     EventType = "video_upload_reminder"
	EventVideoFinalWarning EventType = "video_final_warning"
)

// Dispatcher: fire-and-forget. Kegagalan dispatch TIDAK boleh
// menggagalkan atau me-rollback transisi state yang sudah commit.
type Dispatcher interface {
	Dispatch(event EventType, classID uuid.UUID, recipients []uuid.UUID) error
}

// LogDispatcher: implementasi default, hanya mencatat event.
// Produksi memakai adapter ke service email eksternal.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher { return &LogDispatcher{} }

func (d *LogDispatcher) Dispatch(event EventType, classID uuid.UUID, recipients []uuid.UUID) error {
	log.Printf("[NOTIFY] event=%s class=%s recipients=%d", event, classID, len(recipients))
	return nil
}

// FireAndForget membungkus dispatch supaya error hanya dilog, tidak diteruskan.
func FireAndForget(d Dispatcher, event EventType, classID uuid.UUID, recipients []uuid.UUID) {
	if d == nil {
		return
	}
	go func() {
		if err := d.Dispatch(event, classID, recipients); err != nil {
			log.Printf("[NOTIFY ERROR] event=%s class=%s: %v", event, classID, err)
		}
	}()
}
