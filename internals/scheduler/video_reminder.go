// file: internals/scheduler/video_reminder.go
package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesprivat_backend/internals/configs"
	"lesprivat_backend/internals/constants"
	"lesprivat_backend/internals/features/lesson/classes/model"
	"lesprivat_backend/internals/features/lesson/notifications"
)

// StartVideoReminderScheduler menjalankan sweep berkala untuk kelas
// completed yang videonya belum diupload: kirim reminder saat sisa waktu
// <= window, dan final warning saat sudah lewat deadline.
func StartVideoReminderScheduler(db *gorm.DB, cfg configs.ScheduleConfig, notify notifications.Dispatcher) {
	go func() {
		// interval sweep dari env (default: 15 menit)
		intervalMin := 15
		if val := os.Getenv("VIDEO_SWEEP_INTERVAL_MINUTES"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalMin = parsed
			}
		}

		for {
			now := time.Now()
			sweepReminders(db, cfg, notify, now)
			sweepFinalWarnings(db, notify, now)
			time.Sleep(time.Duration(intervalMin) * time.Minute)
		}
	}()
}

func sweepReminders(db *gorm.DB, cfg configs.ScheduleConfig, notify notifications.Dispatcher, now time.Time) {
	cutoff := now.Add(time.Duration(cfg.ReminderWindowMin) * time.Minute)

	var classes []model.ClassModel
	if err := db.
		Where("class_status = ?", constants.ClassStatusCompleted).
		Where("class_video_uploaded_at IS NULL").
		Where("class_video_reminder_sent = false").
		Where("class_video_deadline IS NOT NULL AND class_video_deadline <= ?", cutoff).
		Limit(100).
		Find(&classes).Error; err != nil {
		log.Printf("[VIDEO SWEEP ERROR] Gagal ambil kelas untuk reminder: %v", err)
		return
	}

	for i := range classes {
		cls := &classes[i]
		if err := db.Model(cls).
			Update("class_video_reminder_sent", true).Error; err != nil {
			log.Printf("[VIDEO SWEEP ERROR] Gagal set reminder kelas %s: %v", cls.ClassID, err)
			continue
		}
		notifications.FireAndForget(notify, notifications.EventVideoReminder, cls.ClassID, []uuid.UUID{cls.ClassTutorID})
	}
	if len(classes) > 0 {
		log.Printf("[VIDEO SWEEP] %d reminder upload video dikirim", len(classes))
	}
}

func sweepFinalWarnings(db *gorm.DB, notify notifications.Dispatcher, now time.Time) {
	var classes []model.ClassModel
	if err := db.
		Where("class_status = ?", constants.ClassStatusCompleted).
		Where("class_video_uploaded_at IS NULL").
		Where("class_video_final_warning_sent = false").
		Where("class_video_deadline IS NOT NULL AND class_video_deadline < ?", now).
		Limit(100).
		Find(&classes).Error; err != nil {
		log.Printf("[VIDEO SWEEP ERROR] Gagal ambil kelas overdue: %v", err)
		return
	}

	for i := range classes {
		cls := &classes[i]
		if err := db.Model(cls).
			Update("class_video_final_warning_sent", true).Error; err != nil {
			log.Printf("[VIDEO SWEEP ERROR] Gagal set final warning kelas %s: %v", cls.ClassID, err)
			continue
		}
		notifications.FireAndForget(notify, notifications.EventVideoFinalWarning, cls.ClassID, []uuid.UUID{cls.ClassTutorID})
	}
	if len(classes) > 0 {
		log.Printf("[VIDEO SWEEP] %d final warning video dikirim", len(classes))
	}
}
