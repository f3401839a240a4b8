package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

// =======================
// ATURAN PENALTI (terpusat, jangan hardcode di service)
// =======================

// PenaltyConfig menampung semua tarif penalti & grace period.
// Semua nilai bisa dioverride lewat ENV tanpa menyentuh logic.
type PenaltyConfig struct {
	GraceMinutes        int     // toleransi keterlambatan (menit)
	LateRatePerMinute   float64 // tarif per menit setelah grace
	EarlyRatePerMinute  float64 // tarif per menit kekurangan durasi
	EarlyThresholdRatio float64 // batas minimal durasi aktual (0.9 = 90%)
	AbsenceFlatPenalty  float64 // penalti flat tutor absen
}

func LoadPenaltyConfig() PenaltyConfig {
	return PenaltyConfig{
		GraceMinutes:        getEnvInt("PENALTY_GRACE_MINUTES", 2),
		LateRatePerMinute:   getEnvFloat("PENALTY_LATE_RATE", 10),
		EarlyRatePerMinute:  getEnvFloat("PENALTY_EARLY_RATE", 5),
		EarlyThresholdRatio: getEnvFloat("PENALTY_EARLY_THRESHOLD", 0.9),
		AbsenceFlatPenalty:  getEnvFloat("PENALTY_ABSENCE_FLAT", 500),
	}
}

// ScheduleConfig menampung batasan penjadwalan kelas.
type ScheduleConfig struct {
	MinDurationMinutes  int // durasi kelas minimal
	MaxDurationMinutes  int // durasi kelas maksimal
	EarliestStartHour   int // jam mulai paling pagi (06:00)
	LatestStartHour     int // jam mulai paling malam (23:00)
	StartWindowEarlyMin int // kelas boleh dimulai X menit sebelum jadwal
	EditCutoffMinutes   int // kelas tidak bisa diedit < X menit sebelum mulai
	VideoDeadlineHours  int // deadline upload video setelah kelas mulai
	ReminderWindowMin   int // reminder dikirim bila sisa waktu <= X menit
}

func LoadScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		MinDurationMinutes:  getEnvInt("CLASS_MIN_DURATION", 15),
		MaxDurationMinutes:  getEnvInt("CLASS_MAX_DURATION", 480),
		EarliestStartHour:   getEnvInt("CLASS_EARLIEST_HOUR", 6),
		LatestStartHour:     getEnvInt("CLASS_LATEST_HOUR", 23),
		StartWindowEarlyMin: getEnvInt("CLASS_START_WINDOW_EARLY", 15),
		EditCutoffMinutes:   getEnvInt("CLASS_EDIT_CUTOFF", 60),
		VideoDeadlineHours:  getEnvInt("VIDEO_DEADLINE_HOURS", 24),
		ReminderWindowMin:   getEnvInt("VIDEO_REMINDER_WINDOW", 30),
	}
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Info,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	} else {
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
