package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS      CORSConfig
	Log       LogConfig
	Timetable TimetableConfig
	Uploads   UploadsConfig
	Exports   ExportsConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// TimetableConfig carries the engine knobs. The lab-room list and the fixed
// lab time row reproduce a quirk of the scheduling office's legacy workbooks
// and are deliberately configuration rather than constants.
type TimetableConfig struct {
	LabRooms        []string
	LabTimeRow      int
	HeaderRow       int
	MaxCombinations int
	StoreTTL        time.Duration
}

// UploadsConfig controls raw spreadsheet retention.
type UploadsConfig struct {
	StorageDir       string
	MaxFileSizeBytes int64
	CleanupInterval  time.Duration
	RetentionTTL     time.Duration
}

// ExportsConfig gates schedule export rendering.
type ExportsConfig struct {
	Enabled bool
}

// Rooms the scheduling office reserves for Thursday lab sessions in the
// legacy workbook layout. Overridable via TIMETABLE_LAB_ROOMS.
var defaultLabRooms = []string{
	"C-Margala 1", "C-Margala 3", "C-Margala 4", "C-Rawal 1",
	"Rawal 3 (B-232)", "C-Rawal 4", "C-GPU Lab", "A-Karakoram 1",
	"A-Karakoram 2", "A-Karakoram 3", "A-Mehran 1", "A-Mehran 2",
	"B-Digital", "A-CALL-1", "A-CALL-2", "A-CALL-3",
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	labRooms := splitAndTrim(v.GetString("TIMETABLE_LAB_ROOMS"))
	if len(labRooms) == 0 {
		labRooms = defaultLabRooms
	}
	cfg.Timetable = TimetableConfig{
		LabRooms:        labRooms,
		LabTimeRow:      v.GetInt("TIMETABLE_LAB_TIME_ROW"),
		HeaderRow:       v.GetInt("TIMETABLE_HEADER_ROW"),
		MaxCombinations: v.GetInt("TIMETABLE_MAX_COMBINATIONS"),
		StoreTTL:        parseDuration(v.GetString("TIMETABLE_STORE_TTL"), 24*time.Hour),
	}

	maxUploadSize := v.GetInt64("UPLOADS_MAX_FILE_SIZE")
	if maxUploadSize <= 0 {
		maxUploadSize = 10 * 1024 * 1024
	}
	// The cleanup ticker needs a positive period; a zero or negative setting
	// falls back rather than panicking at startup.
	cleanupInterval := parseDuration(v.GetString("UPLOADS_CLEANUP_INTERVAL"), time.Hour)
	if cleanupInterval <= 0 {
		cleanupInterval = time.Hour
	}
	cfg.Uploads = UploadsConfig{
		StorageDir:       v.GetString("UPLOADS_STORAGE_DIR"),
		MaxFileSizeBytes: maxUploadSize,
		CleanupInterval:  cleanupInterval,
		RetentionTTL:     parseDuration(v.GetString("UPLOADS_RETENTION_TTL"), 48*time.Hour),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TIMETABLE_LAB_ROOMS", "")
	v.SetDefault("TIMETABLE_LAB_TIME_ROW", 38)
	v.SetDefault("TIMETABLE_HEADER_ROW", 4)
	v.SetDefault("TIMETABLE_MAX_COMBINATIONS", 100)
	v.SetDefault("TIMETABLE_STORE_TTL", "24h")

	v.SetDefault("UPLOADS_STORAGE_DIR", "./uploads/timetables")
	v.SetDefault("UPLOADS_MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("UPLOADS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("UPLOADS_RETENTION_TTL", "48h")

	v.SetDefault("ENABLE_EXPORTS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
