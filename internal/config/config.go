// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// JWTConfig holds admin token settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// AdminConfig holds the dashboard admin credentials. The password is a
// bcrypt hash, never plaintext.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// MailConfig holds transactional email settings.
type MailConfig struct {
	ResendAPIKey string
	FromAddress  string
	ReplyTo      string
	LabInbox     string
}

// IntakeConfig holds the booking policy knobs and catalogs. Open
// weekdays, selection cardinalities, and both catalogs come from the
// environment; nothing is hard-coded in the validation path.
type IntakeConfig struct {
	OpenWeekdays                 []string
	MinDates                     int
	MaxDates                     int
	MinTimeSlots                 int
	MaxTimeSlots                 int
	MinEquipment                 int
	EquipmentOptionalForTraining bool
	TimeSlots                    []string
	Equipment                    []string
}

// ServiceConfig holds all configuration for the booking service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	CORSOrigins []string
	DB          DatabaseConfig
	JWT         JWTConfig
	Admin       AdminConfig
	Mail        MailConfig
	Intake      IntakeConfig
}

var defaultTimeSlots = []string{
	"Tuesday 11 AM - 1 PM",
	"Tuesday 2 PM - 4 PM",
	"Wednesday 11 AM - 1 PM",
	"Thursday 11 AM - 1 PM",
	"Thursday 2 PM - 4 PM",
	"Friday 11 AM - 1 PM",
	"Friday 2 PM - 4 PM",
}

var defaultEquipment = []string{
	"Cricut Maker",
	"Laser Cutter",
	"3D Printers",
	"Embroidery Machine",
	"Sewing Machines",
	"Brother Serger",
	"Direct-to-Film (DTF) Printer",
	"Media Room (Green Screen)",
	"Recording Studio (Podcast)",
}

// Load reads configuration from environment variables with the MAKERLAB
// prefix (e.g. MAKERLAB_DB_HOST).
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("MAKERLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", ":8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("cors_origins", "*")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "makerlab")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", "12h")

	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password_hash", "")

	v.SetDefault("mail.resend_api_key", "")
	v.SetDefault("mail.from_address", "Maker Lab <onboarding@resend.dev>")
	v.SetDefault("mail.reply_to", "Maker@rockfordpubliclibrary.org")
	v.SetDefault("mail.lab_inbox", "Maker@rockfordpubliclibrary.org")

	v.SetDefault("intake.open_weekdays", "Tuesday,Wednesday,Thursday,Friday")
	v.SetDefault("intake.min_dates", 1)
	v.SetDefault("intake.max_dates", 3)
	v.SetDefault("intake.min_time_slots", 1)
	v.SetDefault("intake.max_time_slots", 3)
	v.SetDefault("intake.min_equipment", 1)
	v.SetDefault("intake.equipment_optional_for_training", false)
	v.SetDefault("intake.time_slots", strings.Join(defaultTimeSlots, ","))
	v.SetDefault("intake.equipment", strings.Join(defaultEquipment, ","))

	port := v.GetString("port")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	ttl, err := time.ParseDuration(v.GetString("jwt.ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	return &ServiceConfig{
		Port:        port,
		AppEnv:      v.GetString("app_env"),
		CORSOrigins: splitList(v.GetString("cors_origins")),
		DB: DatabaseConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			TTL:    ttl,
		},
		Admin: AdminConfig{
			Email:        v.GetString("admin.email"),
			PasswordHash: v.GetString("admin.password_hash"),
		},
		Mail: MailConfig{
			ResendAPIKey: v.GetString("mail.resend_api_key"),
			FromAddress:  v.GetString("mail.from_address"),
			ReplyTo:      v.GetString("mail.reply_to"),
			LabInbox:     v.GetString("mail.lab_inbox"),
		},
		Intake: IntakeConfig{
			OpenWeekdays:                 splitList(v.GetString("intake.open_weekdays")),
			MinDates:                     v.GetInt("intake.min_dates"),
			MaxDates:                     v.GetInt("intake.max_dates"),
			MinTimeSlots:                 v.GetInt("intake.min_time_slots"),
			MaxTimeSlots:                 v.GetInt("intake.max_time_slots"),
			MinEquipment:                 v.GetInt("intake.min_equipment"),
			EquipmentOptionalForTraining: v.GetBool("intake.equipment_optional_for_training"),
			TimeSlots:                    splitList(v.GetString("intake.time_slots")),
			Equipment:                    splitList(v.GetString("intake.equipment")),
		},
	}, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
