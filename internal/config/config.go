package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	IntervalHours int    `yaml:"interval_hours"`
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Backup BackupConfig `yaml:"backup"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Auth struct {
		Password string `yaml:"password"`
	} `yaml:"auth"`

	Ledger struct {
		Source string `yaml:"source"`
	} `yaml:"ledger"`

	Schedule struct {
		OpenTime    string `yaml:"open_time"`
		CloseTime   string `yaml:"close_time"`
		SlotMinutes int    `yaml:"slot_minutes"`
	} `yaml:"schedule"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Notify struct {
		Enabled     bool   `yaml:"enabled"`
		BotToken    string `yaml:"bot_token"`
		ChatID      int64  `yaml:"chat_id"`
		DailyHour   int    `yaml:"daily_hour"`
		DailyMinute int    `yaml:"daily_minute"`
		Timezone    string `yaml:"timezone"`
	} `yaml:"notify"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/salonmate.db"
	}
	if cfg.Schedule.OpenTime == "" {
		cfg.Schedule.OpenTime = "10:10"
	}
	if cfg.Schedule.CloseTime == "" {
		cfg.Schedule.CloseTime = "19:30"
	}
	if cfg.Schedule.SlotMinutes <= 0 {
		cfg.Schedule.SlotMinutes = 10
	}
	if cfg.Notify.Timezone == "" {
		cfg.Notify.Timezone = "Asia/Seoul"
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// TimeSlots enumerates the bookable HH:MM values from opening to
// closing time inclusive, on the configured step.
func (c *Config) TimeSlots() []string {
	openMin, ok1 := parseMinutes(c.Schedule.OpenTime)
	closeMin, ok2 := parseMinutes(c.Schedule.CloseTime)
	if !ok1 || !ok2 || closeMin < openMin {
		return nil
	}

	slots := make([]string, 0, (closeMin-openMin)/c.Schedule.SlotMinutes+1)
	for m := openMin; m <= closeMin; m += c.Schedule.SlotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

func parseMinutes(hhmm string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
