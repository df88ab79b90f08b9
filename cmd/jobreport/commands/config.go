package commands

import (
	"autorecruiter/internal/mailer"
	"autorecruiter/internal/wordcloud"
	"autorecruiter/pkg/configutil"
	"errors"
	"log/slog"
	"os"
)

const smtpPasswordEnv = "JOBREPORT_SMTP_PASSWORD"

type IndeedConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	DetailConcurrency int     `json:"detail_concurrency"`
	DetailCacheMins   int     `json:"detail_cache_minutes"`
	HttpDumpDir       string  `json:"http_dump_dir"`
}

type ScheduleConfig struct {
	Cron    string   `json:"cron"`
	EmailTo []string `json:"email_to"`
}

type Config struct {
	Indeed    IndeedConfig      `json:"indeed"`
	Smtp      mailer.SmtpConfig `json:"smtp"`
	WordCloud wordcloud.Options `json:"word_cloud"`
	Schedule  ScheduleConfig    `json:"schedule"`
}

func defaultConfig() Config {
	return Config{
		Indeed: IndeedConfig{
			RequestsPerSecond: 2,
			TimeoutSeconds:    30,
			DetailConcurrency: 4,
			DetailCacheMins:   60,
		},
		Smtp: mailer.SmtpConfig{
			Server: "smtp.gmail.com",
			Port:   587,
		},
		Schedule: ScheduleConfig{
			Cron: "0 7 * * *",
		},
	}
}

// loadConfig reads the config file over the defaults, keys the file leaves out
// keep their default. The smtp password may come from the environment (or a
// .env file) instead of the file.
func loadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfigOnto(path, defaultConfig())
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", path)
		cfg = defaultConfig()
	} else if err != nil {
		return Config{}, err
	}

	password := os.Getenv(smtpPasswordEnv)
	if password != "" {
		cfg.Smtp.Password = password
	}
	return cfg, nil
}
