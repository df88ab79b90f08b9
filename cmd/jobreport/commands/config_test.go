package commands

import (
	"autorecruiter/internal/jobs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(smtpPasswordEnv, "")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	err := os.WriteFile(path, []byte(`{
		indeed: { detail_concurrency: 8 },
		smtp: { email_address: "reports@example.com", password: "from-file" },
		schedule: { email_to: ["me@example.com"] },
	}`), 0644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{
		indeed: { requests_per_second: 0.5 },
	}`), 0644)
	require.NoError(t, err)

	t.Setenv(smtpPasswordEnv, "from-env")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Indeed.DetailConcurrency)
	require.Equal(t, 0.5, cfg.Indeed.RequestsPerSecond)
	require.Equal(t, 30, cfg.Indeed.TimeoutSeconds)
	require.Equal(t, "smtp.gmail.com", cfg.Smtp.Server)
	require.Equal(t, "reports@example.com", cfg.Smtp.EmailAddress)
	require.Equal(t, "from-env", cfg.Smtp.Password)
	require.Equal(t, []string{"me@example.com"}, cfg.Schedule.EmailTo)
	require.Equal(t, "0 7 * * *", cfg.Schedule.Cron)
}

func TestGenerateOptionsCriteria(t *testing.T) {
	opts := generateOptions{ZipCode: "08096", Radius: 15, JobType: "parttime", SalaryMin: "$40,000"}
	criteria, err := opts.criteria()
	require.NoError(t, err)
	require.Equal(t, jobs.Criteria{ZipCode: "08096", Radius: 15, JobType: jobs.PART_TIME, SalaryMin: "$40,000"}, criteria)

	opts.JobType = "partime"
	_, err = opts.criteria()
	require.Error(t, err)
}

func TestLoadConfigExplicitZero(t *testing.T) {
	t.Setenv(smtpPasswordEnv, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	err := os.WriteFile(path, []byte(`{
		indeed: { detail_cache_minutes: 0 },
	}`), 0644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{
		smtp: { server: "" },
	}`), 0644)
	require.NoError(t, err)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Indeed.DetailCacheMins)
	require.Equal(t, "", cfg.Smtp.Server)

	expected := defaultConfig()
	expected.Indeed.DetailCacheMins = 0
	expected.Smtp.Server = ""
	require.Equal(t, expected, cfg)
}

func TestWithScheduleFlags(t *testing.T) {
	configured := ScheduleConfig{Cron: "0 7 * * *", EmailTo: []string{"me@example.com"}}

	unchanged, err := withScheduleFlags(configured, "", nil)
	require.NoError(t, err)
	require.Equal(t, configured, unchanged)

	overridden, err := withScheduleFlags(configured, "@every 1h", []string{"team@example.com"})
	require.NoError(t, err)
	require.Equal(t, ScheduleConfig{Cron: "@every 1h", EmailTo: []string{"team@example.com"}}, overridden)
}
