package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: `+filepath.Join(t.TempDir(), "test.db")+`
auth:
  password: secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "10:10", cfg.Schedule.OpenTime)
	assert.Equal(t, "19:30", cfg.Schedule.CloseTime)
	assert.Equal(t, 10, cfg.Schedule.SlotMinutes)
	assert.Equal(t, "Asia/Seoul", cfg.Notify.Timezone)
	assert.Equal(t, "secret", cfg.Auth.Password)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_SALON_PW", "frompenv")
	path := writeConfig(t, `
auth:
  password: ${TEST_SALON_PW}
database:
  path: `+filepath.Join(t.TempDir(), "test.db")+`
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "frompenv", cfg.Auth.Password)
}

func TestTimeSlots(t *testing.T) {
	var cfg Config
	cfg.Schedule.OpenTime = "10:10"
	cfg.Schedule.CloseTime = "10:40"
	cfg.Schedule.SlotMinutes = 10

	slots := cfg.TimeSlots()
	assert.Equal(t, []string{"10:10", "10:20", "10:30", "10:40"}, slots)

	// The closing time is included only when it lands on the step.
	cfg.Schedule.CloseTime = "10:35"
	slots = cfg.TimeSlots()
	assert.Equal(t, []string{"10:10", "10:20", "10:30"}, slots)

	cfg.Schedule.CloseTime = "bogus"
	assert.Nil(t, cfg.TimeSlots())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
