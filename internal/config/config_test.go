package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ple-import/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5000, cfg.Import.BatchSize)
	assert.Equal(t, 3, cfg.Import.MaxRetries)
	assert.Equal(t, 50, cfg.Intake.MinEmployees)

	for _, form := range model.Forms {
		assert.NotEmpty(t, cfg.Import.ExtractURL(form), "default url for %s", form)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PLE_LOG_LEVEL", "debug")
	t.Setenv("PLE_INTAKE_MIN_EMPLOYEES", "75")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 75, cfg.Intake.MinEmployees)
}

func TestImportConfig_ExtractURL_Unknown(t *testing.T) {
	cfg := ImportConfig{ExtractURLs: map[string]string{"form5500": "https://example.com/x.zip"}}

	assert.Equal(t, "https://example.com/x.zip", cfg.ExtractURL(model.Form5500))
	assert.Empty(t, cfg.ExtractURL(model.ScheduleA))
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "nonsense"})
	assert.Error(t, err)
}
