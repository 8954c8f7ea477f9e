package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() Config {
		cfg := DefaultConfig()
		cfg.SpreadsheetID = "sheet-id"
		return cfg
	}

	t.Run("service account", func(t *testing.T) {
		cfg := base()
		cfg.ServiceAccountPath = "/etc/duebook/sa.json"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("oauth with refresh token", func(t *testing.T) {
		cfg := base()
		cfg.ClientID = "id"
		cfg.ClientSecret = "secret"
		cfg.RefreshToken = "refresh"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("oauth with token file", func(t *testing.T) {
		cfg := base()
		cfg.ClientID = "id"
		cfg.ClientSecret = "secret"
		cfg.TokenFile = "/tmp/token.json"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing spreadsheet id", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ServiceAccountPath = "/etc/duebook/sa.json"
		assert.ErrorContains(t, cfg.Validate(), "spreadsheet id")
	})

	t.Run("no auth at all", func(t *testing.T) {
		cfg := base()
		assert.ErrorContains(t, cfg.Validate(), "authentication")
	})

	t.Run("oauth without token source", func(t *testing.T) {
		cfg := base()
		cfg.ClientID = "id"
		cfg.ClientSecret = "secret"
		assert.ErrorContains(t, cfg.Validate(), "authentication")
	})

	t.Run("both auth methods", func(t *testing.T) {
		cfg := base()
		cfg.ServiceAccountPath = "/etc/duebook/sa.json"
		cfg.ClientID = "id"
		cfg.ClientSecret = "secret"
		cfg.RefreshToken = "refresh"
		assert.ErrorContains(t, cfg.Validate(), "multiple authentication")
	})
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "env-sheet")
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-client")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "env-secret")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, "env-sheet", cfg.SpreadsheetID)
	assert.Equal(t, "env-client", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
	assert.True(t, cfg.Configured())
}

func TestConfig_Configured(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Configured())

	cfg.SpreadsheetID = "sheet-id"
	assert.True(t, cfg.Configured())
}
