package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "tickets.db", cfg.DatabasePath)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "en", cfg.Locale)
	assert.False(t, cfg.EnableCORS)

	require.Len(t, cfg.Attendee.DefaultFields, 3)
	assert.Equal(t, "FirstName", cfg.Attendee.DefaultFields[0].Name)
	assert.Equal(t, "UserTextField", cfg.Attendee.DefaultFields[0].Type)
	assert.Equal(t, "Email", cfg.Attendee.DefaultFields[2].Name)
	assert.Equal(t, "UserEmailField", cfg.Attendee.DefaultFields[2].Type)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("LOCALE", "nl")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ENABLE_CORS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "nl", cfg.Locale)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.True(t, cfg.EnableCORS)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `attendee:
  default_fields:
    - name: FirstName
      type: UserTextField
    - name: Birthday
      properties:
        FieldType: UserDateField
        MaxDate: "2010-12-31"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tickets.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Len(t, cfg.Attendee.DefaultFields, 2)
	assert.Equal(t, "FirstName", cfg.Attendee.DefaultFields[0].Name)

	birthday := cfg.Attendee.DefaultFields[1]
	assert.Equal(t, "Birthday", birthday.Name)
	assert.Empty(t, birthday.Type)
	assert.Len(t, birthday.Properties, 2)
}
