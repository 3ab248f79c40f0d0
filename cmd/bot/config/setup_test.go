package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestParse_Defaults(t *testing.T) {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	c, err := Parse(l, env(map[string]string{
		EnvBotToken: "token",
		EnvGuildId:  "guild",
		EnvOwnerIds: "1, 2,,3",
	}))
	require.NoError(t, err)

	require.Equal(t, []string{"1", "2", "3"}, c.OwnerIds)
	require.Equal(t, "Admin", c.AdminRole)
	require.Equal(t, "Support", c.SupportRole)
	require.Equal(t, "data", c.DataDir)
	require.Equal(t, 5*time.Minute, c.AutosaveInterval)
	require.Equal(t, "en", c.Language)
	require.Equal(t, "8080", c.MonitoringPort)
	require.Empty(t, c.MongoUri)
	require.Equal(t, 30*time.Second, c.ConfirmTimeout)

	tc := c.Tickets()
	require.Equal(t, "Active Tickets", tc.ActiveCategory)
	require.Equal(t, "Archived Tickets", tc.ArchiveCategory)
	require.Equal(t, 5*time.Second, tc.DeleteDelay)

	ec := c.Embeds()
	require.Equal(t, 0x00AE86, ec.DefaultColor)
	require.Equal(t, 256, ec.Limits.Title)

	pc := c.Permissions()
	require.Equal(t, c.OwnerIds, pc.OwnerIDs)
	require.Equal(t, "Buyer", pc.BuyerRole)
}

func TestParse_Overrides(t *testing.T) {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	c, err := Parse(l, env(map[string]string{
		EnvBotToken:         "token",
		EnvGuildId:          "guild",
		EnvAdminRole:        "Boss",
		EnvDataDir:          "/var/lib/bot",
		EnvAutosaveInterval: "90s",
		EnvLanguage:         "ID",
		EnvMongoUri:         "mongodb://localhost:27017",
		EnvMonitoringPort:   "9090",
	}))
	require.NoError(t, err)

	require.Equal(t, "Boss", c.AdminRole)
	require.Equal(t, "/var/lib/bot", c.DataDir)
	require.Equal(t, 90*time.Second, c.AutosaveInterval)
	require.Equal(t, "id", c.Language)
	require.Equal(t, "mongodb://localhost:27017", c.MongoUri)
	require.Equal(t, "9090", c.MonitoringPort)
}

func TestParse_Errors(t *testing.T) {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing token", map[string]string{EnvGuildId: "guild"}, EnvBotToken},
		{"missing guild", map[string]string{EnvBotToken: "token"}, EnvGuildId},
		{"missing both", map[string]string{}, EnvBotToken + ", " + EnvGuildId},
		{"bad autosave", map[string]string{EnvBotToken: "t", EnvGuildId: "g", EnvAutosaveInterval: "soon"}, EnvAutosaveInterval},
		{"negative autosave", map[string]string{EnvBotToken: "t", EnvGuildId: "g", EnvAutosaveInterval: "-1m"}, EnvAutosaveInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(l, env(tt.env))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DISCORD_TOKEN=from-file\nGUILD_ID=g1\n"), 0o600))

	// godotenv never overrides variables that are already set.
	t.Setenv(EnvGuildId, "g2")
	t.Setenv(EnvBotToken, "")
	require.NoError(t, os.Unsetenv(EnvBotToken))

	c, err := Load(l, path)
	require.NoError(t, err)
	require.Equal(t, "from-file", c.BotToken)
	require.Equal(t, "g2", c.GuildId)
}

func TestLoad_MissingFileUsesEnvironment(t *testing.T) {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	t.Setenv(EnvBotToken, "token")
	t.Setenv(EnvGuildId, "guild")

	c, err := Load(l, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "token", c.BotToken)
}
