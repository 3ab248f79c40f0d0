package messages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog_T(t *testing.T) {
	c, err := NewCatalog("en")
	require.NoError(t, err)
	require.Equal(t, "en", c.Language())

	require.Equal(t, "An error occurred while processing your request.", c.T(ErrUserErrorProcessing))
	require.Equal(t, "You already have an active order ticket: <#1>", c.T("ticket_exists", "type", "order", "channel", "<#1>"))
	require.Equal(t, "{nope}", c.T("nope"))

	// An odd trailing value is ignored.
	require.Equal(t, "Template {name} saved.", c.T("template_saved", "name"))
}

func TestCatalog_Indonesian(t *testing.T) {
	c, err := NewCatalog("id")
	require.NoError(t, err)
	require.Equal(t, "Perintah ini harus dijalankan di dalam saluran tiket.", c.T("not_ticket_channel"))
}

func TestCatalog_LanguagesShareKeys(t *testing.T) {
	en, err := NewCatalog("en")
	require.NoError(t, err)
	id, err := NewCatalog("id")
	require.NoError(t, err)

	require.Equal(t, len(en.messages), len(id.messages))
	for k := range en.messages {
		require.Contains(t, id.messages, k)
	}
}

func TestNewCatalog_Errors(t *testing.T) {
	_, err := NewCatalog("fr")
	require.Error(t, err)

	_, err = parse([]byte("id:\n  a: b\n"), "id")
	require.Error(t, err)

	_, err = parse([]byte(":::"), "en")
	require.Error(t, err)

	c, err := NewCatalog("")
	require.NoError(t, err)
	require.Equal(t, DefaultLanguage, c.Language())
}

func TestCatalog_FallsBackPerKey(t *testing.T) {
	c, err := parse([]byte("en:\n  a: hello\n  b: world\nid:\n  a: halo\n"), "id")
	require.NoError(t, err)
	require.Equal(t, "halo", c.T("a"))
	require.Equal(t, "world", c.T("b"))
}
