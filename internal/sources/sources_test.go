package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEnforcesBijection(t *testing.T) {
	_, err := New([]Entry{
		{ID: "reuters", Name: "Reuters"},
		{ID: "reuters", Name: "Reuters Again"},
	})
	require.Error(t, err)

	_, err = New([]Entry{
		{ID: "reuters", Name: "Reuters"},
		{ID: "reuters-uk", Name: "Reuters"},
	})
	require.Error(t, err)

	_, err = New([]Entry{{ID: "", Name: "Reuters"}})
	require.Error(t, err)
}

func TestDisplayNameFallback(t *testing.T) {
	m := Default()

	require.Equal(t, "WSJ", m.DisplayName("the-wall-street-journal", "The Wall Street Journal"))
	require.Equal(t, "Some Blog", m.DisplayName("some-blog", "Some Blog"))
	require.Equal(t, "Unknown", m.DisplayName("some-blog", ""))
}

func TestIDRoundTrip(t *testing.T) {
	m := Default()

	id, ok := m.ID("Reuters")
	require.True(t, ok)
	require.Equal(t, "reuters", id)

	_, ok = m.ID("Nonexistent Outlet")
	require.False(t, ok)
}

func TestDefaultSelectionExcludesOptIn(t *testing.T) {
	m := Default()
	selection := m.DefaultSelection()

	require.NotContains(t, selection, "wired")
	require.NotContains(t, selection, "hacker-news")
	require.NotContains(t, selection, "ars-technica")
	require.Contains(t, selection, "reuters")
	require.Len(t, selection, len(m.IDs())-3)
}

func TestNeutralIDs(t *testing.T) {
	m := Default()
	require.Equal(t, []string{"associated-press", "axios", "bloomberg", "politico", "reuters"}, m.NeutralIDs())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - id: example-news
    name: Example News
    neutral: true
  - id: other-news
    name: Other News
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Example News", m.DisplayName("example-news", ""))
	require.Equal(t, []string{"example-news"}, m.NeutralIDs())
}
