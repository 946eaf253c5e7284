package sanitizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_WholeWordOnly(t *testing.T) {
	s, err := New(map[string]string{"cock": "rooster"})
	require.NoError(t, err)

	got := s.Apply("a peacock and a cock")
	assert.Equal(t, "a peacock and a rooster", got)
}

func TestApply_CaseInsensitive(t *testing.T) {
	s, err := New(map[string]string{"cock": "rooster"})
	require.NoError(t, err)

	assert.Equal(t, "rooster at dawn", s.Apply("Cock at dawn"))
	assert.Equal(t, "the rooster crowed", s.Apply("the COCK crowed"))
}

func TestApply_Idempotent(t *testing.T) {
	s, err := New(map[string]string{"cock": "rooster"})
	require.NoError(t, err)

	once := s.Apply("a peacock and a cock")
	twice := s.Apply(once)
	assert.Equal(t, once, twice)
}

func TestApply_MultipleEntries(t *testing.T) {
	s, err := New(map[string]string{
		"cock": "rooster",
		"ass":  "donkey",
	})
	require.NoError(t, err)

	got := s.Apply("the cock and the ass passed the assembly")
	assert.Equal(t, "the rooster and the donkey passed the assembly", got)
}

func TestNew_RejectsBannedSubstitute(t *testing.T) {
	_, err := New(map[string]string{
		"cock":    "rooster",
		"rooster": "bird",
	})
	require.Error(t, err)
}

func TestApply_NoRules(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, "unchanged text", s.Apply("unchanged text"))
}

func TestLoadDenylist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "denylist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("damn: darn\n"), 0o644))

	merged, err := LoadDenylist(path, map[string]string{"cock": "rooster"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"cock": "rooster", "damn": "darn"}, merged)
}

func TestLoadDenylist_MissingFile(t *testing.T) {
	base := map[string]string{"cock": "rooster"}
	merged, err := LoadDenylist(filepath.Join(t.TempDir(), "absent.yaml"), base)
	require.NoError(t, err)
	assert.Equal(t, base, merged)
}
