package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendingTerms_DefaultsWithoutConfig(t *testing.T) {
	svc, err := NewTrendingTermsService("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiologie", "Pédiatrie", "Yaoundé"}, svc.Terms())
}

func TestTrendingTerms_LoadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trending.json")
	require.NoError(t, os.WriteFile(path, []byte(`["Dentiste", " Ophtalmologie ", ""]`), 0o644))

	svc, err := NewTrendingTermsService(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dentiste", "Ophtalmologie"}, svc.Terms())
}

func TestTrendingTerms_BadConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trending.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0o644))

	_, err := NewTrendingTermsService(path)
	assert.Error(t, err)
}

func TestTrendingTerms_TermsReturnsCopy(t *testing.T) {
	svc, err := NewTrendingTermsService("")
	require.NoError(t, err)

	terms := svc.Terms()
	terms[0] = "mutated"
	assert.Equal(t, "Cardiologie", svc.Terms()[0])
}
