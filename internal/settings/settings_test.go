package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash-srivastava19/docstudio/internal/kv"
)

func TestStore_APIRoundTrip(t *testing.T) {
	s := NewStore(kv.NewMemory())
	_, ok := s.API()
	assert.False(t, ok)

	in := APISettings{APIEndpoint: "https://api.example.com/v1", APIKey: "sk-123", Model: "m", Temperature: "0.2", MaxTokens: "50"}
	require.NoError(t, s.SaveAPI(in))
	out, ok := s.API()
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestStore_APIMalformed(t *testing.T) {
	m := kv.NewMemory()
	_ = m.SetItem(APIKey, "{broken")
	_, ok := NewStore(m).API()
	assert.False(t, ok)
}

func TestStore_StoredJSONKeys(t *testing.T) {
	m := kv.NewMemory()
	require.NoError(t, NewStore(m).SaveAPI(APISettings{APIEndpoint: "e", APIKey: "k", Model: "m"}))
	raw, _ := m.GetItem(APIKey)
	assert.JSONEq(t, `{"apiEndpoint":"e","apiKey":"k","model":"m"}`, raw)
}

func TestSuggestionsToggle(t *testing.T) {
	m := kv.NewMemory()
	s := NewStore(m)
	assert.True(t, s.SuggestionsEnabled(), "absent flag means enabled")

	require.NoError(t, s.SetSuggestionsEnabled(false))
	assert.False(t, s.SuggestionsEnabled())
	raw, _ := m.GetItem(SuggestionsKey)
	assert.Equal(t, "false", raw)

	require.NoError(t, s.SetSuggestionsEnabled(true))
	assert.True(t, s.SuggestionsEnabled())
}

func TestAPISettings_Numbers(t *testing.T) {
	tests := []struct {
		temp, max string
		wantTemp  float64
		wantMax   int
	}{
		{"", "", DefaultTemperature, DefaultMaxTokens},
		{"0.3", "250", 0.3, 250},
		{"hot", "-4", DefaultTemperature, DefaultMaxTokens},
	}
	for _, tt := range tests {
		a := APISettings{Temperature: tt.temp, MaxTokens: tt.max}
		assert.Equal(t, tt.wantTemp, a.TemperatureOr(DefaultTemperature))
		assert.Equal(t, tt.wantMax, a.MaxTokensOr(DefaultMaxTokens))
	}
}

func TestAPISettings_Validate(t *testing.T) {
	assert.ErrorIs(t, APISettings{APIKey: "k", Model: "m"}.Validate(), ErrIncomplete)
	assert.Error(t, APISettings{APIEndpoint: "e", APIKey: "k", Model: "m", Temperature: "x"}.Validate())
	assert.NoError(t, APISettings{APIEndpoint: "e", APIKey: "k", Model: "m", MaxTokens: "10"}.Validate())
}

func TestAPISettings_Masked(t *testing.T) {
	assert.Equal(t, "sk-a…wxyz", APISettings{APIKey: "sk-abcdefwxyz"}.Masked().APIKey)
	assert.Equal(t, "…", APISettings{APIKey: "short"}.Masked().APIKey)
	assert.Equal(t, "", APISettings{}.Masked().APIKey)
}

func TestStore_Reset(t *testing.T) {
	s := NewStore(kv.NewMemory())
	require.NoError(t, s.SaveAPI(APISettings{APIEndpoint: "e", APIKey: "k", Model: "m"}))
	require.NoError(t, s.SetSuggestionsEnabled(false))

	require.NoError(t, s.Reset())
	_, ok := s.API()
	assert.False(t, ok)
	assert.True(t, s.SuggestionsEnabled())
	assert.NoError(t, s.Reset(), "reset of an empty store is not an error")
}
