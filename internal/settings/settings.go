// Package settings holds the user's chat-completion endpoint settings and the
// AI-suggestion toggle, both kept in the local store.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/yash-srivastava19/docstudio/internal/kv"
)

const (
	APIKey         = "APISettings"
	SuggestionsKey = "aiSuggestionsEnabled"
)

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 100
)

// APISettings mirrors the JSON the settings panel writes. Temperature and
// MaxTokens are kept as strings because that is what form fields produce;
// use the accessor methods to read them.
type APISettings struct {
	APIEndpoint string `json:"apiEndpoint"`
	APIKey      string `json:"apiKey"`
	Model       string `json:"model"`
	Temperature string `json:"temperature,omitempty"`
	MaxTokens   string `json:"maxTokens,omitempty"`
}

var ErrIncomplete = errors.New("api settings incomplete: endpoint, key and model are required")

// Complete reports whether enough is configured to make a request.
func (s APISettings) Complete() bool {
	return s.APIEndpoint != "" && s.APIKey != "" && s.Model != ""
}

func (s APISettings) Validate() error {
	if !s.Complete() {
		return ErrIncomplete
	}
	if s.Temperature != "" {
		if _, err := strconv.ParseFloat(s.Temperature, 64); err != nil {
			return fmt.Errorf("temperature %q: %w", s.Temperature, err)
		}
	}
	if s.MaxTokens != "" {
		if _, err := strconv.Atoi(s.MaxTokens); err != nil {
			return fmt.Errorf("maxTokens %q: %w", s.MaxTokens, err)
		}
	}
	return nil
}

// TemperatureOr parses Temperature, falling back to def when unset, invalid or zero.
func (s APISettings) TemperatureOr(def float64) float64 {
	t, err := strconv.ParseFloat(s.Temperature, 64)
	if err != nil || t == 0 {
		return def
	}
	return t
}

// MaxTokensOr parses MaxTokens, falling back to def when unset, invalid or zero.
func (s APISettings) MaxTokensOr(def int) int {
	n, err := strconv.Atoi(s.MaxTokens)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Masked returns a copy with the key shortened for display.
func (s APISettings) Masked() APISettings {
	if len(s.APIKey) > 8 {
		s.APIKey = s.APIKey[:4] + "…" + s.APIKey[len(s.APIKey)-4:]
	} else if s.APIKey != "" {
		s.APIKey = "…"
	}
	return s
}

type Store struct {
	kv kv.Storage
}

func NewStore(storage kv.Storage) *Store {
	return &Store{kv: storage}
}

// API returns the stored settings. ok is false when nothing parseable is stored.
func (s *Store) API() (APISettings, bool) {
	raw, ok := s.kv.GetItem(APIKey)
	if !ok {
		return APISettings{}, false
	}
	var out APISettings
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return APISettings{}, false
	}
	return out, true
}

func (s *Store) SaveAPI(a APISettings) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.kv.SetItem(APIKey, string(data))
}

// SuggestionsEnabled is on unless explicitly stored as "false".
func (s *Store) SuggestionsEnabled() bool {
	v, ok := s.kv.GetItem(SuggestionsKey)
	return !ok || v != "false"
}

func (s *Store) SetSuggestionsEnabled(on bool) error {
	return s.kv.SetItem(SuggestionsKey, strconv.FormatBool(on))
}

// Reset forgets the API settings and the suggestion toggle.
func (s *Store) Reset() error {
	for _, k := range []string{APIKey, SuggestionsKey} {
		if err := s.kv.RemoveItem(k); err != nil {
			return fmt.Errorf("removing %s: %w", k, err)
		}
	}
	return nil
}
