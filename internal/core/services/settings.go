package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStoragePath   = "storage.path"
	keyChunkSize     = "chunking.size"
	keyChunkOverlap  = "chunking.overlap"
	keyMinTextLength = "ingest.min_length"
	keyTopK          = "search.top_k"
	keyExcerptChars  = "search.excerpt_chars"
	keyGenerator     = "generator.type"
	keyGeneratorCmd  = "generator.command"
	keyGeneratorRate = "generator.rate_per_minute"
)

// setting binds a config key to its environment variable and field.
type setting struct {
	key   string
	env   string
	isInt bool
	apply func(s *domain.Settings, raw string, n int)
}

var settingsTable = []setting{
	{keyStoragePath, "DOC_AGENT_DB", false, func(s *domain.Settings, raw string, _ int) { s.DBPath = raw }},
	{keyChunkSize, "DOCQA_CHUNK_SIZE", true, func(s *domain.Settings, _ string, n int) { s.Chunking.Size = n }},
	{keyChunkOverlap, "DOCQA_CHUNK_OVERLAP", true, func(s *domain.Settings, _ string, n int) { s.Chunking.Overlap = n }},
	{keyMinTextLength, "DOCQA_MIN_TEXT_LENGTH", true, func(s *domain.Settings, _ string, n int) { s.MinTextLength = n }},
	{keyTopK, "DOCQA_TOP_K", true, func(s *domain.Settings, _ string, n int) { s.Search.TopK = n }},
	{keyExcerptChars, "DOCQA_EXCERPT_CHARS", true, func(s *domain.Settings, _ string, n int) { s.Search.ExcerptChars = n }},
	{keyGenerator, "DOCQA_GENERATOR", false, func(s *domain.Settings, raw string, _ int) {
		s.Generator.Type = domain.GeneratorType(strings.ToLower(raw))
	}},
	{keyGeneratorCmd, "DOCQA_GENERATOR_CMD", false, func(s *domain.Settings, raw string, _ int) { s.Generator.Command = raw }},
	{keyGeneratorRate, "DOCQA_GENERATOR_RATE", true, func(s *domain.Settings, _ string, n int) {
		s.Generator.RatePerMinute = n
	}},
}

// SettingsService resolves settings from, lowest precedence first, the
// built-in defaults, the config store and the process environment.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service reading the process
// environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// LoadEnvFile adds variables from a dotenv file to the process environment.
// Variables that are already set keep their values. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Get returns the effective, validated settings.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	for _, st := range settingsTable {
		if s.configStore != nil {
			if _, ok := s.configStore.Get(st.key); ok {
				if st.isInt {
					st.apply(&settings, "", s.configStore.GetInt(st.key))
				} else {
					st.apply(&settings, s.configStore.GetString(st.key), 0)
				}
			}
		}

		if raw, ok := s.lookupEnv(st.env); ok && strings.TrimSpace(raw) != "" {
			raw = strings.TrimSpace(raw)
			n, err := parseSetting(st, raw)
			if err != nil {
				return settings, fmt.Errorf("%s: %w", st.env, err)
			}
			st.apply(&settings, raw, n)
		}
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// Set validates and persists one setting. The config store is left
// unchanged when the resulting settings would be invalid.
func (s *SettingsService) Set(key, value string) error {
	st, ok := lookupSetting(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q (valid: %s)",
			domain.ErrInvalidInput, key, strings.Join(s.Keys(), ", "))
	}

	value = strings.TrimSpace(value)
	n, err := parseSetting(st, value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	previous, hadPrevious := s.configStore.Get(key)

	var stored any = value
	if st.isInt {
		stored = n
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	if _, err := s.Get(); err != nil {
		if hadPrevious {
			_ = s.configStore.Set(key, previous)
		} else {
			_ = s.configStore.Unset(key)
		}
		return err
	}
	return nil
}

// Keys returns the config keys that Set accepts.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsTable))
	for i, st := range settingsTable {
		keys[i] = st.key
	}
	return keys
}

// EnvVar returns the environment variable overriding key.
func EnvVar(key string) (string, bool) {
	st, ok := lookupSetting(key)
	return st.env, ok
}

func lookupSetting(key string) (setting, bool) {
	for _, st := range settingsTable {
		if st.key == key {
			return st, true
		}
	}
	return setting{}, false
}

func parseSetting(st setting, raw string) (int, error) {
	if !st.isInt {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidInput, raw)
	}
	return n, nil
}
