package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
)

// DefaultBackgroundKey is the storage key holding the background preference.
const DefaultBackgroundKey = "lummu-background"

// DefaultGradient is rendered when no background is set.
const DefaultGradient = "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"

// CategoryAll selects every preset.
const CategoryAll = "all"

// Preset is a curated background image.
type Preset struct {
	ID       string
	Name     string
	URL      string
	Category string
}

// Gradient is a named CSS gradient.
type Gradient struct {
	Name  string
	Value string
}

const unsplashParams = "?ixlib=rb-4.0.3&auto=format&fit=crop&w=1920&q=80"

var presets = []Preset{
	{ID: "1", Name: "Mountain Sunrise", URL: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4" + unsplashParams, Category: "nature"},
	{ID: "2", Name: "Ocean Waves", URL: "https://images.unsplash.com/photo-1505142468610-359e7d316be0" + unsplashParams, Category: "nature"},
	{ID: "3", Name: "Forest Path", URL: "https://images.unsplash.com/photo-1441974231531-c6227db76b6e" + unsplashParams, Category: "nature"},
	{ID: "4", Name: "City Lights", URL: "https://images.unsplash.com/photo-1480714378408-67cf0d13bc1f" + unsplashParams, Category: "urban"},
	{ID: "5", Name: "Purple Gradient", URL: "https://images.unsplash.com/photo-1558591710-4b4a1ae0f04d" + unsplashParams, Category: "abstract"},
	{ID: "6", Name: "Cosmic Nebula", URL: "https://images.unsplash.com/photo-1446776877081-d282a0f896e2" + unsplashParams, Category: "space"},
	{ID: "7", Name: "Cherry Blossoms", URL: "https://images.unsplash.com/photo-1522383225653-ed111181a951" + unsplashParams, Category: "nature"},
	{ID: "8", Name: "Golden Hour", URL: "https://images.unsplash.com/photo-1495616811223-4d98c6e9c869" + unsplashParams, Category: "nature"},
}

var gradients = []Gradient{
	{Name: "Purple Dream", Value: "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"},
	{Name: "Ocean Blue", Value: "linear-gradient(135deg, #74b9ff 0%, #0984e3 100%)"},
	{Name: "Sunset Orange", Value: "linear-gradient(135deg, #fd79a8 0%, #fdcb6e 100%)"},
	{Name: "Forest Green", Value: "linear-gradient(135deg, #6c5ce7 0%, #a29bfe 100%)"},
	{Name: "Rose Gold", Value: "linear-gradient(135deg, #fd79a8 0%, #fdcb6e 100%)"},
	{Name: "Dark Space", Value: "linear-gradient(135deg, #2d3436 0%, #636e72 100%)"},
}

var imageURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|gif|webp)(\?.*)?$`)

// IsImageURL reports whether s looks like an http(s) image URL.
func IsImageURL(s string) bool {
	return imageURLPattern.MatchString(strings.TrimSpace(s))
}

// IsGradient reports whether s is a CSS linear-gradient expression.
func IsGradient(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(strings.ToLower(s), "linear-gradient(") && strings.HasSuffix(s, ")")
}

// Presets returns the presets in category, or all of them for CategoryAll or "".
func Presets(category string) []Preset {
	out := []Preset{}
	for _, p := range presets {
		if category == "" || category == CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns CategoryAll followed by every preset category in first-seen order.
func Categories() []string {
	cats := []string{CategoryAll}
	seen := map[string]bool{}
	for _, p := range presets {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	return cats
}

// Gradients returns the named gradients.
func Gradients() []Gradient {
	return append([]Gradient(nil), gradients...)
}

func isPreset(s string) bool {
	for _, p := range presets {
		if p.URL == s {
			return true
		}
	}
	return false
}

// CSS renders a background value as a CSS background-image expression.
func CSS(value string) string {
	switch {
	case value == "":
		return DefaultGradient
	case IsGradient(value):
		return value
	default:
		return fmt.Sprintf("url(%s)", value)
	}
}

// BackgroundStoreConfig holds the configuration for a BackgroundStore.
type BackgroundStoreConfig struct {
	Key            string
	Logger         *slog.Logger
	OnPersistError func(error)
}

// BackgroundStore owns the background preference.
type BackgroundStore struct {
	storage Storage
	config  BackgroundStoreConfig

	mu         sync.RWMutex
	value      string
	persistErr error
}

// NewBackgroundStore creates a store backed by storage.
func NewBackgroundStore(storage Storage, config BackgroundStoreConfig) *BackgroundStore {
	if config.Key == "" {
		config.Key = DefaultBackgroundKey
	}
	return &BackgroundStore{storage: storage, config: config}
}

// Load restores the preference. An absent key yields "".
func (b *BackgroundStore) Load(ctx context.Context) (string, error) {
	value, err := b.storage.Get(ctx, b.config.Key)
	if errors.Is(err, ErrKeyNotFound) {
		value, err = "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read background: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = value
	return value, nil
}

// Current returns the active preference.
func (b *BackgroundStore) Current() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Set validates and persists a new preference. "" clears it.
// Accepted values are presets, gradients, and custom image URLs.
func (b *BackgroundStore) Set(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if value != "" && !isPreset(value) && !IsGradient(value) && !IsImageURL(value) {
		return fmt.Errorf("%w: %q is neither an image URL nor a gradient", ErrValidation, value)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.value = value
	b.persistErr = b.storage.Set(ctx, b.config.Key, value)
	if b.persistErr != nil {
		if b.config.Logger != nil {
			b.config.Logger.Warn("failed to persist background", "key", b.config.Key, "error", b.persistErr)
		}
		if b.config.OnPersistError != nil {
			b.config.OnPersistError(b.persistErr)
		}
	}
	return nil
}

// Clear removes the preference.
func (b *BackgroundStore) Clear(ctx context.Context) error {
	return b.Set(ctx, "")
}
