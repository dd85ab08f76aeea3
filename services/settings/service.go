// Package settings manages the interface language preference.
package settings

import (
	"context"
	"errors"
	"strings"

	"firstresponse/models"
	"firstresponse/utils"

	"go.uber.org/zap"
)

var ErrUnsupportedLanguage = errors.New("Unsupported language.")

var supported = []models.Language{
	{Code: "en", Label: "English"},
	{Code: "hi", Label: "हिन्दी (Hindi)"},
	{Code: "ar", Label: "العربية (Arabic)"},
	{Code: "es", Label: "Español (Spanish)"},
}

// Preferences is the slice of a session the settings page touches.
type Preferences interface {
	Username(ctx context.Context) (string, error)
	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, lang string) error
}

// Languages lists the selectable languages in display order.
func Languages() []models.Language {
	out := make([]models.Language, len(supported))
	copy(out, supported)
	return out
}

// Supported reports whether code is a selectable language.
func Supported(code string) bool {
	for _, l := range supported {
		if l.Code == code {
			return true
		}
	}
	return false
}

func View(ctx context.Context, prefs Preferences) (*models.SettingsView, error) {
	username, err := prefs.Username(ctx)
	if err != nil {
		return nil, err
	}
	lang, err := prefs.Language(ctx)
	if err != nil {
		return nil, err
	}
	return &models.SettingsView{Username: username, Language: lang, Languages: Languages()}, nil
}

// SetLanguage persists a supported language choice.
func SetLanguage(ctx context.Context, prefs Preferences, code string) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if !Supported(code) {
		return ErrUnsupportedLanguage
	}
	if err := prefs.SetLanguage(ctx, code); err != nil {
		utils.GetLogger().Error("Failed to save language preference", zap.Error(err))
		return err
	}
	return nil
}
