package models

import "github.com/abarbosa/tarefitas/internal/constants"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings holds user-facing appearance and profile preferences, persisted as
// a single JSON blob in the key-value store.
type Settings struct {
	Theme           Theme  `json:"theme"`
	Username        string `json:"username"`
	TintColor       string `json:"tint_color"`
	ForegroundColor string `json:"foreground_color"`
	IsOnboarding    bool   `json:"is_onboarding"`
}

// DefaultSettings returns the settings applied on first run.
func DefaultSettings() Settings {
	return Settings{
		Theme:           Theme(constants.DefaultTheme),
		Username:        "",
		TintColor:       constants.DefaultTintColor,
		ForegroundColor: constants.DefaultForegroundColor,
		IsOnboarding:    true,
	}
}
