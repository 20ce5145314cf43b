package cli

import (
	"fmt"

	"github.com/abarbosa/tarefitas/internal/models"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(appCtx *Context) error {
	settings, err := appCtx.KV.Settings()
	if err != nil {
		return err
	}
	avatar, err := appCtx.KV.AvatarURI()
	if err != nil {
		return err
	}

	fmt.Printf("theme:      %s\n", settings.Theme)
	fmt.Printf("username:   %s\n", settings.Username)
	fmt.Printf("tint:       %s\n", settings.TintColor)
	fmt.Printf("foreground: %s\n", settings.ForegroundColor)
	fmt.Printf("onboarding: %v\n", settings.IsOnboarding)
	if avatar != "" {
		fmt.Printf("avatar:     %s\n", avatar)
	}
	return nil
}

type SettingsSetCmd struct {
	Theme      string `help:"Theme (light|dark)."`
	Username   string `help:"Display name."`
	Tint       string `help:"Tint color (hex)."`
	Foreground string `help:"Foreground color (hex)."`
	Avatar     string `help:"Avatar image URI."`
	Onboarded  bool   `help:"Mark onboarding as complete."`
}

func (c *SettingsSetCmd) Run(appCtx *Context) error {
	settings, err := appCtx.KV.Settings()
	if err != nil {
		return err
	}

	if c.Theme != "" {
		if c.Theme != string(models.ThemeLight) && c.Theme != string(models.ThemeDark) {
			return fmt.Errorf("invalid theme %q (expected light|dark)", c.Theme)
		}
		settings.Theme = models.Theme(c.Theme)
	}
	if c.Username != "" {
		settings.Username = c.Username
	}
	if c.Tint != "" {
		settings.TintColor = c.Tint
	}
	if c.Foreground != "" {
		settings.ForegroundColor = c.Foreground
	}
	if c.Onboarded {
		settings.IsOnboarding = false
		if err := appCtx.KV.SaveOnboardingDone(true); err != nil {
			return err
		}
	}

	if err := appCtx.KV.SaveSettings(settings); err != nil {
		return err
	}

	if c.Avatar != "" {
		if err := appCtx.KV.SaveAvatarURI(c.Avatar); err != nil {
			return err
		}
	}

	fmt.Println(okStyle.Render("Settings saved"))
	return nil
}
