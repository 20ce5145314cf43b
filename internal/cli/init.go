package cli

import (
	"fmt"
	"path/filepath"

	"github.com/abarbosa/tarefitas/internal/constants"
)

type InitCmd struct{}

// Run seeds the data directory: the database schema is already migrated by
// the time commands run, so this only writes default settings when missing.
func (c *InitCmd) Run(appCtx *Context) error {
	settings, err := appCtx.KV.Settings()
	if err != nil {
		return err
	}
	if err := appCtx.KV.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Println(okStyle.Render("Initialized ") + filepath.Join(appCtx.DataDir, constants.DBFileName))
	return nil
}
