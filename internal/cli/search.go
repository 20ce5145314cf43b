package cli

import "fmt"

type SearchCmd struct {
	Query string `arg:"" help:"Free-text query matched against title and description."`
}

func (c *SearchCmd) Run(appCtx *Context) error {
	tasks := appCtx.State.FilterTasks(c.Query)
	if len(tasks) == 0 {
		fmt.Println(faintStyle.Render("No matches."))
		return nil
	}
	for _, t := range tasks {
		fmt.Printf("%s  %s\n", t.Date, renderTask(t))
	}
	return nil
}
