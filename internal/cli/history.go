package cli

import "fmt"

type HistoryCmd struct {
	Limit int `help:"Maximum number of entries to show." default:"20"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	entries, err := ctx.Store.GetHistory(c.Limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No history yet.")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%s  \"%s\"\n", entry.Day, entry.Item.Motto)
	}

	return nil
}
