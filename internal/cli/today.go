package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mbalaz/dennyzen/internal/models"
	"github.com/mbalaz/dennyzen/internal/session"
)

type TodayCmd struct {
	JSON bool `help:"Print the day state as JSON."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	sess := ctx.NewSession()
	if err := sess.Start(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, session.UserMessage(err))
		return err
	}

	current, ok := sess.Current()
	if !ok {
		fmt.Println("No inspiration available for today.")
		return nil
	}

	if c.JSON {
		return printJSON(current, sess.Remaining())
	}

	printItem(current)
	printQueueStatus(sess.Remaining())
	return nil
}

func printJSON(current models.Item, remaining int) error {
	out := struct {
		Current   models.Item `json:"current"`
		Remaining int         `json:"remaining"`
	}{current, remaining}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printItem(item models.Item) {
	fmt.Printf("Denné motto:\n  \"%s\"\n\n", item.Motto)
	fmt.Printf("Myšlienka dňa:\n  %s\n\n", item.Thought)
	fmt.Printf("Akčná motivácia:\n  %s\n", item.Motivation)
}

func printQueueStatus(remaining int) {
	fmt.Println()
	if remaining == 0 {
		fmt.Println("Dnešná dávka je vyčerpaná. Nová inšpirácia príde zajtra (alebo 'dennyzen refresh').")
		return
	}
	fmt.Printf("V zásobe na dnes: %d\n", remaining)
}
