package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mbalaz/dennyzen/internal/session"
	"github.com/mbalaz/dennyzen/internal/storage"
)

type RefreshCmd struct {
	Force bool `help:"Replace today's batch without asking."`
}

func (c *RefreshCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	// Refresh deliberately ignores the per-day cache, so warn before
	// throwing away an existing batch.
	if !c.Force {
		if _, err := ctx.Store.GetDayState(Today()); err == nil {
			fmt.Print("Today's batch already exists and will be replaced. Continue? [y/N] ")
			var answer string
			fmt.Scanln(&answer)
			if answer != "y" && answer != "Y" {
				fmt.Println("Aborted.")
				return nil
			}
		} else if !errors.Is(err, storage.ErrNoDayState) {
			return err
		}
	}

	sess := ctx.NewSession()
	if err := sess.Refresh(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, session.UserMessage(err))
		return err
	}

	current, _ := sess.Current()
	printItem(current)
	printQueueStatus(sess.Remaining())
	return nil
}
