package cli

import (
	"errors"
	"fmt"

	"github.com/mbalaz/dennyzen/internal/share"
	"github.com/mbalaz/dennyzen/internal/storage"
)

type ShareCmd struct {
	Print bool `help:"Print the share text instead of copying it."`
}

// Run shares today's displayed item. There is no native share sheet on the
// command line, so the clipboard is the share target and stdout the fallback.
func (c *ShareCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	state, err := ctx.Store.GetDayState(Today())
	if err != nil {
		if errors.Is(err, storage.ErrNoDayState) {
			return fmt.Errorf("nothing to share yet, run 'dennyzen today' first")
		}
		return err
	}
	if state.Current == nil {
		return fmt.Errorf("nothing to share yet, run 'dennyzen today' first")
	}

	if c.Print {
		fmt.Println(share.FormatItem(*state.Current))
		return nil
	}

	if err := share.Copy(*state.Current); err != nil {
		// No clipboard (headless session, missing xclip): fall back to stdout.
		fmt.Println(share.FormatItem(*state.Current))
		return nil
	}

	fmt.Println("Copied today's inspiration to the clipboard.")
	return nil
}
