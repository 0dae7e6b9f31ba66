package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mbalaz/dennyzen/internal/session"
)

type NextCmd struct{}

func (c *NextCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	sess := ctx.NewSession()
	if err := sess.Start(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, session.UserMessage(err))
		return err
	}

	advanced, err := sess.Advance()
	if err != nil {
		return err
	}
	if !advanced {
		fmt.Println("Dnešná dávka je vyčerpaná. Nová inšpirácia príde zajtra (alebo 'dennyzen refresh').")
		return nil
	}

	current, _ := sess.Current()
	printItem(current)
	printQueueStatus(sess.Remaining())
	return nil
}
