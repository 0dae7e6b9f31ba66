package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbalaz/dennyzen/internal/constants"
	"github.com/mbalaz/dennyzen/internal/notify"
	"github.com/mbalaz/dennyzen/internal/storage"
)

type NotifyWatchCmd struct {
	Interval time.Duration `help:"Time between reminder checks." default:"60s"`
	Hour     int           `help:"Earliest local hour a reminder may fire." default:"8"`
}

// Run keeps a reminder watcher in the foreground until interrupted. The
// watcher holds the storage lock so it never races an interactive session's
// writes.
func (c *NotifyWatchCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	lock, err := storage.AcquireLock(ctx.Store.GetConfigPath())
	if err != nil {
		return err
	}
	defer lock.Release()

	scheduler := notify.New(ctx.Store, notify.NewDesktop(),
		notify.WithInterval(c.Interval),
		notify.WithHour(c.Hour),
	)

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("Watching for the daily reminder (hour >= %d, every %s). Ctrl-C to stop.\n", c.Hour, c.Interval)

	if err := scheduler.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type NotifyCheckCmd struct{}

// Run performs a single reminder evaluation, useful from cron or a systemd
// timer instead of the foreground watcher.
func (c *NotifyCheckCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	scheduler := notify.New(ctx.Store, notify.NewDesktop())
	fired, err := scheduler.Check()
	if err != nil {
		return err
	}

	if fired {
		fmt.Println("Reminder sent.")
	} else {
		fmt.Println("No reminder due.")
	}
	return nil
}

type NotifyTestCmd struct{}

// Run sends a test notification immediately, mirroring the confirmation
// notification shown when reminders are first enabled.
func (c *NotifyTestCmd) Run(ctx *Context) error {
	desktop := notify.NewDesktop()
	if err := desktop.Send(constants.NotifyTitle, "Upozornenia fungujú. Pripomenieme sa vám každé ráno."); err != nil {
		return err
	}
	fmt.Println("Test notification sent.")
	return nil
}
