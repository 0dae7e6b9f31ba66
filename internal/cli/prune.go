package cli

import (
	"fmt"
	"time"

	"github.com/mbalaz/dennyzen/internal/constants"
)

type PruneCmd struct {
	Keep int `help:"Number of most recent days to keep." default:"30"`
}

// Run deletes cached day states older than the retention window. Stale keys
// are never read again once their date passes, so this only reclaims space;
// the history archive is left untouched.
func (c *PruneCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	keep := c.Keep
	if keep <= 0 {
		keep = constants.DefaultRetentionDays
	}

	cutoff := time.Now().AddDate(0, 0, -keep).Format(constants.DateFormat)
	removed, err := ctx.Store.PruneBefore(cutoff)
	if err != nil {
		return err
	}

	fmt.Printf("Pruned %d day state(s) older than %s.\n", removed, cutoff)
	return nil
}
