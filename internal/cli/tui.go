package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mbalaz/dennyzen/internal/storage"
	"github.com/mbalaz/dennyzen/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	lock, err := storage.AcquireLock(ctx.Store.GetConfigPath())
	if err != nil {
		return err
	}
	defer lock.Release()

	p := tea.NewProgram(tui.NewModel(ctx.NewSession()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
