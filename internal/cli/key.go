package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mbalaz/dennyzen/internal/keyring"
)

type KeySetCmd struct {
	Key string `arg:"" optional:"" help:"API key to store. Read from stdin when omitted."`
}

func (c *KeySetCmd) Run(ctx *Context) error {
	key := c.Key
	if key == "" {
		fmt.Print("Gemini API key: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		key = strings.TrimSpace(line)
	}

	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Println("API key stored in the OS keyring.")
	return nil
}

type KeyClearCmd struct{}

func (c *KeyClearCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No API key stored.")
			return nil
		}
		return err
	}
	fmt.Println("API key removed from the OS keyring.")
	return nil
}

type KeyStatusCmd struct{}

func (c *KeyStatusCmd) Run(ctx *Context) error {
	key, err := ResolveAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No API key configured. Set one with 'dennyzen key set' or GEMINI_API_KEY.")
			return nil
		}
		return err
	}

	if len(key) > 4 {
		key = key[:4] + strings.Repeat("*", len(key)-4)
	}
	fmt.Printf("API key configured: %s\n", key)
	return nil
}
