package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Desktop delivers notifications through the platform notification service.
type Desktop struct{}

func NewDesktop() *Desktop {
	return &Desktop{}
}

func (d *Desktop) Send(title, body string) error {
	if err := beeep.Notify(title, body, ""); err != nil {
		return fmt.Errorf("desktop notification failed: %w", err)
	}
	return nil
}
