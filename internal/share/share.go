package share

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/mbalaz/dennyzen/internal/models"
)

// FormatItem renders an inspiration as shareable text.
func FormatItem(item models.Item) string {
	return fmt.Sprintf("✨ Denný Zen:\n\n\"%s\"\n\n💭 %s\n\n🚀 %s", item.Motto, item.Thought, item.Motivation)
}

// Copy puts the formatted item on the system clipboard.
func Copy(item models.Item) error {
	if err := clipboard.WriteAll(FormatItem(item)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
