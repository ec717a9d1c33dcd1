package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// ClipboardExporter copies the summary to the system clipboard. Best-effort;
// the caller treats failures as warnings.
type ClipboardExporter struct{}

func (ClipboardExporter) Export(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
