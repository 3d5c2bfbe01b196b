package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// Archive writes a zip containing the full campaign document (state.json)
// and the rendered journal (session_log.md).
func Archive(w io.Writer, cs *state.CampaignState) error {
	zw := zip.NewWriter(w)

	stateFile, err := zw.Create("state.json")
	if err != nil {
		return fmt.Errorf("failed to create archive entry: %w", err)
	}
	data, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}
	if _, err := stateFile.Write(data); err != nil {
		return fmt.Errorf("failed to write state.json: %w", err)
	}

	journalFile, err := zw.Create("session_log.md")
	if err != nil {
		return fmt.Errorf("failed to create archive entry: %w", err)
	}
	if _, err := io.WriteString(journalFile, SessionJournal(cs)); err != nil {
		return fmt.Errorf("failed to write session_log.md: %w", err)
	}

	return zw.Close()
}
