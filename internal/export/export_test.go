package export

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skaldic/campaign-engine/pkg/state"
)

func sampleCampaign() *state.CampaignState {
	cs := state.NewCampaignState("The Long Winter")
	cs.EnsureCivilWar().PlayerAlliance = state.AllianceImperial
	cs.AppendSession("whiterun", []string{
		"The gates of Whiterun creak open under an escort of bored guards.",
		"A very long event line meant to exercise the journal's word wrapping, because a Game Master reading a printed journal at the table deserves margins that behave themselves.",
	})
	cs.AppendSession("", []string{"Dreams of a burning hall."})
	cs.RecordDecision("underforge_offer", "refuse")
	return cs
}

func TestSessionJournal(t *testing.T) {
	md := SessionJournal(sampleCampaign())

	assert.True(t, strings.HasPrefix(md, "# The Long Winter\n"))
	assert.Contains(t, md, "Allegiance: imperial")
	assert.Contains(t, md, "## 1. whiterun")
	assert.Contains(t, md, "## 2. somewhere in Skyrim")
	assert.Contains(t, md, "- The gates of Whiterun creak open")
	assert.Contains(t, md, "- **underforge_offer**: refuse")

	for _, line := range strings.Split(md, "\n") {
		assert.LessOrEqual(t, len(line), journalWidth+8, "line overflows: %q", line)
	}
}

func TestSessionJournalEmpty(t *testing.T) {
	md := SessionJournal(state.NewCampaignState(""))
	assert.Contains(t, md, "# Campaign")
	assert.Contains(t, md, "_No sessions recorded yet._")
}

func TestArchive(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Archive(&buf, sampleCampaign()))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	names := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		names[f.Name] = string(body)
	}

	assert.Contains(t, names["state.json"], `"The Long Winter"`)
	assert.Contains(t, names["session_log.md"], "# The Long Winter")
}
