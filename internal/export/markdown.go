// Package export renders campaign documents for humans: a markdown session
// journal, and a zip archive bundling the journal with the raw state.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/skaldic/campaign-engine/pkg/state"
)

const journalWidth = 80

// SessionJournal renders the campaign's session log as markdown. Entries are
// grouped in order, one heading per entry, events wrapped for reading at a
// table rather than a terminal.
func SessionJournal(cs *state.CampaignState) string {
	var b strings.Builder

	title := cs.Name
	if title == "" {
		title = "Campaign"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if cs.CivilWar != nil && cs.CivilWar.PlayerAlliance != "" {
		fmt.Fprintf(&b, "Allegiance: %s\n\n", cs.CivilWar.PlayerAlliance)
	}

	if len(cs.SessionLog) == 0 {
		b.WriteString("_No sessions recorded yet._\n")
		return b.String()
	}

	for i, entry := range cs.SessionLog {
		loc := entry.Location
		if loc == "" {
			loc = "somewhere in Skyrim"
		}
		fmt.Fprintf(&b, "## %d. %s (%s)\n\n", i+1, loc, entry.At.Format("2006-01-02 15:04"))
		for _, ev := range entry.Events {
			wrapped := wordwrap.String("- "+ev, journalWidth)
			b.WriteString(wrapped)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(cs.BranchingDecisions) > 0 {
		b.WriteString("## Decisions on record\n\n")
		for _, key := range sortedKeys(cs.BranchingDecisions) {
			fmt.Fprintf(&b, "- **%s**: %s\n", key, cs.BranchingDecisions[key])
		}
	}

	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
