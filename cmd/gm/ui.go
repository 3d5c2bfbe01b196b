package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/skaldic/campaign-engine/internal/export"
	"github.com/skaldic/campaign-engine/pkg/quest"
	"github.com/skaldic/campaign-engine/pkg/state"
)

const PlaceHolderText = "go jorrvaskr, schism secrecy_argument mediate, help..."

// ConsoleUI is the BubbleTea model that runs the GM console.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	sess         *session
	logViewport  viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int

	// Rendered command/event history for the left panel.
	transcript []transcriptEntry

	showQuitModal bool
}

type transcriptEntry struct {
	command string
	events  []string
	err     error
}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(sess *session) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		sess:         sess,
		textarea:     ta,
		logViewport:  logVp,
		metaViewport: metaVp,
	}
}

func (m *ConsoleUI) writeTranscript() {
	logWidth := m.logViewport.Width - 6
	if logWidth < 20 {
		logWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("CAMPAIGN ENGINE") + "\n\n")
	name := m.sess.cs.Name
	if name == "" {
		name = "unnamed campaign"
	}
	content.WriteString("Running " + name + ". Type a command below; help lists them.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(logWidth-6, 1))) + "\n\n")

	for _, entry := range m.transcript {
		content.WriteString(commandStyle.Render("GM: ") + entry.command + "\n")
		if entry.err != nil {
			content.WriteString(errorStyle.Render("Error: "+entry.err.Error()) + "\n")
		}
		for _, ev := range entry.events {
			content.WriteString(eventStyle.Render(wordwrap.String(ev, logWidth)) + "\n")
		}
		content.WriteString("\n")
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func writeMetadata(cs *state.CampaignState) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("CAMPAIGN STATE") + "\n\n")

	content.WriteString("Campaign ID:\n")
	content.WriteString(cs.ID.String()[:8] + "...\n\n")

	if cs.CivilWar != nil {
		content.WriteString("Civil war:\n")
		alliance := cs.CivilWar.PlayerAlliance
		if alliance == "" {
			alliance = "undeclared"
		}
		content.WriteString("• side: " + alliance + "\n")
		if cs.CivilWar.BattleStatus != "" && cs.CivilWar.BattleStatus != state.BattleNotStarted {
			content.WriteString(fmt.Sprintf("• whiterun: %s (stage %d)\n",
				cs.CivilWar.BattleStatus, cs.CivilWar.BattleStage))
		}
		if cs.CivilWar.LockedReason != "" {
			content.WriteString("• locked: " + cs.CivilWar.LockedReason + "\n")
		}
		content.WriteString("\n")
	}

	if available := quest.AvailableQuests(cs); len(available) > 0 {
		content.WriteString("Active quests:\n")
		for _, a := range available {
			content.WriteString(fmt.Sprintf("• %s: %s\n", a.Type, a.Quest.Name))
		}
		content.WriteString("\n")
	}

	if len(cs.Clocks) > 0 {
		content.WriteString("Clocks:\n")
		ids := make([]string, 0, len(cs.Clocks))
		for id := range cs.Clocks {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			c := cs.Clocks[id]
			content.WriteString(fmt.Sprintf("• %s: %d/%d\n", id, c.Current, c.Total))
		}
		content.WriteString("\n")
	}

	if cs.Companions != nil && len(cs.Companions.Active) > 0 {
		content.WriteString("Party:\n")
		for _, c := range cs.Companions.Active {
			content.WriteString(fmt.Sprintf("• %s (loyalty %d)\n", c.NPCID, c.Loyalty))
		}
		content.WriteString("\n")
	}

	content.WriteString("Keys:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Run\n")
	content.WriteString("• /copy: Copy journal\n")

	return content.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		logWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - logWidth - 6

		m.logViewport.Width = logWidth - 2
		m.logViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(logWidth - 4)

		m.ready = true
		m.writeTranscript()
		m.metaViewport.SetContent(writeMetadata(m.sess.cs))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()

			if input == "/copy" {
				err := clipboard.WriteAll(export.SessionJournal(m.sess.cs))
				m.transcript = append(m.transcript, transcriptEntry{
					command: input,
					events:  []string{"Journal copied to clipboard."},
					err:     err,
				})
				m.writeTranscript()
				return m, nil
			}

			events, err := m.sess.runCommand(input)
			m.transcript = append(m.transcript, transcriptEntry{command: input, events: events, err: err})
			m.writeTranscript()
			m.metaViewport.SetContent(writeMetadata(m.sess.cs))
			return m, nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}
	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the table?"))
	content.WriteString("\n\n")
	content.WriteString("The campaign is saved after every command.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep playing"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(logWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}
