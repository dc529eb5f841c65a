package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/initiative-tracker/pkg/dice"
	"github.com/jwebster45206/initiative-tracker/pkg/encounter"
	"github.com/jwebster45206/initiative-tracker/pkg/party"
)

type uiMode int

const (
	modeRoster uiMode = iota
	modeAdd
	modePrompt
	modeNotes
	modeBestiary
	modeParty
	modeLoad
	modeHelp
	modeQuit
)

// TrackerUI is the BubbleTea model that runs the tracker.
// https://github.com/charmbracelet/bubbletea
type TrackerUI struct {
	config  *TrackerConfig
	client  *http.Client
	enc     *encounter.Encounter
	roller  *dice.Roller
	name    string
	mode    uiMode
	cursor  int
	width   int
	height  int
	ready   bool
	offline bool

	rosterViewport viewport.Model
	metaViewport   viewport.Model

	// Transient status line under the roster
	status        string
	statusIsError bool

	// Single-field prompt state
	prompt        promptKind
	promptTitle   string
	promptContext string
	targetID      string
	input         textinput.Model
	inputError    string

	// Add-combatant form state
	form addForm

	// Notes editor state
	notes textarea.Model

	// Bestiary/party/load modal state
	modal modalState
}

type savedListMsg struct {
	snaps []encounter.Snapshot
	err   error
}

type encounterSavedMsg struct {
	snap *encounter.Snapshot
	err  error
}

type encounterLoadedMsg struct {
	snap *encounter.Snapshot
	err  error
}

type encounterDeletedMsg struct {
	name string
	err  error
}

type monstersLoadedMsg struct {
	names []string
	ids   map[string]string
	err   error
}

type pcsLoadedMsg struct {
	names []string
	ids   map[string]string
	err   error
}

type combatantStampedMsg struct {
	combatant encounter.Combatant
	err       error
}

var (
	rosterPanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingBottom(1).
				PaddingLeft(3).
				PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	pcStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")) // teal

	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")). // dark grey
			Strikethrough(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

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

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

var titleCaser = cases.Title(language.English)

func NewTrackerUI(cfg *TrackerConfig, client *http.Client, offline bool) TrackerUI {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	ta := textarea.New()
	ta.Placeholder = "Encounter notes..."
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(8)
	ta.ShowLineNumbers = false

	rosterVp := viewport.New(50, 20)
	rosterVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return TrackerUI{
		config:         cfg,
		client:         client,
		enc:            encounter.New(),
		roller:         dice.New(),
		offline:        offline,
		input:          ti,
		notes:          ta,
		rosterViewport: rosterVp,
		metaViewport:   metaVp,
		form:           newAddForm(),
	}
}

func (m TrackerUI) Init() tea.Cmd {
	return nil
}

func (m TrackerUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		var vpCmd tea.Cmd
		m.rosterViewport, vpCmd = m.rosterViewport.Update(msg)
		return m, vpCmd
	}

	switch m.mode {
	case modeAdd:
		return m.updateAddForm(msg)
	case modePrompt:
		return m.updatePrompt(msg)
	case modeNotes:
		return m.updateNotes(msg)
	case modeBestiary, modeParty, modeLoad:
		return m.updateListModal(msg)
	case modeHelp:
		return m.updateHelp(msg)
	case modeQuit:
		return m.updateQuitModal(msg)
	}

	return m.updateRoster(msg)
}

func (m TrackerUI) updateRoster(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case encounterSavedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Save failed: %v", msg.err))
		} else {
			m.name = msg.snap.Name
			m.setStatus(fmt.Sprintf("Saved %q", msg.snap.Name))
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.mode = modeQuit
			return m, nil
		case tea.KeyUp:
			m.moveCursor(-1)
			return m, nil
		case tea.KeyDown:
			m.moveCursor(1)
			return m, nil
		}

		switch msg.String() {
		case "k":
			m.moveCursor(-1)
		case "j":
			m.moveCursor(1)
		case "a":
			return m.openAddForm()
		case "m":
			return m.openBestiaryModal()
		case "p":
			return m.openPartyModal()
		case "d":
			if c := m.selected(); c != nil {
				return m.openPrompt(promptDamage, fmt.Sprintf("Damage %s", c.Name), "amount", "")
			}
		case "h":
			if c := m.selected(); c != nil {
				return m.openPrompt(promptHeal, fmt.Sprintf("Heal %s", c.Name), "amount", "")
			}
		case "t":
			if c := m.selected(); c != nil {
				return m.openPrompt(promptTempHP, fmt.Sprintf("Temporary HP for %s", c.Name), "amount", fmt.Sprintf("%d", c.TempHP))
			}
		case "N":
			if c := m.selected(); c != nil {
				return m.openPrompt(promptRename, fmt.Sprintf("Rename %s", c.Name), "new name", c.Name)
			}
		case "i":
			if c := m.selected(); c != nil {
				return m.openPrompt(promptInitiative, fmt.Sprintf("Initiative for %s", c.Name), "0-30", fmt.Sprintf("%d", c.Initiative))
			}
		case "A":
			if c := m.selected(); c != nil {
				return m.openPrompt(promptArmorClass, fmt.Sprintf("Armor class for %s", c.Name), "1-30", fmt.Sprintf("%d", c.AC))
			}
		case "c":
			if c := m.selected(); c != nil {
				return m.openPrompt(promptAddCondition, fmt.Sprintf("Condition for %s", c.Name), "name, optional rounds (e.g. prone 2)", "")
			}
		case "x":
			if c := m.selected(); c != nil {
				if len(c.Conditions) == 0 {
					m.setStatus(fmt.Sprintf("%s has no conditions", c.Name))
					m.refresh()
					return m, nil
				}
				return m.openPrompt(promptRemoveCondition, fmt.Sprintf("Remove condition from %s", c.Name), fmt.Sprintf("1-%d", len(c.Conditions)), "")
			}
		case "D":
			if c := m.selected(); c != nil {
				name := c.Name
				m.enc.RemoveByID(c.ID)
				m.clampCursor()
				m.setStatus(fmt.Sprintf("Removed %s", name))
				m.refresh()
			}
		case "r":
			if c := m.selected(); c != nil {
				m.enc.RollInitiative(m.roller, c.ID)
				m.setStatus(fmt.Sprintf("%s rolled %d for initiative", c.Name, c.Initiative))
				m.refresh()
			}
		case "R":
			if len(m.enc.Combatants) > 0 {
				m.enc.RollAllInitiatives(m.roller)
				m.setStatus("Rolled initiative for everyone")
				m.refresh()
			}
		case "s":
			m.enc.SortByInitiative()
			m.cursor = 0
			m.setStatus("Sorted by initiative")
			m.refresh()
		case "n":
			m.enc.NextTurn()
			if active := m.enc.Active(); active != nil {
				m.cursor = m.enc.CurrentTurn
				m.setStatus(fmt.Sprintf("Round %d, %s is up", m.enc.Round, active.Name))
			}
			m.refresh()
		case "u":
			m.enc.Reset()
			m.cursor = 0
			m.setStatus("Back to round 1")
			m.refresh()
		case "S":
			return m.openPrompt(promptSaveName, "Save encounter as", "encounter name", m.name)
		case "L":
			return m.openLoadModal()
		case "E":
			initial := m.name
			if initial == "" {
				initial = "encounter"
			}
			return m.openPrompt(promptExportName, "Export encounter as", "encounter name", initial)
		case "I":
			return m.openPrompt(promptImportPath, "Import encounter from file", "path/to/encounter.json", "")
		case "y":
			m.copyToClipboard()
			m.refresh()
		case "o":
			m.notes.SetValue(m.enc.Notes)
			m.notes.Focus()
			m.mode = modeNotes
			return m, textarea.Blink
		case "?":
			m.mode = modeHelp
		case "q":
			m.mode = modeQuit
		}
		return m, nil
	}

	return m, nil
}

func (m TrackerUI) View() string {
	switch m.mode {
	case modeAdd:
		return m.renderAddForm()
	case modePrompt:
		return m.renderPrompt()
	case modeNotes:
		return m.renderNotesEditor()
	case modeBestiary, modeParty, modeLoad:
		return m.renderListModal()
	case modeHelp:
		return m.renderHelp()
	case modeQuit:
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	rosterWidth := int(float64(m.width)*0.68) - 4
	metaWidth := m.width - rosterWidth - 6

	statusLine := promptStyle.Render("a add, n next turn, ? help, q quit")
	if m.status != "" {
		if m.statusIsError {
			statusLine = errorStyle.Render(m.status)
		} else {
			statusLine = statusStyle.Render(m.status)
		}
	}

	rosterPanel := rosterPanelStyle.Width(rosterWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.rosterViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", rosterWidth-4)),
			statusLine,
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rosterPanel, metaPanel)
}

func (m *TrackerUI) layout() {
	rosterWidth := int(float64(m.width)*0.68) - 4
	metaWidth := m.width - rosterWidth - 6

	m.rosterViewport.Width = rosterWidth - 2
	m.rosterViewport.Height = m.height - 6
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.input.Width = 40

	notesWidth := m.width - 20
	if notesWidth > 70 {
		notesWidth = 70
	}
	if notesWidth < 30 {
		notesWidth = 30
	}
	m.notes.SetWidth(notesWidth)
}

// refresh rebuilds both viewports from the current encounter state.
func (m *TrackerUI) refresh() {
	m.rosterViewport.SetContent(m.renderRoster())
	m.metaViewport.SetContent(m.renderMeta())
}

func (m *TrackerUI) renderRoster() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("INITIATIVE TRACKER") + "\n\n")

	if len(m.enc.Combatants) == 0 {
		content.WriteString("No combatants yet.\n\n")
		content.WriteString("Press a to add one, m to pick a monster,\n")
		content.WriteString("or p to bring in a party member.\n")
		return content.String()
	}

	content.WriteString(headerStyle.Render(fmt.Sprintf("   %-20s %-11s %4s %5s  %s", "NAME", "HP", "AC", "INIT", "CONDITIONS")) + "\n")

	for i, c := range m.enc.Combatants {
		marker := "  "
		if i == m.enc.CurrentTurn {
			marker = activeStyle.Render("▶ ")
		}

		name := c.Name
		if len(name) > 20 {
			name = name[:19] + "…"
		}

		hpCell := fmt.Sprintf("%d/%d", c.HP, c.MaxHP)
		if c.TempHP > 0 {
			hpCell = fmt.Sprintf("%s +%d", hpCell, c.TempHP)
		}

		line := fmt.Sprintf("%-20s %-11s %4d %5d  %s", name, hpCell, c.AC, c.Initiative, m.conditionSummary(c))

		switch {
		case i == m.cursor:
			line = modalSelectedItemStyle.Render(line)
		case c.IsDown():
			line = downStyle.Render(line)
		case c.IsPC:
			line = pcStyle.Render(line)
		}

		content.WriteString(marker + line + "\n")
	}

	return content.String()
}

func (m *TrackerUI) conditionSummary(c encounter.Combatant) string {
	if len(c.Conditions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(c.Conditions))
	for _, cond := range c.Conditions {
		label := titleCaser.String(cond.Name)
		if cond.Duration != nil {
			label = fmt.Sprintf("%s (%d)", label, *cond.Duration)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, ", ")
}

func (m *TrackerUI) renderMeta() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("ENCOUNTER") + "\n\n")

	name := m.name
	if name == "" {
		name = "(unsaved)"
	}
	content.WriteString("Name:\n")
	content.WriteString(name + "\n\n")

	content.WriteString(fmt.Sprintf("Round %d", m.enc.Round))
	if active := m.enc.Active(); active != nil {
		content.WriteString(fmt.Sprintf(", turn %d/%d\n", m.enc.CurrentTurn+1, len(m.enc.Combatants)))
		content.WriteString("Acting: " + active.Name + "\n\n")
	} else {
		content.WriteString("\n\n")
	}

	pcs := 0
	foes := 0
	for _, c := range m.enc.Combatants {
		if c.IsPC {
			pcs++
		} else {
			foes++
		}
	}
	content.WriteString(fmt.Sprintf("Party: %d\nEnemies: %d\n\n", pcs, foes))

	report := m.enc.Difficulty()
	content.WriteString("Difficulty:\n")
	content.WriteString(fmt.Sprintf("%s (%d XP)\n\n", titleCaser.String(report.Difficulty), report.TotalXP))

	if m.offline {
		content.WriteString(errorStyle.Render("API offline") + "\n")
		content.WriteString("Save/load may fail.\n\n")
	}

	if m.enc.Notes != "" {
		content.WriteString("Notes:\n")
		width := m.metaViewport.Width - 2
		if width < 10 {
			width = 10
		}
		content.WriteString(wordwrap.String(m.enc.Notes, width) + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• d/h/t: damage/heal/temp\n")
	content.WriteString("• r/R: roll initiative\n")
	content.WriteString("• s: sort, n: next turn\n")
	content.WriteString("• S/L: save/load\n")
	content.WriteString("• ?: all keys\n")

	return content.String()
}

func (m *TrackerUI) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.refresh()
}

func (m *TrackerUI) clampCursor() {
	if m.cursor >= len(m.enc.Combatants) {
		m.cursor = len(m.enc.Combatants) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected resolves the cursor to a combatant by position. Mutating
// operations re-resolve by id instead, so a stale cursor never edits
// the wrong combatant.
func (m *TrackerUI) selected() *encounter.Combatant {
	if m.cursor < 0 || m.cursor >= len(m.enc.Combatants) {
		return nil
	}
	return &m.enc.Combatants[m.cursor]
}

func (m *TrackerUI) setStatus(s string) {
	m.status = s
	m.statusIsError = false
}

func (m *TrackerUI) setError(s string) {
	m.status = s
	m.statusIsError = true
}

func (m *TrackerUI) copyToClipboard() {
	data, err := json.MarshalIndent(m.enc.Export(m.name), "", "  ")
	if err != nil {
		m.setError(fmt.Sprintf("Export failed: %v", err))
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.setError(fmt.Sprintf("Clipboard copy failed: %v", err))
		return
	}
	m.setStatus("Copied encounter JSON to clipboard")
}

func (m *TrackerUI) exportToFile(name string) {
	data, err := json.MarshalIndent(m.enc.Export(name), "", "  ")
	if err != nil {
		m.setError(fmt.Sprintf("Export failed: %v", err))
		return
	}
	filename := encounter.ExportFilename(name)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		m.setError(fmt.Sprintf("Export failed: %v", err))
		return
	}
	m.name = name
	m.setStatus(fmt.Sprintf("Exported to %s", filename))
}

func (m TrackerUI) loadMonsters() tea.Cmd {
	return func() tea.Msg {
		names, ids, err := listMonsters(m.client, m.config.APIBaseURL)
		return monstersLoadedMsg{names, ids, err}
	}
}

func (m TrackerUI) loadPartyMembers() tea.Cmd {
	return func() tea.Msg {
		names, ids, err := listPartyMembers(m.client, m.config.APIBaseURL)
		return pcsLoadedMsg{names, ids, err}
	}
}

func (m TrackerUI) loadSavedList() tea.Cmd {
	return func() tea.Msg {
		snaps, err := listEncounters(m.client, m.config.APIBaseURL)
		return savedListMsg{snaps, err}
	}
}

func (m TrackerUI) stampMonster(id string) tea.Cmd {
	return func() tea.Msg {
		monster, err := getMonster(m.client, m.config.APIBaseURL, id)
		if err != nil {
			return combatantStampedMsg{err: err}
		}
		return combatantStampedMsg{combatant: monster.Combatant()}
	}
}

func (m TrackerUI) stampPartyMember(id string) tea.Cmd {
	return func() tea.Msg {
		spec, err := getPartyMember(m.client, m.config.APIBaseURL, id)
		if err != nil {
			return combatantStampedMsg{err: err}
		}
		member, err := party.NewMember(spec)
		if err != nil {
			return combatantStampedMsg{err: fmt.Errorf("invalid PC sheet: %w", err)}
		}
		return combatantStampedMsg{combatant: member.Combatant()}
	}
}

func (m TrackerUI) saveCurrent(name string) tea.Cmd {
	snap := m.enc.Snapshot(name)
	return func() tea.Msg {
		saved, err := saveEncounter(m.client, m.config.APIBaseURL, snap)
		return encounterSavedMsg{saved, err}
	}
}

func (m TrackerUI) fetchEncounter(slug string) tea.Cmd {
	return func() tea.Msg {
		snap, err := getEncounter(m.client, m.config.APIBaseURL, slug)
		return encounterLoadedMsg{snap, err}
	}
}

func (m TrackerUI) removeSaved(name string) tea.Cmd {
	slug := encounter.Slug(name)
	return func() tea.Msg {
		err := deleteEncounter(m.client, m.config.APIBaseURL, slug)
		return encounterDeletedMsg{name, err}
	}
}
