package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jwebster45206/initiative-tracker/pkg/encounter"
)

type modalState struct {
	loading  bool
	err      error
	items    []string
	ids      map[string]string
	snaps    []encounter.Snapshot
	selected int
}

func (m TrackerUI) openBestiaryModal() (tea.Model, tea.Cmd) {
	m.modal = modalState{loading: true}
	m.mode = modeBestiary
	return m, m.loadMonsters()
}

func (m TrackerUI) openPartyModal() (tea.Model, tea.Cmd) {
	m.modal = modalState{loading: true}
	m.mode = modeParty
	return m, m.loadPartyMembers()
}

func (m TrackerUI) openLoadModal() (tea.Model, tea.Cmd) {
	m.modal = modalState{loading: true}
	m.mode = modeLoad
	return m, m.loadSavedList()
}

func (m TrackerUI) updateListModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case monstersLoadedMsg:
		m.modal.loading = false
		m.modal.err = msg.err
		m.modal.items = msg.names
		m.modal.ids = msg.ids
		m.modal.selected = 0
		return m, nil

	case pcsLoadedMsg:
		m.modal.loading = false
		m.modal.err = msg.err
		m.modal.items = msg.names
		m.modal.ids = msg.ids
		m.modal.selected = 0
		return m, nil

	case savedListMsg:
		m.modal.loading = false
		m.modal.err = msg.err
		m.modal.snaps = msg.snaps
		m.modal.items = make([]string, 0, len(msg.snaps))
		for _, s := range msg.snaps {
			m.modal.items = append(m.modal.items, fmt.Sprintf("%s (round %d, %d combatants)", s.Name, s.Round, len(s.Combatants)))
		}
		if m.modal.selected >= len(m.modal.items) {
			m.modal.selected = 0
		}
		return m, nil

	case combatantStampedMsg:
		m.modal.loading = false
		if msg.err != nil {
			m.modal.err = msg.err
			return m, nil
		}
		m.enc.Add(msg.combatant)
		m.cursor = len(m.enc.Combatants) - 1
		m.mode = modeRoster
		m.setStatus(fmt.Sprintf("Added %s", msg.combatant.Name))
		m.refresh()
		return m, nil

	case encounterLoadedMsg:
		m.modal.loading = false
		if msg.err != nil {
			m.modal.err = msg.err
			return m, nil
		}
		if msg.snap == nil {
			m.modal.err = fmt.Errorf("encounter not found")
			return m, nil
		}
		m.enc = encounter.FromSnapshot(*msg.snap)
		m.name = msg.snap.Name
		m.cursor = m.enc.CurrentTurn
		m.clampCursor()
		m.mode = modeRoster
		m.setStatus(fmt.Sprintf("Loaded %q", msg.snap.Name))
		m.refresh()
		return m, nil

	case encounterDeletedMsg:
		if msg.err != nil {
			m.modal.loading = false
			m.modal.err = msg.err
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Deleted %q", msg.name))
		m.modal.loading = true
		return m, m.loadSavedList()

	case tea.KeyMsg:
		if m.modal.loading {
			if msg.Type == tea.KeyCtrlC {
				m.mode = modeQuit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			m.mode = modeQuit
			return m, nil
		case tea.KeyEsc:
			m.mode = modeRoster
			m.refresh()
			return m, nil
		case tea.KeyUp:
			if m.modal.selected > 0 {
				m.modal.selected--
			}
			return m, nil
		case tea.KeyDown:
			if m.modal.selected < len(m.modal.items)-1 {
				m.modal.selected++
			}
			return m, nil
		case tea.KeyEnter:
			return m.chooseModalItem()
		}

		switch msg.String() {
		case "k":
			if m.modal.selected > 0 {
				m.modal.selected--
			}
		case "j":
			if m.modal.selected < len(m.modal.items)-1 {
				m.modal.selected++
			}
		case "x":
			if m.mode == modeLoad && m.modal.selected < len(m.modal.snaps) {
				name := m.modal.snaps[m.modal.selected].Name
				m.modal.loading = true
				return m, m.removeSaved(name)
			}
		}
		return m, nil
	}

	return m, nil
}

func (m TrackerUI) chooseModalItem() (tea.Model, tea.Cmd) {
	if len(m.modal.items) == 0 {
		return m, nil
	}

	switch m.mode {
	case modeBestiary:
		name := m.modal.items[m.modal.selected]
		m.modal.loading = true
		return m, m.stampMonster(m.modal.ids[name])
	case modeParty:
		name := m.modal.items[m.modal.selected]
		m.modal.loading = true
		return m, m.stampPartyMember(m.modal.ids[name])
	case modeLoad:
		if m.modal.selected < len(m.modal.snaps) {
			slug := encounter.Slug(m.modal.snaps[m.modal.selected].Name)
			m.modal.loading = true
			return m, m.fetchEncounter(slug)
		}
	}
	return m, nil
}

func (m TrackerUI) renderListModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	title := "Bestiary"
	hint := "Use ↑/↓ to navigate, Enter to add, Esc to close"
	empty := "No monster templates available."
	switch m.mode {
	case modeParty:
		title = "Party"
		empty = "No party members available."
	case modeLoad:
		title = "Saved Encounters"
		hint = "Use ↑/↓ to navigate, Enter to load, x to delete, Esc to close"
		empty = "No saved encounters yet."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(title))
	content.WriteString("\n\n")

	switch {
	case m.modal.loading:
		content.WriteString(statusStyle.Render("Loading..."))
	case m.modal.err != nil:
		content.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.modal.err)))
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Esc to close"))
	case len(m.modal.items) == 0:
		content.WriteString(empty)
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Esc to close"))
	default:
		for i, item := range m.modal.items {
			if i == m.modal.selected {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", item)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", item)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render(hint))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m TrackerUI) updateNotes(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.mode = modeQuit
			return m, nil
		case tea.KeyEsc:
			m.enc.Notes = m.notes.Value()
			m.notes.Blur()
			m.mode = modeRoster
			m.setStatus("Notes updated")
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m TrackerUI) renderNotesEditor() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Encounter Notes"))
	content.WriteString("\n\n")
	content.WriteString(m.notes.View())
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Esc to save and close"))

	modal := modalStyle.Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m TrackerUI) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.Type == tea.KeyCtrlC {
			m.mode = modeQuit
			return m, nil
		}
		m.mode = modeRoster
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m TrackerUI) renderHelp() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	lines := []string{
		"↑/k  ↓/j     select combatant",
		"a            add combatant",
		"m            add from bestiary",
		"p            add party member",
		"d / h / t    damage / heal / temporary HP",
		"r / R        roll initiative (one / all)",
		"s            sort by initiative",
		"n            next turn",
		"u            reset to round 1",
		"N / i / A    rename / set initiative / set AC",
		"c / x        add / remove condition",
		"D            remove combatant",
		"S / L        save / load via API",
		"E / I        export / import JSON file",
		"y            copy JSON to clipboard",
		"o            edit notes",
		"q            quit",
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Keys"))
	content.WriteString("\n\n")
	content.WriteString(strings.Join(lines, "\n"))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press any key to close"))

	modal := modalStyle.Width(56).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m TrackerUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.mode = modeRoster
				m.refresh()
				return m, nil
			}
		}
	}

	return m, nil
}

func (m TrackerUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Tracker?"))
	content.WriteString("\n\n")
	content.WriteString("Anything not saved or exported is lost on quit.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}
