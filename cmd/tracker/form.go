package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jwebster45206/initiative-tracker/pkg/encounter"
)

const (
	fieldName = iota
	fieldMaxHP
	fieldAC
	fieldInitiative
	fieldLevel
	fieldXP
	fieldIsPC
	fieldCount
)

var addFormLabels = []string{
	"Name",
	"Max HP",
	"Armor class",
	"Initiative (blank to roll)",
	"Level (PCs only)",
	"XP award (monsters only)",
}

type addForm struct {
	inputs []textinput.Model
	focus  int
	isPC   bool
	err    string
}

func newAddForm() addForm {
	placeholders := []string{"Gnoll Pack Leader", "20", "14", "", "", ""}
	inputs := make([]textinput.Model, len(placeholders))
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 50
		ti.Width = 30
		inputs[i] = ti
	}
	return addForm{inputs: inputs}
}

func (f *addForm) focusField(idx int) {
	if idx >= fieldCount {
		idx = 0
	}
	if idx < 0 {
		idx = fieldCount - 1
	}
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (m TrackerUI) openAddForm() (tea.Model, tea.Cmd) {
	m.form = newAddForm()
	m.form.focusField(fieldName)
	m.mode = modeAdd
	return m, textinput.Blink
}

func (m TrackerUI) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.mode = modeQuit
			return m, nil
		case tea.KeyEsc:
			m.mode = modeRoster
			m.refresh()
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			m.form.focusField(m.form.focus + 1)
			return m, textinput.Blink
		case tea.KeyShiftTab, tea.KeyUp:
			m.form.focusField(m.form.focus - 1)
			return m, textinput.Blink
		case tea.KeyEnter:
			if m.form.focus == fieldIsPC {
				return m.submitAddForm()
			}
			m.form.focusField(m.form.focus + 1)
			return m, textinput.Blink
		}

		if m.form.focus == fieldIsPC {
			switch msg.String() {
			case " ":
				m.form.isPC = !m.form.isPC
			case "y":
				m.form.isPC = true
			case "n":
				m.form.isPC = false
			}
			return m, nil
		}
	}

	if m.form.focus < len(m.form.inputs) {
		var cmd tea.Cmd
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m TrackerUI) submitAddForm() (tea.Model, tea.Cmd) {
	f := &m.form

	name := strings.TrimSpace(f.inputs[fieldName].Value())
	if err := encounter.ValidateName(name); err != nil {
		f.err = err.Error()
		f.focusField(fieldName)
		return m, textinput.Blink
	}

	maxHP, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldMaxHP].Value()))
	if err != nil || maxHP < 1 {
		f.err = "Max HP must be a positive number"
		f.focusField(fieldMaxHP)
		return m, textinput.Blink
	}

	ac, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldAC].Value()))
	if err != nil {
		f.err = "AC must be a number"
		f.focusField(fieldAC)
		return m, textinput.Blink
	}
	if err := encounter.ValidateAC(ac); err != nil {
		f.err = err.Error()
		f.focusField(fieldAC)
		return m, textinput.Blink
	}

	var initiative int
	if raw := strings.TrimSpace(f.inputs[fieldInitiative].Value()); raw == "" {
		initiative = m.roller.Initiative()
	} else {
		v, err := strconv.Atoi(raw)
		if err != nil {
			f.err = "Initiative must be a number"
			f.focusField(fieldInitiative)
			return m, textinput.Blink
		}
		if err := encounter.ValidateInitiative(v); err != nil {
			f.err = err.Error()
			f.focusField(fieldInitiative)
			return m, textinput.Blink
		}
		initiative = v
	}

	c := encounter.NewCombatant(name, maxHP, ac)
	c.Initiative = initiative
	c.IsPC = f.isPC

	if f.isPC {
		if raw := strings.TrimSpace(f.inputs[fieldLevel].Value()); raw != "" {
			level, err := strconv.Atoi(raw)
			if err != nil {
				f.err = "Level must be a number"
				f.focusField(fieldLevel)
				return m, textinput.Blink
			}
			c.Level = &level
		}
	} else {
		if raw := strings.TrimSpace(f.inputs[fieldXP].Value()); raw != "" {
			xp, err := strconv.Atoi(raw)
			if err != nil {
				f.err = "XP must be a number"
				f.focusField(fieldXP)
				return m, textinput.Blink
			}
			c.XP = &xp
		}
	}

	m.enc.Add(c)
	m.cursor = len(m.enc.Combatants) - 1
	m.mode = modeRoster
	m.setStatus(fmt.Sprintf("Added %s (initiative %d)", c.Name, c.Initiative))
	m.refresh()
	return m, nil
}

func (m TrackerUI) renderAddForm() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Add Combatant"))
	content.WriteString("\n\n")

	for i, input := range m.form.inputs {
		marker := "  "
		if m.form.focus == i {
			marker = "▶ "
		}
		content.WriteString(marker + addFormLabels[i] + "\n")
		content.WriteString("  " + input.View() + "\n")
	}

	pcMark := "[ ]"
	if m.form.isPC {
		pcMark = "[x]"
	}
	marker := "  "
	if m.form.focus == fieldIsPC {
		marker = "▶ "
	}
	content.WriteString(fmt.Sprintf("\n%s%s Player character (space toggles)\n", marker, pcMark))

	if m.form.err != "" {
		content.WriteString("\n" + errorStyle.Render(m.form.err))
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Tab to move, Enter on the last field to add, Esc to cancel"))

	modal := modalStyle.Width(56).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

type promptKind int

const (
	promptDamage promptKind = iota
	promptHeal
	promptTempHP
	promptRename
	promptInitiative
	promptArmorClass
	promptAddCondition
	promptRemoveCondition
	promptSaveName
	promptExportName
	promptImportPath
)

func (m TrackerUI) openPrompt(kind promptKind, title, placeholder, initial string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.promptTitle = title
	m.promptContext = ""
	m.inputError = ""
	m.targetID = ""
	if c := m.selected(); c != nil {
		m.targetID = c.ID
		if kind == promptRemoveCondition {
			m.promptContext = conditionListing(*c)
		}
	}
	m.input.Placeholder = placeholder
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
	m.mode = modePrompt
	return m, textinput.Blink
}

func (m *TrackerUI) closePrompt() {
	m.input.Blur()
	m.input.Reset()
	m.inputError = ""
	m.mode = modeRoster
	m.refresh()
}

func (m TrackerUI) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.mode = modeQuit
			return m, nil
		case tea.KeyEsc:
			m.closePrompt()
			return m, nil
		case tea.KeyEnter:
			return m.commitPrompt()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TrackerUI) commitPrompt() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.prompt {
	case promptDamage:
		n, ok := m.promptNumber(value)
		if !ok {
			return m, nil
		}
		c := m.enc.FindByID(m.targetID)
		if c == nil {
			m.closePrompt()
			return m, nil
		}
		m.enc.DamageCombatant(c.ID, n)
		if c.IsDown() {
			m.setStatus(fmt.Sprintf("%s takes %d damage and goes down", c.Name, n))
		} else {
			m.setStatus(fmt.Sprintf("%s takes %d damage", c.Name, n))
		}
		m.closePrompt()
		return m, nil

	case promptHeal:
		n, ok := m.promptNumber(value)
		if !ok {
			return m, nil
		}
		c := m.enc.FindByID(m.targetID)
		if c == nil {
			m.closePrompt()
			return m, nil
		}
		m.enc.HealCombatant(c.ID, n)
		m.setStatus(fmt.Sprintf("%s heals %d", c.Name, n))
		m.closePrompt()
		return m, nil

	case promptTempHP:
		n, ok := m.promptNumber(value)
		if !ok {
			return m, nil
		}
		c := m.enc.FindByID(m.targetID)
		if c == nil {
			m.closePrompt()
			return m, nil
		}
		m.enc.SetTempHP(c.ID, n)
		m.setStatus(fmt.Sprintf("%s has %d temporary HP", c.Name, c.TempHP))
		m.closePrompt()
		return m, nil

	case promptRename:
		if err := m.enc.RenameCombatant(m.targetID, value); err != nil {
			m.inputError = err.Error()
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Renamed to %s", value))
		m.closePrompt()
		return m, nil

	case promptInitiative:
		n, ok := m.promptNumber(value)
		if !ok {
			return m, nil
		}
		if err := m.enc.SetInitiative(m.targetID, n); err != nil {
			m.inputError = err.Error()
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Initiative set to %d", n))
		m.closePrompt()
		return m, nil

	case promptArmorClass:
		n, ok := m.promptNumber(value)
		if !ok {
			return m, nil
		}
		if err := m.enc.SetArmorClass(m.targetID, n); err != nil {
			m.inputError = err.Error()
			return m, nil
		}
		m.setStatus(fmt.Sprintf("AC set to %d", n))
		m.closePrompt()
		return m, nil

	case promptAddCondition:
		if value == "" {
			m.inputError = "Enter a condition name"
			return m, nil
		}
		c := m.enc.FindByID(m.targetID)
		if c == nil {
			m.closePrompt()
			return m, nil
		}
		name := value
		var duration *int
		fields := strings.Fields(value)
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
				name = strings.Join(fields[:len(fields)-1], " ")
				duration = &n
			}
		}
		c.AddCondition(encounter.Condition{Name: name, Duration: duration})
		m.setStatus(fmt.Sprintf("%s is now %s", c.Name, titleCaser.String(name)))
		m.closePrompt()
		return m, nil

	case promptRemoveCondition:
		n, ok := m.promptNumber(value)
		if !ok {
			return m, nil
		}
		c := m.enc.FindByID(m.targetID)
		if c == nil {
			m.closePrompt()
			return m, nil
		}
		if n < 1 || n > len(c.Conditions) {
			m.inputError = fmt.Sprintf("Enter a number between 1 and %d", len(c.Conditions))
			return m, nil
		}
		removed := c.Conditions[n-1].Name
		c.RemoveConditionAt(n - 1)
		m.setStatus(fmt.Sprintf("%s is no longer %s", c.Name, titleCaser.String(removed)))
		m.closePrompt()
		return m, nil

	case promptSaveName:
		if err := encounter.ValidateName(value); err != nil {
			m.inputError = err.Error()
			return m, nil
		}
		m.closePrompt()
		m.setStatus(fmt.Sprintf("Saving %q...", value))
		return m, m.saveCurrent(value)

	case promptExportName:
		if err := encounter.ValidateName(value); err != nil {
			m.inputError = err.Error()
			return m, nil
		}
		m.closePrompt()
		m.exportToFile(value)
		m.refresh()
		return m, nil

	case promptImportPath:
		if value == "" {
			m.inputError = "Enter a file path"
			return m, nil
		}
		data, err := os.ReadFile(value)
		if err != nil {
			m.inputError = fmt.Sprintf("Cannot read file: %v", err)
			return m, nil
		}
		imported, err := encounter.DecodeImport(data)
		if err != nil {
			m.inputError = fmt.Sprintf("Not a valid encounter file: %v", err)
			return m, nil
		}
		m.enc = imported.Encounter()
		m.name = imported.Name
		m.cursor = 0
		m.closePrompt()
		m.setStatus(fmt.Sprintf("Imported %q (%d combatants)", imported.Name, len(m.enc.Combatants)))
		return m, nil
	}

	return m, nil
}

func (m *TrackerUI) promptNumber(value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		m.inputError = "Enter a whole number"
		return 0, false
	}
	return n, true
}

func conditionListing(c encounter.Combatant) string {
	lines := make([]string, 0, len(c.Conditions))
	for i, cond := range c.Conditions {
		label := titleCaser.String(cond.Name)
		if cond.Duration != nil {
			label = fmt.Sprintf("%s (%d rounds)", label, *cond.Duration)
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, label))
	}
	return strings.Join(lines, "\n")
}

func (m TrackerUI) renderPrompt() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(m.promptTitle))
	content.WriteString("\n\n")
	if m.promptContext != "" {
		content.WriteString(m.promptContext + "\n\n")
	}
	content.WriteString(m.input.View())
	if m.inputError != "" {
		content.WriteString("\n\n" + errorStyle.Render(m.inputError))
	}
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Enter to confirm, Esc to cancel"))

	modal := modalStyle.Width(56).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}
