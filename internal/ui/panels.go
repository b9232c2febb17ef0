package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/sahilm/fuzzy"

	"github.com/yash-srivastava19/docstudio/internal/notes"
	"github.com/yash-srivastava19/docstudio/internal/settings"
)

// ── Preview ───────────────────────────────────────────────────────────────────

func (a *App) renderPreview() {
	body := a.editor.ActiveContent()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, a.preview.Width-2)),
	)
	rendered := body
	if err == nil {
		if out, err2 := r.Render(body); err2 == nil {
			rendered = out
		}
	}
	a.preview.SetContent(rendered)
	a.preview.GotoTop()
}

func (a *App) updatePreview(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return a.quit()
	case "q", "esc", "ctrl+p":
		a.state = stateEditor
	case "j", "down":
		a.preview.LineDown(1)
	case "k", "up":
		a.preview.LineUp(1)
	case "g", "home":
		a.preview.GotoTop()
	case "G", "end":
		a.preview.GotoBottom()
	case "ctrl+d", "pgdown":
		a.preview.LineDown(a.preview.Height / 2)
	case "ctrl+u", "pgup":
		a.preview.LineUp(a.preview.Height / 2)
	}
	return nil
}

// ── Search ────────────────────────────────────────────────────────────────────

func (a *App) openSearch() tea.Cmd {
	a.state = stateSearch
	a.searchInput.SetValue("")
	a.searchInput.Focus()
	a.searchQuery = ""
	a.searchCursor = 0
	a.runSearch("")
	return textinput.Blink
}

func (a *App) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return a.quit()

	case "esc":
		a.state = stateEditor
		a.searchInput.Blur()
		return nil

	case "enter":
		docs := a.editor.Documents()
		if a.searchCursor < len(a.matches) {
			d := docs[a.matches[a.searchCursor]]
			a.cursors[d.ID] = 0
			a.focus(d.ID)
		}
		a.state = stateEditor
		a.searchInput.Blur()
		return nil

	case "ctrl+n", "down":
		if a.searchCursor < len(a.matches)-1 {
			a.searchCursor++
		}
		return nil

	case "ctrl+p", "up":
		if a.searchCursor > 0 {
			a.searchCursor--
		}
		return nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	q := a.searchInput.Value()
	if q != a.searchQuery {
		a.searchQuery = q
		a.searchCursor = 0
		a.runSearch(q)
	}
	return cmd
}

// runSearch fills matches with document indices, best match first.
func (a *App) runSearch(query string) {
	docs := a.editor.Documents()
	a.matches = a.matches[:0]
	if query == "" {
		for i := range docs {
			a.matches = append(a.matches, i)
		}
		return
	}
	targets := make([]string, len(docs))
	for i, d := range docs {
		targets[i] = d.Content
	}
	for _, m := range fuzzy.Find(query, targets) {
		a.matches = append(a.matches, m.Index)
	}
}

// ── Settings ──────────────────────────────────────────────────────────────────

var settingsLabels = []string{"API endpoint", "API key", "Model", "Temperature", "Max tokens"}

var settingsPlaceholders = []string{
	"https://api.openai.com/v1/chat/completions",
	"sk-...",
	"gpt-4o-mini",
	"0.7",
	"100",
}

func (a *App) openSettings() tea.Cmd {
	s, _ := a.settings.API()
	vals := []string{s.APIEndpoint, s.APIKey, s.Model, s.Temperature, s.MaxTokens}
	for i := range a.fields {
		a.fields[i].SetValue(vals[i])
		a.fields[i].Blur()
	}
	a.fieldFocus = 0
	a.fields[0].Focus()
	a.state = stateSettings
	return textinput.Blink
}

func (a *App) formSettings() settings.APISettings {
	v := func(i int) string { return strings.TrimSpace(a.fields[i].Value()) }
	return settings.APISettings{
		APIEndpoint: v(0),
		APIKey:      v(1),
		Model:       v(2),
		Temperature: v(3),
		MaxTokens:   v(4),
	}
}

func (a *App) focusField(d int) tea.Cmd {
	a.fields[a.fieldFocus].Blur()
	a.fieldFocus = (a.fieldFocus + d + len(a.fields)) % len(a.fields)
	return a.fields[a.fieldFocus].Focus()
}

func (a *App) updateSettings(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return a.quit()

	case "esc":
		a.state = stateEditor
		return nil

	case "tab", "down":
		return a.focusField(1)

	case "shift+tab", "up":
		return a.focusField(-1)

	case "enter", "ctrl+s":
		s := a.formSettings()
		if err := s.Validate(); err != nil {
			a.setStatus(err.Error(), true)
			return nil
		}
		if err := a.settings.SaveAPI(s); err != nil {
			a.setStatus("save failed: "+err.Error(), true)
			return nil
		}
		a.setStatus("settings saved", false)
		a.state = stateEditor
		return nil

	case "ctrl+t":
		if a.testing {
			return nil
		}
		a.testing = true
		a.setStatus("testing connection...", false)
		return a.cmdTestConnection(a.formSettings())
	}

	var cmd tea.Cmd
	a.fields[a.fieldFocus], cmd = a.fields[a.fieldFocus].Update(msg)
	return cmd
}

// ── Help ──────────────────────────────────────────────────────────────────────

func (a *App) updateHelp(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return a.quit()
	case "q", "esc", "f1":
		a.state = a.prevState
	}
	return nil
}

// searchLabel is one line of the search result list.
func searchLabel(d *notes.Document, width int) string {
	if d.IsBlank() {
		return "(empty)"
	}
	title := notes.Title(d.Content)
	return truncate(title, width)
}
