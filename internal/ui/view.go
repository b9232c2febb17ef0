package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yash-srivastava19/docstudio/internal/draft"
)

func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}
	switch a.state {
	case stateEditor:
		return a.viewEditor()
	case statePreview:
		return a.viewPreview()
	case stateSearch:
		return a.viewSearch()
	case stateSettings:
		return a.viewSettings()
	case stateHelp:
		return a.viewHelp()
	}
	return ""
}

func (a *App) divider() string {
	return styleDivider.Render(strings.Repeat("─", a.width))
}

func (a *App) viewEditor() string {
	var b strings.Builder

	docs := a.editor.Documents()
	words := 0
	for _, d := range docs {
		words += wordCount(d.Content)
	}
	left := styleTitle.Render("docstudio") + styleDivider.Render("  ·  ") +
		styleSubtitle.Render(fmt.Sprintf("%d docs · %d words", len(docs), words))
	right := a.actionButton() + "  " + a.suggestionBadge()
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	b.WriteString(left + strings.Repeat(" ", max(1, gap)) + right + "\n")
	b.WriteString(a.divider() + "\n")

	b.WriteString(a.viewport.View() + "\n")
	b.WriteString(a.divider() + "\n")
	b.WriteString(a.statusLine("  ctrl+o " + a.editor.Mode().Label() + "  tab next  ctrl+f search  ctrl+p preview  ctrl+s settings  f1 help"))
	return b.String()
}

func (a *App) actionButton() string {
	label := "[ " + a.editor.Mode().String() + " ]"
	switch a.editor.Mode() {
	case draft.ModeStop:
		return styleButtonStop.Render(label)
	case draft.ModeRevert:
		return styleButtonRevert.Render(label)
	default:
		return styleButton.Render(label)
	}
}

func (a *App) suggestionBadge() string {
	if a.editor.SuggestionsEnabled() {
		return styleAILabel.Render("AI ✓")
	}
	return styleDimItem.Render("AI ·")
}

func (a *App) statusLine(hint string) string {
	if a.statusMsg == "" {
		return styleHint.Render(hint)
	}
	if a.statusIsError {
		return styleError.Render("  " + a.statusMsg)
	}
	return styleSuccess.Render("  " + a.statusMsg)
}

func (a *App) paneWidth() int {
	w := a.cfg.EditorWidth
	if a.width > 0 && a.width < w {
		w = a.width
	}
	return max(w, 10)
}

// renderPanes draws every document box and reports the first and last line of
// the active one.
func (a *App) renderPanes() (string, int, int) {
	w := a.paneWidth()
	var boxes []string
	line, top, bottom := 0, 0, 0
	for _, p := range a.editor.Panes() {
		style := stylePane
		body := p.Content
		switch {
		case p.Busy:
			style = stylePaneBusy
		case p.Active:
			style = stylePaneActive
		}
		if p.Active {
			body = withCursor(p.Content, a.cursors[p.ID])
		} else if strings.TrimSpace(body) == "" {
			body = styleDimItem.Render("…")
		}
		box := style.Width(w - 2).Height(draft.Height(p.Content, w-4)).Render(body)
		h := lipgloss.Height(box)
		if p.Active {
			top, bottom = line, line+h
		}
		line += h
		boxes = append(boxes, box)
	}
	return strings.Join(boxes, "\n"), top, bottom
}

// syncViewport refreshes the pane viewport and scrolls the active box into view.
func (a *App) syncViewport() {
	content, top, bottom := a.renderPanes()
	a.viewport.SetContent(content)
	switch {
	case top < a.viewport.YOffset:
		a.viewport.SetYOffset(top)
	case bottom > a.viewport.YOffset+a.viewport.Height:
		a.viewport.SetYOffset(bottom - a.viewport.Height)
	}
}

func withCursor(text string, cursor int) string {
	r := []rune(text)
	c := clampCursor(text, cursor)
	if c == len(r) || r[c] == '\n' {
		return string(r[:c]) + styleCursor.Render(" ") + string(r[c:])
	}
	return string(r[:c]) + styleCursor.Render(string(r[c])) + string(r[c+1:])
}

func (a *App) viewPreview() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("docstudio") + styleDivider.Render("  —  ") + styleSubtitle.Render("preview") + "\n")
	b.WriteString(a.divider() + "\n")
	b.WriteString(a.preview.View() + "\n")
	b.WriteString(a.divider() + "\n")
	b.WriteString(styleHint.Render(fmt.Sprintf("  j/k scroll  g/G top/bottom  Esc back  %3.f%%", a.preview.ScrollPercent()*100)))
	return b.String()
}

func (a *App) viewSearch() string {
	var b strings.Builder
	w := a.width
	docs := a.editor.Documents()

	b.WriteString(styleTitle.Render("docstudio") + styleDivider.Render("  /  ") + styleSubtitle.Render("search") + "\n")
	b.WriteString(a.divider() + "\n")
	b.WriteString(styleInputActive.Width(w-4).Render(a.searchInput.View()) + "\n\n")

	listH := max(1, a.height-8)
	if len(a.matches) == 0 {
		b.WriteString(styleDimItem.Render("  no matches") + "\n")
	}
	for i, idx := range a.matches {
		if i >= listH {
			break
		}
		d := docs[idx]
		label := fmt.Sprintf("%2d  %s", idx+1, searchLabel(d, w-10))
		if i == a.searchCursor {
			b.WriteString("  " + styleSelectedItem.Render("▸ "+label) + "\n")
		} else {
			b.WriteString("    " + styleNormalItem.Render(label) + "\n")
		}
	}
	b.WriteString("\n" + a.divider() + "\n")
	b.WriteString(styleHint.Render("  type to filter  ↑/↓ navigate  Enter focus  Esc cancel"))
	return b.String()
}

func (a *App) viewSettings() string {
	var b strings.Builder
	w := a.width

	b.WriteString(styleTitle.Render("docstudio") + styleDivider.Render("  —  ") + styleSubtitle.Render("API settings") + "\n")
	b.WriteString(a.divider() + "\n\n")
	for i, f := range a.fields {
		b.WriteString(styleHint.Render("  "+settingsLabels[i]+":") + "\n")
		style := styleInputBorder
		if i == a.fieldFocus {
			style = styleInputActive
		}
		b.WriteString(style.Width(w-4).Render(f.View()) + "\n")
	}
	b.WriteString("\n" + a.divider() + "\n")
	b.WriteString(a.statusLine("  tab next field  Enter save  ctrl+t test connection  Esc cancel"))
	return b.String()
}

func (a *App) viewHelp() string {
	help := lipgloss.JoinVertical(lipgloss.Left,
		styleDivider.Render("  EDITOR"),
		"    type           edit the focused document",
		"    Enter ×3       split the document at the cursor",
		"    tab/shift+tab  next / previous document",
		"    ↑/↓ at edge    move into the neighbouring document",
		"    ctrl+o         organize / stop / revert",
		"    ctrl+t         toggle AI suggestions",
		"    ctrl+e         publish document as HTML",
		"    pgup/pgdown    scroll",
		"    ctrl+c         save and quit",
		"",
		styleDivider.Render("  PANELS"),
		"    ctrl+p         markdown preview",
		"    ctrl+f         fuzzy search documents",
		"    ctrl+s         API settings",
		"",
		styleDivider.Render("  NOTES"),
		"    Empty documents are removed when you leave them.",
		"    Suggestions arrive after a pause in typing.",
	)

	var b strings.Builder
	b.WriteString(styleTitle.Render("docstudio") + styleDivider.Render("  —  ") + styleSubtitle.Render("help") + "\n")
	b.WriteString(a.divider() + "\n\n")
	b.WriteString(help + "\n\n")
	b.WriteString(a.divider() + "\n")
	b.WriteString(styleHint.Render("  q / Esc / f1 to close"))
	return b.String()
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

// wordCount counts words in a string.
func wordCount(s string) int {
	return len(strings.Fields(s))
}
