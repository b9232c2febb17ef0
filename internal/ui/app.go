package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/yash-srivastava19/docstudio/internal/ai"
	"github.com/yash-srivastava19/docstudio/internal/config"
	"github.com/yash-srivastava19/docstudio/internal/draft"
	"github.com/yash-srivastava19/docstudio/internal/notes"
	"github.com/yash-srivastava19/docstudio/internal/publish"
	"github.com/yash-srivastava19/docstudio/internal/settings"
)

type appState int

const (
	stateEditor appState = iota
	statePreview
	stateSearch
	stateSettings
	stateHelp
)

// Assistant is the chat-completion backend as the UI uses it.
type Assistant interface {
	ai.Assistant
	Available() bool
	TestConnection(ctx context.Context, s settings.APISettings) error
}

// ── Messages ──────────────────────────────────────────────────────────────────

type saveTickMsg struct{ seq int }

type suggestTickMsg struct{ seq int }

type markerTickMsg struct{ docID string }

type suggestionMsg struct {
	req  draft.SuggestionRequest
	text string
	err  error
}

// Stream messages carry the generation of the rewrite that produced them so
// leftovers from a stopped stream can be told apart from a newer one.
type rewriteChunkMsg struct {
	gen     int
	partial string
	ch      <-chan tea.Msg
}

type rewriteDoneMsg struct {
	gen   int
	final string
	err   error
}

type connTestMsg struct{ err error }

type publishedMsg struct {
	path string
	err  error
}

// ── App struct ────────────────────────────────────────────────────────────────

// App is the main Bubble Tea model.
type App struct {
	cfg      *config.Config
	editor   *draft.Editor
	settings *settings.Store
	ai       Assistant
	log      *zap.Logger

	state     appState
	prevState appState
	width     int
	height    int

	// Panes
	viewport viewport.Model
	cursors  map[string]int

	// Rewrite stream generation
	streamGen int

	// Preview
	preview viewport.Model

	// Search
	searchInput  textinput.Model
	searchQuery  string
	matches      []int
	searchCursor int

	// Settings
	fields     []textinput.Model
	fieldFocus int
	testing    bool

	// Status
	statusMsg     string
	statusIsError bool
}

func New(cfg *config.Config, ed *draft.Editor, st *settings.Store, assistant Assistant, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}

	si := textinput.New()
	si.Placeholder = "search documents..."
	si.CharLimit = 200

	fields := make([]textinput.Model, len(settingsLabels))
	for i := range fields {
		f := textinput.New()
		f.CharLimit = 500
		f.Placeholder = settingsPlaceholders[i]
		fields[i] = f
	}
	fields[1].EchoMode = textinput.EchoPassword

	return &App{
		cfg:         cfg,
		editor:      ed,
		settings:    st,
		ai:          assistant,
		log:         log.Named("ui"),
		viewport:    viewport.New(80, 20),
		preview:     viewport.New(80, 20),
		cursors:     map[string]int{},
		searchInput: si,
		fields:      fields,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("docstudio")
}

// ── Commands ──────────────────────────────────────────────────────────────────

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func listen(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (a *App) cmdSuggest(req draft.SuggestionRequest) tea.Cmd {
	asst := a.ai
	return func() tea.Msg {
		text, err := asst.FetchSuggestion(context.Background(), req.Text)
		return suggestionMsg{req: req, text: text, err: err}
	}
}

// cmdRewrite starts streaming req in the background. Chunks come back through
// a channel that listen drains one message at a time.
func (a *App) cmdRewrite(req *draft.RewriteRequest) tea.Cmd {
	a.streamGen++
	gen := a.streamGen
	ch := make(chan tea.Msg, 8)
	asst := a.ai
	go func() {
		defer close(ch)
		final, err := asst.StreamRewrite(req.Ctx, req.Text, func(partial string) {
			select {
			case ch <- rewriteChunkMsg{gen: gen, partial: partial, ch: ch}:
			case <-req.Ctx.Done():
			}
		})
		ch <- rewriteDoneMsg{gen: gen, final: final, err: err}
	}()
	return listen(ch)
}

func (a *App) cmdTestConnection(s settings.APISettings) tea.Cmd {
	asst := a.ai
	return func() tea.Msg {
		return connTestMsg{err: asst.TestConnection(context.Background(), s)}
	}
}

func (a *App) cmdPublish() tea.Cmd {
	content := a.editor.ActiveContent()
	if strings.TrimSpace(content) == "" {
		a.setStatus("nothing to publish", true)
		return nil
	}
	dir := a.cfg.PublishDir()
	title := notes.Title(content)
	return func() tea.Msg {
		path, err := publish.WriteFile(dir, title, content)
		return publishedMsg{path: path, err: err}
	}
}

// ── Update ────────────────────────────────────────────────────────────────────

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.syncViewport()
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = a.width
		a.viewport.Height = max(1, a.height-4)
		a.preview.Width = a.width - 2
		a.preview.Height = max(1, a.height-4)
		if a.state == statePreview {
			a.renderPreview()
		}

	case saveTickMsg:
		if _, err := a.editor.FlushSave(msg.seq); err != nil {
			a.setStatus("save failed: "+err.Error(), true)
		}

	case suggestTickMsg:
		return a.startSuggestion(msg.seq)

	case suggestionMsg:
		if msg.err != nil {
			if a.editor.FailSuggestion(msg.req, msg.err) {
				return tick(a.cfg.MarkerTTL, markerTickMsg{docID: msg.req.DocID})
			}
			return nil
		}
		a.editor.ApplySuggestion(msg.req, msg.text)

	case markerTickMsg:
		a.editor.ClearFailure(msg.docID)

	case rewriteChunkMsg:
		if msg.gen == a.streamGen {
			a.editor.ApplyChunk(msg.partial)
		}
		return listen(msg.ch)

	case rewriteDoneMsg:
		a.finishRewrite(msg)

	case connTestMsg:
		a.testing = false
		if msg.err != nil {
			a.setStatus("connection failed: "+msg.err.Error(), true)
		} else {
			a.setStatus("connection ok", false)
		}

	case publishedMsg:
		if msg.err != nil {
			a.setStatus("publish failed: "+msg.err.Error(), true)
		} else {
			a.log.Info("published", zap.String("path", msg.path))
			a.setStatus("published to "+msg.path, false)
		}

	case tea.KeyMsg:
		if !a.testing {
			a.statusMsg = ""
		}

		switch a.state {
		case stateEditor:
			return a.updateEditor(msg)
		case statePreview:
			return a.updatePreview(msg)
		case stateSearch:
			return a.updateSearch(msg)
		case stateSettings:
			return a.updateSettings(msg)
		case stateHelp:
			return a.updateHelp(msg)
		}
	}

	return nil
}

// ── Editor ────────────────────────────────────────────────────────────────────

func (a *App) updateEditor(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return a.quit()
	case "tab":
		a.focusBy(1, false)
		return nil
	case "shift+tab":
		a.focusBy(-1, false)
		return nil
	case "ctrl+o":
		return a.pressAction()
	case "ctrl+t":
		a.toggleSuggestions()
		return nil
	case "ctrl+p":
		a.prevState = stateEditor
		a.state = statePreview
		a.renderPreview()
		return nil
	case "ctrl+f":
		return a.openSearch()
	case "ctrl+s":
		return a.openSettings()
	case "ctrl+e":
		return a.cmdPublish()
	case "f1":
		a.prevState = stateEditor
		a.state = stateHelp
		return nil
	case "pgup":
		a.viewport.LineUp(a.viewport.Height)
		return nil
	case "pgdown":
		a.viewport.LineDown(a.viewport.Height)
		return nil
	}

	id := a.editor.Active()
	text := a.editor.ActiveContent()
	cur := a.cursor()

	// Navigation is allowed everywhere, even in a document being rewritten.
	switch key {
	case "left", "right", "up", "down", "home", "end":
		a.editor.HandleKeyDown(id, key, cur)
		a.move(key, text, cur)
		return nil
	}

	if a.editor.Mode() == draft.ModeStop && a.editor.RewritingID() == id {
		a.setStatus("organizing... ctrl+o to stop", false)
		return nil
	}

	switch {
	case key == "enter":
		if a.editor.HandleKeyDown(id, key, cur) {
			a.cursors[a.editor.Active()] = 0
			return nil
		}
		text, cur = insertAt(text, cur, "\n")
	case key == "backspace":
		a.editor.HandleKeyDown(id, key, cur)
		text, cur = backspaceAt(text, cur)
	case key == "delete":
		a.editor.HandleKeyDown(id, key, cur)
		text, cur = deleteAt(text, cur)
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		a.editor.HandleKeyDown(id, key, cur)
		text, cur = insertAt(text, cur, string(msg.Runes))
	default:
		a.editor.HandleKeyDown(id, key, cur)
		return nil
	}
	return a.input(id, text, cur)
}

// input hands edited text to the editor and arms the debounce timers.
func (a *App) input(id, text string, cur int) tea.Cmd {
	res := a.editor.HandleInput(id, text)
	a.cursors[id] = clampCursor(a.editor.ActiveContent(), cur)

	cmds := []tea.Cmd{tick(a.cfg.SaveDebounce, saveTickMsg{seq: res.SaveSeq})}
	if res.SuggestSeq != 0 {
		cmds = append(cmds, tick(a.cfg.SuggestDebounce, suggestTickMsg{seq: res.SuggestSeq}))
	}
	return tea.Batch(cmds...)
}

func (a *App) move(key, text string, cur int) {
	id := a.editor.Active()
	switch key {
	case "left":
		cur--
	case "right":
		cur++
	case "home":
		cur = lineStart(text, cur)
	case "end":
		cur = lineEnd(text, cur)
	case "up":
		next, ok := moveVertical(text, cur, -1)
		if !ok {
			a.focusBy(-1, true)
			return
		}
		cur = next
	case "down":
		next, ok := moveVertical(text, cur, 1)
		if !ok {
			a.focusBy(1, false)
			return
		}
		cur = next
	}
	a.cursors[id] = clampCursor(text, cur)
}

// focusBy moves focus d documents away. atEnd places the cursor at the end of
// the newly focused document instead of the start.
func (a *App) focusBy(d int, atEnd bool) {
	docs := a.editor.Documents()
	i := a.editor.ActiveIndex() + d
	if i < 0 || i >= len(docs) {
		return
	}
	id := docs[i].ID
	if atEnd {
		a.cursors[id] = len([]rune(docs[i].Content))
	} else {
		a.cursors[id] = 0
	}
	a.focus(id)
}

func (a *App) focus(id string) {
	for _, gone := range a.editor.HandleFocus(id) {
		delete(a.cursors, gone)
	}
}

func (a *App) cursor() int {
	return clampCursor(a.editor.ActiveContent(), a.cursors[a.editor.Active()])
}

func (a *App) pressAction() tea.Cmd {
	if a.editor.Mode() == draft.ModeOrganize && !a.ai.Available() {
		a.log.Info("organize skipped, api settings incomplete")
		a.setStatus("set endpoint, key and model first (ctrl+s)", true)
		return nil
	}
	req, err := a.editor.PressAction(context.Background())
	switch {
	case errors.Is(err, draft.ErrEmpty):
		a.setStatus("nothing to organize", true)
	case err != nil:
		a.setStatus(err.Error(), true)
	}
	if req == nil {
		return nil
	}
	return a.cmdRewrite(req)
}

func (a *App) finishRewrite(msg rewriteDoneMsg) {
	if msg.gen != a.streamGen {
		return
	}
	switch {
	case errors.Is(msg.err, context.Canceled):
		// stopped from the keyboard; StopRewrite already ran
	case msg.err != nil:
		a.editor.FailRewrite(msg.err)
		a.setStatus("organize failed", true)
	default:
		if err := a.editor.CompleteRewrite(msg.final); err != nil {
			a.setStatus("save failed: "+err.Error(), true)
		}
	}
}

func (a *App) startSuggestion(seq int) tea.Cmd {
	if !a.ai.Available() {
		a.log.Debug("suggestion skipped, api settings incomplete")
		return nil
	}
	req, ok := a.editor.BeginSuggestion(seq)
	if !ok {
		return nil
	}
	return a.cmdSuggest(req)
}

func (a *App) toggleSuggestions() {
	on := !a.editor.SuggestionsEnabled()
	a.editor.SetSuggestionsEnabled(on)
	if err := a.settings.SetSuggestionsEnabled(on); err != nil {
		a.setStatus("could not store preference: "+err.Error(), true)
		return
	}
	if on {
		a.setStatus("AI suggestions on", false)
	} else {
		a.setStatus("AI suggestions off", false)
	}
}

// quit flushes pending edits. A rewrite still streaming is abandoned and the
// original text restored.
func (a *App) quit() tea.Cmd {
	if a.editor.Mode() == draft.ModeStop {
		a.editor.StopRewrite()
		if err := a.editor.Revert(); err != nil {
			a.log.Warn("revert on quit failed", zap.Error(err))
		}
	}
	if err := a.editor.Flush(); err != nil {
		a.log.Error("flush on quit failed", zap.Error(err))
	}
	return tea.Quit
}

func (a *App) setStatus(msg string, isErr bool) {
	a.statusMsg = msg
	a.statusIsError = isErr
}
