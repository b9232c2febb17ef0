package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash-srivastava19/docstudio/internal/ai"
	"github.com/yash-srivastava19/docstudio/internal/config"
	"github.com/yash-srivastava19/docstudio/internal/draft"
	"github.com/yash-srivastava19/docstudio/internal/kv"
	"github.com/yash-srivastava19/docstudio/internal/notes"
	"github.com/yash-srivastava19/docstudio/internal/settings"
)

type fakeAI struct {
	available  bool
	suggestion string
	suggestErr error
	chunks     []string // cumulative
	block      bool
	streamErr  error
	tested     []settings.APISettings
}

func (f *fakeAI) Available() bool { return f.available }

func (f *fakeAI) FetchSuggestion(ctx context.Context, text string) (string, error) {
	return f.suggestion, f.suggestErr
}

func (f *fakeAI) StreamRewrite(ctx context.Context, text string, onChunk func(string)) (string, error) {
	acc := ""
	for _, c := range f.chunks {
		acc = c
		onChunk(c)
	}
	if f.block {
		<-ctx.Done()
		return acc, ctx.Err()
	}
	return acc, f.streamErr
}

func (f *fakeAI) TestConnection(ctx context.Context, s settings.APISettings) error {
	f.tested = append(f.tested, s)
	return nil
}

type harness struct {
	app   *App
	ai    *fakeAI
	mem   *kv.Memory
	store *notes.Store
}

func newHarness(t *testing.T, contents ...string) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	mem := kv.NewMemory()
	store := notes.NewStore(mem)
	c := store.Load()
	if len(contents) > 0 {
		c = &notes.Collection{}
		for i, s := range contents {
			c.Docs = append(c.Docs, &notes.Document{ID: fmt.Sprintf("doc-%d", i), Content: s})
		}
	}
	fake := &fakeAI{available: true}
	ed := draft.New(c, store, draft.WithSuggestions(true))
	h := &harness{app: New(cfg, ed, settings.NewStore(mem), fake, nil), ai: fake, mem: mem, store: store}
	h.app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.app.Update(msg)
	return cmd
}

func (h *harness) press(k tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: k})
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// drain runs cmd and feeds every message it yields back into the app until
// nothing is left.
func (h *harness) drain(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		cmd = h.send(msg)
	}
}

func (h *harness) content() string { return h.app.editor.ActiveContent() }

func TestTyping_debouncedSave(t *testing.T) {
	h := newHarness(t)
	h.typeText("hi")
	assert.Equal(t, "hi", h.content())
	assert.True(t, h.app.editor.Dirty())

	h.send(saveTickMsg{seq: 1})
	assert.Zero(t, h.mem.Writes(notes.StorageKey), "stale timer must not save")

	h.send(saveTickMsg{seq: 2})
	assert.Equal(t, []string{"hi"}, h.store.Load().Contents())
}

func TestEditing_backspaceAndArrows(t *testing.T) {
	h := newHarness(t, "")
	h.typeText("abc")
	h.press(tea.KeyLeft)
	h.press(tea.KeyBackspace)
	assert.Equal(t, "ac", h.content())
	h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, "a c", h.content())
}

func TestTripleEnterSplits(t *testing.T) {
	h := newHarness(t)
	h.typeText("AAA")
	h.press(tea.KeyEnter)
	h.press(tea.KeyEnter)
	h.press(tea.KeyEnter)

	docs := h.app.editor.Collection().Contents()
	assert.Equal(t, []string{"AAA", ""}, docs)
	assert.Equal(t, 1, h.app.editor.ActiveIndex())
	assert.Equal(t, docs, h.store.Load().Contents(), "split saves immediately")
}

func TestFocusRemovesEmptyDocuments(t *testing.T) {
	h := newHarness(t, "one", "", "two")
	h.press(tea.KeyTab)
	assert.Equal(t, "doc-1", h.app.editor.Active())
	assert.Len(t, h.app.editor.Documents(), 3, "active empty doc is kept")

	h.press(tea.KeyTab)
	assert.Equal(t, []string{"one", "two"}, h.app.editor.Collection().Contents())
	assert.Equal(t, "doc-2", h.app.editor.Active())

	h.press(tea.KeyShiftTab)
	assert.Equal(t, "doc-0", h.app.editor.Active())
}

func TestUpArrowAtTopMovesToPreviousDocument(t *testing.T) {
	h := newHarness(t, "first", "second")
	h.press(tea.KeyTab)
	h.press(tea.KeyUp)
	assert.Equal(t, "doc-0", h.app.editor.Active())
	assert.Equal(t, len("first"), h.app.cursor())
}

func TestOrganize_completeAndRevert(t *testing.T) {
	h := newHarness(t, "messy text")
	h.ai.chunks = []string{"Hi", "Hi there"}

	h.drain(h.press(tea.KeyCtrlO))
	assert.Equal(t, "Hi there", h.content())
	assert.Equal(t, draft.ModeRevert, h.app.editor.Mode())

	h.press(tea.KeyCtrlO)
	assert.Equal(t, "messy text", h.content())
	assert.Equal(t, draft.ModeOrganize, h.app.editor.Mode())
}

func TestOrganize_stopKeepsPartial(t *testing.T) {
	h := newHarness(t, "hello world")
	h.ai.chunks = []string{"Hi", "Hi there"}
	h.ai.block = true

	cmd := h.press(tea.KeyCtrlO)
	require.NotNil(t, cmd)
	cmd = h.send(cmd())
	cmd = h.send(cmd())
	assert.Equal(t, "Hi there", h.content())
	assert.Equal(t, draft.ModeStop, h.app.editor.Mode())

	h.press(tea.KeyCtrlO)
	h.drain(cmd)
	assert.Equal(t, "Hi there", h.content())
	assert.Equal(t, draft.ModeRevert, h.app.editor.Mode())

	h.press(tea.KeyCtrlO)
	assert.Equal(t, "hello world", h.content())
}

func TestOrganize_httpError(t *testing.T) {
	h := newHarness(t, "orig")
	h.ai.streamErr = &ai.HTTPError{StatusCode: 500, Err: errors.New("server error")}

	h.drain(h.press(tea.KeyCtrlO))
	assert.Contains(t, h.content(), "status 500")
	assert.Contains(t, h.content(), "Original content:\norig")
	assert.Equal(t, draft.ModeRevert, h.app.editor.Mode())
	assert.True(t, h.app.statusIsError)
}

func TestOrganize_notConfigured(t *testing.T) {
	h := newHarness(t, "text")
	h.ai.available = false
	assert.Nil(t, h.press(tea.KeyCtrlO))
	assert.Equal(t, draft.ModeOrganize, h.app.editor.Mode())
	assert.Equal(t, "text", h.content())
	assert.True(t, h.app.statusIsError)
}

func TestOrganize_typingBlockedAndQuitRestores(t *testing.T) {
	h := newHarness(t, "keep me")
	h.ai.block = true
	cmd := h.press(tea.KeyCtrlO)
	require.NotNil(t, cmd)

	h.typeText("x")
	assert.Equal(t, draft.OrganizingNotice, h.content())

	quit := h.press(tea.KeyCtrlC)
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
	assert.Equal(t, "keep me", h.content())
	assert.Equal(t, []string{"keep me"}, h.store.Load().Contents())
	h.drain(cmd)
}

func TestOrganize_stopThenTabAwayStillReverts(t *testing.T) {
	h := newHarness(t, "my original draft", "other")
	h.ai.block = true
	cmd := h.press(tea.KeyCtrlO)
	require.NotNil(t, cmd)

	h.press(tea.KeyCtrlO)
	h.drain(cmd)
	assert.Equal(t, draft.ModeRevert, h.app.editor.Mode())

	h.press(tea.KeyTab)
	assert.Equal(t, "doc-1", h.app.editor.Active())
	assert.Len(t, h.app.editor.Documents(), 2)

	h.press(tea.KeyCtrlO)
	assert.Equal(t, draft.ModeOrganize, h.app.editor.Mode())
	assert.Equal(t, []string{"my original draft", "other"}, h.store.Load().Contents())
}

func TestSuggestion_applied(t *testing.T) {
	h := newHarness(t)
	h.ai.suggestion = "Who is the audience?"
	h.typeText("hi")

	h.drain(h.send(suggestTickMsg{seq: 2}))
	assert.Equal(t, "hi\n\n--- AI suggestion ---\nWho is the audience?\n-------------", h.content())
}

func TestSuggestion_failureMarkerClears(t *testing.T) {
	h := newHarness(t)
	h.ai.suggestErr = errors.New("boom")
	h.typeText("hi")

	cmd := h.send(suggestTickMsg{seq: 2})
	require.NotNil(t, cmd)
	marker := h.send(cmd())
	assert.NotNil(t, marker, "marker removal is scheduled")
	assert.Equal(t, "hi"+draft.SuggestionFailed, h.content())

	h.send(markerTickMsg{docID: h.app.editor.Active()})
	assert.Equal(t, "hi", h.content())
}

func TestSuggestion_skippedWhenUnconfigured(t *testing.T) {
	h := newHarness(t)
	h.ai.available = false
	h.typeText("hi")
	assert.Nil(t, h.send(suggestTickMsg{seq: 2}))
	assert.Equal(t, "hi", h.content())
}

func TestToggleSuggestionsPersists(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyCtrlT)
	assert.False(t, h.app.editor.SuggestionsEnabled())
	assert.False(t, settings.NewStore(h.mem).SuggestionsEnabled())

	h.press(tea.KeyCtrlT)
	assert.True(t, settings.NewStore(h.mem).SuggestionsEnabled())
}

func TestSettingsPanel(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyCtrlS)
	require.Equal(t, stateSettings, h.app.state)

	h.typeText("https://api.example.com/v1")
	h.press(tea.KeyTab)
	h.typeText("sk-test")
	h.press(tea.KeyTab)
	h.typeText("gpt-test")

	h.drain(h.press(tea.KeyCtrlT))
	require.Len(t, h.ai.tested, 1)
	assert.Equal(t, "gpt-test", h.ai.tested[0].Model)
	assert.Equal(t, "connection ok", h.app.statusMsg)

	h.press(tea.KeyEnter)
	assert.Equal(t, stateEditor, h.app.state)
	saved, ok := settings.NewStore(h.mem).API()
	require.True(t, ok)
	assert.Equal(t, settings.APISettings{APIEndpoint: "https://api.example.com/v1", APIKey: "sk-test", Model: "gpt-test"}, saved)
}

func TestSettingsPanel_rejectsIncomplete(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyCtrlS)
	h.typeText("https://api.example.com/v1")
	h.press(tea.KeyEnter)
	assert.Equal(t, stateSettings, h.app.state)
	assert.True(t, h.app.statusIsError)
	_, ok := settings.NewStore(h.mem).API()
	assert.False(t, ok)
}

func TestSearchFocusesMatch(t *testing.T) {
	h := newHarness(t, "alpha notes", "beta plans")
	h.press(tea.KeyCtrlF)
	h.typeText("plans")
	require.Equal(t, []int{1}, h.app.matches)
	h.press(tea.KeyEnter)
	assert.Equal(t, stateEditor, h.app.state)
	assert.Equal(t, "doc-1", h.app.editor.Active())
}

func TestPublishWritesHTML(t *testing.T) {
	h := newHarness(t, "# Launch Plan\n\nship it")
	h.drain(h.press(tea.KeyCtrlE))

	path := filepath.Join(h.app.cfg.PublishDir(), "launch-plan.html")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<p>ship it</p>")
	assert.Contains(t, h.app.statusMsg, path)
}

func TestPreviewAndHelp(t *testing.T) {
	h := newHarness(t, "# Title")
	h.press(tea.KeyCtrlP)
	assert.Equal(t, statePreview, h.app.state)
	assert.NotEmpty(t, h.app.View())
	h.press(tea.KeyEsc)
	assert.Equal(t, stateEditor, h.app.state)

	h.press(tea.KeyF1)
	assert.Equal(t, stateHelp, h.app.state)
	assert.Contains(t, h.app.View(), "organize / stop / revert")
	h.press(tea.KeyEsc)
	assert.Equal(t, stateEditor, h.app.state)
}

func TestQuitFlushesPendingEdit(t *testing.T) {
	h := newHarness(t)
	h.typeText("unsaved")
	h.press(tea.KeyCtrlC)
	assert.Equal(t, []string{"unsaved"}, h.store.Load().Contents())
}

func TestViewRendersPanes(t *testing.T) {
	h := newHarness(t, "first doc", "second doc")
	v := h.app.View()
	assert.Contains(t, v, "second doc")
	assert.Contains(t, v, "ORGANIZE")
}
