package draft

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yash-srivastava19/docstudio/internal/notes"
)

const (
	SuggestionPlaceholder = "\n\nGenerating AI suggestion..."
	SuggestionFailed      = "\n\n--- AI suggestion unavailable ---"
	suggestionHeader      = "\n\n--- AI suggestion ---\n"
	suggestionFooter      = "\n-------------"
)

// SuggestionRequest is a suggestion fetch the caller must now perform.
type SuggestionRequest struct {
	DocID string
	Text  string
	Seq   int
}

// SetSuggestionsEnabled toggles suggestions. Turning them off drops any
// pending suggestion timer.
func (e *Editor) SetSuggestionsEnabled(on bool) {
	e.suggestions = on
	if !on {
		e.suggestSeq++
	}
}

// BeginSuggestion runs when the suggestion timer for seq fires. It appends
// the placeholder to the active document and returns the text to send. ok is
// false when the timer is stale or nothing should be requested.
func (e *Editor) BeginSuggestion(seq int) (SuggestionRequest, bool) {
	if !e.suggestions || seq != e.suggestSeq || e.waiting {
		return SuggestionRequest{}, false
	}
	if e.rw.mode == ModeStop {
		return SuggestionRequest{}, false
	}
	d := e.docs.Get(e.active)
	if d == nil || d.IsBlank() {
		return SuggestionRequest{}, false
	}
	e.waiting = true
	e.placeholderID = d.ID
	text := d.Content
	d.Content += SuggestionPlaceholder
	return SuggestionRequest{DocID: d.ID, Text: text, Seq: seq}, true
}

// ApplySuggestion replaces the placeholder with the delimited suggestion.
// Suggestions whose placeholder was already cleared by typing are dropped.
func (e *Editor) ApplySuggestion(req SuggestionRequest, suggestion string) bool {
	d, ok := e.settleSuggestion(req)
	if !ok {
		return false
	}
	d.Content += suggestionHeader + suggestion + suggestionFooter
	if err := e.persist("suggestion"); err != nil {
		e.log.Warn("saving suggestion failed", zap.Error(err))
	}
	return true
}

// FailSuggestion swaps the placeholder for an error marker. When it returns
// true the caller should call ClearFailure after MarkerTTL.
func (e *Editor) FailSuggestion(req SuggestionRequest, err error) bool {
	e.log.Info("suggestion failed", zap.String("doc", req.DocID), zap.Error(err))
	d, ok := e.settleSuggestion(req)
	if !ok {
		return false
	}
	d.Content += SuggestionFailed
	e.markers[d.ID]++
	return true
}

// ClearFailure removes one error marker from docID.
func (e *Editor) ClearFailure(docID string) {
	if e.markers[docID] == 0 {
		return
	}
	e.markers[docID]--
	if e.markers[docID] == 0 {
		delete(e.markers, docID)
	}
	if d := e.docs.Get(docID); d != nil {
		d.Content = stripOnce(d.Content, SuggestionFailed)
		if err := e.persist("clear-marker"); err != nil {
			e.log.Warn("saving after marker removal failed", zap.Error(err))
		}
	}
}

// dropPlaceholder abandons an in-flight suggestion, removing its placeholder.
func (e *Editor) dropPlaceholder() {
	if e.placeholderID == "" {
		return
	}
	if d := e.docs.Get(e.placeholderID); d != nil {
		d.Content = stripOnce(d.Content, SuggestionPlaceholder)
	}
	e.placeholderID = ""
	e.waiting = false
}

// settleSuggestion ends the wait for req and strips its placeholder. It
// fails when typing already cleared the placeholder.
func (e *Editor) settleSuggestion(req SuggestionRequest) (*notes.Document, bool) {
	if req.DocID == "" || e.placeholderID != req.DocID {
		return nil, false
	}
	e.waiting = false
	e.placeholderID = ""
	d := e.docs.Get(req.DocID)
	if d == nil {
		return nil, false
	}
	d.Content = stripOnce(d.Content, SuggestionPlaceholder)
	return d, true
}

func stripOnce(s, marker string) string {
	return strings.Replace(s, marker, "", 1)
}
