// Package draft is the multi-document draft editor: an ordered collection of
// plain-text documents, one pane each, with split/merge/delete rules, debounced
// autosave, AI suggestions and a streamed AI rewrite that can be stopped and
// reverted.
//
// The Editor is not safe for concurrent use. It is driven from a single event
// loop; timers and network completions are delivered back to that loop as
// messages carrying the sequence number or request they belong to.
package draft

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/yash-srivastava19/docstudio/internal/notes"
)

const (
	SaveDebounce    = 500 * time.Millisecond
	SuggestDebounce = 5 * time.Second
	MarkerTTL       = 3 * time.Second

	// splitEnters consecutive Enter presses split the document at the cursor.
	splitEnters = 3
)

var (
	ErrBusy  = errors.New("draft: a rewrite is already running")
	ErrMode  = errors.New("draft: action not available in current mode")
	ErrEmpty = errors.New("draft: nothing to rewrite")
	ErrGone  = errors.New("draft: rewritten document no longer exists")
)

// Persister writes the whole collection.
type Persister interface {
	Save(c *notes.Collection) error
}

type Editor struct {
	docs  *notes.Collection
	store Persister
	log   *zap.Logger
	newID func() string
	used  map[string]bool

	active string

	entersID string
	enters   int

	dirty   bool
	saveSeq int

	suggestions   bool
	suggestSeq    int
	waiting       bool
	placeholderID string
	markers       map[string]int

	rw rewrite
}

type Option func(*Editor)

func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithIDs overrides document id generation.
func WithIDs(gen func() string) Option {
	return func(e *Editor) { e.newID = gen }
}

func WithSuggestions(on bool) Option {
	return func(e *Editor) { e.suggestions = on }
}

// New builds an editor over docs. An empty or nil collection is replaced by a
// single empty document. The first document starts active.
func New(docs *notes.Collection, store Persister, opts ...Option) *Editor {
	if docs == nil || docs.Len() == 0 {
		docs = notes.New()
	}
	e := &Editor{
		docs:    docs,
		store:   store,
		log:     zap.NewNop(),
		newID:   notes.NewID,
		used:    map[string]bool{},
		markers: map[string]int{},
	}
	for _, o := range opts {
		o(e)
	}
	e.log = e.log.Named("draft")
	for _, d := range docs.Docs {
		e.used[d.ID] = true
	}
	e.active = docs.Docs[0].ID
	return e
}

func (e *Editor) Documents() []*notes.Document { return e.docs.Docs }
func (e *Editor) Collection() *notes.Collection { return e.docs }
func (e *Editor) Active() string                { return e.active }
func (e *Editor) Dirty() bool                   { return e.dirty }
func (e *Editor) SuggestionsEnabled() bool      { return e.suggestions }

// ActiveIndex returns the position of the active document.
func (e *Editor) ActiveIndex() int {
	return e.docs.Index(e.active)
}

func (e *Editor) ActiveContent() string {
	if d := e.docs.Get(e.active); d != nil {
		return d.Content
	}
	return ""
}

// SetActiveContent replaces the active document's text and persists at once.
func (e *Editor) SetActiveContent(text string) error {
	d := e.docs.Get(e.active)
	if d == nil {
		return nil
	}
	d.Content = text
	return e.persist("set-content")
}

// InputResult tells the caller which debounced timers to (re)arm. A zero
// SuggestSeq means no suggestion timer.
type InputResult struct {
	SaveSeq    int
	SuggestSeq int
}

// HandleInput records the full new text of document id after a keystroke.
func (e *Editor) HandleInput(id, text string) InputResult {
	d := e.docs.Get(id)
	if d == nil {
		return InputResult{}
	}
	e.active = id

	if e.placeholderID == id {
		text = stripOnce(text, SuggestionPlaceholder)
		e.placeholderID = ""
		e.waiting = false
	}
	e.dropPlaceholder()

	d.Content = text
	e.dirty = true
	e.saveSeq++
	res := InputResult{SaveSeq: e.saveSeq}

	if e.rw.mode == ModeRevert {
		e.rw.reset()
	}

	if e.suggestions {
		e.suggestSeq++
		if !d.IsBlank() {
			res.SuggestSeq = e.suggestSeq
		}
	}
	return res
}

// FlushSave performs the debounced save for seq. Saves for anything but the
// latest keystroke are dropped.
func (e *Editor) FlushSave(seq int) (bool, error) {
	if seq != e.saveSeq || !e.dirty {
		return false, nil
	}
	if err := e.persist("autosave"); err != nil {
		return false, err
	}
	return true, nil
}

// Flush saves any pending change immediately, e.g. on quit.
func (e *Editor) Flush() error {
	if !e.dirty {
		return nil
	}
	return e.persist("flush")
}

// HandleFocus makes id the active document and cleans up empty ones. It
// returns the ids that were removed.
func (e *Editor) HandleFocus(id string) []string {
	if e.docs.Get(id) == nil {
		return nil
	}
	if id != e.active {
		e.enters = 0
	}
	e.active = id
	return e.DeleteEmptyNotes()
}

// HandleKeyDown counts consecutive Enter presses in one document. On the
// third it splits at cursor (a rune offset) and reports true, meaning the
// caller must not insert the newline.
func (e *Editor) HandleKeyDown(id, key string, cursor int) bool {
	if id != e.entersID {
		e.entersID = id
		e.enters = 0
	}
	if key != "enter" {
		e.enters = 0
		return false
	}
	e.enters++
	if e.enters < splitEnters {
		return false
	}
	e.enters = 0
	if _, err := e.Split(id, cursor); err != nil {
		e.log.Warn("split failed", zap.Error(err))
	}
	return true
}

// DeleteEmptyNotes removes every blank document except the active one, never
// leaving the collection empty.
func (e *Editor) DeleteEmptyNotes() []string {
	if e.docs.Len() <= 1 {
		return nil
	}
	kept := make([]*notes.Document, 0, e.docs.Len())
	var removed []string
	for _, d := range e.docs.Docs {
		if d.ID == e.active || !d.IsBlank() || e.holdsSnapshot(d.ID) {
			kept = append(kept, d)
			continue
		}
		removed = append(removed, d.ID)
	}
	if len(kept) == 0 {
		kept = append(kept, e.docs.Docs[0])
		removed = removed[1:]
	}
	if len(removed) == 0 {
		return nil
	}
	e.docs.Docs = kept
	if e.docs.Index(e.active) < 0 {
		e.active = kept[0].ID
	}
	for _, id := range removed {
		delete(e.markers, id)
	}
	if err := e.persist("delete-empty"); err != nil {
		e.log.Warn("saving after delete failed", zap.Error(err))
	}
	e.log.Debug("deleted empty notes", zap.Strings("ids", removed), zap.Int("remaining", e.docs.Len()))
	return removed
}

// holdsSnapshot reports whether id is the target of a rewrite that can still
// be reverted. Such a document is never cleaned up, even when blank.
func (e *Editor) holdsSnapshot(id string) bool {
	return e.rw.mode != ModeOrganize && e.rw.docID == id
}

func (e *Editor) persist(reason string) error {
	if err := e.store.Save(e.docs); err != nil {
		e.log.Error("save failed", zap.String("reason", reason), zap.Error(err))
		return err
	}
	e.dirty = false
	return nil
}
