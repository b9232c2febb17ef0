package draft

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Mode is the state of the rewrite action button.
type Mode int

const (
	ModeOrganize Mode = iota
	ModeStop
	ModeRevert
)

func (m Mode) String() string {
	switch m {
	case ModeStop:
		return "STOP"
	case ModeRevert:
		return "REVERT"
	default:
		return "ORGANIZE"
	}
}

// Label is the button caption.
func (m Mode) Label() string {
	switch m {
	case ModeStop:
		return "stop"
	case ModeRevert:
		return "revert"
	default:
		return "organize"
	}
}

// OrganizingNotice fills the document until the first chunk arrives.
const OrganizingNotice = "Organizing content...\n"

type rewrite struct {
	mode     Mode
	docID    string
	snapshot string
	cancel   context.CancelFunc
}

func (r *rewrite) reset() {
	if r.cancel != nil {
		r.cancel()
	}
	*r = rewrite{}
}

// RewriteRequest describes a rewrite the caller must now stream. Ctx is
// cancelled when the user stops the rewrite.
type RewriteRequest struct {
	Ctx   context.Context
	DocID string
	Text  string
}

func (e *Editor) Mode() Mode { return e.rw.mode }

// Snapshot is the pre-rewrite text, held only in STOP and REVERT.
func (e *Editor) Snapshot() string { return e.rw.snapshot }

// RewritingID is the document a rewrite is writing into, if any.
func (e *Editor) RewritingID() string { return e.rw.docID }

// PressAction dispatches the action button on the current mode. A non-nil
// request is returned only when a new rewrite must be started.
func (e *Editor) PressAction(parent context.Context) (*RewriteRequest, error) {
	switch e.rw.mode {
	case ModeStop:
		e.StopRewrite()
		return nil, nil
	case ModeRevert:
		return nil, e.Revert()
	default:
		req, err := e.BeginRewrite(parent)
		if err != nil {
			return nil, err
		}
		return &req, nil
	}
}

// BeginRewrite moves ORGANIZE → STOP for the active document.
func (e *Editor) BeginRewrite(parent context.Context) (RewriteRequest, error) {
	switch e.rw.mode {
	case ModeStop:
		return RewriteRequest{}, ErrBusy
	case ModeRevert:
		return RewriteRequest{}, ErrMode
	}
	e.dropPlaceholder()
	d := e.docs.Get(e.active)
	if d == nil || d.IsBlank() {
		return RewriteRequest{}, ErrEmpty
	}

	ctx, cancel := context.WithCancel(parent)
	e.rw = rewrite{mode: ModeStop, docID: d.ID, snapshot: d.Content, cancel: cancel}
	text := d.Content
	d.Content = OrganizingNotice
	e.log.Debug("rewrite started", zap.String("doc", d.ID), zap.Int("len", len(text)))
	return RewriteRequest{Ctx: ctx, DocID: d.ID, Text: text}, nil
}

// ApplyChunk overwrites the rewriting document with the text so far. Chunks
// that arrive after a stop are ignored.
func (e *Editor) ApplyChunk(partial string) {
	if e.rw.mode != ModeStop {
		return
	}
	if d := e.docs.Get(e.rw.docID); d != nil {
		d.Content = partial
	}
}

// CompleteRewrite commits the final text and moves STOP → REVERT.
func (e *Editor) CompleteRewrite(final string) error {
	if e.rw.mode != ModeStop {
		return nil
	}
	if d := e.docs.Get(e.rw.docID); d != nil {
		d.Content = final
	}
	e.release(ModeRevert)
	e.log.Debug("rewrite completed", zap.String("doc", e.rw.docID))
	return e.persist("rewrite")
}

// StopRewrite cancels the stream, keeps what has arrived (or the progress
// notice when nothing has), STOP → REVERT.
func (e *Editor) StopRewrite() {
	if e.rw.mode != ModeStop {
		return
	}
	e.release(ModeRevert)
	e.log.Debug("rewrite stopped", zap.String("doc", e.rw.docID))
	if err := e.persist("rewrite-stop"); err != nil {
		e.log.Warn("saving partial rewrite failed", zap.Error(err))
	}
}

// FailRewrite shows err followed by the original text and moves STOP →
// REVERT so the error text can be discarded.
func (e *Editor) FailRewrite(err error) {
	if e.rw.mode != ModeStop {
		return
	}
	if d := e.docs.Get(e.rw.docID); d != nil {
		d.Content = fmt.Sprintf("Error while organizing content: %v\n\nOriginal content:\n%s", err, e.rw.snapshot)
	}
	e.release(ModeRevert)
	e.log.Warn("rewrite failed", zap.String("doc", e.rw.docID), zap.Error(err))
	if perr := e.persist("rewrite-error"); perr != nil {
		e.log.Warn("saving rewrite error failed", zap.Error(perr))
	}
}

// Revert restores the pre-rewrite text and returns to ORGANIZE.
func (e *Editor) Revert() error {
	if e.rw.mode != ModeRevert {
		return ErrMode
	}
	d := e.docs.Get(e.rw.docID)
	if d == nil {
		return ErrGone
	}
	snapshot := e.rw.snapshot
	e.rw.reset()
	d.Content = snapshot
	return e.persist("revert")
}

func (e *Editor) release(next Mode) {
	if e.rw.cancel != nil {
		e.rw.cancel()
		e.rw.cancel = nil
	}
	e.rw.mode = next
}
