// Package screen holds the client-side UI state of the session screen as one
// value: which tab is showing, which list filter is active and which dialog,
// if any, is open together with its draft input.
//
// A Dialog is a closed set of variants, so states such as "note editor and
// review list both open" cannot be represented.
//
// The server does not hold screen state; this package is for Go clients that
// embed the session (a desktop or terminal front end) and drive the RPCs.
package screen

import (
	"github.com/mmynk/dropin/internal/models"
	"github.com/mmynk/dropin/internal/roster"
)

// Mode is the tab being shown.
type Mode string

const (
	ModePayments Mode = "payments"
	ModeCourts   Mode = "courts"
)

// Dialog is one of AddName, EditNote, TextList, Review or ConfirmClearAll.
type Dialog interface {
	dialog()
}

// AddName is the manual "add participant" dialog.
type AddName struct {
	Draft string
}

// EditNote edits the e-transfer note of one participant.
type EditNote struct {
	ParticipantID string
	Draft         string
}

// TextList accepts a pasted block of names.
type TextList struct {
	Draft string
}

// Review lists candidate names from ingestion before they are added.
type Review struct {
	Names []string
}

// ConfirmClearAll asks before removing everyone.
type ConfirmClearAll struct{}

func (AddName) dialog()         {}
func (EditNote) dialog()        {}
func (TextList) dialog()        {}
func (Review) dialog()          {}
func (ConfirmClearAll) dialog() {}

// State is the whole UI state. The zero value is the payments tab showing
// everyone with no dialog open.
type State struct {
	Mode   Mode
	Filter roster.Filter
	Dialog Dialog
}

// New returns the initial screen state.
func New() State {
	return State{Mode: ModePayments, Filter: roster.FilterAll}
}

// WithMode switches tabs. Any open dialog is closed.
func (s State) WithMode(m Mode) State {
	s.Mode = m
	s.Dialog = nil
	return s
}

// WithFilter changes the payments list filter.
func (s State) WithFilter(f roster.Filter) State {
	s.Filter = f
	return s
}

// Open replaces whatever dialog is open with d.
func (s State) Open(d Dialog) State {
	s.Dialog = d
	return s
}

// OpenNoteFor opens the note editor preloaded with the participant's
// existing note.
func (s State) OpenNoteFor(p models.Participant) State {
	return s.Open(EditNote{ParticipantID: p.ID, Draft: p.Note})
}

// Close dismisses the open dialog and discards its draft.
func (s State) Close() State {
	s.Dialog = nil
	return s
}

// SetDraft updates the text draft of the open dialog. Dialogs without a text
// field are left unchanged.
func (s State) SetDraft(text string) State {
	switch d := s.Dialog.(type) {
	case AddName:
		d.Draft = text
		s.Dialog = d
	case EditNote:
		d.Draft = text
		s.Dialog = d
	case TextList:
		d.Draft = text
		s.Dialog = d
	}
	return s
}

// RemoveReviewName drops the i-th candidate from an open review list.
func (s State) RemoveReviewName(i int) State {
	d, ok := s.Dialog.(Review)
	if !ok || i < 0 || i >= len(d.Names) {
		return s
	}
	names := make([]string, 0, len(d.Names)-1)
	names = append(names, d.Names[:i]...)
	names = append(names, d.Names[i+1:]...)
	s.Dialog = Review{Names: names}
	return s
}

// Visible returns the participants the payments list shows under the
// current filter.
func (s State) Visible(r roster.Roster) []models.Participant {
	f := s.Filter
	if f == "" {
		f = roster.FilterAll
	}
	return roster.Apply(r, f)
}
