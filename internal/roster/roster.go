// Package roster implements the participant list as pure state transitions.
//
// Every operation takes a Roster and returns a new one; the input is never
// modified, so callers can hand old values to other goroutines (for example
// the persistence writer) without copying.
package roster

import (
	"errors"
	"strings"

	"github.com/mmynk/dropin/internal/ids"
	"github.com/mmynk/dropin/internal/models"
)

var (
	ErrEmptyName = errors.New("name is required")
	ErrNoNames   = errors.New("no names to add")
	ErrNotFound  = errors.New("participant not found")
)

// Roster is the ordered list of participants, in the order they were added.
type Roster struct {
	Participants []models.Participant
}

// Registrar applies roster transitions. NewID supplies participant IDs.
type Registrar struct {
	NewID ids.Generator
}

// NewRegistrar returns a Registrar that issues UUIDs.
func NewRegistrar() Registrar {
	return Registrar{NewID: ids.UUID}
}

// Add appends a new unpaid participant.
func (g Registrar) Add(r Roster, name string) (Roster, models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return r, models.Participant{}, ErrEmptyName
	}
	p := models.Participant{ID: g.NewID(), Name: name}
	return Roster{Participants: appendCopy(r.Participants, p)}, p, nil
}

// AddBatch appends one unpaid participant per non-blank name, typically the
// reviewed result of ingestion.
func (g Registrar) AddBatch(r Roster, names []string) (Roster, []models.Participant, error) {
	var added []models.Participant
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		added = append(added, models.Participant{ID: g.NewID(), Name: name})
	}
	if len(added) == 0 {
		return r, nil, ErrNoNames
	}
	return Roster{Participants: appendCopy(r.Participants, added...)}, added, nil
}

// SetPayment records how a participant paid. Switching to cash clears the
// note, since notes only describe e-transfers.
func SetPayment(r Roster, id string, method models.PaymentMethod) (Roster, error) {
	return update(r, id, func(p *models.Participant) {
		p.PaymentMethod = method
		if method == models.PaymentCash {
			p.Note = ""
		}
	})
}

// ClearPayment marks a participant unpaid again and drops the note.
func ClearPayment(r Roster, id string) (Roster, error) {
	return update(r, id, func(p *models.Participant) {
		p.PaymentMethod = models.PaymentNone
		p.Note = ""
	})
}

// SetNote replaces a participant's note. Blank text clears it.
func SetNote(r Roster, id, text string) (Roster, error) {
	return update(r, id, func(p *models.Participant) {
		p.Note = strings.TrimSpace(text)
	})
}

// Remove deletes a single participant.
func Remove(r Roster, id string) (Roster, error) {
	idx := indexOf(r, id)
	if idx < 0 {
		return r, ErrNotFound
	}
	out := make([]models.Participant, 0, len(r.Participants)-1)
	out = append(out, r.Participants[:idx]...)
	out = append(out, r.Participants[idx+1:]...)
	return Roster{Participants: out}, nil
}

// ClearAll empties the roster.
func ClearAll(Roster) Roster {
	return Roster{}
}

// Lookup finds a participant by ID.
func Lookup(r Roster, id string) (models.Participant, bool) {
	idx := indexOf(r, id)
	if idx < 0 {
		return models.Participant{}, false
	}
	return r.Participants[idx], true
}

func update(r Roster, id string, fn func(*models.Participant)) (Roster, error) {
	idx := indexOf(r, id)
	if idx < 0 {
		return r, ErrNotFound
	}
	out := make([]models.Participant, len(r.Participants))
	copy(out, r.Participants)
	fn(&out[idx])
	return Roster{Participants: out}, nil
}

func indexOf(r Roster, id string) int {
	for i, p := range r.Participants {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func appendCopy(ps []models.Participant, more ...models.Participant) []models.Participant {
	out := make([]models.Participant, 0, len(ps)+len(more))
	out = append(out, ps...)
	return append(out, more...)
}
