// Package courts implements the queue and court rotation for a session.
//
// Groups of four wait in an ordered queue. A full group can be promoted onto
// a free court, completed when the game ends, or undone back to the queue
// position it was promoted from. All transitions are pure: they take a State
// and return a new one, leaving the input untouched. When a transition is
// refused the original State is returned alongside the error.
package courts

import (
	"errors"

	"github.com/mmynk/dropin/internal/ids"
	"github.com/mmynk/dropin/internal/models"
)

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrSlotOutOfRange  = errors.New("slot out of range")
	ErrPlayerOnCourt   = errors.New("player is on a court")
	ErrGroupIncomplete = errors.New("group needs four players")
	ErrCourtsFull      = errors.New("all courts are in use")
	ErrInvalidCourts   = errors.New("number of courts must be at least 1")
	ErrCourtsInUse     = errors.New("more games are playing than that many courts")
)

// State is the queue and the games currently on court.
type State struct {
	// Queue is ordered; index 0 plays next.
	Queue []models.QueueGroup

	// Playing never holds more than NumCourts games.
	Playing []models.QueueGroup

	NumCourts int
}

// Engine applies queue transitions. NewID supplies group IDs.
type Engine struct {
	NewID ids.Generator
}

// NewEngine returns an Engine that issues UUIDs.
func NewEngine() Engine {
	return Engine{NewID: ids.UUID}
}

// New returns a session with numCourts courts and one empty group queued.
func (e Engine) New(numCourts int) (State, error) {
	if numCourts < 1 {
		return State{}, ErrInvalidCourts
	}
	return State{
		Queue:     []models.QueueGroup{e.emptyGroup()},
		NumCourts: numCourts,
	}, nil
}

// AssignPlayer puts participantID into a queue slot, or clears the slot when
// participantID is empty.
//
// A participant already waiting in another slot is moved, so nobody is ever
// booked twice, and a group emptied by such a move is dropped. A participant
// who is on court cannot be assigned. Once no queued group is completely
// empty, a new empty group is appended.
func (e Engine) AssignPlayer(s State, groupID string, slot int, participantID string) (State, error) {
	gi := indexOf(s.Queue, groupID)
	if gi < 0 {
		return s, ErrGroupNotFound
	}
	if slot < 0 || slot >= models.GroupSize {
		return s, ErrSlotOutOfRange
	}
	if participantID != "" && indexOfPlayer(s.Playing, participantID) >= 0 {
		return s, ErrPlayerOnCourt
	}

	next := s.clone()
	if participantID != "" {
		target := next.Queue[gi].ID
		kept := make([]models.QueueGroup, 0, len(next.Queue)+1)
		for i, g := range next.Queue {
			if j := g.SlotOf(participantID); j >= 0 && (i != gi || j != slot) {
				g.Players[j] = ""
				// The player left a group they held alone.
				if i != gi && g.Empty() {
					continue
				}
			}
			kept = append(kept, g)
		}
		next.Queue = kept
		gi = indexOf(next.Queue, target)
	}
	next.Queue[gi].Players[slot] = participantID
	next.Queue = e.withEmptyGroup(next.Queue)
	return next, nil
}

// SetGroupType relabels a queued group. Unknown groups are ignored.
func (e Engine) SetGroupType(s State, groupID string, t models.GroupType) State {
	gi := indexOf(s.Queue, groupID)
	if gi < 0 {
		return s
	}
	next := s.clone()
	next.Queue[gi].Type = t
	return next
}

// RemoveGroup deletes a queued group. Unknown groups are ignored. The queue
// is never left without an empty group to assign into.
func (e Engine) RemoveGroup(s State, groupID string) State {
	gi := indexOf(s.Queue, groupID)
	if gi < 0 {
		return s
	}
	next := s.clone()
	next.Queue = append(next.Queue[:gi], next.Queue[gi+1:]...)
	next.Queue = e.withEmptyGroup(next.Queue)
	return next
}

// Promote moves a full group from the queue onto a free court, remembering
// its queue position.
func (e Engine) Promote(s State, groupID string) (State, error) {
	gi := indexOf(s.Queue, groupID)
	if gi < 0 {
		return s, ErrGroupNotFound
	}
	if !s.Queue[gi].Full() {
		return s, ErrGroupIncomplete
	}
	if len(s.Playing) >= s.NumCourts {
		return s, ErrCourtsFull
	}

	next := s.clone()
	game := next.Queue[gi]
	idx := gi
	game.OriginalQueueIndex = &idx
	next.Queue = append(next.Queue[:gi], next.Queue[gi+1:]...)
	next.Queue = e.withEmptyGroup(next.Queue)
	next.Playing = append(next.Playing, game)
	return next, nil
}

// Complete ends a game. Its players are immediately free to queue again.
// Unknown games are ignored.
func (e Engine) Complete(s State, gameID string) State {
	pi := indexOf(s.Playing, gameID)
	if pi < 0 {
		return s
	}
	next := s.clone()
	next.Playing = append(next.Playing[:pi], next.Playing[pi+1:]...)
	return next
}

// Undo reverses a promotion. The game goes back to the queue position it
// left from, or to the end if the queue has since become shorter than that.
// Unknown games are ignored.
func (e Engine) Undo(s State, gameID string) State {
	pi := indexOf(s.Playing, gameID)
	if pi < 0 {
		return s
	}
	next := s.clone()
	group := next.Playing[pi]
	next.Playing = append(next.Playing[:pi], next.Playing[pi+1:]...)

	at := len(next.Queue)
	if group.OriginalQueueIndex != nil && *group.OriginalQueueIndex < at {
		at = max(*group.OriginalQueueIndex, 0)
	}
	group.OriginalQueueIndex = nil

	next.Queue = append(next.Queue, models.QueueGroup{})
	copy(next.Queue[at+1:], next.Queue[at:])
	next.Queue[at] = group
	return next
}

// SetCourts changes how many courts are available. It cannot drop below the
// number of games already playing.
func (e Engine) SetCourts(s State, n int) (State, error) {
	if n < 1 {
		return s, ErrInvalidCourts
	}
	if n < len(s.Playing) {
		return s, ErrCourtsInUse
	}
	next := s.clone()
	next.NumCourts = n
	return next, nil
}

// CanPromote reports whether Promote would succeed, for enabling the action
// in a UI.
func (s State) CanPromote(groupID string) bool {
	gi := indexOf(s.Queue, groupID)
	return gi >= 0 && s.Queue[gi].Full() && len(s.Playing) < s.NumCourts
}

func (e Engine) emptyGroup() models.QueueGroup {
	return models.QueueGroup{ID: e.NewID(), Type: models.GroupCompetitive}
}

// withEmptyGroup appends an empty group unless the queue already has one.
func (e Engine) withEmptyGroup(q []models.QueueGroup) []models.QueueGroup {
	if hasEmptyGroup(q) {
		return q
	}
	return append(q, e.emptyGroup())
}

func (s State) clone() State {
	next := State{NumCourts: s.NumCourts}
	next.Queue = cloneGroups(s.Queue)
	next.Playing = cloneGroups(s.Playing)
	return next
}

func cloneGroups(gs []models.QueueGroup) []models.QueueGroup {
	if gs == nil {
		return nil
	}
	out := make([]models.QueueGroup, len(gs), len(gs)+1)
	for i, g := range gs {
		out[i] = g.Clone()
	}
	return out
}

func indexOf(gs []models.QueueGroup, id string) int {
	for i, g := range gs {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func indexOfPlayer(gs []models.QueueGroup, participantID string) int {
	for i, g := range gs {
		if g.SlotOf(participantID) >= 0 {
			return i
		}
	}
	return -1
}

func hasEmptyGroup(gs []models.QueueGroup) bool {
	for _, g := range gs {
		if g.Empty() {
			return true
		}
	}
	return false
}
