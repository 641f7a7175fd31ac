package courts

import (
	"sort"

	"github.com/mmynk/dropin/internal/models"
	"github.com/mmynk/dropin/internal/names"
)

// Occupied returns the set of participant IDs sitting in any queued or
// playing slot.
func (s State) Occupied() map[string]bool {
	taken := make(map[string]bool)
	for _, gs := range [][]models.QueueGroup{s.Queue, s.Playing} {
		for _, g := range gs {
			for _, p := range g.Players {
				if p != "" {
					taken[p] = true
				}
			}
		}
	}
	return taken
}

// UnassignedParticipants returns the participants not in any slot, ordered
// by display name.
func UnassignedParticipants(s State, participants []models.Participant) []models.Participant {
	taken := s.Occupied()
	var out []models.Participant
	for _, p := range participants {
		if !taken[p.ID] {
			out = append(out, p)
		}
	}
	sortByName(out)
	return out
}

// AvailablePlayers returns the choices for one slot: every unassigned
// participant plus whoever holds the slot now, ordered by display name.
func AvailablePlayers(s State, participants []models.Participant, groupID string, slot int) []models.Participant {
	current := ""
	if gi := indexOf(s.Queue, groupID); gi >= 0 && slot >= 0 && slot < models.GroupSize {
		current = s.Queue[gi].Players[slot]
	}

	taken := s.Occupied()
	var out []models.Participant
	for _, p := range participants {
		if !taken[p.ID] || p.ID == current {
			out = append(out, p)
		}
	}
	sortByName(out)
	return out
}

// Prune clears slots that refer to participants no longer on the roster.
// Groups emptied by the prune are dropped, and the queue keeps one empty
// group to assign into.
func (e Engine) Prune(s State, participants []models.Participant) State {
	present := make(map[string]bool, len(participants))
	for _, p := range participants {
		present[p.ID] = true
	}

	changed := false
	prune := func(gs []models.QueueGroup) []models.QueueGroup {
		var out []models.QueueGroup
		for _, g := range gs {
			wasEmpty := g.Empty()
			for i, p := range g.Players {
				if p != "" && !present[p] {
					g.Players[i] = ""
					changed = true
				}
			}
			if g.Empty() && !wasEmpty {
				continue
			}
			out = append(out, g.Clone())
		}
		return out
	}

	next := State{NumCourts: s.NumCourts}
	next.Queue = prune(s.Queue)
	next.Playing = prune(s.Playing)
	if !changed {
		return s
	}
	next.Queue = e.withEmptyGroup(next.Queue)
	return next
}

func sortByName(ps []models.Participant) {
	sort.SliceStable(ps, func(i, j int) bool {
		return names.SortKey(ps[i].Name) < names.SortKey(ps[j].Name)
	})
}
