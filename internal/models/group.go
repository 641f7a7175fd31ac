package models

import "fmt"

// GroupSize is the number of player slots in a queue group (doubles).
const GroupSize = 4

// GroupType labels a group. It has no effect on the rules.
type GroupType string

const (
	GroupCompetitive GroupType = "Competitive"
	GroupCasual      GroupType = "Casual"
)

// ParseGroupType validates a group type received from a client.
func ParseGroupType(s string) (GroupType, error) {
	switch GroupType(s) {
	case GroupCompetitive, GroupCasual:
		return GroupType(s), nil
	default:
		return "", fmt.Errorf("unknown group type %q", s)
	}
}

// QueueGroup represents four player slots waiting in the queue or, once
// promoted, playing on a court.
type QueueGroup struct {
	// ID is unique among live groups (queued and playing).
	ID string `json:"id"`

	Type GroupType `json:"type"`

	// Players holds participant IDs; an empty string is an open slot.
	Players [GroupSize]string `json:"players"`

	// OriginalQueueIndex is set only while the group is playing. It records
	// the group's queue position at promotion time so Undo can put it back.
	OriginalQueueIndex *int `json:"originalQueueIndex,omitempty"`
}

// Empty reports whether every slot is open.
func (g QueueGroup) Empty() bool {
	for _, p := range g.Players {
		if p != "" {
			return false
		}
	}
	return true
}

// Full reports whether every slot is taken.
func (g QueueGroup) Full() bool {
	for _, p := range g.Players {
		if p == "" {
			return false
		}
	}
	return true
}

// SlotOf returns the slot holding participantID, or -1.
func (g QueueGroup) SlotOf(participantID string) int {
	if participantID == "" {
		return -1
	}
	for i, p := range g.Players {
		if p == participantID {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no memory with g.
func (g QueueGroup) Clone() QueueGroup {
	if g.OriginalQueueIndex != nil {
		idx := *g.OriginalQueueIndex
		g.OriginalQueueIndex = &idx
	}
	return g
}
