package courts

import (
	"testing"

	"github.com/mmynk/dropin/internal/models"
)

func sampleRoster() []models.Participant {
	return []models.Participant{
		{ID: "p1", Name: "3. charlie"},
		{ID: "p2", Name: "Alice"},
		{ID: "p3", Name: "bob"},
		{ID: "p4", Name: "1 - Dana"},
	}
}

func idsOf(ps []models.Participant) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUnassignedParticipants(t *testing.T) {
	e := newEngine()
	s, _ := e.New(1)

	got := idsOf(UnassignedParticipants(s, sampleRoster()))
	if want := []string{"p2", "p3", "p1", "p4"}; !equal(got, want) {
		t.Errorf("sorted order = %v, want %v", got, want)
	}

	s, _ = e.AssignPlayer(s, s.Queue[0].ID, 0, "p3")
	got = idsOf(UnassignedParticipants(s, sampleRoster()))
	if want := []string{"p2", "p1", "p4"}; !equal(got, want) {
		t.Errorf("after assigning p3 = %v, want %v", got, want)
	}
}

func TestAvailablePlayers(t *testing.T) {
	e := newEngine()
	s, _ := e.New(1)
	g := s.Queue[0].ID
	s, _ = e.AssignPlayer(s, g, 0, "p3")
	s, _ = e.AssignPlayer(s, g, 1, "p2")

	t.Run("includes the slot's current player", func(t *testing.T) {
		got := idsOf(AvailablePlayers(s, sampleRoster(), g, 0))
		if want := []string{"p3", "p1", "p4"}; !equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("open slot offers only unassigned", func(t *testing.T) {
		got := idsOf(AvailablePlayers(s, sampleRoster(), g, 2))
		if want := []string{"p1", "p4"}; !equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("players on court are never offered", func(t *testing.T) {
		s := s
		s, _ = e.AssignPlayer(s, g, 2, "p1")
		s, _ = e.AssignPlayer(s, g, 3, "p4")
		s, err := e.Promote(s, g)
		if err != nil {
			t.Fatal(err)
		}
		if got := AvailablePlayers(s, sampleRoster(), s.Queue[0].ID, 0); len(got) != 0 {
			t.Errorf("expected nobody available, got %v", idsOf(got))
		}
	})
}

func TestPrune(t *testing.T) {
	e := newEngine()
	s, _ := e.New(1)
	s = fill(t, e, s, 0, "p1", "p2", "p3", "p4")
	s, _ = e.Promote(s, s.Queue[0].ID)
	s, _ = e.AssignPlayer(s, s.Queue[0].ID, 0, "p5")

	t.Run("no change when everyone is present", func(t *testing.T) {
		everyone := append(sampleRoster(), models.Participant{ID: "p5"})
		got := e.Prune(s, everyone)
		if len(got.Queue) != len(s.Queue) || len(got.Playing) != 1 {
			t.Errorf("prune changed state: %+v", got)
		}
	})

	t.Run("cleared roster empties the courts", func(t *testing.T) {
		got := e.Prune(s, nil)
		if len(got.Occupied()) != 0 {
			t.Errorf("slots still occupied: %v", got.Occupied())
		}
		if len(got.Playing) != 0 {
			t.Errorf("expected emptied games to be dropped, got %d", len(got.Playing))
		}
		if len(got.Queue) != 1 || !got.Queue[0].Empty() {
			t.Errorf("expected a single empty group, got %+v", got.Queue)
		}
	})
}
