package roster

import (
	"errors"
	"testing"

	"github.com/mmynk/dropin/internal/ids"
	"github.com/mmynk/dropin/internal/models"
)

func newRegistrar() Registrar {
	return Registrar{NewID: ids.Sequence("p")}
}

func TestAdd(t *testing.T) {
	reg := newRegistrar()

	t.Run("trims and assigns id", func(t *testing.T) {
		r, p, err := reg.Add(Roster{}, "  Alice ")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if p.Name != "Alice" {
			t.Errorf("name = %q, want Alice", p.Name)
		}
		if p.ID == "" {
			t.Error("expected id to be generated")
		}
		if p.PaymentMethod.Paid() {
			t.Error("new participant should be unpaid")
		}
		if len(r.Participants) != 1 {
			t.Errorf("expected 1 participant, got %d", len(r.Participants))
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		before := Roster{Participants: []models.Participant{{ID: "x", Name: "X"}}}
		after, _, err := reg.Add(before, "   ")
		if !errors.Is(err, ErrEmptyName) {
			t.Fatalf("expected ErrEmptyName, got %v", err)
		}
		if len(after.Participants) != 1 {
			t.Error("roster changed on validation failure")
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		before := Roster{Participants: make([]models.Participant, 1, 10)}
		before.Participants[0] = models.Participant{ID: "x", Name: "X"}
		after, _, _ := reg.Add(before, "Bob")
		after.Participants[0].Name = "changed"
		if before.Participants[0].Name != "X" {
			t.Error("Add shared memory with its input")
		}
	})
}

func TestAddBatch(t *testing.T) {
	reg := newRegistrar()

	r, added, err := reg.AddBatch(Roster{}, []string{"Alice", "", "  ", "Bob"})
	if err != nil {
		t.Fatalf("AddBatch failed: %v", err)
	}
	if len(added) != 2 || len(r.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d/%d", len(added), len(r.Participants))
	}
	if added[0].ID == added[1].ID {
		t.Error("batch reused an id")
	}

	_, _, err = reg.AddBatch(r, []string{" ", ""})
	if !errors.Is(err, ErrNoNames) {
		t.Errorf("expected ErrNoNames, got %v", err)
	}
}

func TestPayments(t *testing.T) {
	base := Roster{Participants: []models.Participant{
		{ID: "a", Name: "Alice", PaymentMethod: models.PaymentETransfer, Note: "A. Smith"},
		{ID: "b", Name: "Bob"},
	}}

	tests := []struct {
		name       string
		apply      func(Roster) (Roster, error)
		wantMethod models.PaymentMethod
		wantNote   string
		wantErr    error
	}{
		{
			name:       "cash clears note",
			apply:      func(r Roster) (Roster, error) { return SetPayment(r, "a", models.PaymentCash) },
			wantMethod: models.PaymentCash,
			wantNote:   "",
		},
		{
			name:       "e-transfer keeps note",
			apply:      func(r Roster) (Roster, error) { return SetPayment(r, "a", models.PaymentETransfer) },
			wantMethod: models.PaymentETransfer,
			wantNote:   "A. Smith",
		},
		{
			name:       "clear payment drops note",
			apply:      func(r Roster) (Roster, error) { return ClearPayment(r, "a") },
			wantMethod: models.PaymentNone,
			wantNote:   "",
		},
		{
			name:       "set note trims",
			apply:      func(r Roster) (Roster, error) { return SetNote(r, "a", "  J. Doe ") },
			wantMethod: models.PaymentETransfer,
			wantNote:   "J. Doe",
		},
		{
			name:       "blank note clears",
			apply:      func(r Roster) (Roster, error) { return SetNote(r, "a", "  ") },
			wantMethod: models.PaymentETransfer,
			wantNote:   "",
		},
		{
			name:    "unknown id",
			apply:   func(r Roster) (Roster, error) { return SetPayment(r, "zzz", models.PaymentCash) },
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(base)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			p, _ := Lookup(got, "a")
			if p.PaymentMethod != tt.wantMethod {
				t.Errorf("method = %q, want %q", p.PaymentMethod, tt.wantMethod)
			}
			if p.Note != tt.wantNote {
				t.Errorf("note = %q, want %q", p.Note, tt.wantNote)
			}

			// The input roster is untouched.
			if base.Participants[0].Note != "A. Smith" || base.Participants[0].PaymentMethod != models.PaymentETransfer {
				t.Error("transition mutated its input")
			}
		})
	}
}

func TestRemoveAndClearAll(t *testing.T) {
	r := Roster{Participants: []models.Participant{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	r2, err := Remove(r, "b")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(r2.Participants) != 2 || r2.Participants[0].ID != "a" || r2.Participants[1].ID != "c" {
		t.Errorf("unexpected roster after remove: %+v", r2.Participants)
	}
	if len(r.Participants) != 3 {
		t.Error("Remove mutated its input")
	}

	if _, err := Remove(r2, "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if got := ClearAll(r); len(got.Participants) != 0 {
		t.Errorf("ClearAll left %d participants", len(got.Participants))
	}
}

func TestFilterAndPaidCount(t *testing.T) {
	r := Roster{Participants: []models.Participant{
		{ID: "a", PaymentMethod: models.PaymentCash},
		{ID: "b"},
		{ID: "c", PaymentMethod: models.PaymentETransfer},
	}}

	if got := PaidCount(r); got != 2 {
		t.Errorf("PaidCount = %d, want 2", got)
	}

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"a", "b", "c"}},
		{FilterPaid, []string{"a", "c"}},
		{FilterUnpaid, []string{"b"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := Apply(r, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d participants, want %d", len(got), len(tt.want))
			}
			for i, p := range got {
				if p.ID != tt.want[i] {
					t.Errorf("position %d: got %s, want %s", i, p.ID, tt.want[i])
				}
			}
		})
	}

	if _, err := ParseFilter("bogus"); err == nil {
		t.Error("expected error for unknown filter")
	}
	if f, _ := ParseFilter(""); f != FilterAll {
		t.Errorf("empty filter parsed as %q", f)
	}
}
