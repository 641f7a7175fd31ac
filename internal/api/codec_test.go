package api

import (
	"strings"
	"testing"

	"github.com/mmynk/dropin/internal/models"
)

func TestCodec(t *testing.T) {
	codec := Codec{}

	if codec.Name() != "json" {
		t.Errorf("name = %q", codec.Name())
	}

	data, err := codec.Marshal(&Session{
		Participants: []models.Participant{{ID: "1", Name: "Ann"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"paymentMethod":null`) {
		t.Errorf("unpaid should encode as null: %s", data)
	}

	var got Session
	if err := codec.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Participants) != 1 || got.Participants[0].PaymentMethod.Paid() {
		t.Errorf("got %+v", got)
	}

	var empty GetSessionRequest
	if err := codec.Unmarshal(nil, &empty); err != nil {
		t.Errorf("empty body: %v", err)
	}

	var bad SetPaymentRequest
	if err := codec.Unmarshal([]byte("{"), &bad); err == nil {
		t.Error("expected error for truncated JSON")
	}
}
