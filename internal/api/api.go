// Package api defines the messages and procedure names of the session RPC
// service. Messages are plain Go structs carried by a JSON codec.
package api

import "github.com/mmynk/dropin/internal/models"

// ServiceName is the fully-qualified name of the session service.
const ServiceName = "dropin.v1.SessionService"

// Procedure paths, one per RPC.
const (
	GetSessionProcedure       = "/" + ServiceName + "/GetSession"
	AddParticipantProcedure   = "/" + ServiceName + "/AddParticipant"
	ConfirmNamesProcedure     = "/" + ServiceName + "/ConfirmNames"
	SetPaymentProcedure       = "/" + ServiceName + "/SetPayment"
	ClearPaymentProcedure     = "/" + ServiceName + "/ClearPayment"
	SetNoteProcedure          = "/" + ServiceName + "/SetNote"
	ClearAllProcedure         = "/" + ServiceName + "/ClearAll"
	ListParticipantsProcedure = "/" + ServiceName + "/ListParticipants"
	ParseTextProcedure        = "/" + ServiceName + "/ParseText"
	ScanImageProcedure        = "/" + ServiceName + "/ScanImage"
	AssignPlayerProcedure     = "/" + ServiceName + "/AssignPlayer"
	SetGroupTypeProcedure     = "/" + ServiceName + "/SetGroupType"
	RemoveGroupProcedure      = "/" + ServiceName + "/RemoveGroup"
	PromoteGroupProcedure     = "/" + ServiceName + "/PromoteGroup"
	CompleteGameProcedure     = "/" + ServiceName + "/CompleteGame"
	UndoGameProcedure         = "/" + ServiceName + "/UndoGame"
	SetCourtsProcedure        = "/" + ServiceName + "/SetCourts"
	AvailablePlayersProcedure = "/" + ServiceName + "/AvailablePlayers"
)

// Session is the full view returned by every mutating RPC.
type Session struct {
	Participants []models.Participant `json:"participants"`
	PaidCount    int                  `json:"paidCount"`

	Queue     []models.QueueGroup `json:"queue"`
	Playing   []models.QueueGroup `json:"playing"`
	NumCourts int                 `json:"numCourts"`

	// Promotable lists the queue group IDs that can start a game right now.
	Promotable []string `json:"promotable"`

	// Unassigned holds participants in no group, sorted by display name.
	Unassigned []models.Participant `json:"unassigned"`

	// Notice describes the last failed background write, if any.
	Notice string `json:"notice,omitempty"`
}

type GetSessionRequest struct{}

type AddParticipantRequest struct {
	Name string `json:"name"`
}

type ConfirmNamesRequest struct {
	Names []string `json:"names"`
}

type SetPaymentRequest struct {
	ParticipantID string `json:"participantId"`
	PaymentMethod string `json:"paymentMethod"`
}

type ClearPaymentRequest struct {
	ParticipantID string `json:"participantId"`
}

type SetNoteRequest struct {
	ParticipantID string `json:"participantId"`
	Note          string `json:"note"`
}

type ClearAllRequest struct{}

type ListParticipantsRequest struct {
	// Filter is "all", "paid" or "unpaid". Empty means all.
	Filter string `json:"filter"`
}

type ListParticipantsResponse struct {
	Participants []models.Participant `json:"participants"`
	PaidCount    int                  `json:"paidCount"`
	Total        int                  `json:"total"`
}

type ParseTextRequest struct {
	Text string `json:"text"`
}

type ScanImageRequest struct {
	// Image is the JPEG bytes; base64 on the wire.
	Image []byte `json:"image"`
}

// CandidatesResponse carries names for review. Nothing is added to the
// roster until they are sent back with ConfirmNames.
type CandidatesResponse struct {
	Names []string `json:"names"`
}

type AssignPlayerRequest struct {
	GroupID string `json:"groupId"`
	Slot    int    `json:"slot"`
	// ParticipantID empty clears the slot.
	ParticipantID string `json:"participantId"`
}

type SetGroupTypeRequest struct {
	GroupID string `json:"groupId"`
	Type    string `json:"type"`
}

type RemoveGroupRequest struct {
	GroupID string `json:"groupId"`
}

type PromoteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type CompleteGameRequest struct {
	GameID string `json:"gameId"`
}

type UndoGameRequest struct {
	GameID string `json:"gameId"`
}

type SetCourtsRequest struct {
	NumCourts int `json:"numCourts"`
}

type AvailablePlayersRequest struct {
	GroupID string `json:"groupId"`
	Slot    int    `json:"slot"`
}

type AvailablePlayersResponse struct {
	Players []models.Participant `json:"players"`
}
