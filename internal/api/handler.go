package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// SessionServiceHandler is implemented by the session service.
type SessionServiceHandler interface {
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[Session], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[Session], error)
	ConfirmNames(context.Context, *connect.Request[ConfirmNamesRequest]) (*connect.Response[Session], error)
	SetPayment(context.Context, *connect.Request[SetPaymentRequest]) (*connect.Response[Session], error)
	ClearPayment(context.Context, *connect.Request[ClearPaymentRequest]) (*connect.Response[Session], error)
	SetNote(context.Context, *connect.Request[SetNoteRequest]) (*connect.Response[Session], error)
	ClearAll(context.Context, *connect.Request[ClearAllRequest]) (*connect.Response[Session], error)
	ListParticipants(context.Context, *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error)
	ParseText(context.Context, *connect.Request[ParseTextRequest]) (*connect.Response[CandidatesResponse], error)
	ScanImage(context.Context, *connect.Request[ScanImageRequest]) (*connect.Response[CandidatesResponse], error)
	AssignPlayer(context.Context, *connect.Request[AssignPlayerRequest]) (*connect.Response[Session], error)
	SetGroupType(context.Context, *connect.Request[SetGroupTypeRequest]) (*connect.Response[Session], error)
	RemoveGroup(context.Context, *connect.Request[RemoveGroupRequest]) (*connect.Response[Session], error)
	PromoteGroup(context.Context, *connect.Request[PromoteGroupRequest]) (*connect.Response[Session], error)
	CompleteGame(context.Context, *connect.Request[CompleteGameRequest]) (*connect.Response[Session], error)
	UndoGame(context.Context, *connect.Request[UndoGameRequest]) (*connect.Response[Session], error)
	SetCourts(context.Context, *connect.Request[SetCourtsRequest]) (*connect.Response[Session], error)
	AvailablePlayers(context.Context, *connect.Request[AvailablePlayersRequest]) (*connect.Response[AvailablePlayersResponse], error)
}

// NewSessionServiceHandler returns the path to mount the service on and the
// handler serving every procedure beneath it.
func NewSessionServiceHandler(svc SessionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithCodec()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GetSessionProcedure, connect.NewUnaryHandler(GetSessionProcedure, svc.GetSession, opts...))
	mux.Handle(AddParticipantProcedure, connect.NewUnaryHandler(AddParticipantProcedure, svc.AddParticipant, opts...))
	mux.Handle(ConfirmNamesProcedure, connect.NewUnaryHandler(ConfirmNamesProcedure, svc.ConfirmNames, opts...))
	mux.Handle(SetPaymentProcedure, connect.NewUnaryHandler(SetPaymentProcedure, svc.SetPayment, opts...))
	mux.Handle(ClearPaymentProcedure, connect.NewUnaryHandler(ClearPaymentProcedure, svc.ClearPayment, opts...))
	mux.Handle(SetNoteProcedure, connect.NewUnaryHandler(SetNoteProcedure, svc.SetNote, opts...))
	mux.Handle(ClearAllProcedure, connect.NewUnaryHandler(ClearAllProcedure, svc.ClearAll, opts...))
	mux.Handle(ListParticipantsProcedure, connect.NewUnaryHandler(ListParticipantsProcedure, svc.ListParticipants, opts...))
	mux.Handle(ParseTextProcedure, connect.NewUnaryHandler(ParseTextProcedure, svc.ParseText, opts...))
	mux.Handle(ScanImageProcedure, connect.NewUnaryHandler(ScanImageProcedure, svc.ScanImage, opts...))
	mux.Handle(AssignPlayerProcedure, connect.NewUnaryHandler(AssignPlayerProcedure, svc.AssignPlayer, opts...))
	mux.Handle(SetGroupTypeProcedure, connect.NewUnaryHandler(SetGroupTypeProcedure, svc.SetGroupType, opts...))
	mux.Handle(RemoveGroupProcedure, connect.NewUnaryHandler(RemoveGroupProcedure, svc.RemoveGroup, opts...))
	mux.Handle(PromoteGroupProcedure, connect.NewUnaryHandler(PromoteGroupProcedure, svc.PromoteGroup, opts...))
	mux.Handle(CompleteGameProcedure, connect.NewUnaryHandler(CompleteGameProcedure, svc.CompleteGame, opts...))
	mux.Handle(UndoGameProcedure, connect.NewUnaryHandler(UndoGameProcedure, svc.UndoGame, opts...))
	mux.Handle(SetCourtsProcedure, connect.NewUnaryHandler(SetCourtsProcedure, svc.SetCourts, opts...))
	mux.Handle(AvailablePlayersProcedure, connect.NewUnaryHandler(AvailablePlayersProcedure, svc.AvailablePlayers, opts...))

	return "/" + ServiceName + "/", mux
}
