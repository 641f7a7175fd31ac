package api

import (
	"context"

	"connectrpc.com/connect"
)

// Client is a typed client for the session service.
type Client struct {
	getSession       *connect.Client[GetSessionRequest, Session]
	addParticipant   *connect.Client[AddParticipantRequest, Session]
	confirmNames     *connect.Client[ConfirmNamesRequest, Session]
	setPayment       *connect.Client[SetPaymentRequest, Session]
	clearPayment     *connect.Client[ClearPaymentRequest, Session]
	setNote          *connect.Client[SetNoteRequest, Session]
	clearAll         *connect.Client[ClearAllRequest, Session]
	listParticipants *connect.Client[ListParticipantsRequest, ListParticipantsResponse]
	parseText        *connect.Client[ParseTextRequest, CandidatesResponse]
	scanImage        *connect.Client[ScanImageRequest, CandidatesResponse]
	assignPlayer     *connect.Client[AssignPlayerRequest, Session]
	setGroupType     *connect.Client[SetGroupTypeRequest, Session]
	removeGroup      *connect.Client[RemoveGroupRequest, Session]
	promoteGroup     *connect.Client[PromoteGroupRequest, Session]
	completeGame     *connect.Client[CompleteGameRequest, Session]
	undoGame         *connect.Client[UndoGameRequest, Session]
	setCourts        *connect.Client[SetCourtsRequest, Session]
	availablePlayers *connect.Client[AvailablePlayersRequest, AvailablePlayersResponse]
}

// NewClient builds a client for the service at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &Client{
		getSession:       connect.NewClient[GetSessionRequest, Session](httpClient, baseURL+GetSessionProcedure, opts...),
		addParticipant:   connect.NewClient[AddParticipantRequest, Session](httpClient, baseURL+AddParticipantProcedure, opts...),
		confirmNames:     connect.NewClient[ConfirmNamesRequest, Session](httpClient, baseURL+ConfirmNamesProcedure, opts...),
		setPayment:       connect.NewClient[SetPaymentRequest, Session](httpClient, baseURL+SetPaymentProcedure, opts...),
		clearPayment:     connect.NewClient[ClearPaymentRequest, Session](httpClient, baseURL+ClearPaymentProcedure, opts...),
		setNote:          connect.NewClient[SetNoteRequest, Session](httpClient, baseURL+SetNoteProcedure, opts...),
		clearAll:         connect.NewClient[ClearAllRequest, Session](httpClient, baseURL+ClearAllProcedure, opts...),
		listParticipants: connect.NewClient[ListParticipantsRequest, ListParticipantsResponse](httpClient, baseURL+ListParticipantsProcedure, opts...),
		parseText:        connect.NewClient[ParseTextRequest, CandidatesResponse](httpClient, baseURL+ParseTextProcedure, opts...),
		scanImage:        connect.NewClient[ScanImageRequest, CandidatesResponse](httpClient, baseURL+ScanImageProcedure, opts...),
		assignPlayer:     connect.NewClient[AssignPlayerRequest, Session](httpClient, baseURL+AssignPlayerProcedure, opts...),
		setGroupType:     connect.NewClient[SetGroupTypeRequest, Session](httpClient, baseURL+SetGroupTypeProcedure, opts...),
		removeGroup:      connect.NewClient[RemoveGroupRequest, Session](httpClient, baseURL+RemoveGroupProcedure, opts...),
		promoteGroup:     connect.NewClient[PromoteGroupRequest, Session](httpClient, baseURL+PromoteGroupProcedure, opts...),
		completeGame:     connect.NewClient[CompleteGameRequest, Session](httpClient, baseURL+CompleteGameProcedure, opts...),
		undoGame:         connect.NewClient[UndoGameRequest, Session](httpClient, baseURL+UndoGameProcedure, opts...),
		setCourts:        connect.NewClient[SetCourtsRequest, Session](httpClient, baseURL+SetCourtsProcedure, opts...),
		availablePlayers: connect.NewClient[AvailablePlayersRequest, AvailablePlayersResponse](httpClient, baseURL+AvailablePlayersProcedure, opts...),
	}
}

func (c *Client) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[Session], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *Client) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[Session], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *Client) ConfirmNames(ctx context.Context, req *connect.Request[ConfirmNamesRequest]) (*connect.Response[Session], error) {
	return c.confirmNames.CallUnary(ctx, req)
}

func (c *Client) SetPayment(ctx context.Context, req *connect.Request[SetPaymentRequest]) (*connect.Response[Session], error) {
	return c.setPayment.CallUnary(ctx, req)
}

func (c *Client) ClearPayment(ctx context.Context, req *connect.Request[ClearPaymentRequest]) (*connect.Response[Session], error) {
	return c.clearPayment.CallUnary(ctx, req)
}

func (c *Client) SetNote(ctx context.Context, req *connect.Request[SetNoteRequest]) (*connect.Response[Session], error) {
	return c.setNote.CallUnary(ctx, req)
}

func (c *Client) ClearAll(ctx context.Context, req *connect.Request[ClearAllRequest]) (*connect.Response[Session], error) {
	return c.clearAll.CallUnary(ctx, req)
}

func (c *Client) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *Client) ParseText(ctx context.Context, req *connect.Request[ParseTextRequest]) (*connect.Response[CandidatesResponse], error) {
	return c.parseText.CallUnary(ctx, req)
}

func (c *Client) ScanImage(ctx context.Context, req *connect.Request[ScanImageRequest]) (*connect.Response[CandidatesResponse], error) {
	return c.scanImage.CallUnary(ctx, req)
}

func (c *Client) AssignPlayer(ctx context.Context, req *connect.Request[AssignPlayerRequest]) (*connect.Response[Session], error) {
	return c.assignPlayer.CallUnary(ctx, req)
}

func (c *Client) SetGroupType(ctx context.Context, req *connect.Request[SetGroupTypeRequest]) (*connect.Response[Session], error) {
	return c.setGroupType.CallUnary(ctx, req)
}

func (c *Client) RemoveGroup(ctx context.Context, req *connect.Request[RemoveGroupRequest]) (*connect.Response[Session], error) {
	return c.removeGroup.CallUnary(ctx, req)
}

func (c *Client) PromoteGroup(ctx context.Context, req *connect.Request[PromoteGroupRequest]) (*connect.Response[Session], error) {
	return c.promoteGroup.CallUnary(ctx, req)
}

func (c *Client) CompleteGame(ctx context.Context, req *connect.Request[CompleteGameRequest]) (*connect.Response[Session], error) {
	return c.completeGame.CallUnary(ctx, req)
}

func (c *Client) UndoGame(ctx context.Context, req *connect.Request[UndoGameRequest]) (*connect.Response[Session], error) {
	return c.undoGame.CallUnary(ctx, req)
}

func (c *Client) SetCourts(ctx context.Context, req *connect.Request[SetCourtsRequest]) (*connect.Response[Session], error) {
	return c.setCourts.CallUnary(ctx, req)
}

func (c *Client) AvailablePlayers(ctx context.Context, req *connect.Request[AvailablePlayersRequest]) (*connect.Response[AvailablePlayersResponse], error) {
	return c.availablePlayers.CallUnary(ctx, req)
}
