package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/dropin/internal/api"
	"github.com/mmynk/dropin/internal/courts"
	"github.com/mmynk/dropin/internal/metrics"
	"github.com/mmynk/dropin/internal/models"
	"github.com/mmynk/dropin/internal/names"
	"github.com/mmynk/dropin/internal/roster"
)

var (
	errNoNamesFound     = errors.New("no names found")
	errOCRDisabled      = errors.New("image scanning is not configured")
	errMethodRequired   = errors.New("payment method is required; use ClearPayment to mark unpaid")
	errEmptyText        = errors.New("text is required")
	errEmptyImage       = errors.New("image is required")
	errProcessingFailed = errors.New("processing failed")
)

// Persister receives every roster snapshot. *persist.Writer satisfies it.
type Persister interface {
	Save(participants []models.Participant)
	Notice() string
}

// TextExtractor turns an image into raw text. *ocr.Client satisfies it.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Config wires a SessionService. Only NumCourts is required.
type Config struct {
	// Participants is the roster loaded at startup.
	Participants []models.Participant
	NumCourts    int

	Persister Persister
	OCR       TextExtractor
	Metrics   *metrics.Metrics

	// Registrar and Engine default to UUID-issuing instances.
	Registrar roster.Registrar
	Engine    courts.Engine
}

// SessionService implements api.SessionServiceHandler. It owns the roster
// and the court rotation; every mutation runs under one lock as a pure
// transition, and roster changes are handed to the Persister.
type SessionService struct {
	registrar roster.Registrar
	engine    courts.Engine
	persister Persister
	ocr       TextExtractor
	metrics   *metrics.Metrics

	mu     sync.Mutex
	roster roster.Roster
	courts courts.State
}

var _ api.SessionServiceHandler = (*SessionService)(nil)

// NewSessionService creates a SessionService from cfg.
func NewSessionService(cfg Config) (*SessionService, error) {
	if cfg.Registrar.NewID == nil {
		cfg.Registrar = roster.NewRegistrar()
	}
	if cfg.Engine.NewID == nil {
		cfg.Engine = courts.NewEngine()
	}
	if cfg.Persister == nil {
		cfg.Persister = discard{}
	}

	state, err := cfg.Engine.New(cfg.NumCourts)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s := &SessionService{
		registrar: cfg.Registrar,
		engine:    cfg.Engine,
		persister: cfg.Persister,
		ocr:       cfg.OCR,
		metrics:   cfg.Metrics,
		roster:    roster.Roster{Participants: cfg.Participants},
		courts:    state,
	}
	s.metrics.SetRoster(len(cfg.Participants), roster.PaidCount(s.roster))
	return s, nil
}

// GetSession returns the current view.
func (s *SessionService) GetSession(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return connect.NewResponse(s.view()), nil
}

// AddParticipant adds one unpaid participant by name.
func (s *SessionService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, p, err := s.registrar.Add(s.roster, req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.commitRoster(next)

	slog.Info("Participant added", "participant_id", p.ID, "name", p.Name)
	return connect.NewResponse(s.view()), nil
}

// ConfirmNames adds the reviewed ingestion result.
func (s *SessionService) ConfirmNames(ctx context.Context, req *connect.Request[api.ConfirmNamesRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, added, err := s.registrar.AddBatch(s.roster, req.Msg.Names)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.commitRoster(next)

	slog.Info("Participants added from review", "count", len(added))
	return connect.NewResponse(s.view()), nil
}

// SetPayment records a payment method.
func (s *SessionService) SetPayment(ctx context.Context, req *connect.Request[api.SetPaymentRequest]) (*connect.Response[api.Session], error) {
	method, err := models.ParsePaymentMethod(req.Msg.PaymentMethod)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if !method.Paid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMethodRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := roster.SetPayment(s.roster, req.Msg.ParticipantID, method)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.commitRoster(next)

	slog.Info("Payment recorded", "participant_id", req.Msg.ParticipantID, "method", method)
	return connect.NewResponse(s.view()), nil
}

// ClearPayment marks a participant unpaid.
func (s *SessionService) ClearPayment(ctx context.Context, req *connect.Request[api.ClearPaymentRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := roster.ClearPayment(s.roster, req.Msg.ParticipantID)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.commitRoster(next)

	slog.Info("Payment cleared", "participant_id", req.Msg.ParticipantID)
	return connect.NewResponse(s.view()), nil
}

// SetNote replaces a participant's note; blank text clears it.
func (s *SessionService) SetNote(ctx context.Context, req *connect.Request[api.SetNoteRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := roster.SetNote(s.roster, req.Msg.ParticipantID, req.Msg.Note)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.commitRoster(next)

	return connect.NewResponse(s.view()), nil
}

// ClearAll empties the roster and removes everyone from the courts.
func (s *SessionService) ClearAll(ctx context.Context, req *connect.Request[api.ClearAllRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.roster.Participants)
	s.commitRoster(roster.ClearAll(s.roster))
	s.setCourts(s.engine.Prune(s.courts, s.roster.Participants))

	slog.Info("Roster cleared", "count", count)
	return connect.NewResponse(s.view()), nil
}

// ListParticipants returns the roster through a payment filter.
func (s *SessionService) ListParticipants(ctx context.Context, req *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error) {
	filter, err := roster.ParseFilter(req.Msg.Filter)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return connect.NewResponse(&api.ListParticipantsResponse{
		Participants: nonNil(roster.Apply(s.roster, filter)),
		PaidCount:    roster.PaidCount(s.roster),
		Total:        len(s.roster.Participants),
	}), nil
}

// ParseText extracts candidate names from pasted text. The roster is not
// changed.
func (s *SessionService) ParseText(ctx context.Context, req *connect.Request[api.ParseTextRequest]) (*connect.Response[api.CandidatesResponse], error) {
	if strings.TrimSpace(req.Msg.Text) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errEmptyText)
	}
	candidates := names.ParseBatch(req.Msg.Text)
	if len(candidates) == 0 {
		return nil, connect.NewError(connect.CodeNotFound, errNoNamesFound)
	}
	return connect.NewResponse(&api.CandidatesResponse{Names: candidates}), nil
}

// ScanImage sends a photo of a name list to the OCR service and returns
// candidate names. The lock is not held during the request, and the roster
// is not changed.
func (s *SessionService) ScanImage(ctx context.Context, req *connect.Request[api.ScanImageRequest]) (*connect.Response[api.CandidatesResponse], error) {
	if s.ocr == nil {
		return nil, connect.NewError(connect.CodeUnimplemented, errOCRDisabled)
	}
	if len(req.Msg.Image) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errEmptyImage)
	}

	text, err := s.ocr.ExtractText(ctx, req.Msg.Image)
	if err != nil {
		slog.Warn("OCR request failed", "bytes", len(req.Msg.Image), "error", err)
		s.metrics.OCRResult("error")
		return nil, connect.NewError(connect.CodeUnavailable, fmt.Errorf("%w: %v", errProcessingFailed, err))
	}

	candidates := names.ParseBatch(text)
	if len(candidates) == 0 {
		s.metrics.OCRResult("no_names")
		return nil, connect.NewError(connect.CodeNotFound, errNoNamesFound)
	}

	s.metrics.OCRResult("ok")
	slog.Info("Names extracted from image", "count", len(candidates))
	return connect.NewResponse(&api.CandidatesResponse{Names: candidates}), nil
}

// AssignPlayer fills or clears a queue slot.
func (s *SessionService) AssignPlayer(ctx context.Context, req *connect.Request[api.AssignPlayerRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := req.Msg.ParticipantID
	if id != "" {
		if _, ok := roster.Lookup(s.roster, id); !ok {
			return nil, connect.NewError(connect.CodeNotFound, roster.ErrNotFound)
		}
	}

	next, err := s.engine.AssignPlayer(s.courts, req.Msg.GroupID, req.Msg.Slot, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.setCourts(next)

	slog.Debug("Slot assigned", "group_id", req.Msg.GroupID, "slot", req.Msg.Slot, "participant_id", id)
	return connect.NewResponse(s.view()), nil
}

// SetGroupType relabels a queued group. Unknown groups are ignored.
func (s *SessionService) SetGroupType(ctx context.Context, req *connect.Request[api.SetGroupTypeRequest]) (*connect.Response[api.Session], error) {
	t, err := models.ParseGroupType(req.Msg.Type)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCourts(s.engine.SetGroupType(s.courts, req.Msg.GroupID, t))
	return connect.NewResponse(s.view()), nil
}

// RemoveGroup deletes a queued group. Unknown groups are ignored.
func (s *SessionService) RemoveGroup(ctx context.Context, req *connect.Request[api.RemoveGroupRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCourts(s.engine.RemoveGroup(s.courts, req.Msg.GroupID))
	return connect.NewResponse(s.view()), nil
}

// PromoteGroup starts a game with a full group.
func (s *SessionService) PromoteGroup(ctx context.Context, req *connect.Request[api.PromoteGroupRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.engine.Promote(s.courts, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.setCourts(next)
	s.metrics.GamePromoted()

	slog.Info("Game started", "group_id", req.Msg.GroupID, "courts_in_use", len(next.Playing))
	return connect.NewResponse(s.view()), nil
}

// CompleteGame ends a game. Unknown games are ignored.
func (s *SessionService) CompleteGame(ctx context.Context, req *connect.Request[api.CompleteGameRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCourts(s.engine.Complete(s.courts, req.Msg.GameID))
	slog.Info("Game completed", "group_id", req.Msg.GameID)
	return connect.NewResponse(s.view()), nil
}

// UndoGame returns a game to its queue position. Unknown games are ignored.
func (s *SessionService) UndoGame(ctx context.Context, req *connect.Request[api.UndoGameRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCourts(s.engine.Undo(s.courts, req.Msg.GameID))
	slog.Info("Game undone", "group_id", req.Msg.GameID)
	return connect.NewResponse(s.view()), nil
}

// SetCourts changes the number of courts.
func (s *SessionService) SetCourts(ctx context.Context, req *connect.Request[api.SetCourtsRequest]) (*connect.Response[api.Session], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.engine.SetCourts(s.courts, req.Msg.NumCourts)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.setCourts(next)
	return connect.NewResponse(s.view()), nil
}

// AvailablePlayers lists the choices for one queue slot.
func (s *SessionService) AvailablePlayers(ctx context.Context, req *connect.Request[api.AvailablePlayersRequest]) (*connect.Response[api.AvailablePlayersResponse], error) {
	if req.Msg.Slot < 0 || req.Msg.Slot >= models.GroupSize {
		return nil, connect.NewError(connect.CodeInvalidArgument, courts.ErrSlotOutOfRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	players := courts.AvailablePlayers(s.courts, s.roster.Participants, req.Msg.GroupID, req.Msg.Slot)
	return connect.NewResponse(&api.AvailablePlayersResponse{Players: nonNil(players)}), nil
}

// commitRoster installs a new roster and queues it for persistence.
// Callers hold s.mu.
func (s *SessionService) commitRoster(next roster.Roster) {
	s.roster = next
	s.persister.Save(next.Participants)
	s.metrics.SetRoster(len(next.Participants), roster.PaidCount(next))
}

// setCourts installs a new court state. Callers hold s.mu.
func (s *SessionService) setCourts(next courts.State) {
	s.courts = next
	s.metrics.SetCourtsInUse(len(next.Playing))
}

// view builds the response for the current state. Callers hold s.mu.
func (s *SessionService) view() *api.Session {
	promotable := []string{}
	for _, g := range s.courts.Queue {
		if s.courts.CanPromote(g.ID) {
			promotable = append(promotable, g.ID)
		}
	}
	return &api.Session{
		Participants: nonNil(s.roster.Participants),
		PaidCount:    roster.PaidCount(s.roster),
		Queue:        s.courts.Queue,
		Playing:      nonNil(s.courts.Playing),
		NumCourts:    s.courts.NumCourts,
		Promotable:   promotable,
		Unassigned:   nonNil(courts.UnassignedParticipants(s.courts, s.roster.Participants)),
		Notice:       s.persister.Notice(),
	}
}

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, roster.ErrEmptyName),
		errors.Is(err, roster.ErrNoNames),
		errors.Is(err, courts.ErrSlotOutOfRange),
		errors.Is(err, courts.ErrInvalidCourts):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, roster.ErrNotFound),
		errors.Is(err, courts.ErrGroupNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, courts.ErrPlayerOnCourt),
		errors.Is(err, courts.ErrGroupIncomplete),
		errors.Is(err, courts.ErrCourtsFull),
		errors.Is(err, courts.ErrCourtsInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type discard struct{}

func (discard) Save([]models.Participant) {}
func (discard) Notice() string            { return "" }
