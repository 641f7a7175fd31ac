package api

import "log/slog"

// The LogValue methods let the RPC logging interceptor record which
// participant, group or game a call touched. Free text such as notes is
// left out.

func (r AddParticipantRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("name", r.Name))
}

func (r ConfirmNamesRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("names", len(r.Names)))
}

func (r SetPaymentRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("participant_id", r.ParticipantID),
		slog.String("method", r.PaymentMethod),
	)
}

func (r ClearPaymentRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("participant_id", r.ParticipantID))
}

func (r SetNoteRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("participant_id", r.ParticipantID))
}

func (r ListParticipantsRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("filter", r.Filter))
}

func (r ParseTextRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("bytes", len(r.Text)))
}

func (r ScanImageRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("bytes", len(r.Image)))
}

func (r AssignPlayerRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("group_id", r.GroupID),
		slog.Int("slot", r.Slot),
		slog.String("participant_id", r.ParticipantID),
	)
}

func (r SetGroupTypeRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("group_id", r.GroupID), slog.String("type", r.Type))
}

func (r RemoveGroupRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("group_id", r.GroupID))
}

func (r PromoteGroupRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("group_id", r.GroupID))
}

func (r CompleteGameRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("group_id", r.GameID))
}

func (r UndoGameRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("group_id", r.GameID))
}

func (r SetCourtsRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("courts", r.NumCourts))
}

func (r AvailablePlayersRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("group_id", r.GroupID), slog.Int("slot", r.Slot))
}
