// Package persist writes roster snapshots to storage off the request path.
//
// The Writer owns one background goroutine. Each mutation hands it the full
// roster; if a write is already pending the newer snapshot replaces it, so
// the last write wins and nothing is merged. The local snapshot and the
// optional remote table are written concurrently, and a failure in one does
// not stop the other.
package persist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/dropin/internal/metrics"
	"github.com/mmynk/dropin/internal/models"
	"github.com/mmynk/dropin/internal/storage"
)

const (
	BackendLocal  = "local"
	BackendRemote = "remote"

	defaultWriteTimeout = 30 * time.Second
)

// Config configures a Writer. Remote and Metrics are optional.
type Config struct {
	Local        storage.SnapshotStore
	Remote       storage.RemoteStore
	Metrics      *metrics.Metrics
	WriteTimeout time.Duration
}

// Writer persists roster snapshots in the background.
type Writer struct {
	local        storage.SnapshotStore
	remote       storage.RemoteStore
	metrics      *metrics.Metrics
	writeTimeout time.Duration

	pending chan []models.Participant
	done    chan struct{}

	saveMu sync.Mutex
	closed bool

	noticeMu sync.RWMutex
	notice   string

	// synced is the roster as last written to the remote table. Only the
	// background goroutine touches it after Load.
	synced []models.Participant
}

// NewWriter starts the background goroutine. Call Close to flush and stop it.
func NewWriter(cfg Config) *Writer {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	w := &Writer{
		local:        cfg.Local,
		remote:       cfg.Remote,
		metrics:      cfg.Metrics,
		writeTimeout: timeout,
		pending:      make(chan []models.Participant, 1),
		done:         make(chan struct{}),
	}
	go w.run()
	return w
}

// Load reads the roster once at startup. The local snapshot wins; when it is
// empty and a remote table is configured, the roster is seeded from the
// remote rows and written back locally.
func (w *Writer) Load(ctx context.Context) ([]models.Participant, error) {
	participants, err := w.local.LoadRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	if w.remote == nil {
		return participants, nil
	}

	rows, err := w.remote.ListParticipants(ctx)
	if err != nil {
		slog.Warn("Remote roster unavailable at startup", "error", err)
		w.metrics.PersistFailure(BackendRemote)
		w.setNotice(fmt.Sprintf("remote sync unavailable: %v", err))
		return participants, nil
	}
	w.synced = rows

	if len(participants) == 0 && len(rows) > 0 {
		slog.Info("Seeding roster from remote table", "count", len(rows))
		w.Save(rows)
		return rows, nil
	}
	return participants, nil
}

// Save queues a snapshot for writing. It never blocks on I/O. Snapshots
// passed after Close are dropped.
func (w *Writer) Save(participants []models.Participant) {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()

	if w.closed {
		slog.Warn("Roster snapshot dropped after close", "count", len(participants))
		return
	}
	for {
		select {
		case w.pending <- participants:
			return
		default:
		}
		// Discard the stale pending snapshot and try again.
		select {
		case <-w.pending:
		default:
		}
	}
}

// Notice returns a message describing the most recent write failure, or ""
// once a write has succeeded everywhere.
func (w *Writer) Notice() string {
	w.noticeMu.RLock()
	defer w.noticeMu.RUnlock()
	return w.notice
}

// Close writes any pending snapshot and stops the background goroutine.
func (w *Writer) Close() {
	w.saveMu.Lock()
	if !w.closed {
		w.closed = true
		close(w.pending)
	}
	w.saveMu.Unlock()
	<-w.done
}

func (w *Writer) run() {
	defer close(w.done)
	for participants := range w.pending {
		w.write(participants)
	}
}

func (w *Writer) write(participants []models.Participant) {
	ctx, cancel := context.WithTimeout(context.Background(), w.writeTimeout)
	defer cancel()

	// A plain Group, not WithContext: one backend failing must not cancel
	// the other.
	var g errgroup.Group
	g.Go(func() error {
		if err := w.local.SaveRoster(ctx, participants); err != nil {
			slog.Error("Failed to save roster locally", "count", len(participants), "error", err)
			w.metrics.PersistFailure(BackendLocal)
			return fmt.Errorf("local save: %w", err)
		}
		return nil
	})
	if w.remote != nil {
		g.Go(func() error {
			if err := w.sync(ctx, participants); err != nil {
				slog.Error("Failed to sync roster to remote table", "error", err)
				w.metrics.PersistFailure(BackendRemote)
				return fmt.Errorf("remote sync: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		w.setNotice(err.Error())
		return
	}
	w.setNotice("")
	slog.Debug("Roster persisted", "count", len(participants))
}

// sync brings the remote table in line with participants, touching only
// rows that changed since the last successful sync.
func (w *Writer) sync(ctx context.Context, participants []models.Participant) error {
	upserts, deletes := Diff(w.synced, participants)

	if err := w.remote.UpsertParticipants(ctx, upserts); err != nil {
		return err
	}
	switch len(deletes) {
	case 0:
	case 1:
		if err := w.remote.DeleteParticipant(ctx, deletes[0]); err != nil {
			return err
		}
	default:
		if err := w.remote.DeleteParticipants(ctx, deletes); err != nil {
			return err
		}
	}

	w.synced = participants
	return nil
}

func (w *Writer) setNotice(msg string) {
	w.noticeMu.Lock()
	w.notice = msg
	w.noticeMu.Unlock()
}

// Diff compares two roster snapshots. It returns the rows of next that are
// new, changed, or moved, and the IDs present in prev but not in next.
func Diff(prev, next []models.Participant) ([]storage.PositionedParticipant, []string) {
	type entry struct {
		p   models.Participant
		pos int
	}
	before := make(map[string]entry, len(prev))
	for i, p := range prev {
		before[p.ID] = entry{p: p, pos: i}
	}

	var upserts []storage.PositionedParticipant
	seen := make(map[string]bool, len(next))
	for i, p := range next {
		seen[p.ID] = true
		if old, ok := before[p.ID]; ok && old.p == p && old.pos == i {
			continue
		}
		upserts = append(upserts, storage.PositionedParticipant{Participant: p, Position: i})
	}

	var deletes []string
	for _, p := range prev {
		if !seen[p.ID] {
			deletes = append(deletes, p.ID)
		}
	}
	return upserts, deletes
}
