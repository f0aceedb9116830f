package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

var ErrInvalidRequest = errors.New("invalid game request")

const maxAdvance = 24 * time.Hour

type UseCase struct {
	Registry  *Registry
	Config    hunting.Config
	TxManager ports.TxManager
	Sessions  ports.SessionRepository
	Events    ports.EventRepository
	Scenarios ports.ScenarioProvider
	Publisher ports.EventPublisher
	Metrics   ports.GameMetrics
	Logger    *slog.Logger
	NewID     func() string
	NewRNG    func(seed int64) hunting.RNG
	Now       func() time.Time
}

func (u UseCase) Start(ctx context.Context, req StartRequest) (Response, error) {
	now := u.now()
	cfg := u.Config
	if name := strings.TrimSpace(req.Scenario); name != "" {
		if u.Scenarios == nil {
			return Response{}, fmt.Errorf("%w: scenarios are not configured", ErrInvalidRequest)
		}
		loaded, err := u.Scenarios.Load(ctx, name)
		if err != nil {
			u.recordCommand("start", err)
			return Response{}, err
		}
		cfg = loaded
	}
	switch {
	case req.Seed != nil:
		cfg.Seed = *req.Seed
	case cfg.Seed == 0:
		cfg.Seed = now.UnixNano()
	}
	var rng hunting.RNG
	if u.NewRNG != nil {
		rng = u.NewRNG(cfg.Seed)
	}
	rec := &hunting.Recorder{}
	sess, err := hunting.NewSession(cfg, rng, rec)
	if err != nil {
		u.recordCommand("start", err)
		return Response{}, err
	}

	id := uuid.NewString()
	if u.NewID != nil {
		id = u.NewID()
	}
	live := &liveSession{id: id, session: sess, recorder: rec}
	live.mu.Lock()
	defer live.mu.Unlock()

	events := rec.Drain()
	if err := u.persist(ctx, live, events, &ports.SessionRecord{SessionID: id, Seed: cfg.Seed, StartedAt: now}); err != nil {
		u.recordCommand("start", err)
		return Response{}, err
	}
	u.Registry.add(live)
	u.logger().Info("session started", "session_id", id, "seed", cfg.Seed, "balance", sess.Balance())
	u.recordCommand("start", nil)
	return u.respond(live, events, 0), nil
}

func (u UseCase) Purchase(ctx context.Context, req PurchaseRequest) (Response, error) {
	kind := strings.TrimSpace(req.TrapKind)
	if kind == "" {
		return Response{}, ErrInvalidRequest
	}
	return u.execute(ctx, "purchase", req.SessionID, func(s *hunting.Session) (int, error) {
		return 0, s.PurchaseTrap(hunting.TrapKindID(kind))
	})
}

func (u UseCase) Deploy(ctx context.Context, req DeployRequest) (Response, error) {
	kind := strings.TrimSpace(req.TrapKind)
	zone := strings.TrimSpace(req.Zone)
	if kind == "" || zone == "" {
		return Response{}, ErrInvalidRequest
	}
	return u.execute(ctx, "deploy", req.SessionID, func(s *hunting.Session) (int, error) {
		return 0, s.DeployTrap(hunting.TrapKindID(kind), hunting.ZoneID(zone))
	})
}

func (u UseCase) Advance(ctx context.Context, req AdvanceRequest) (Response, error) {
	if req.Seconds <= 0 || math.IsNaN(req.Seconds) || math.IsInf(req.Seconds, 0) {
		return Response{}, ErrInvalidRequest
	}
	if req.Seconds > maxAdvance.Seconds() {
		return Response{}, fmt.Errorf("%w: advance capped at %s", ErrInvalidRequest, maxAdvance)
	}
	dt := time.Duration(req.Seconds * float64(time.Second))
	return u.execute(ctx, "advance", req.SessionID, func(s *hunting.Session) (int, error) {
		return s.Advance(dt), nil
	})
}

func (u UseCase) Fire(ctx context.Context, req FireRequest) (Response, error) {
	p := hunting.Process(strings.ToLower(strings.TrimSpace(req.Process)))
	if p == "" {
		return Response{}, ErrInvalidRequest
	}
	return u.execute(ctx, "fire", req.SessionID, func(s *hunting.Session) (int, error) {
		if err := s.Fire(p); err != nil {
			return 0, err
		}
		return 1, nil
	})
}

func (u UseCase) Pause(ctx context.Context, req SessionRequest) (Response, error) {
	return u.execute(ctx, "pause", req.SessionID, func(s *hunting.Session) (int, error) {
		s.Pause()
		return 0, nil
	})
}

func (u UseCase) Resume(ctx context.Context, req SessionRequest) (Response, error) {
	return u.execute(ctx, "resume", req.SessionID, func(s *hunting.Session) (int, error) {
		if s.Over() {
			return 0, hunting.ErrSessionOver
		}
		s.Resume()
		return 0, nil
	})
}

func (u UseCase) execute(ctx context.Context, command, sessionID string, fn func(*hunting.Session) (int, error)) (Response, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	live, err := u.Registry.get(sessionID)
	if err != nil {
		u.recordCommand(command, err)
		return Response{}, err
	}
	live.mu.Lock()
	defer live.mu.Unlock()

	fired, err := fn(live.session)
	events := live.recorder.Drain()
	if err != nil {
		u.recordCommand(command, err)
		return Response{}, err
	}
	if err := u.persist(ctx, live, events, nil); err != nil {
		u.recordCommand(command, err)
		return Response{}, err
	}
	u.recordCommand(command, nil)
	return u.respond(live, events, fired), nil
}

// persist journals events and, when the session has just ended, closes its
// summary row. Entries are published only after the transaction commits.
func (u UseCase) persist(ctx context.Context, live *liveSession, events []hunting.Event, open *ports.SessionRecord) error {
	now := u.now()
	entries := make([]ports.JournalEntry, 0, len(events))
	for i, evt := range events {
		entries = append(entries, ports.JournalEntry{
			SessionID:  live.id,
			Seq:        live.nextSeq + int64(i) + 1,
			Event:      evt,
			ClockAt:    live.session.Now(),
			RecordedAt: now,
		})
	}
	closing := live.session.Over() && !live.closed

	if u.TxManager != nil {
		err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
			if open != nil && u.Sessions != nil {
				if err := u.Sessions.Create(txCtx, *open); err != nil {
					return err
				}
			}
			if len(entries) > 0 && u.Events != nil {
				if err := u.Events.Append(txCtx, live.id, entries); err != nil {
					return err
				}
			}
			if closing && u.Sessions != nil {
				outcome := live.session.Outcome()
				return u.Sessions.Close(txCtx, live.id, outcome.Reason, live.session.Balance(), now)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("journal session %s: %w", live.id, err)
		}
	}

	live.nextSeq += int64(len(entries))
	if closing {
		live.closed = true
		live.closedAt.Store(now.UnixNano())
		outcome := live.session.Outcome()
		u.logger().Info("session over", "session_id", live.id, "reason", outcome.Reason, "balance", live.session.Balance())
	}
	if u.Metrics != nil {
		u.Metrics.RecordEvents(events)
	}
	if u.Publisher != nil && len(entries) > 0 {
		u.Publisher.Publish(live.id, entries)
	}
	return nil
}

func (u UseCase) respond(live *liveSession, events []hunting.Event, fired int) Response {
	if events == nil {
		events = []hunting.Event{}
	}
	return Response{
		SessionID: live.id,
		Seed:      live.session.Config().Seed,
		Fired:     fired,
		Events:    events,
		Snapshot:  live.session.Snapshot(),
	}
}

func (u UseCase) recordCommand(command string, err error) {
	if u.Metrics != nil {
		u.Metrics.RecordCommand(command, err)
	}
	if err != nil {
		u.logger().Debug("command rejected", "command", command, "err", err)
	}
}

func (u UseCase) logger() *slog.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
