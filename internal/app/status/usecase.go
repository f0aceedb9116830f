package status

import (
	"context"
	"errors"
	"strings"

	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

var ErrInvalidRequest = errors.New("invalid status request")

type LiveSessions interface {
	Snapshot(id string) (hunting.Snapshot, error)
}

// UseCase reports a live session, falling back to the journal summary for
// sessions this process no longer holds.
type UseCase struct {
	Live     LiveSessions
	Sessions ports.SessionRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	id := strings.TrimSpace(req.SessionID)
	if id == "" {
		return Response{}, ErrInvalidRequest
	}
	out := Response{SessionID: id}

	if u.Live != nil {
		snap, err := u.Live.Snapshot(id)
		switch {
		case err == nil:
			out.Live = true
			out.Snapshot = &snap
			if snap.Outcome != nil {
				out.Message = snap.Outcome.Message
			}
		case !errors.Is(err, ports.ErrNotFound):
			return Response{}, err
		}
	}

	if u.Sessions != nil {
		rec, err := u.Sessions.Get(ctx, id)
		switch {
		case err == nil:
			out.Record = &rec
		case !errors.Is(err, ports.ErrNotFound):
			return Response{}, err
		}
	}

	if !out.Live && out.Record == nil {
		return Response{}, ports.ErrNotFound
	}
	return out, nil
}
