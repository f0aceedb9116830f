package game

import (
	"context"
	"time"

	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEvents struct {
	appended  []ports.JournalEntry
	appendErr error
}

func (r *fakeEvents) Append(_ context.Context, _ string, entries []ports.JournalEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.appended = append(r.appended, entries...)
	return nil
}

func (r *fakeEvents) ListBySessionID(_ context.Context, _ string, _ int) ([]ports.JournalEntry, error) {
	return r.appended, nil
}

type fakeSessions struct {
	records map[string]ports.SessionRecord
}

func (r *fakeSessions) Create(_ context.Context, rec ports.SessionRecord) error {
	if r.records == nil {
		r.records = map[string]ports.SessionRecord{}
	}
	if _, ok := r.records[rec.SessionID]; ok {
		return ports.ErrConflict
	}
	r.records[rec.SessionID] = rec
	return nil
}

func (r *fakeSessions) Close(_ context.Context, id, reason string, balance int, endedAt time.Time) error {
	rec, ok := r.records[id]
	if !ok {
		return ports.ErrNotFound
	}
	rec.Reason = reason
	rec.FinalBalance = balance
	rec.EndedAt = &endedAt
	r.records[id] = rec
	return nil
}

func (r *fakeSessions) Get(_ context.Context, id string) (ports.SessionRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

type fakePublisher struct {
	published []ports.JournalEntry
}

func (p *fakePublisher) Publish(_ string, entries []ports.JournalEntry) {
	p.published = append(p.published, entries...)
}

type fakeMetrics struct {
	commands map[string]int
	rejected map[string]int
	events   int
}

func (m *fakeMetrics) RecordCommand(command string, err error) {
	if m.commands == nil {
		m.commands = map[string]int{}
		m.rejected = map[string]int{}
	}
	m.commands[command]++
	if err != nil {
		m.rejected[command]++
	}
}

func (m *fakeMetrics) RecordEvents(events []hunting.Event) {
	m.events += len(events)
}

type fixture struct {
	uc        UseCase
	events    *fakeEvents
	sessions  *fakeSessions
	publisher *fakePublisher
	metrics   *fakeMetrics
}

func newFixture(cfg hunting.Config) *fixture {
	f := &fixture{
		events:    &fakeEvents{},
		sessions:  &fakeSessions{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	f.uc = UseCase{
		Registry:  NewRegistry(),
		Config:    cfg,
		TxManager: fakeTx{},
		Sessions:  f.sessions,
		Events:    f.events,
		Publisher: f.publisher,
		Metrics:   f.metrics,
		NewID:     func() string { return "s-1" },
		Now:       func() time.Time { return time.Unix(1700000000, 0) },
	}
	return f
}

func seed(v int64) *int64 { return &v }

type fakeScenarios map[string]hunting.Config

func (f fakeScenarios) Load(_ context.Context, name string) (hunting.Config, error) {
	cfg, ok := f[name]
	if !ok {
		return hunting.Config{}, ports.ErrNotFound
	}
	return cfg, nil
}

func (f fakeScenarios) List(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	return names, nil
}
