package script

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"trapzone/internal/domain/hunting"
)

var ErrSeedAfterStart = errors.New("seed must come before the first command")

type Failure struct {
	Line    int
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("line %d: %s", f.Line, f.Message)
}

type Result struct {
	Executed int
	Rejected int
	Failures []Failure
	Final    hunting.Snapshot
}

func (r Result) Passed() bool { return len(r.Failures) == 0 }

// Runner plays a script against a fresh session. Rejected commands are
// reported and skipped; failed expectations are collected.
type Runner struct {
	Config hunting.Config
	Out    io.Writer
}

func (r Runner) Run(prog *Script) (Result, error) {
	cfg := r.Config
	var (
		res  Result
		sess *hunting.Session
		rec  = &hunting.Recorder{}
	)
	start := func() error {
		if sess != nil {
			return nil
		}
		s, err := hunting.NewSession(cfg, nil, rec)
		if err != nil {
			return err
		}
		sess = s
		r.printf("session seed=%d balance=%d\n", cfg.Seed, s.Balance())
		r.flush(sess, rec)
		return nil
	}

	for _, st := range prog.Statements {
		line := st.Pos.Line
		if st.Seed != nil {
			if sess != nil {
				return res, fmt.Errorf("line %d: %w", line, ErrSeedAfterStart)
			}
			cfg.Seed = *st.Seed
			continue
		}
		if err := start(); err != nil {
			return res, err
		}
		res.Executed++

		var err error
		switch {
		case st.Buy != nil:
			err = sess.PurchaseTrap(hunting.TrapKindID(*st.Buy))
		case st.Deploy != nil:
			err = sess.DeployTrap(hunting.TrapKindID(st.Deploy.Trap), hunting.ZoneID(st.Deploy.Zone))
		case st.Advance != nil:
			if *st.Advance <= 0 {
				err = fmt.Errorf("advance needs a positive duration, got %g", *st.Advance)
				break
			}
			sess.Advance(time.Duration(*st.Advance * float64(time.Second)))
		case st.Fire != nil:
			err = sess.Fire(hunting.Process(*st.Fire))
		case st.Pause:
			sess.Pause()
		case st.Resume:
			sess.Resume()
		case st.Status:
			r.printStatus(sess.Snapshot())
		case st.Expect != nil:
			if msg := check(sess, st.Expect); msg != "" {
				res.Failures = append(res.Failures, Failure{Line: line, Message: msg})
				r.printf("line %d: FAIL %s\n", line, msg)
			}
		}
		if err != nil {
			res.Rejected++
			r.printf("line %d: rejected: %v\n", line, err)
		}
		r.flush(sess, rec)
	}

	if err := start(); err != nil {
		return res, err
	}
	res.Final = sess.Snapshot()
	if sess.Over() {
		o := sess.Outcome()
		r.printf("game over (%s): %s\n", o.Reason, o.Message)
	}
	return res, nil
}

func check(s *hunting.Session, e *Expectation) string {
	switch {
	case e.Balance != nil:
		if got := s.Balance(); got != *e.Balance {
			return fmt.Sprintf("expected balance %d, got %d", *e.Balance, got)
		}
	case e.Owned != nil:
		if got := s.Owned(hunting.TrapKindID(e.Owned.Trap)); got != e.Owned.Count {
			return fmt.Sprintf("expected %d owned %s, got %d", e.Owned.Count, e.Owned.Trap, got)
		}
	case e.Animals != nil:
		z, err := s.Zone(hunting.ZoneID(e.Animals.Zone))
		if err != nil {
			return err.Error()
		}
		if got := z.AnimalCount(hunting.AnimalKindID(e.Animals.Animal)); got != e.Animals.Count {
			return fmt.Sprintf("expected %d %s in %s, got %d", e.Animals.Count, e.Animals.Animal, e.Animals.Zone, got)
		}
	case e.Traps != nil:
		z, err := s.Zone(hunting.ZoneID(e.Traps.Zone))
		if err != nil {
			return err.Error()
		}
		if got := z.TrapCount(hunting.TrapKindID(e.Traps.Trap)); got != e.Traps.Count {
			return fmt.Sprintf("expected %d %s traps in %s, got %d", e.Traps.Count, e.Traps.Trap, e.Traps.Zone, got)
		}
	case e.Over != nil:
		if !s.Over() {
			return fmt.Sprintf("expected session over (%s), still running", *e.Over)
		}
		if got := s.Outcome().Reason; got != *e.Over {
			return fmt.Sprintf("expected outcome %q, got %q", *e.Over, got)
		}
	case e.Running:
		if s.Over() {
			return fmt.Sprintf("expected session running, ended with %q", s.Outcome().Reason)
		}
	}
	return ""
}

func (r Runner) flush(s *hunting.Session, rec *hunting.Recorder) {
	for _, evt := range rec.Drain() {
		r.printf("[%7.1fs] %s\n", s.Now().Seconds(), Describe(evt))
	}
}

func (r Runner) printStatus(snap hunting.Snapshot) {
	r.printf("status: %s balance=%d clock=%s paused=%v\n", snap.State, snap.Balance, snap.Clock, snap.Paused)
	for _, z := range snap.Zones {
		r.printf("  %s animals=%s traps=%s\n", z.ID, formatCounts(z.Animals), formatCounts(z.Traps))
	}
}

func (r Runner) printf(format string, args ...any) {
	if r.Out != nil {
		fmt.Fprintf(r.Out, format, args...)
	}
}

// Describe renders one notification as a single log line.
func Describe(evt hunting.Event) string {
	switch evt.Type {
	case hunting.EventBalanceChanged:
		return fmt.Sprintf("balance %d", evt.Value)
	case hunting.EventTrapCountChanged:
		return fmt.Sprintf("owned %s=%d", evt.Trap, evt.Value)
	case hunting.EventZoneTrapCountChanged:
		return fmt.Sprintf("%s traps %s=%d", evt.Zone, evt.Trap, evt.Value)
	case hunting.EventAnimalCountChanged:
		return fmt.Sprintf("%s animals %s=%d", evt.Zone, evt.Animal, evt.Value)
	case hunting.EventHunted:
		return fmt.Sprintf("%s %s caught by %s (+%d)", evt.Zone, evt.Animal, evt.Trap, evt.Value)
	case hunting.EventExtinction:
		return fmt.Sprintf("%s %s extinct", evt.Zone, evt.Animal)
	case hunting.EventOverpopulation:
		return fmt.Sprintf("%s %s overpopulated (%d)", evt.Zone, evt.Animal, evt.Value)
	case hunting.EventSessionOver:
		return fmt.Sprintf("session over: %s", evt.Reason)
	default:
		return string(evt.Type)
	}
}

func formatCounts[K ~string](m map[K]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, m[K(k)]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
