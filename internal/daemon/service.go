// Package daemon provides the long-running background metrics service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/engine"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/pipeline"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/store"
)

// Event types.
const (
	EventSnapshot    = "snapshot"
	EventSpendDelta  = "spend_delta"
	EventDayRollover = "day_rollover"
)

const (
	defaultInterval     = 15 * time.Second
	minInterval         = 2 * time.Second
	defaultEventsBuffer = 200
	defaultAddr         = "127.0.0.1:8797"
	pollTimeout         = 10 * time.Second
	shutdownTimeout     = 5 * time.Second
)

// Config controls the daemon runtime behavior.
type Config struct {
	DataDir      string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Publisher forwards events to an external broker.
type Publisher interface {
	Publish(ctx context.Context, kind string, body []byte) error
}

// Snapshot is a compact metrics state for status and event payloads.
type Snapshot struct {
	At                      time.Time `json:"at"`
	Day                     string    `json:"day"`
	Transactions            int       `json:"transactions"`
	TotalSpentThisMonth     float64   `json:"total_spent_this_month"`
	VariableSpentThisMonth  float64   `json:"variable_spent_this_month"`
	RemainingVariableBudget float64   `json:"remaining_variable_budget"`
	DailySafeSpend          float64   `json:"daily_safe_spend"`
	DaysOfRunway            int       `json:"days_of_runway"`
	DisciplineScore         float64   `json:"discipline_score"`
	YearlyGoalProgress      float64   `json:"yearly_goal_progress"`
	DaysRemainingInYear     int       `json:"days_remaining_in_year"`
}

// Delta captures snapshot changes between polls.
type Delta struct {
	Transactions    int     `json:"transactions"`
	TotalSpent      float64 `json:"total_spent"`
	DailySafeSpend  float64 `json:"daily_safe_spend"`
	DisciplineScore float64 `json:"discipline_score"`
}

func (d Delta) isZero() bool {
	return d.Transactions == 0 &&
		d.TotalSpent == 0 &&
		d.DailySafeSpend == 0 &&
		d.DisciplineScore == 0
}

// Event is emitted whenever the metrics snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DataDir         string    `json:"data_dir"`
	HasProfile      bool      `json:"has_profile"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg  Config
	repo store.Repository
	pub  Publisher
	log  logrus.FieldLogger
	now  func() time.Time

	// pollMu serializes polls so events publish in ID order.
	pollMu sync.Mutex

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	hasProfile  bool
	snapshot    Snapshot
	full        model.Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a daemon service reading from repo. pub may be nil.
func New(cfg Config, repo store.Repository, pub Publisher, log logrus.FieldLogger) *Service {
	if cfg.Interval < minInterval {
		cfg.Interval = defaultInterval
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = defaultEventsBuffer
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}

	return &Service{
		cfg:       cfg,
		repo:      repo,
		pub:       pub,
		log:       log,
		now:       time.Now,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Router returns the HTTP API.
func (s *Service) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	v1.HandleFunc("/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	v1.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	v1.HandleFunc("/stream", s.handleStream).Methods(http.MethodGet)
	return r
}

// Run serves the HTTP API and polls the ledger until ctx is canceled.
// Polls run on a cron schedule every Interval and again at local midnight
// so day rollover is reported promptly.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(ctx)

	sched := cron.New(
		cron.WithLocation(time.Local),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(s.log))),
	)
	poll := cron.FuncJob(func() { s.pollOnce(ctx) })
	if _, err := sched.AddJob(fmt.Sprintf("@every %s", s.cfg.Interval), poll); err != nil {
		return fmt.Errorf("schedule poll: %w", err)
	}
	if _, err := sched.AddJob("@midnight", poll); err != nil {
		return fmt.Errorf("schedule rollover: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("daemon http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		sched.Start()
		<-gctx.Done()
		<-sched.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *Service) pollOnce(ctx context.Context) {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	ledger, err := pipeline.LoadLedger(ctx, s.repo)
	now := s.now()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.WithError(err).Warn("daemon poll failed")
		return
	}

	full := ledger.Snapshot(now)
	snap := compact(full, len(ledger.Transactions))

	var evs []Event

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.hasProfile = ledger.HasProfile
	s.snapshot = snap
	s.full = full
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	switch {
	case !prevExists:
		evs = append(evs, s.newEventLocked(EventSnapshot, now, snap, Delta{}))
	default:
		if prev.Day != snap.Day {
			evs = append(evs, s.newEventLocked(EventDayRollover, now, snap, diffSnapshots(prev, snap)))
		} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
			evs = append(evs, s.newEventLocked(EventSpendDelta, now, snap, delta))
		}
	}
	s.mu.Unlock()

	for _, ev := range evs {
		s.publishEvent(ev)
		s.forward(ctx, ev)
	}
}

func (s *Service) newEventLocked(kind string, now time.Time, snap Snapshot, d Delta) Event {
	s.nextEventID++
	return Event{
		ID:        s.nextEventID,
		Type:      kind,
		Timestamp: now,
		Snapshot:  snap,
		Delta:     d,
	}
}

// forward sends ev to the external publisher. Broker failures are logged
// and never stop polling.
func (s *Service) forward(ctx context.Context, ev Event) {
	if s.pub == nil {
		return
	}
	body, err := json.Marshal(ev)
	if err != nil {
		s.log.WithError(err).Error("encoding event")
		return
	}
	if err := s.pub.Publish(ctx, ev.Type, body); err != nil {
		s.log.WithError(err).WithField("event", ev.ID).Warn("forwarding event")
	}
}

func compact(full model.Snapshot, txCount int) Snapshot {
	return Snapshot{
		At:                      full.At,
		Day:                     full.At.Format(engine.DayKeyLayout),
		Transactions:            txCount,
		TotalSpentThisMonth:     full.Budget.TotalSpentThisMonth,
		VariableSpentThisMonth:  full.Budget.VariableSpentThisMonth,
		RemainingVariableBudget: full.Budget.RemainingVariableBudget,
		DailySafeSpend:          full.Budget.DailySafeSpend,
		DaysOfRunway:            full.Budget.DaysOfRunway,
		DisciplineScore:         full.Budget.DisciplineScore,
		YearlyGoalProgress:      full.Goals.YearlyGoalProgress,
		DaysRemainingInYear:     full.Calendar.DaysRemainingInYear,
	}
}

// diffSnapshots reports changes rounded to cents so float noise does not
// produce events.
func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Transactions:    curr.Transactions - prev.Transactions,
		TotalSpent:      cents(curr.TotalSpentThisMonth - prev.TotalSpentThisMonth),
		DailySafeSpend:  cents(curr.DailySafeSpend - prev.DailySafeSpend),
		DisciplineScore: cents(curr.DisciplineScore - prev.DisciplineScore),
	}
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DataDir:         s.cfg.DataDir,
		HasProfile:      s.hasProfile,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

// handleSnapshot serves the full metrics snapshot from the last poll.
func (s *Service) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	ready, full := s.hasSnapshot, s.full
	s.mu.RUnlock()

	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no snapshot yet"})
		return
	}
	writeJSON(w, http.StatusOK, full)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: s.now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
