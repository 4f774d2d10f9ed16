package leaderboard

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"scoreboard/internal/event"
	"scoreboard/internal/logger"
	"scoreboard/internal/monitoring"
	"scoreboard/internal/security"
)

type Publisher interface {
	Publish(event string, payload any)
}

// Update is what live subscribers receive. Seq only grows, so a client
// that sees a lower Seq than it already has can drop the message.
type Update struct {
	Type  string `json:"type"`
	Seq   uint64 `json:"seq"`
	Board Board  `json:"board"`
}

// Service serializes every load-merge-save cycle behind one mutex.
// Reads skip the lock and rely on the store's atomic replace.
type Service struct {
	store  Store
	secret security.Secret
	bus    Publisher

	mu  sync.Mutex
	seq atomic.Uint64
}

// NewService wires the store, the reset secret and an optional publisher.
func NewService(store Store, secret security.Secret, bus Publisher) *Service {
	return &Service{
		store:  store,
		secret: secret,
		bus:    bus,
	}
}

// Init creates an empty board when none has been persisted yet.
func (s *Service) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Exists() {
		return nil
	}
	return s.store.Save(Board{})
}

func (s *Service) Board() Board {
	return s.store.Load()
}

func (s *Service) Snapshot() Update {
	return Update{Type: "snapshot", Seq: s.seq.Load(), Board: s.store.Load()}
}

// Submit merges e into the stored board and returns the board as it reads
// back from the store. A failed save is logged, not returned: the caller
// then sees the board without e.
func (s *Service) Submit(e Entry) (Board, Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, outcome := Merge(s.store.Load(), e)
	if err := s.store.Save(merged); err != nil {
		logger.Log.Error("save leaderboard",
			zap.String("name", e.Name),
			zap.Int("score", e.Score),
			zap.Error(err),
		)
		monitoring.Submissions.WithLabelValues("failed").Inc()
	} else {
		monitoring.Submissions.WithLabelValues(string(outcome)).Inc()
	}

	board := s.store.Load()
	s.publish(event.EventScoreSubmitted, board)

	return board, outcome
}

// Reset clears the board when password matches the configured secret.
func (s *Service) Reset(password string) error {
	if !s.secret.Matches(password) {
		monitoring.Resets.WithLabelValues("denied").Inc()
		logger.Log.Warn("leaderboard reset denied")
		return ErrIncorrectPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(Board{}); err != nil {
		logger.Log.Error("reset leaderboard", zap.Error(err))
	}

	monitoring.Resets.WithLabelValues("ok").Inc()
	logger.Log.Info("leaderboard reset")
	s.publish(event.EventBoardReset, s.store.Load())
	return nil
}

// publish must be called with mu held so Seq follows write order.
func (s *Service) publish(name string, board Board) {
	seq := s.seq.Add(1)
	if s.bus == nil {
		return
	}
	s.bus.Publish(name, Update{Type: name, Seq: seq, Board: board})
}
