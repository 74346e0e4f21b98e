package core

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/databoard/databoard/internal/config"
	"github.com/databoard/databoard/internal/dataset"
	"github.com/databoard/databoard/internal/loader"
)

// ErrSessionLimit is returned when the in-memory session store is full.
// Clients should delete an existing session or retry later.
var ErrSessionLimit = errors.New("session limit reached, delete a dataset or try again later")

// Session holds one uploaded dataset and its derived column partition.
// Everything lives in memory; dropping the session drops the data.
type Session struct {
	ID        string
	FileName  string
	Dataset   *dataset.Dataset
	Partition dataset.Partition

	CreatedAt time.Time
	LastSeen  time.Time
}

// Service owns the session store and runs every dataset operation.
type Service struct {
	cfg        config.Config
	classifier *dataset.Classifier

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService creates a Service from the loaded configuration.
func NewService(cfg config.Config) *Service {
	return &Service{
		cfg:        cfg,
		classifier: dataset.NewClassifier(cfg.Dataset.MaxCategoricalCardinality),
		sessions:   make(map[string]*Session),
	}
}

// CreateSession parses an uploaded file and stores the resulting dataset
// under a fresh session ID. ext is the lowercased file extension including
// the dot (".csv" or ".xlsx").
func (s *Service) CreateSession(fileName string, data []byte, ext string) (*Session, error) {
	s.mu.RLock()
	count := len(s.sessions)
	s.mu.RUnlock()
	if count >= s.cfg.Session.MaxSessions {
		return nil, ErrSessionLimit
	}

	d, err := loader.Load(data, ext, loader.Options{
		Synonyms: s.cfg.Dataset.SynonymMap(),
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &Session{
		ID:        uuid.New().String(),
		FileName:  fileName,
		Dataset:   d,
		Partition: s.classifier.PartitionColumns(d),
		CreatedAt: now,
		LastSeen:  now,
	}

	s.mu.Lock()
	// Re-check under the write lock; the earlier read was advisory.
	if len(s.sessions) >= s.cfg.Session.MaxSessions {
		s.mu.Unlock()
		return nil, ErrSessionLimit
	}
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	slog.Info("session created",
		"session_id", sess.ID,
		"file", fileName,
		"rows", d.Rows(),
		"columns", len(d.Columns()))

	return sess, nil
}

// Get returns the session for id and bumps its idle timer.
func (s *Service) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session %q", id)
	}
	sess.LastSeen = time.Now()
	return sess, nil
}

// Delete removes a session and frees its dataset.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("unknown session %q", id)
	}
	delete(s.sessions, id)
	slog.Info("session deleted", "session_id", id)
	return nil
}

// Count returns the number of live sessions.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartJanitor sweeps idle sessions until done is closed. Call it once at
// startup with a channel tied to server shutdown.
func (s *Service) StartJanitor(done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(s.cfg.Session.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-done:
				return
			}
		}
	}()
}

func (s *Service) sweep() {
	cutoff := time.Now().Add(-s.cfg.Session.TTL)

	s.mu.Lock()
	var expired []string
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			expired = append(expired, id)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		slog.Info("session expired", "session_id", id)
	}
}
