package monitoring

import (
	"sort"
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// Config holds monitoring configuration
type Config struct {
	// EventLog writes every recorded event to the log.
	EventLog bool
	// HistoryLen bounds the number of events kept for GetEventMetrics.
	HistoryLen int
}

// Event is one recorded occurrence.
type Event struct {
	Name   string            `json:"name"`
	At     time.Time         `json:"at"`
	Labels map[string]string `json:"labels,omitempty"`
}

// Snapshot is the state served on the metrics endpoint.
type Snapshot struct {
	Since    time.Time        `json:"since"`
	Counters map[string]int64 `json:"counters"`
	Recent   []Event          `json:"recent"`
}

// Service provides monitoring functionality
type Service struct {
	config   Config
	mu       sync.Mutex
	started  time.Time
	counters map[string]int64
	history  []Event
	next     int
	now      func() time.Time
}

// NewService creates a new monitoring service
func NewService(config Config) *Service {
	if config.HistoryLen <= 0 {
		config.HistoryLen = 100
	}
	return &Service{
		config:   config,
		started:  time.Now(),
		counters: make(map[string]int64),
		history:  make([]Event, 0, config.HistoryLen),
		now:      time.Now,
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	ev := Event{Name: eventName, At: s.now(), Labels: labels}

	s.mu.Lock()
	s.counters[eventName]++
	if len(s.history) < s.config.HistoryLen {
		s.history = append(s.history, ev)
	} else {
		s.history[s.next] = ev
	}
	s.next = (s.next + 1) % s.config.HistoryLen
	s.mu.Unlock()

	if s.config.EventLog {
		nuts.L.Infof("[Monitoring] Event %s recorded with labels: %v", eventName, labels)
	}
}

// GetEventMetrics counts the retained events of eventType within the last
// duration, grouped by label set ("" for unlabelled events).
func (s *Service) GetEventMetrics(eventType string, duration time.Duration) (map[string]int64, error) {
	cutoff := s.now().Add(-duration)
	out := make(map[string]int64)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.history {
		if ev.Name != eventType || ev.At.Before(cutoff) {
			continue
		}
		out[labelKey(ev.Labels)]++
	}
	return out, nil
}

// Snapshot returns all counters and the retained events, oldest first.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	counters := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		counters[k] = v
	}
	recent := make([]Event, 0, len(s.history))
	if len(s.history) == s.config.HistoryLen {
		recent = append(recent, s.history[s.next:]...)
		recent = append(recent, s.history[:s.next]...)
	} else {
		recent = append(recent, s.history...)
	}
	return Snapshot{Since: s.started, Counters: counters, Recent: recent}
}

func labelKey(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	key := ""
	for i, k := range keys {
		if i > 0 {
			key += ","
		}
		key += k + "=" + labels[k]
	}
	return key
}
