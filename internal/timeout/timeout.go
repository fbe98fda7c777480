// Package timeout provides a Bubble Tea component that ends a typing
// session once a wall-clock limit has passed since it started.
package timeout

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// DefaultLimit is the longest a session may run before it is cut off.
	DefaultLimit = 5 * time.Minute
	// DefaultInterval is how often the limit is checked.
	DefaultInterval = time.Second
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg is sent on every check while the watcher runs.
type TickMsg struct {
	ID  int
	tag int
}

// ExpiredMsg is sent once when the limit is reached. The watcher stops
// before sending it.
type ExpiredMsg struct {
	ID int
	At time.Time
}

// Model watches a single session start time.
type Model struct {
	Limit    time.Duration
	Interval time.Duration
	// Now returns the current wall-clock time.
	Now func() time.Time

	id        int
	tag       int
	startedAt time.Time
	running   bool
}

// New returns a stopped watcher with the given limit and check interval.
func New(limit, interval time.Duration) Model {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Model{
		Limit:    limit,
		Interval: interval,
		Now:      time.Now,
		id:       nextID(),
	}
}

// ID identifies the watcher in messages.
func (m Model) ID() int {
	return m.id
}

// Running reports whether the watcher is checking the limit.
func (m Model) Running() bool {
	return m.running
}

// Start begins watching a session that started at startedAt. Ticks from
// any earlier run are ignored.
func (m Model) Start(startedAt time.Time) (Model, tea.Cmd) {
	m.tag++
	m.startedAt = startedAt
	m.running = true
	return m, m.tick()
}

// Stop cancels the watcher. Pending ticks are dropped when they arrive.
func (m Model) Stop() Model {
	m.tag++
	m.running = false
	return m
}

// Update handles tick messages addressed to this watcher.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || tick.tag != m.tag || !m.running {
		return m, nil
	}
	now := m.Now()
	if now.Sub(m.startedAt) >= m.Limit {
		m = m.Stop()
		id := m.id
		return m, func() tea.Msg {
			return ExpiredMsg{ID: id, At: now}
		}
	}
	return m, m.tick()
}

func (m Model) tick() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(m.Interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, tag: tag}
	})
}
