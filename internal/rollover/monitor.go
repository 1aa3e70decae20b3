package rollover

import (
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"food-diary/internal/clock"
	"food-diary/internal/diary"
	"food-diary/internal/summary"
)

type state int

const (
	armed state = iota
	firing
)

// Monitor polls the reference-timezone clock and snapshots the previous day
// into the summary store when the canonical date rolls over at 00:00. It
// also tracks the active canonical date so the view follows real time
// without a reload.
type Monitor struct {
	clk   *clock.Clock
	days  *diary.Store
	sums  *summary.Store
	every time.Duration

	mu         sync.Mutex
	st         state
	activeDate string
	onDate     func(date string)

	sched gocron.Scheduler
}

func New(clk *clock.Clock, days *diary.Store, sums *summary.Store, every time.Duration) *Monitor {
	if every <= 0 {
		every = time.Minute
	}
	return &Monitor{
		clk:        clk,
		days:       days,
		sums:       sums,
		every:      every,
		st:         armed,
		activeDate: clk.Today(),
	}
}

// OnDateChange registers the callback invoked when the canonical date moves.
func (m *Monitor) OnDateChange(fn func(date string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDate = fn
}

// ActiveDate returns the date the view should currently display.
func (m *Monitor) ActiveDate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeDate
}

// Start schedules the poll. The scheduler shares the adapter's time source,
// so tests can drive it with a fake clock.
func (m *Monitor) Start() error {
	s, err := gocron.NewScheduler(gocron.WithClock(m.clk.Base()))
	if err != nil {
		return err
	}
	_, err = s.NewJob(
		gocron.DurationJob(m.every),
		gocron.NewTask(m.Tick),
	)
	if err != nil {
		return err
	}
	m.sched = s
	s.Start()
	return nil
}

// Stop tears the poll down. Safe to call when never started.
func (m *Monitor) Stop() error {
	if m.sched == nil {
		return nil
	}
	return m.sched.Shutdown()
}

// Tick runs one poll: fire the rollover at the midnight boundary, then keep
// the active date current. Firing more than once within the boundary minute
// is harmless because the summary append is idempotent.
func (m *Monitor) Tick() {
	m.mu.Lock()
	if m.clk.AtMidnight() && m.st == armed {
		m.st = firing
		m.mu.Unlock()
		m.fire()
		m.mu.Lock()
		m.st = armed
	}

	today := m.clk.Today()
	if today != m.activeDate {
		m.activeDate = today
		fn := m.onDate
		m.mu.Unlock()
		if fn != nil {
			fn(today)
		}
		return
	}
	m.mu.Unlock()
}

func (m *Monitor) fire() {
	// calendar-day subtraction, not a 24h offset, so DST nights roll over
	// to the right date
	yesterday, err := m.clk.AddDays(m.clk.Today(), -1)
	if err != nil {
		log.Println("rollover:", err)
		return
	}
	rec, found := m.days.Find(yesterday)
	if !found {
		// no activity that day; a valid terminal state, not a failure
		return
	}
	if err := m.sums.Append(summary.Snapshot(rec)); err != nil {
		log.Println("rollover: append summary:", err)
	}
}
