package mapview

import (
	"sort"
	"sync"
	"time"

	"infobubble/pkg/logging"
)

// maxFlush bounds Flush so that work which keeps rescheduling itself cannot
// spin forever.
const maxFlush = 10000

type task struct {
	due time.Duration
	seq int
	fn  func()
}

// Scheduler runs deferred functions against a virtual clock. Tasks due at
// the same time run in the order they were scheduled.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []task
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once the clock has advanced by delay.
func (s *Scheduler) After(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := task{due: s.now + max(delay, 0), seq: s.seq, fn: fn}
	i := sort.Search(len(s.tasks), func(i int) bool {
		return s.tasks[i].due > t.due
	})
	s.tasks = append(s.tasks, task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
}

// Advance moves the clock forward by d, running every task that falls due
// on the way, including tasks those tasks schedule. It returns how many ran.
func (s *Scheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + max(d, 0)
	s.mu.Unlock()

	ran := 0
	for {
		t, ok := s.pop(target)
		if !ok {
			break
		}
		t.fn()
		ran++
	}

	s.mu.Lock()
	s.now = max(s.now, target)
	s.mu.Unlock()
	return ran
}

// Flush runs every pending task, moving the clock to each one's due time.
func (s *Scheduler) Flush() int {
	ran := 0
	for ; ran < maxFlush; ran++ {
		t, ok := s.pop(-1)
		if !ok {
			return ran
		}
		t.fn()
	}
	logging.Warn("Scheduler", "flush stopped after %d tasks, %d still pending", ran, s.Pending())
	return ran
}

// Next returns how long until the earliest pending task is due.
func (s *Scheduler) Next() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return 0, false
	}
	return s.tasks[0].due - s.now, true
}

func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// pop removes the earliest task due no later than limit. A negative limit
// accepts any task.
func (s *Scheduler) pop(limit time.Duration) (task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 || (limit >= 0 && s.tasks[0].due > limit) {
		return task{}, false
	}
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	s.now = max(s.now, t.due)
	return t, true
}
