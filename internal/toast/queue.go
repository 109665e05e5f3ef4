package toast

import (
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Phase string

const (
	PhaseEnter   Phase = "enter"
	PhaseVisible Phase = "visible"
	PhaseFading  Phase = "fading"
	PhaseRemoved Phase = "removed"
)

const (
	EnterDuration = 300 * time.Millisecond
	FadeAfter     = 4500 * time.Millisecond
	Lifetime      = 5 * time.Second
)

type Toast struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"type"`
	Phase     Phase     `json:"phase"`
	CreatedAt time.Time `json:"createdAt"`
}

// Queue holds the toasts raised by every controller. Entries age through
// enter, visible and fading, and are pruned once their lifetime is over.
type Queue struct {
	mu     sync.Mutex
	nextID int64
	items  []Toast
	now    func() time.Time
}

func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

// NewQueueWithClock is used by tests to drive the lifecycle.
func NewQueueWithClock(now func() time.Time) *Queue {
	return &Queue{now: now}
}

func (q *Queue) Add(message string, kind Kind) int64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	q.items = append(q.items, Toast{
		ID:        q.nextID,
		Message:   message,
		Kind:      kind,
		Phase:     PhaseEnter,
		CreatedAt: q.now(),
	})
	return q.nextID
}

func (q *Queue) Success(message string) {
	q.Add(message, KindSuccess)
}

func (q *Queue) Error(message string) {
	q.Add(message, KindError)
}

// Dismiss drops a toast before its lifetime ends.
func (q *Queue) Dismiss(id int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, t := range q.items {
		if t.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns the live toasts in insertion order with their current phase.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	live := q.items[:0]
	out := make([]Toast, 0, len(q.items))
	for _, t := range q.items {
		phase := phaseAt(now.Sub(t.CreatedAt))
		if phase == PhaseRemoved {
			continue
		}
		live = append(live, t)
		t.Phase = phase
		out = append(out, t)
	}
	q.items = live
	return out
}

func phaseAt(age time.Duration) Phase {
	switch {
	case age >= Lifetime:
		return PhaseRemoved
	case age >= FadeAfter:
		return PhaseFading
	case age < EnterDuration:
		return PhaseEnter
	default:
		return PhaseVisible
	}
}
