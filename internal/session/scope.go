package session

import "time"

// Scope identifies the level instance and the dialogue script a poller was
// armed for.
type Scope struct {
	Level  uint64 // progression.Store epoch
	Script uint64 // dialogue.Engine epoch
}

// Subscription is a periodic poller bound to one scope. Once its scope is
// gone it never fires again.
type Subscription struct {
	name      string
	scope     Scope
	every     time.Duration
	next      time.Time
	fn        func(now time.Time)
	cancelled bool
}

// Name returns the poller name.
func (s *Subscription) Name() string {
	return s.name
}

// Scope returns the scope the poller was armed for.
func (s *Subscription) Scope() Scope {
	return s.scope
}

// Cancel stops the poller.
func (s *Subscription) Cancel() {
	s.cancelled = true
}

// Active reports whether the poller may still fire under current.
func (s *Subscription) Active(current Scope) bool {
	return !s.cancelled && s.scope == current
}

// scheduler runs subscriptions cooperatively from Tick.
type scheduler struct {
	subs []*Subscription
}

func (sc *scheduler) arm(name string, scope Scope, every time.Duration, now time.Time, fn func(time.Time)) *Subscription {
	if every <= 0 {
		every = time.Second
	}
	sub := &Subscription{name: name, scope: scope, every: every, next: now.Add(every), fn: fn}
	sc.subs = append(sc.subs, sub)
	return sub
}

// run fires every due subscription. The scope is re-read before each one,
// so a poller that changes the scope disarms the pollers after it.
func (sc *scheduler) run(current func() Scope, now time.Time) {
	live := sc.subs[:0]
	for _, sub := range sc.subs {
		if !sub.Active(current()) {
			sub.cancelled = true
			continue
		}
		if !now.Before(sub.next) {
			sub.fn(now)
			sub.next = now.Add(sub.every)
		}
		live = append(live, sub)
	}
	clear(sc.subs[len(live):])
	sc.subs = live
}

func (sc *scheduler) cancelAll() {
	for _, sub := range sc.subs {
		sub.cancelled = true
	}
	sc.subs = nil
}

func (sc *scheduler) len() int {
	return len(sc.subs)
}
