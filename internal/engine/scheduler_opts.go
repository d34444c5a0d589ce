package engine

import "time"

type SchedulerOpt func(*Scheduler)

// WithTickInterval sets the fixed interval between ticks.
func WithTickInterval(d time.Duration) SchedulerOpt {
	return func(s *Scheduler) {
		s.interval = d
	}
}
