package subscription

import "log/slog"

// ServiceOption configures a Service instance.
type ServiceOption func(*service)

// WithClock sets the time source. Tests use it to control "now".
func WithClock(c Clock) ServiceOption {
	return func(s *service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithConcurrency bounds how many expiry write-backs a list operation runs at once.
// Values below 1 are ignored.
func WithConcurrency(n int) ServiceOption {
	return func(s *service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}
