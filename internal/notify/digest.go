package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"salonmate/internal/view"
)

// DigestConfig holds the schedule for the daily digest message.
type DigestConfig struct {
	// Timezone for scheduling (e.g., "Asia/Seoul").
	Timezone string
	// DailyHour is the hour (0-23) when the digest is sent.
	DailyHour int
	// DailyMinute is the minute (0-59) when the digest is sent.
	DailyMinute int
	// CheckInterval is how often to check if it's time to run.
	CheckInterval time.Duration
}

// DefaultDigestConfig returns the default digest schedule.
func DefaultDigestConfig() DigestConfig {
	return DigestConfig{
		Timezone:      "Asia/Seoul",
		DailyHour:     9,
		DailyMinute:   0,
		CheckInterval: 1 * time.Minute,
	}
}

// ReservationSource supplies the data the digest summarizes.
type ReservationSource interface {
	Upcoming() []view.DateGroup
	TodayRemaining() int
}

// DigestScheduler sends the operator a morning summary of the day's
// reservations, once per day at the configured local time.
type DigestScheduler struct {
	config   DigestConfig
	source   ReservationSource
	notifier Notifier
	location *time.Location
	logger   *zerolog.Logger

	mu          sync.Mutex
	lastRunDate string // YYYY-MM-DD of last run
	running     bool
	stopCh      chan struct{}
}

func NewDigestScheduler(config DigestConfig, source ReservationSource, notifier Notifier, logger *zerolog.Logger) (*DigestScheduler, error) {
	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, err
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = 1 * time.Minute
	}

	return &DigestScheduler{
		config:   config,
		source:   source,
		notifier: notifier,
		location: loc,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins the scheduler loop.
func (s *DigestScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info().
		Str("timezone", s.config.Timezone).
		Str("daily_time", fmt.Sprintf("%02d:%02d", s.config.DailyHour, s.config.DailyMinute)).
		Msg("digest scheduler started")

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("digest scheduler stopped by context")
			return
		case <-s.stopCh:
			s.logger.Info().Msg("digest scheduler stopped")
			return
		case <-ticker.C:
			s.checkAndRun(ctx)
		}
	}
}

// Stop stops the scheduler.
func (s *DigestScheduler) Stop() {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.stopCh)
	}
	s.mu.Unlock()
}

// IsRunning reports whether the loop is active.
func (s *DigestScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *DigestScheduler) checkAndRun(ctx context.Context) {
	now := time.Now().In(s.location)
	today := now.Format("2006-01-02")

	s.mu.Lock()
	alreadyRan := s.lastRunDate == today
	s.mu.Unlock()

	if alreadyRan {
		return
	}
	if now.Hour() != s.config.DailyHour || now.Minute() != s.config.DailyMinute {
		return
	}

	s.mu.Lock()
	s.lastRunDate = today
	s.mu.Unlock()

	s.RunNow(ctx, today)
}

// RunNow builds and sends the digest immediately.
func (s *DigestScheduler) RunNow(ctx context.Context, today string) {
	text := BuildDigest(today, s.source.Upcoming(), s.source.TodayRemaining())
	if err := s.notifier.Send(ctx, text); err != nil {
		s.logger.Error().Err(err).Msg("digest send failed")
		return
	}
	s.logger.Info().Str("date", today).Msg("daily digest sent")
}

// BuildDigest formats the morning summary. Only today's group from
// the upcoming set is expanded; later days are counted.
func BuildDigest(today string, groups []view.DateGroup, todayRemaining int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s 예약 안내\n", today)
	fmt.Fprintf(&b, "오늘 남은 예약: %d건\n", todayRemaining)

	laterCount := 0
	for _, g := range groups {
		if g.Date == today {
			for _, r := range g.Reservations {
				name := r.CustomerName
				if name == "" {
					name = r.CustomerPhone
				}
				fmt.Fprintf(&b, "• %s %s", r.Time, name)
				if r.ServiceType != "" {
					fmt.Fprintf(&b, " (%s)", r.ServiceType)
				}
				b.WriteString("\n")
			}
			continue
		}
		laterCount += len(g.Reservations)
	}

	if laterCount > 0 {
		fmt.Fprintf(&b, "이후 예약: %d건", laterCount)
	}
	return strings.TrimRight(b.String(), "\n")
}
