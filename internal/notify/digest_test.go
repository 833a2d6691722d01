package notify

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonmate/internal/model"
	"salonmate/internal/view"
)

type stubSource struct {
	groups    []view.DateGroup
	remaining int
}

func (s stubSource) Upcoming() []view.DateGroup { return s.groups }
func (s stubSource) TodayRemaining() int        { return s.remaining }

type captureNotifier struct {
	sent []string
	err  error
}

func (n *captureNotifier) Send(_ context.Context, text string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, text)
	return nil
}

func TestBuildDigest(t *testing.T) {
	groups := []view.DateGroup{
		{Date: "2025-06-10", Reservations: []model.Reservation{
			{Time: "10:10", CustomerName: "김민지", ServiceType: "펌"},
			{Time: "14:00", CustomerPhone: "010-1234-5678"},
		}},
		{Date: "2025-06-11", Reservations: []model.Reservation{
			{Time: "11:00", CustomerName: "이서연"},
		}},
	}

	text := BuildDigest("2025-06-10", groups, 2)
	assert.Contains(t, text, "2025-06-10 예약 안내")
	assert.Contains(t, text, "오늘 남은 예약: 2건")
	assert.Contains(t, text, "10:10 김민지 (펌)")
	// Nameless entry falls back to the phone number.
	assert.Contains(t, text, "14:00 010-1234-5678")
	// Tomorrow is counted, not listed.
	assert.NotContains(t, text, "이서연")
	assert.Contains(t, text, "이후 예약: 1건")
}

func TestBuildDigestEmptyDay(t *testing.T) {
	text := BuildDigest("2025-06-10", nil, 0)
	assert.Contains(t, text, "오늘 남은 예약: 0건")
	assert.NotContains(t, text, "이후 예약")
}

func TestDigestRunNow(t *testing.T) {
	logger := zerolog.Nop()
	notifier := &captureNotifier{}
	sched, err := NewDigestScheduler(DefaultDigestConfig(), stubSource{remaining: 1}, notifier, &logger)
	require.NoError(t, err)

	sched.RunNow(context.Background(), "2025-06-10")
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "2025-06-10")
}

func TestDigestSchedulerStop(t *testing.T) {
	logger := zerolog.Nop()
	sched, err := NewDigestScheduler(DefaultDigestConfig(), stubSource{}, &captureNotifier{}, &logger)
	require.NoError(t, err)

	assert.False(t, sched.IsRunning())

	done := make(chan struct{})
	go func() {
		sched.Start(context.Background())
		close(done)
	}()

	for !sched.IsRunning() {
		time.Sleep(time.Millisecond)
	}
	sched.Stop()
	<-done
	assert.False(t, sched.IsRunning())
}

func TestNewDigestSchedulerRejectsBadTimezone(t *testing.T) {
	logger := zerolog.Nop()
	cfg := DefaultDigestConfig()
	cfg.Timezone = "Not/AZone"
	_, err := NewDigestScheduler(cfg, stubSource{}, &captureNotifier{}, &logger)
	assert.Error(t, err)
}
