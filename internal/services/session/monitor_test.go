package session

import (
	"testing"
	"time"

	"github.com/macawbot/macaw/internal/models"
	"github.com/macawbot/macaw/internal/voice"
	"github.com/stretchr/testify/suite"
)

type IdleMonitorTestSuite struct {
	suite.Suite
	queue  *voice.MemoryQueue
	leaves []string
}

func (s *IdleMonitorTestSuite) SetupTest() {
	s.queue = voice.NewMemoryQueue()
	s.leaves = nil
}

func TestIdleMonitorTestSuite(t *testing.T) {
	suite.Run(t, new(IdleMonitorTestSuite))
}

func (s *IdleMonitorTestSuite) newMonitor(limit int) *idleMonitor {
	return newIdleMonitor(&idleMonitorConfig{
		sessionID: "test-session-id",
		guildID:   "test-guild-id",
		queue:     s.queue,
		limit:     limit,
		interval:  time.Hour,
		leave: func(guildID, sessionID string) {
			s.leaves = append(s.leaves, guildID)
		},
	})
}

func (s *IdleMonitorTestSuite) TestFiresAfterLimitConsecutiveEmptyTicks() {
	monitor := s.newMonitor(600)

	for i := 0; i < 599; i++ {
		s.Require().False(monitor.tick(), "tick %d must not fire", i)
	}
	s.Empty(s.leaves)

	s.True(monitor.tick())
	s.Equal([]string{"test-guild-id"}, s.leaves)
}

func (s *IdleMonitorTestSuite) TestNonEmptyTickResetsCounter() {
	monitor := s.newMonitor(600)

	// 599 empty ticks, then a track starts
	for i := 0; i < 599; i++ {
		s.Require().False(monitor.tick())
	}
	s.queue.Add(models.Track{Artist: "Y", Title: "X"})
	s.Require().False(monitor.tick())
	s.Equal(0, monitor.count)

	// Empty again: the full limit must elapse before the single fire
	s.queue.Clear()
	for i := 0; i < 599; i++ {
		s.Require().False(monitor.tick())
	}
	s.Empty(s.leaves)

	s.True(monitor.tick())
	s.Len(s.leaves, 1)
}

func (s *IdleMonitorTestSuite) TestFireDetachesMonitor() {
	monitor := s.newMonitor(1)

	s.True(monitor.tick())

	select {
	case <-monitor.stop:
	default:
		s.Fail("expected the monitor to be detached after firing")
	}
}

func (s *IdleMonitorTestSuite) TestRunStopsOnDetach() {
	monitor := newIdleMonitor(&idleMonitorConfig{
		sessionID: "test-session-id",
		guildID:   "test-guild-id",
		queue:     s.queue,
		limit:     1000,
		interval:  time.Millisecond,
		leave:     func(guildID, sessionID string) {},
	})

	done := make(chan struct{})
	go func() {
		monitor.run()
		close(done)
	}()

	monitor.detach()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("expected run to return after detach")
	}
}

func (s *IdleMonitorTestSuite) TestDetachTwiceIsSafe() {
	monitor := s.newMonitor(10)
	monitor.detach()
	monitor.detach()
}
