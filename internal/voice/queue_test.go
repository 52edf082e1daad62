package voice

import (
	"testing"

	"github.com/macawbot/macaw/internal/models"
	"github.com/stretchr/testify/suite"
)

type MemoryQueueTestSuite struct {
	suite.Suite
	queue *MemoryQueue
}

func (s *MemoryQueueTestSuite) SetupTest() {
	s.queue = NewMemoryQueue()
}

func TestMemoryQueueTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryQueueTestSuite))
}

func (s *MemoryQueueTestSuite) TestEmptyQueue() {
	s.True(s.queue.IsEmpty())

	_, ok := s.queue.CurrentTrack()
	s.False(ok)

	s.ErrorIs(s.queue.Pause(), ErrNotPlaying)
	s.ErrorIs(s.queue.Resume(), ErrNotPlaying)
}

func (s *MemoryQueueTestSuite) TestAddAndCurrent() {
	s.queue.Add(models.Track{Artist: "Y", Title: "X"})
	s.queue.Add(models.Track{Artist: "B", Title: "A"})

	s.False(s.queue.IsEmpty())

	track, ok := s.queue.CurrentTrack()
	s.Require().True(ok)
	s.Equal("Y", track.Artist)
	s.Equal("X", track.Title)
}

func (s *MemoryQueueTestSuite) TestAdvanceFiresHandlerBeforeMovingOn() {
	s.queue.Add(models.Track{Artist: "Y", Title: "X"})
	s.queue.Add(models.Track{Artist: "B", Title: "A"})

	var seen []models.Track
	s.queue.OnTrackEnd(func() {
		// The finished track must still be current inside the handler
		track, ok := s.queue.CurrentTrack()
		s.Require().True(ok)
		seen = append(seen, track)
	})

	s.queue.Advance()

	s.Require().Len(seen, 1)
	s.Equal("X", seen[0].Title)

	track, ok := s.queue.CurrentTrack()
	s.Require().True(ok)
	s.Equal("A", track.Title)
}

func (s *MemoryQueueTestSuite) TestAdvanceOnEmptyQueueDoesNotFire() {
	fired := false
	s.queue.OnTrackEnd(func() { fired = true })

	s.queue.Advance()

	s.False(fired)
	s.True(s.queue.IsEmpty())
}

func (s *MemoryQueueTestSuite) TestDetachHandler() {
	s.queue.Add(models.Track{Artist: "Y", Title: "X"})

	fired := false
	s.queue.OnTrackEnd(func() { fired = true })
	s.queue.OnTrackEnd(nil)

	s.queue.Advance()

	s.False(fired)
	s.True(s.queue.IsEmpty())
}

func (s *MemoryQueueTestSuite) TestPauseResume() {
	s.queue.Add(models.Track{Artist: "Y", Title: "X"})

	s.Require().NoError(s.queue.Pause())
	s.True(s.queue.Paused())

	s.Require().NoError(s.queue.Resume())
	s.False(s.queue.Paused())
}

func (s *MemoryQueueTestSuite) TestClear() {
	s.queue.Add(models.Track{Artist: "Y", Title: "X"})
	s.queue.Clear()

	s.True(s.queue.IsEmpty())
}
