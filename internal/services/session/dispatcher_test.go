package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/macawbot/macaw/internal/models"
	"github.com/macawbot/macaw/internal/services/scrobble"
	scrobbleMocks "github.com/macawbot/macaw/internal/services/scrobble/mocks"
	"github.com/macawbot/macaw/internal/voice"
	voiceMocks "github.com/macawbot/macaw/internal/voice/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DispatcherTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockMembers   *voiceMocks.MockMembership
	mockScrobbles *scrobbleMocks.MockService
	queue         *voice.MemoryQueue
	dispatcher    *trackEndDispatcher
}

func (s *DispatcherTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockMembers = voiceMocks.NewMockMembership(s.mockCtrl)
	s.mockScrobbles = scrobbleMocks.NewMockService(s.mockCtrl)
	s.queue = voice.NewMemoryQueue()

	s.dispatcher = &trackEndDispatcher{
		sessionID: "test-session-id",
		guildID:   "test-guild-id",
		queue:     s.queue,
		members:   s.mockMembers,
		scrobbles: s.mockScrobbles,
		timeout:   time.Second,
	}
}

func (s *DispatcherTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) TestFanOutForFinishedTrack() {
	s.mockMembers.EXPECT().
		UsersInChannel("test-guild-id").
		Return([]string{"user-a", "user-b"}, nil)

	s.mockScrobbles.EXPECT().
		Submit(gomock.Any(), &scrobble.SubmitInput{
			GuildID: "test-guild-id",
			Track:   models.Track{Artist: "Y", Title: "X"},
			UserIDs: []string{"user-a", "user-b"},
		}).
		Return(&scrobble.SubmitOutput{Submitted: 1, Skipped: 1}, nil)

	s.dispatcher.dispatch(models.Track{Artist: "Y", Title: "X"})
}

func (s *DispatcherTestSuite) TestEmptyQueueSkipsFanOut() {
	// Raced with a concurrent clear: no membership read, no submission
	s.dispatcher.handleTrackEnd()
}

func (s *DispatcherTestSuite) TestEmptyChannelSkipsFanOut() {
	s.mockMembers.EXPECT().
		UsersInChannel("test-guild-id").
		Return(nil, nil)

	s.dispatcher.dispatch(models.Track{Artist: "Y", Title: "X"})
}

func (s *DispatcherTestSuite) TestMembershipErrorIsTerminal() {
	s.mockMembers.EXPECT().
		UsersInChannel("test-guild-id").
		Return(nil, errors.New("guild state unavailable"))

	s.dispatcher.dispatch(models.Track{Artist: "Y", Title: "X"})
}

func (s *DispatcherTestSuite) TestSubmitErrorIsTerminal() {
	s.mockMembers.EXPECT().
		UsersInChannel("test-guild-id").
		Return([]string{"user-a"}, nil)

	s.mockScrobbles.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("reporting service down"))

	s.dispatcher.dispatch(models.Track{Artist: "Y", Title: "X"})
}

func (s *DispatcherTestSuite) TestWiredThroughQueueAdvance() {
	s.queue.Add(models.Track{Artist: "Y", Title: "X"})
	s.queue.OnTrackEnd(s.dispatcher.handleTrackEnd)

	s.mockMembers.EXPECT().
		UsersInChannel("test-guild-id").
		Return([]string{"user-a"}, nil)

	done := make(chan models.Track, 1)
	s.mockScrobbles.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *scrobble.SubmitInput) (*scrobble.SubmitOutput, error) {
			done <- input.Track
			return &scrobble.SubmitOutput{Submitted: 1}, nil
		})

	s.queue.Advance()

	// The finished track, not the next one, is what gets reported
	select {
	case reported := <-done:
		s.Equal("X", reported.Title)
	case <-time.After(time.Second):
		s.Fail("expected the fan-out to run after the track ended")
	}
	s.True(s.queue.IsEmpty())
}

func (s *DispatcherTestSuite) TestHandleTrackEndDoesNotBlockOnFanOut() {
	s.queue.Add(models.Track{Artist: "Y", Title: "X"})

	release := make(chan struct{})
	fanOutDone := make(chan struct{})
	s.mockMembers.EXPECT().
		UsersInChannel("test-guild-id").
		DoAndReturn(func(string) ([]string, error) {
			<-release
			close(fanOutDone)
			return nil, nil
		})

	// If the fan-out ran inline this would never return while the
	// membership read is held up
	returned := make(chan struct{})
	go func() {
		s.dispatcher.handleTrackEnd()
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		s.Fail("expected track-end delivery to return while the fan-out is in flight")
	}

	// Releasing the membership read lets the fan-out finish; it makes no
	// further calls after that, so the controller check is safe
	close(release)
	<-fanOutDone
}
