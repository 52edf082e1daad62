package scrobble

import (
	"context"
	"errors"
	"testing"
	"time"

	clockMocks "github.com/macawbot/macaw/internal/common/clock/mocks"
	"github.com/macawbot/macaw/internal/lastfm"
	lastfmMocks "github.com/macawbot/macaw/internal/lastfm/mocks"
	"github.com/macawbot/macaw/internal/models"
	settingsRepo "github.com/macawbot/macaw/internal/repositories/settings"
	repoMocks "github.com/macawbot/macaw/internal/repositories/settings/mocks"
	"github.com/macawbot/macaw/internal/settings"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScrobbleServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockLastfm *lastfmMocks.MockClient
	mockRepo   *repoMocks.MockRepository
	mockClock  *clockMocks.MockClock
	store      *settings.Store
	service    Service
	ctx        context.Context

	testTime    time.Time
	testGuildID string
	testTrack   models.Track
}

func (s *ScrobbleServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockLastfm = lastfmMocks.NewMockClient(s.mockCtrl)
	s.mockRepo = repoMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testGuildID = "test-guild-id"
	s.testTrack = models.Track{Artist: "Y", Title: "X"}

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	store, err := settings.NewStore(&settings.Config{
		Repository: s.mockRepo,
		Clock:      s.mockClock,
	})
	s.Require().NoError(err)
	s.store = store

	svc, err := New(&Config{
		Lastfm: s.mockLastfm,
		Store:  s.store,
		Clock:  s.mockClock,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *ScrobbleServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScrobbleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScrobbleServiceTestSuite))
}

// seedGuild primes the settings store with the given registered users
func (s *ScrobbleServiceTestSuite) seedGuild(users map[string]string) {
	stored := models.NewGuildSettings(s.testGuildID)
	for userID, key := range users {
		stored.LastfmUsers[userID] = key
	}

	s.mockRepo.EXPECT().
		GetSettings(gomock.Any(), &settingsRepo.GetSettingsInput{GuildID: s.testGuildID}).
		Return(stored, nil).
		Times(1)
}

func (s *ScrobbleServiceTestSuite) TestSubmitRegisteredAndUnregistered() {
	// A is registered with token T, B is not
	s.seedGuild(map[string]string{"user-a": "T"})

	s.mockLastfm.EXPECT().
		Scrobble(gomock.Any(), &lastfm.ScrobbleInput{
			Artist:     "Y",
			Title:      "X",
			SessionKey: "T",
			Timestamp:  s.testTime,
		}).
		Return(nil).
		Times(1)

	output, err := s.service.Submit(s.ctx, &SubmitInput{
		GuildID: s.testGuildID,
		Track:   s.testTrack,
		UserIDs: []string{"user-a", "user-b"},
	})
	s.Require().NoError(err)
	s.Equal(1, output.Submitted)
	s.Equal(1, output.Skipped)
	s.Equal(0, output.Failed)
}

func (s *ScrobbleServiceTestSuite) TestSubmitNobodyPresent() {
	output, err := s.service.Submit(s.ctx, &SubmitInput{
		GuildID: s.testGuildID,
		Track:   s.testTrack,
		UserIDs: nil,
	})
	s.Require().NoError(err)
	s.Equal(0, output.Submitted)
	s.Equal(0, output.Skipped)
	s.Equal(0, output.Failed)
}

func (s *ScrobbleServiceTestSuite) TestSubmitOneFailureDoesNotBlockOthers() {
	s.seedGuild(map[string]string{
		"user-a": "key-a",
		"user-b": "key-b",
	})

	s.mockLastfm.EXPECT().
		Scrobble(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *lastfm.ScrobbleInput) error {
			if input.SessionKey == "key-a" {
				return errors.New("service rejected the submission")
			}
			return nil
		}).
		Times(2)

	output, err := s.service.Submit(s.ctx, &SubmitInput{
		GuildID: s.testGuildID,
		Track:   s.testTrack,
		UserIDs: []string{"user-a", "user-b"},
	})
	s.Require().NoError(err)
	s.Equal(1, output.Submitted)
	s.Equal(1, output.Failed)
}

func (s *ScrobbleServiceTestSuite) TestSubmitRepeatedCompletionsAreNewPlays() {
	s.seedGuild(map[string]string{"user-a": "T"})

	// The same track finishing twice is scrobbled twice
	s.mockLastfm.EXPECT().
		Scrobble(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)

	for i := 0; i < 2; i++ {
		output, err := s.service.Submit(s.ctx, &SubmitInput{
			GuildID: s.testGuildID,
			Track:   s.testTrack,
			UserIDs: []string{"user-a"},
		})
		s.Require().NoError(err)
		s.Equal(1, output.Submitted)
	}
}

func (s *ScrobbleServiceTestSuite) TestRegister() {
	s.mockLastfm.EXPECT().
		GetSession(gomock.Any(), "user-token").
		Return("durable-session-key", nil)

	s.mockRepo.EXPECT().
		GetSettings(gomock.Any(), gomock.Any()).
		Return(nil, settingsRepo.ErrSettingsNotFound)

	s.mockRepo.EXPECT().
		SaveSettings(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *settingsRepo.SaveSettingsInput) error {
			s.Equal("durable-session-key", input.Settings.LastfmUsers["test-user-id"])
			return nil
		})

	output, err := s.service.Register(s.ctx, &RegisterInput{
		GuildID: s.testGuildID,
		UserID:  "test-user-id",
		Token:   "user-token",
	})
	s.Require().NoError(err)
	s.Equal("durable-session-key", output.SessionKey)
}

func (s *ScrobbleServiceTestSuite) TestRegisterExchangeRejected() {
	s.mockLastfm.EXPECT().
		GetSession(gomock.Any(), "bad-token").
		Return("", errors.New("token has not been authorized"))

	// No store access may happen on a failed exchange

	_, err := s.service.Register(s.ctx, &RegisterInput{
		GuildID: s.testGuildID,
		UserID:  "test-user-id",
		Token:   "bad-token",
	})
	s.Require().ErrorIs(err, ErrExchange)
}

func (s *ScrobbleServiceTestSuite) TestRegisterMissingToken() {
	_, err := s.service.Register(s.ctx, &RegisterInput{
		GuildID: s.testGuildID,
		UserID:  "test-user-id",
	})
	s.Require().ErrorIs(err, ErrMissingToken)
}
