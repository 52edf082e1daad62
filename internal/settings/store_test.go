package settings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	clockMocks "github.com/macawbot/macaw/internal/common/clock/mocks"
	"github.com/macawbot/macaw/internal/models"
	settingsRepo "github.com/macawbot/macaw/internal/repositories/settings"
	repoMocks "github.com/macawbot/macaw/internal/repositories/settings/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type StoreTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockRepo  *repoMocks.MockRepository
	mockClock *clockMocks.MockClock
	store     *Store
	ctx       context.Context

	testTime    time.Time
	testGuildID string
	testUserID  string
}

func (s *StoreTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = repoMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testGuildID = "test-guild-id"
	s.testUserID = "test-user-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	store, err := NewStore(&Config{
		Repository: s.mockRepo,
		Clock:      s.mockClock,
	})
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) TestLoadDefaultsWhenNotFound() {
	s.mockRepo.EXPECT().
		GetSettings(gomock.Any(), &settingsRepo.GetSettingsInput{GuildID: s.testGuildID}).
		Return(nil, settingsRepo.ErrSettingsNotFound)

	settings, err := s.store.Load(s.ctx, s.testGuildID)
	s.Require().NoError(err)
	s.Equal(s.testGuildID, settings.GuildID)
	s.Empty(settings.LastfmUsers)
}

func (s *StoreTestSuite) TestLoadHitsRepositoryOnce() {
	stored := models.NewGuildSettings(s.testGuildID)
	stored.LastfmUsers[s.testUserID] = "stored-key"

	// A second Load must come from the cache
	s.mockRepo.EXPECT().
		GetSettings(gomock.Any(), gomock.Any()).
		Return(stored, nil).
		Times(1)

	first, err := s.store.Load(s.ctx, s.testGuildID)
	s.Require().NoError(err)
	s.Equal("stored-key", first.LastfmUsers[s.testUserID])

	second, err := s.store.Load(s.ctx, s.testGuildID)
	s.Require().NoError(err)
	s.Equal("stored-key", second.LastfmUsers[s.testUserID])
}

func (s *StoreTestSuite) TestLoadReturnsCopies() {
	s.mockRepo.EXPECT().
		GetSettings(gomock.Any(), gomock.Any()).
		Return(models.NewGuildSettings(s.testGuildID), nil)

	first, err := s.store.Load(s.ctx, s.testGuildID)
	s.Require().NoError(err)

	// Mutating the returned value must not leak into the store
	first.LastfmUsers["rogue-user"] = "rogue-key"

	second, err := s.store.Load(s.ctx, s.testGuildID)
	s.Require().NoError(err)
	s.Empty(second.LastfmUsers)
}

func (s *StoreTestSuite) TestSetLastfmUserPersists() {
	s.mockRepo.EXPECT().
		GetSettings(gomock.Any(), gomock.Any()).
		Return(nil, settingsRepo.ErrSettingsNotFound)

	s.mockRepo.EXPECT().
		SaveSettings(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *settingsRepo.SaveSettingsInput) error {
			s.Equal(s.testGuildID, input.Settings.GuildID)
			s.Equal("new-session-key", input.Settings.LastfmUsers[s.testUserID])
			s.Equal(s.testTime, input.Settings.UpdatedAt)
			return nil
		})

	err := s.store.SetLastfmUser(s.ctx, s.testGuildID, s.testUserID, "new-session-key")
	s.Require().NoError(err)

	key, ok, err := s.store.LastfmSessionKey(s.ctx, s.testGuildID, s.testUserID)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("new-session-key", key)
}

func (s *StoreTestSuite) TestSetLastfmUserSaveFailureLeavesStoreUntouched() {
	stored := models.NewGuildSettings(s.testGuildID)
	stored.LastfmUsers["existing-user"] = "existing-key"

	s.mockRepo.EXPECT().
		GetSettings(gomock.Any(), gomock.Any()).
		Return(stored, nil)

	s.mockRepo.EXPECT().
		SaveSettings(gomock.Any(), gomock.Any()).
		Return(errors.New("redis down"))

	err := s.store.SetLastfmUser(s.ctx, s.testGuildID, s.testUserID, "new-session-key")
	s.Require().Error(err)

	// The failed write must not be visible
	_, ok, err := s.store.LastfmSessionKey(s.ctx, s.testGuildID, s.testUserID)
	s.Require().NoError(err)
	s.False(ok)

	key, ok, err := s.store.LastfmSessionKey(s.ctx, s.testGuildID, "existing-user")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("existing-key", key)
}

func (s *StoreTestSuite) TestLastfmSessionKeyUnregistered() {
	s.mockRepo.EXPECT().
		GetSettings(gomock.Any(), gomock.Any()).
		Return(models.NewGuildSettings(s.testGuildID), nil)

	_, ok, err := s.store.LastfmSessionKey(s.ctx, s.testGuildID, "unregistered-user")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StoreTestSuite) TestConcurrentReaders() {
	s.mockRepo.EXPECT().
		GetSettings(gomock.Any(), gomock.Any()).
		Return(models.NewGuildSettings(s.testGuildID), nil).
		Times(1)

	_, err := s.store.Load(s.ctx, s.testGuildID)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.store.LastfmSessionKey(s.ctx, s.testGuildID, s.testUserID)
			s.NoError(err)
		}()
	}
	wg.Wait()
}
