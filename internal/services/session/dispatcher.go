package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/macawbot/macaw/internal/models"
	"github.com/macawbot/macaw/internal/services/scrobble"
	"github.com/macawbot/macaw/internal/voice"
)

// trackEndDispatcher fires once per completed track and drives the
// reporting fan-out. Firings for the same guild are serialized by the
// dispatcher's own lock; firings across guilds are independent.
type trackEndDispatcher struct {
	sessionID string
	guildID   string
	queue     voice.Queue
	members   voice.Membership
	scrobbles scrobble.Service
	timeout   time.Duration

	mu sync.Mutex
}

// handleTrackEnd runs while the finished track is still at the head of the
// queue. It snapshots the track and hands the fan-out to a goroutine, so
// delivery of later track-end events never waits on the reporting calls.
func (d *trackEndDispatcher) handleTrackEnd() {
	track, ok := d.queue.CurrentTrack()
	if !ok {
		// Raced with a clear or skip; nothing to report
		return
	}

	go d.dispatch(track)
}

// dispatch drives the reporting fan-out for one finished track. Errors are
// terminal here: nobody is waiting on a track-end.
func (d *trackEndDispatcher) dispatch(track models.Track) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.members.UsersInChannel(d.guildID)
	if err != nil {
		log.Printf("Failed to read channel membership for guild %s (session %s): %v", d.guildID, d.sessionID, err)
		return
	}

	if len(users) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	output, err := d.scrobbles.Submit(ctx, &scrobble.SubmitInput{
		GuildID: d.guildID,
		Track:   track,
		UserIDs: users,
	})
	if err != nil {
		log.Printf("Reporting fan-out failed for guild %s (session %s): %v", d.guildID, d.sessionID, err)
		return
	}

	if output.Failed > 0 {
		log.Printf("Reporting fan-out for guild %s: %d submitted, %d skipped, %d failed", d.guildID, output.Submitted, output.Skipped, output.Failed)
	}
}
