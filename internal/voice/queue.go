package voice

import (
	"errors"
	"sync"

	"github.com/macawbot/macaw/internal/models"
)

// ErrNotPlaying is returned when pausing or resuming an empty queue
var ErrNotPlaying = errors.New("nothing is playing")

// MemoryQueue is the in-process playback queue for one guild. The playback
// loop drives it: tracks are appended with Add and removed with Advance
// when they finish.
type MemoryQueue struct {
	mu         sync.Mutex
	tracks     []models.Track
	paused     bool
	onTrackEnd func()
}

// NewMemoryQueue creates an empty queue
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

// Add appends a track to the queue
func (q *MemoryQueue) Add(track models.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = append(q.tracks, track)
}

// Advance marks the current track as finished: the track-end handler runs
// while the finished track is still current, then the queue moves on.
func (q *MemoryQueue) Advance() {
	q.mu.Lock()
	if len(q.tracks) == 0 {
		q.mu.Unlock()
		return
	}
	handler := q.onTrackEnd
	q.mu.Unlock()

	if handler != nil {
		handler()
	}

	q.mu.Lock()
	if len(q.tracks) > 0 {
		q.tracks = q.tracks[1:]
	}
	q.mu.Unlock()
}

// Clear drops every queued track
func (q *MemoryQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = nil
}

// IsEmpty reports whether nothing is queued or playing
func (q *MemoryQueue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tracks) == 0
}

// Pause suspends playback
func (q *MemoryQueue) Pause() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tracks) == 0 {
		return ErrNotPlaying
	}
	q.paused = true
	return nil
}

// Resume restarts suspended playback
func (q *MemoryQueue) Resume() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tracks) == 0 {
		return ErrNotPlaying
	}
	q.paused = false
	return nil
}

// Paused reports whether playback is suspended
func (q *MemoryQueue) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// CurrentTrack returns the track at the head of the queue
func (q *MemoryQueue) CurrentTrack() (models.Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tracks) == 0 {
		return models.Track{}, false
	}
	return q.tracks[0], true
}

// OnTrackEnd registers the track-end handler, replacing any previous one
func (q *MemoryQueue) OnTrackEnd(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onTrackEnd = fn
}
