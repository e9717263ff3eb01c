// Package batch drives matched pairings through the pipeline: decode,
// encode, tag, deliver, strictly in order, one at a time.
package batch

import (
	"coverpress/internal/match"
	"coverpress/internal/media"
)

// Queue holds the session-scoped audio set, artwork set, and manual
// overrides. Pairings are a pure projection of those three inputs,
// recomputed on every read and never mutated in place.
type Queue struct {
	audio     []media.MediaItem
	artwork   []media.ArtworkItem
	overrides map[string]media.ArtworkItem
}

func NewQueue() *Queue {
	return &Queue{overrides: make(map[string]media.ArtworkItem)}
}

// AddAudio appends an item. An existing entry with the same display name
// is removed first, so re-adding a file replaces it at the tail.
func (q *Queue) AddAudio(item media.MediaItem) {
	q.RemoveAudio(item.Name)
	q.audio = append(q.audio, item)
}

// RemoveAudio removes the entry with the exact display name, if present.
func (q *Queue) RemoveAudio(name string) {
	for i, it := range q.audio {
		if it.Name == name {
			q.audio = append(q.audio[:i], q.audio[i+1:]...)
			return
		}
	}
}

// AddArtwork appends an artwork item with the same replace-by-name
// semantics as AddAudio.
func (q *Queue) AddArtwork(item media.ArtworkItem) {
	for i, it := range q.artwork {
		if it.Name == item.Name {
			q.artwork = append(q.artwork[:i], q.artwork[i+1:]...)
			break
		}
	}
	q.artwork = append(q.artwork, item)
}

// SetOverride forces the given artwork for an audio display name,
// winning over automatic matching.
func (q *Queue) SetOverride(audioName string, art media.ArtworkItem) {
	q.overrides[audioName] = art
}

// ClearOverride removes a manual override.
func (q *Queue) ClearOverride(audioName string) {
	delete(q.overrides, audioName)
}

// Pairings projects the current inputs through the matcher.
func (q *Queue) Pairings() []match.Pairing {
	return match.Match(q.audio, q.artwork, q.overrides)
}

// Len reports the number of audio items in the queue.
func (q *Queue) Len() int {
	return len(q.audio)
}
