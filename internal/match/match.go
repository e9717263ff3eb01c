// Package match pairs audio items with artwork items by normalized
// filename. Matching is a pure function of its inputs: same audio list,
// artwork list, and overrides always produce the same pairings in the
// same order.
package match

import (
	"strings"

	"coverpress/internal/media"
)

// Status of a pairing.
type Status string

const (
	StatusMatched      Status = "matched"
	StatusMissingImage Status = "missing-image"
)

// Pairing associates one audio item with at most one artwork item.
// Artwork is the zero value when Status is StatusMissingImage.
type Pairing struct {
	Media   media.MediaItem
	Artwork media.ArtworkItem
	Status  Status
}

// Normalize reduces a filename to its matching key: the final extension
// (text after the last '.') is stripped, the rest lowercased, and every
// character outside [a-z0-9] removed. Idempotent.
func Normalize(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, strings.ToLower(name))
}

// Match resolves a pairing for every audio item, in input order. A manual
// override for the audio display name wins unconditionally; otherwise the
// first artwork item (in artwork order) with an equal normalized name is
// chosen. Artwork may be reused across audio items that normalize alike.
func Match(audio []media.MediaItem, artwork []media.ArtworkItem, overrides map[string]media.ArtworkItem) []Pairing {
	pairings := make([]Pairing, 0, len(audio))
	for _, m := range audio {
		if art, ok := overrides[m.Name]; ok {
			pairings = append(pairings, Pairing{Media: m, Artwork: art, Status: StatusMatched})
			continue
		}
		key := Normalize(m.Name)
		matched := false
		for _, art := range artwork {
			if Normalize(art.Name) == key {
				pairings = append(pairings, Pairing{Media: m, Artwork: art, Status: StatusMatched})
				matched = true
				break
			}
		}
		if !matched {
			pairings = append(pairings, Pairing{Media: m, Status: StatusMissingImage})
		}
	}
	return pairings
}
