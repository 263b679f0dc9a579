package models

import (
	"strings"

	"media-tracker/feature/metadata"
)

// Kind classifies a catalogue entry.
type Kind string

const (
	KindAnime   Kind = "Anime"
	KindManga   Kind = "Manga"
	KindManhwa  Kind = "Manhwa"
	KindWebtoon Kind = "Webtoon"
)

// Kinds lists every valid kind.
var Kinds = []Kind{KindAnime, KindManga, KindManhwa, KindWebtoon}

// ParseKind matches s case-insensitively against the known kinds.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if strings.EqualFold(strings.TrimSpace(s), string(k)) {
			return k, true
		}
	}
	return "", false
}

// Endpoint returns the metadata resource that describes this kind.
// Everything that is not anime is served from the manga endpoint.
func (k Kind) Endpoint() metadata.Endpoint {
	if k == KindAnime || k == "" {
		return metadata.EndpointAnime
	}
	return metadata.EndpointManga
}
