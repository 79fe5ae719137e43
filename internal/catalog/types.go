// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package catalog

import "github.com/zmb3/spotify/v2"

// Track is the reduced track record the recommendation core consumes.
// Lead artist is the first entry of the catalog track's artist list.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ArtistID   string `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	URL        string `json:"url"`
	Popularity int    `json:"popularity"`
}

// Artist is the reduced artist record the recommendation core consumes.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	URL        string   `json:"url"`
}

// TrackURL builds the public deep link for a track ID.
// Returns empty string for an empty ID.
func TrackURL(id string) string {
	if id == "" {
		return ""
	}
	return "https://open.spotify.com/track/" + id
}

// ArtistURL builds the public deep link for an artist ID.
// Returns empty string for an empty ID.
func ArtistURL(id string) string {
	if id == "" {
		return ""
	}
	return "https://open.spotify.com/artist/" + id
}

// trackFromFull extracts the fields the core reads from a catalog track,
// defaulting defensively: missing artists yield empty lead-artist fields and
// a missing external link falls back to a constructed deep link.
func trackFromFull(t *spotify.FullTrack) Track {
	out := Track{
		ID:         string(t.ID),
		Name:       t.Name,
		Popularity: int(t.Popularity),
	}
	if len(t.Artists) > 0 {
		out.ArtistID = string(t.Artists[0].ID)
		out.ArtistName = t.Artists[0].Name
	}
	out.URL = t.ExternalURLs["spotify"]
	if out.URL == "" {
		out.URL = TrackURL(out.ID)
	}
	return out
}

// artistFromFull extracts the fields the core reads from a catalog artist.
func artistFromFull(a *spotify.FullArtist) Artist {
	out := Artist{
		ID:         string(a.ID),
		Name:       a.Name,
		Genres:     a.Genres,
		Popularity: int(a.Popularity),
	}
	out.URL = a.ExternalURLs["spotify"]
	if out.URL == "" {
		out.URL = ArtistURL(out.ID)
	}
	return out
}

// tracksFromFull converts a slice of catalog tracks.
func tracksFromFull(tracks []spotify.FullTrack) []Track {
	out := make([]Track, 0, len(tracks))
	for i := range tracks {
		out = append(out, trackFromFull(&tracks[i]))
	}
	return out
}

// artistsFromFull converts a slice of catalog artists.
func artistsFromFull(artists []spotify.FullArtist) []Artist {
	out := make([]Artist, 0, len(artists))
	for i := range artists {
		out = append(out, artistFromFull(&artists[i]))
	}
	return out
}
