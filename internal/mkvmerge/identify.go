package mkvmerge

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Identification represents the parsed output of
// `mkvmerge --identify --identification-format json`.
type Identification struct {
	FileName    string       `json:"file_name"`
	Container   Container    `json:"container"`
	Tracks      []Track      `json:"tracks"`
	Attachments []Attachment `json:"attachments"`
	Chapters    []Chapters   `json:"chapters"`
	Errors      []string     `json:"errors"`
	Warnings    []string     `json:"warnings"`
	raw         []byte
}

// Container captures container-level identification data.
type Container struct {
	Recognized bool                `json:"recognized"`
	Supported  bool                `json:"supported"`
	Type       string              `json:"type"`
	Properties ContainerProperties `json:"properties"`
}

// ContainerProperties holds the container metadata mkvmux consumes.
type ContainerProperties struct {
	Title                 string `json:"title"`
	Duration              int64  `json:"duration"`
	IsProvidingTimestamps bool   `json:"is_providing_timestamps"`
}

// Track describes one stream in the container.
type Track struct {
	ID         int64           `json:"id"`
	Codec      string          `json:"codec"`
	Type       string          `json:"type"`
	Properties TrackProperties `json:"properties"`
}

// TrackProperties holds the per-track metadata mkvmux consumes.
type TrackProperties struct {
	TrackName    string `json:"track_name"`
	Language     string `json:"language"`
	DefaultTrack bool   `json:"default_track"`
	ForcedTrack  bool   `json:"forced_track"`
	Number       int64  `json:"number"`
	CodecID      string `json:"codec_id"`
}

// Attachment describes one attached file in the container.
type Attachment struct {
	ID          int64                `json:"id"`
	FileName    string               `json:"file_name"`
	Size        int64                `json:"size"`
	Description string               `json:"description"`
	ContentType string               `json:"content_type"`
	Properties  AttachmentProperties `json:"properties"`
}

// AttachmentProperties holds attachment metadata.
type AttachmentProperties struct {
	UID int64 `json:"uid"`
}

// Chapters reports the chapter entry count per edition.
type Chapters struct {
	NumEntries int `json:"num_entries"`
}

// ParseIdentification decodes an identification JSON payload.
func ParseIdentification(payload []byte) (Identification, error) {
	var ident Identification
	if err := json.Unmarshal(payload, &ident); err != nil {
		return Identification{}, fmt.Errorf("parse identification: %w", err)
	}
	ident.raw = append([]byte(nil), payload...)
	return ident, nil
}

// RawJSON returns the raw identification payload.
func (i Identification) RawJSON() []byte {
	return append([]byte(nil), i.raw...)
}

// TrackCount returns the number of tracks of the given type ("video",
// "audio", "subtitles"). An empty type counts every track.
func (i Identification) TrackCount(trackType string) int {
	if trackType == "" {
		return len(i.Tracks)
	}
	count := 0
	for _, track := range i.Tracks {
		if strings.EqualFold(track.Type, trackType) {
			count++
		}
	}
	return count
}

// ChapterCount returns the total chapter entries across editions.
func (i Identification) ChapterCount() int {
	total := 0
	for _, ch := range i.Chapters {
		total += ch.NumEntries
	}
	return total
}
