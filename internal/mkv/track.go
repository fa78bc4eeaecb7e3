package mkv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mkvmux/internal/language"
)

// Sentinel errors for descriptor construction and ingestion failures.
var (
	ErrInvalidLanguage = errors.New("invalid language code")
	ErrIdentification  = errors.New("identification failed")
	ErrNoEntries       = errors.New("no entries found")
	ErrInputNotFound   = errors.New("input file not found")
)

// TrackIdentity is the immutable part of a track descriptor: the fields that
// describe the source stream and never change after construction.
type TrackIdentity struct {
	FilePath string
	ID       int64
	Codec    string
	Type     string
}

// Track describes one source stream and how it should be presented in the
// merged output. The identity is fixed at construction; presentation fields
// may be changed freely before command synthesis.
type Track struct {
	identity TrackIdentity

	// Presentation, mutable.
	Name     string
	TagsFile string
	Default  bool
	Forced   bool
	language string

	// Output suppression, mutable.
	NoChapters    bool
	NoGlobalTags  bool
	NoTrackTags   bool
	NoAttachments bool
}

// NewTrack constructs a track descriptor for a stream of the given source
// file.
func NewTrack(filePath string, id int64, codec, trackType string) *Track {
	return &Track{identity: TrackIdentity{
		FilePath: filePath,
		ID:       id,
		Codec:    codec,
		Type:     trackType,
	}}
}

// Identity returns the immutable identity fields.
func (t *Track) Identity() TrackIdentity { return t.identity }

// ID returns the track id within its source file.
func (t *Track) ID() int64 { return t.identity.ID }

// Codec returns the source stream codec, such as AVC/H.264 or AAC.
func (t *Track) Codec() string { return t.identity.Codec }

// Type returns the stream type: video, audio, or subtitles.
func (t *Track) Type() string { return t.identity.Type }

// FilePath returns the source file the track is read from.
func (t *Track) FilePath() string { return t.identity.FilePath }

// Language returns the track's language tag, empty when unset.
func (t *Track) Language() string { return t.language }

// SetLanguage validates and sets the track language. Empty and "und" always
// pass; anything else must be a known ISO 639-2 code.
func (t *Track) SetLanguage(code string) error {
	code = strings.TrimSpace(code)
	if code == "" || strings.EqualFold(code, "und") || language.IsISO6392(code) {
		t.language = code
		return nil
	}
	return fmt.Errorf("%w: %q is not a valid ISO 639-2 language code", ErrInvalidLanguage, code)
}

// SameTrack reports identity equality: two descriptors with the same id are
// the same track no matter how their presentation fields differ.
func SameTrack(a, b *Track) bool {
	return a.identity.ID == b.identity.ID
}

// CompareTracks orders tracks by id only.
func CompareTracks(a, b *Track) int {
	switch {
	case a.identity.ID < b.identity.ID:
		return -1
	case a.identity.ID > b.identity.ID:
		return 1
	default:
		return 0
	}
}

// trackTypeFlags maps a recognized track type to its inclusion flag and the
// exclusion flags disabling the other two categories. Unrecognized types get
// no entry and fall through without emitting either kind, leaving future
// codec types to pass untouched.
var trackTypeFlags = map[string]struct {
	include  string
	excludes [2]string
}{
	"video":     {"--video-tracks", [2]string{"--no-audio", "--no-subtitles"}},
	"audio":     {"--audio-tracks", [2]string{"--no-video", "--no-subtitles"}},
	"subtitles": {"--subtitle-tracks", [2]string{"--no-video", "--no-audio"}},
}

// Command renders the mkvmerge tokens for this track. Optional metadata is
// omitted when empty, the default/forced flags are always emitted (the
// grammar requires an explicit per-id value), and the source file path is
// the terminal token.
func (t *Track) Command() []string {
	id := strconv.FormatInt(t.identity.ID, 10)
	command := make([]string, 0, 16)

	optional := []struct {
		value string
		flag  string
	}{
		{t.Name, "--track-name"},
		{t.language, "--language"},
		{t.TagsFile, "--tags"},
	}
	for _, opt := range optional {
		if opt.value != "" {
			command = append(command, opt.flag, id+":"+opt.value)
		}
	}

	command = append(command,
		"--default-track-flag", id+":"+boolToken(t.Default),
		"--forced-display-flag", id+":"+boolToken(t.Forced),
	)

	if flags, ok := trackTypeFlags[t.identity.Type]; ok {
		command = append(command, flags.include, id)
		command = append(command, flags.excludes[0], flags.excludes[1])
	}

	suppressions := []struct {
		set  bool
		flag string
	}{
		{t.NoChapters, "--no-chapters"},
		{t.NoGlobalTags, "--no-global-tags"},
		{t.NoTrackTags, "--no-track-tags"},
		{t.NoAttachments, "--no-attachments"},
	}
	for _, s := range suppressions {
		if s.set {
			command = append(command, s.flag)
		}
	}

	return append(command, t.identity.FilePath)
}

func boolToken(value bool) string {
	if value {
		return "1"
	}
	return "0"
}
