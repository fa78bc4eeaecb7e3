package mkv

import (
	"fmt"
	"strings"

	"mkvmux/internal/language"
	"mkvmux/internal/split"
)

// File aggregates the tracks, attachments, and global directives for one
// mkvmerge invocation. Track and attachment order is insertion order and
// determines output stream order. At most one split specification is active;
// setting a new one replaces the old (last write wins).
type File struct {
	Title string

	tracks      []*Track
	attachments []*Attachment

	chaptersFile    string
	chapterLanguage string
	globalTagsFile  string
	linkPrevious    string
	linkNext        string
	splitSpec       split.Spec
}

// NewFile constructs an empty file aggregate.
func NewFile(title string) *File {
	return &File{Title: title}
}

// Tracks returns the tracks in insertion order.
func (f *File) Tracks() []*Track { return f.tracks }

// Attachments returns the attachments in insertion order.
func (f *File) Attachments() []*Attachment { return f.attachments }

// AddTrack appends a track descriptor.
func (f *File) AddTrack(track *Track) {
	if track != nil {
		f.tracks = append(f.tracks, track)
	}
}

// AddAttachment appends an attachment descriptor.
func (f *File) AddAttachment(attachment *Attachment) {
	if attachment != nil {
		f.attachments = append(f.attachments, attachment)
	}
}

// AddFile appends every track of another aggregate, preserving order. The
// descriptors are shared by reference, not copied.
func (f *File) AddFile(other *File) {
	if other != nil {
		f.tracks = append(f.tracks, other.tracks...)
	}
}

// SetChapters points the output at a chapter file, optionally tagging the
// chapter language. The language must be a known ISO 639-2 code when given.
func (f *File) SetChapters(filePath, languageCode string) error {
	languageCode = strings.TrimSpace(languageCode)
	if languageCode != "" && !language.IsISO6392(languageCode) {
		return fmt.Errorf("%w: %q is not a valid ISO 639-2 language code", ErrInvalidLanguage, languageCode)
	}
	f.chaptersFile = filePath
	f.chapterLanguage = languageCode
	return nil
}

// SetGlobalTags points the output at a global tags file.
func (f *File) SetGlobalTags(filePath string) {
	f.globalTagsFile = filePath
}

// LinkToPrevious links the first output file to the given predecessor.
func (f *File) LinkToPrevious(filePath string) {
	f.linkPrevious = filePath
}

// LinkToNext links the last output file to the given successor.
func (f *File) LinkToNext(filePath string) {
	f.linkNext = filePath
}

// ClearLinks removes both segment links.
func (f *File) ClearLinks() {
	f.linkPrevious = ""
	f.linkNext = ""
}

// SetSplit installs the active split specification, replacing any previous
// one.
func (f *File) SetSplit(spec split.Spec) {
	f.splitSpec = spec
}

// Split returns the active split specification.
func (f *File) Split() split.Spec { return f.splitSpec }

// NoChapters suppresses chapter copying on every track.
func (f *File) NoChapters() {
	for _, track := range f.tracks {
		track.NoChapters = true
	}
}

// NoGlobalTags suppresses global tag copying on every track.
func (f *File) NoGlobalTags() {
	for _, track := range f.tracks {
		track.NoGlobalTags = true
	}
}

// NoTrackTags suppresses track tag copying on every track.
func (f *File) NoTrackTags() {
	for _, track := range f.tracks {
		track.NoTrackTags = true
	}
}

// NoAttachments suppresses attachment copying on every track.
func (f *File) NoAttachments() {
	for _, track := range f.tracks {
		track.NoAttachments = true
	}
}

// Command assembles the full mkvmerge argument list for this aggregate, in
// the fixed order the tool's option-association rules require: output path,
// title, per-track tokens, per-attachment tokens, chapters, global tags,
// linking, split. The split and link directives come last so they cannot be
// associated with a preceding file token.
func (f *File) Command(outputPath string) []string {
	command := []string{"-o", outputPath}

	if f.Title != "" {
		command = append(command, "--title", f.Title)
	}

	for _, track := range f.tracks {
		command = append(command, track.Command()...)
	}
	for _, attachment := range f.attachments {
		command = append(command, attachment.Command()...)
	}

	if f.chapterLanguage != "" {
		command = append(command, "--chapter-language", f.chapterLanguage)
	}
	if f.chaptersFile != "" {
		command = append(command, "--chapters", f.chaptersFile)
	}
	if f.globalTagsFile != "" {
		command = append(command, "--global-tags", f.globalTagsFile)
	}
	if f.linkPrevious != "" {
		command = append(command, "--link-to-previous", "="+f.linkPrevious)
	}
	if f.linkNext != "" {
		command = append(command, "--link-to-next", "="+f.linkNext)
	}

	return append(command, f.splitSpec.Args()...)
}
