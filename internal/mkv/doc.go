// Package mkv models the tracks, attachments, and files fed to mkvmerge.
//
// Descriptors split into an immutable identity (the fields mkvmerge uses to
// address a stream: source path, id, codec, type) and mutable presentation
// attributes (names, language, flags). Equality and ordering are defined on
// the identity id alone, through the explicit SameTrack/CompareTracks style
// helpers, because the id is the only thing the external tool uses to
// disambiguate.
//
// Each descriptor renders itself into the ordered token sequence mkvmerge
// expects; the File aggregate concatenates those sequences with the global
// directives (title, chapters, tags, linking, split) in the fixed order the
// tool's option-association rules require. The terminal token of every
// track and attachment sequence is the source file path.
package mkv
