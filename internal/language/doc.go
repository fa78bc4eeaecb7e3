// Package language provides ISO 639 language code validation and mapping.
//
// Track language tags handed to mkvmerge must be ISO 639-2 (3-letter) codes;
// code validation, conversion, and display naming are consolidated here so
// the descriptor and CLI layers agree on what counts as a valid tag.
package language
