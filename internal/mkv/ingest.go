package mkv

import (
	"context"
	"fmt"
	"os"

	"mkvmux/internal/logging"
	"mkvmux/internal/mkvmerge"
)

// TrackFromIdentification builds a track descriptor from one identification
// entry of the given source file.
func TrackFromIdentification(filePath string, data mkvmerge.Track) (*Track, error) {
	track := NewTrack(filePath, data.ID, data.Codec, data.Type)
	track.Name = data.Properties.TrackName
	track.Default = data.Properties.DefaultTrack
	track.Forced = data.Properties.ForcedTrack
	if err := track.SetLanguage(data.Properties.Language); err != nil {
		return nil, fmt.Errorf("track %d of %q: %w", data.ID, filePath, err)
	}
	return track, nil
}

// AttachmentFromIdentification builds an attachment descriptor from one
// identification entry of the given source file.
func AttachmentFromIdentification(filePath string, data mkvmerge.Attachment) *Attachment {
	attachment := NewAttachmentWithDetails(filePath, data.ID, data.Size, data.Properties.UID, data.ContentType)
	attachment.Name = data.FileName
	attachment.Description = data.Description
	return attachment
}

// FileFromIdentification builds a file aggregate from an identification
// result. It fails when the container is not supported by mkvmerge.
func FileFromIdentification(filePath string, ident mkvmerge.Identification) (*File, error) {
	if !ident.Container.Supported {
		return nil, fmt.Errorf("%w: container of %q is not supported by mkvmerge", ErrIdentification, filePath)
	}

	file := NewFile(ident.Container.Properties.Title)
	for _, trackData := range ident.Tracks {
		track, err := TrackFromIdentification(filePath, trackData)
		if err != nil {
			return nil, err
		}
		file.AddTrack(track)
	}
	for _, attachmentData := range ident.Attachments {
		file.AddAttachment(AttachmentFromIdentification(filePath, attachmentData))
	}
	return file, nil
}

// LoadFile identifies filePath with the given client and builds its file
// aggregate.
func LoadFile(ctx context.Context, client *mkvmerge.Client, filePath string) (*File, error) {
	ident, err := identifyExisting(ctx, client, filePath)
	if err != nil {
		return nil, err
	}
	return FileFromIdentification(filePath, ident)
}

// LoadTrack identifies filePath and returns its first track. It fails when
// the file has no tracks and warns on the client's logger when several
// exist.
func LoadTrack(ctx context.Context, client *mkvmerge.Client, filePath string) (*Track, error) {
	logger := client.Logger()
	ident, err := identifyExisting(ctx, client, filePath)
	if err != nil {
		return nil, err
	}
	if !ident.Container.Supported {
		return nil, fmt.Errorf("%w: container of %q is not supported by mkvmerge", ErrIdentification, filePath)
	}
	if len(ident.Tracks) == 0 {
		return nil, fmt.Errorf("%w: %q contains no tracks", ErrNoEntries, filePath)
	}
	if len(ident.Tracks) > 1 {
		logger.Warn("multiple tracks detected, selected the first",
			logging.String("path", filePath),
			logging.Int("track_count", len(ident.Tracks)),
		)
	}
	return TrackFromIdentification(filePath, ident.Tracks[0])
}

// LoadAttachment identifies filePath and returns its first attachment. It
// fails when the file has no attachments and warns on the client's logger
// when several exist.
func LoadAttachment(ctx context.Context, client *mkvmerge.Client, filePath string) (*Attachment, error) {
	logger := client.Logger()
	ident, err := identifyExisting(ctx, client, filePath)
	if err != nil {
		return nil, err
	}
	if !ident.Container.Supported {
		return nil, fmt.Errorf("%w: container of %q is not supported by mkvmerge", ErrIdentification, filePath)
	}
	if len(ident.Attachments) == 0 {
		return nil, fmt.Errorf("%w: %q contains no attachments", ErrNoEntries, filePath)
	}
	if len(ident.Attachments) > 1 {
		logger.Warn("multiple attachments detected, selected the first",
			logging.String("path", filePath),
			logging.Int("attachment_count", len(ident.Attachments)),
		)
	}
	return AttachmentFromIdentification(filePath, ident.Attachments[0]), nil
}

func identifyExisting(ctx context.Context, client *mkvmerge.Client, filePath string) (mkvmerge.Identification, error) {
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		return mkvmerge.Identification{}, fmt.Errorf("%w: %q", ErrInputNotFound, filePath)
	}
	return client.Identify(ctx, filePath)
}
