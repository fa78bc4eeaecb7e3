package mkv

// AttachmentIdentity is the immutable part of an attachment descriptor.
// Size and UID are informational; the id is what the external tool keys on.
type AttachmentIdentity struct {
	FilePath    string
	ID          int64
	Size        int64
	UID         int64
	ContentType string
}

// Attachment describes one file attached to the merged output.
type Attachment struct {
	identity AttachmentIdentity

	// Presentation, mutable.
	Name        string
	Description string

	// AttachOnce attaches the file only to the first output file of a split
	// instead of every one.
	AttachOnce bool
}

// NewAttachment constructs an attachment descriptor.
func NewAttachment(filePath string, id, size int64) *Attachment {
	return &Attachment{identity: AttachmentIdentity{
		FilePath: filePath,
		ID:       id,
		Size:     size,
	}}
}

// NewAttachmentWithDetails constructs an attachment descriptor carrying the
// optional immutable metadata mkvmerge reports during identification.
func NewAttachmentWithDetails(filePath string, id, size, uid int64, contentType string) *Attachment {
	return &Attachment{identity: AttachmentIdentity{
		FilePath:    filePath,
		ID:          id,
		Size:        size,
		UID:         uid,
		ContentType: contentType,
	}}
}

// Identity returns the immutable identity fields.
func (a *Attachment) Identity() AttachmentIdentity { return a.identity }

// ID returns the attachment id within its source file.
func (a *Attachment) ID() int64 { return a.identity.ID }

// Size returns the attachment size in bytes.
func (a *Attachment) Size() int64 { return a.identity.Size }

// ContentType returns the attachment MIME type, empty when unknown.
func (a *Attachment) ContentType() string { return a.identity.ContentType }

// FilePath returns the file to attach.
func (a *Attachment) FilePath() string { return a.identity.FilePath }

// SameAttachment reports identity equality by id only.
func SameAttachment(a, b *Attachment) bool {
	return a.identity.ID == b.identity.ID
}

// CompareAttachments orders attachments by id only.
func CompareAttachments(a, b *Attachment) int {
	switch {
	case a.identity.ID < b.identity.ID:
		return -1
	case a.identity.ID > b.identity.ID:
		return 1
	default:
		return 0
	}
}

// Command renders the mkvmerge tokens for this attachment: optional metadata
// flags when non-empty, then exactly one of the two attach directives with
// the file path as the terminal token.
func (a *Attachment) Command() []string {
	command := make([]string, 0, 8)

	optional := []struct {
		value string
		flag  string
	}{
		{a.Name, "--attachment-name"},
		{a.Description, "--attachment-description"},
		{a.identity.ContentType, "--attachment-mime-type"},
	}
	for _, opt := range optional {
		if opt.value != "" {
			command = append(command, opt.flag, opt.value)
		}
	}

	attachFlag := "--attach-file"
	if a.AttachOnce {
		attachFlag = "--attach-file-once"
	}
	return append(command, attachFlag, a.identity.FilePath)
}
