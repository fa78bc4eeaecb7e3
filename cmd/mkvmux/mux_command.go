package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mkvmux/internal/mkv"
	"mkvmux/internal/mkvmerge"
	"mkvmux/internal/split"
	"mkvmux/internal/textutil"
	"mkvmux/internal/timestamp"
)

type muxFlags struct {
	output          string
	title           string
	chapters        string
	chapterLanguage string
	globalTags      string
	linkPrevious    string
	linkNext        string
	link            bool
	dryRun          bool

	noChapters    bool
	noGlobalTags  bool
	noTrackTags   bool
	noAttachments bool

	splitSize        int64
	splitDuration    float64
	splitTimestamps  string
	splitFrames      string
	splitChapters    string
	splitParts       string
	splitPartsFrames string
}

func newMuxCommand(ctx *commandContext) *cobra.Command {
	var flags muxFlags

	cmd := &cobra.Command{
		Use:   "mux <input>...",
		Short: "Merge inputs into a Matroska file",
		Long: `Identify each input, synthesize the mkvmerge command for the combined
track set, and run it. Tracks keep their source order: all tracks of the
first input, then all tracks of the second, and so on.

Examples:
  mkvmux mux -o out.mkv video.mkv audio.ac3
  mkvmux mux -o out.mkv --title "Feature" --chapters chapters.xml movie.mkv
  mkvmux mux -o out.mkv --split-duration 300 --link movie.mkv
  mkvmux mux --dry-run -o out.mkv movie.mkv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return fmt.Errorf("create mkvmerge client: %w", err)
			}

			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}

			file, err := assembleFile(runCtx, client, args, flags)
			if err != nil {
				return err
			}

			output := strings.TrimSpace(flags.output)
			if output == "" {
				name := textutil.SanitizeFileName(file.Title)
				if name == "" {
					return fmt.Errorf("no output path given and no title to derive one from")
				}
				output = name + ".mkv"
			}

			command := file.Command(output)
			out := cmd.OutOrStdout()
			if flags.dryRun {
				fmt.Fprintln(out, client.Binary()+" "+strings.Join(command, " "))
				return nil
			}

			result, err := client.Mux(runCtx, command)
			if err != nil {
				return err
			}
			if trimmed := strings.TrimSpace(result); trimmed != "" {
				fmt.Fprintln(out, trimmed)
			}
			fmt.Fprintf(out, "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: derived from --title)")
	cmd.Flags().StringVar(&flags.title, "title", "", "Title for the output file")
	cmd.Flags().StringVar(&flags.chapters, "chapters", "", "Chapter file to include")
	cmd.Flags().StringVar(&flags.chapterLanguage, "chapter-language", "", "ISO 639-2 language code for the chapter file")
	cmd.Flags().StringVar(&flags.globalTags, "global-tags", "", "Global tags file to include")
	cmd.Flags().StringVar(&flags.linkPrevious, "link-to-previous", "", "Link the first output file to this predecessor")
	cmd.Flags().StringVar(&flags.linkNext, "link-to-next", "", "Link the last output file to this successor")
	cmd.Flags().BoolVar(&flags.link, "link", false, "Link the produced split files to one another")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the mkvmerge command instead of running it")
	cmd.Flags().BoolVar(&flags.noChapters, "no-chapters", false, "Do not copy chapters from the inputs")
	cmd.Flags().BoolVar(&flags.noGlobalTags, "no-global-tags", false, "Do not copy global tags from the inputs")
	cmd.Flags().BoolVar(&flags.noTrackTags, "no-track-tags", false, "Do not copy track tags from the inputs")
	cmd.Flags().BoolVar(&flags.noAttachments, "no-attachments", false, "Do not copy attachments from the inputs")
	cmd.Flags().Int64Var(&flags.splitSize, "split-size", 0, "Split output after this many bytes")
	cmd.Flags().Float64Var(&flags.splitDuration, "split-duration", 0, "Split output after this many seconds")
	cmd.Flags().StringVar(&flags.splitTimestamps, "split-timestamps", "", "Split at these timestamps (comma separated)")
	cmd.Flags().StringVar(&flags.splitFrames, "split-frames", "", "Split before these frame numbers (comma separated)")
	cmd.Flags().StringVar(&flags.splitChapters, "split-chapters", "", "Split before these chapter numbers, or \"all\"")
	cmd.Flags().StringVar(&flags.splitParts, "split-parts", "", "Keep only these timestamp ranges (e.g. \"00:01:00-00:02:00,+00:03:00-\")")
	cmd.Flags().StringVar(&flags.splitPartsFrames, "split-parts-frames", "", "Keep only these frame ranges (e.g. \"100-200,+300-\")")

	return cmd
}

// assembleFile loads every input and folds them into one aggregate with the
// requested global directives applied.
func assembleFile(ctx context.Context, client *mkvmerge.Client, inputs []string, flags muxFlags) (*mkv.File, error) {
	var file *mkv.File
	for _, input := range inputs {
		loaded, err := mkv.LoadFile(ctx, client, strings.TrimSpace(input))
		if err != nil {
			return nil, err
		}
		if file == nil {
			file = loaded
			continue
		}
		file.AddFile(loaded)
	}

	if flags.title != "" {
		file.Title = flags.title
	}
	if flags.chapters != "" {
		if err := file.SetChapters(flags.chapters, flags.chapterLanguage); err != nil {
			return nil, err
		}
	}
	if flags.globalTags != "" {
		file.SetGlobalTags(flags.globalTags)
	}
	if flags.linkPrevious != "" {
		file.LinkToPrevious(flags.linkPrevious)
	}
	if flags.linkNext != "" {
		file.LinkToNext(flags.linkNext)
	}
	if flags.noChapters {
		file.NoChapters()
	}
	if flags.noGlobalTags {
		file.NoGlobalTags()
	}
	if flags.noTrackTags {
		file.NoTrackTags()
	}
	if flags.noAttachments {
		file.NoAttachments()
	}

	spec, err := parseSplitFlags(flags)
	if err != nil {
		return nil, err
	}
	if spec.Mode() != split.ModeNone {
		file.SetSplit(spec.WithLink(flags.link))
	} else if flags.link {
		return nil, fmt.Errorf("--link requires a split mode")
	}

	return file, nil
}

// parseSplitFlags maps the mutually exclusive split flags onto a split
// specification. At most one split flag may be set.
func parseSplitFlags(flags muxFlags) (split.Spec, error) {
	set := 0
	for _, active := range []bool{
		flags.splitSize > 0,
		flags.splitDuration > 0,
		flags.splitTimestamps != "",
		flags.splitFrames != "",
		flags.splitChapters != "",
		flags.splitParts != "",
		flags.splitPartsFrames != "",
	} {
		if active {
			set++
		}
	}
	if set > 1 {
		return split.None(), fmt.Errorf("at most one split flag may be given")
	}

	switch {
	case flags.splitSize > 0:
		return split.BySize(flags.splitSize)
	case flags.splitDuration > 0:
		return split.ByDuration(flags.splitDuration)
	case flags.splitTimestamps != "":
		stamps, err := parseTimestampList(flags.splitTimestamps)
		if err != nil {
			return split.None(), err
		}
		return split.ByTimestamps(stamps...)
	case flags.splitFrames != "":
		frames, err := parseFrameList(flags.splitFrames)
		if err != nil {
			return split.None(), err
		}
		return split.ByFrames(frames...)
	case flags.splitChapters != "":
		if strings.EqualFold(strings.TrimSpace(flags.splitChapters), "all") {
			return split.ByAllChapters(), nil
		}
		chapters, err := parseChapterList(flags.splitChapters)
		if err != nil {
			return split.None(), err
		}
		return split.ByChapters(chapters)
	case flags.splitParts != "":
		ranges, err := parseTimeRanges(flags.splitParts)
		if err != nil {
			return split.None(), err
		}
		return split.ByParts(ranges)
	case flags.splitPartsFrames != "":
		ranges, err := parseFrameRanges(flags.splitPartsFrames)
		if err != nil {
			return split.None(), err
		}
		return split.ByPartsFrames(ranges)
	}
	return split.None(), nil
}

func parseTimestampList(value string) ([]timestamp.Timestamp, error) {
	parts := strings.Split(value, ",")
	stamps := make([]timestamp.Timestamp, 0, len(parts))
	for _, part := range parts {
		ts, err := timestamp.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("split timestamp %q: %w", part, err)
		}
		stamps = append(stamps, ts)
	}
	return stamps, nil
}

func parseFrameList(value string) ([]int64, error) {
	parts := strings.Split(value, ",")
	frames := make([]int64, 0, len(parts))
	for _, part := range parts {
		frame, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("split frame %q: %w", part, err)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func parseChapterList(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	chapters := make([]int, 0, len(parts))
	for _, part := range parts {
		chapter, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("split chapter %q: %w", part, err)
		}
		chapters = append(chapters, chapter)
	}
	return chapters, nil
}

// parseTimeRanges decodes "start-end" pairs separated by commas. A leading
// "+" appends the range to the previous output file; an empty side leaves
// that boundary open.
func parseTimeRanges(value string) ([]timestamp.TimeRange, error) {
	parts := strings.Split(value, ",")
	ranges := make([]timestamp.TimeRange, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		appendPrev := strings.HasPrefix(part, "+")
		part = strings.TrimPrefix(part, "+")

		start, end, ok := strings.Cut(part, "-")
		if !ok {
			return nil, fmt.Errorf("split range %q: expected start-end", part)
		}
		var tr timestamp.TimeRange
		tr.AppendToPrevious = appendPrev
		if s := strings.TrimSpace(start); s != "" {
			ts, err := timestamp.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("split range start %q: %w", s, err)
			}
			tr.Start = timestamp.Ptr(ts)
		}
		if e := strings.TrimSpace(end); e != "" {
			ts, err := timestamp.Parse(e)
			if err != nil {
				return nil, fmt.Errorf("split range end %q: %w", e, err)
			}
			tr.End = timestamp.Ptr(ts)
		}
		ranges = append(ranges, tr)
	}
	return ranges, nil
}

func parseFrameRanges(value string) ([]timestamp.FrameRange, error) {
	parts := strings.Split(value, ",")
	ranges := make([]timestamp.FrameRange, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		appendPrev := strings.HasPrefix(part, "+")
		part = strings.TrimPrefix(part, "+")

		start, end, ok := strings.Cut(part, "-")
		if !ok {
			return nil, fmt.Errorf("split frame range %q: expected start-end", part)
		}
		var fr timestamp.FrameRange
		fr.AppendToPrevious = appendPrev
		if s := strings.TrimSpace(start); s != "" {
			frame, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("split frame range start %q: %w", s, err)
			}
			fr.Start = timestamp.FramePtr(frame)
		}
		if e := strings.TrimSpace(end); e != "" {
			frame, err := strconv.ParseInt(e, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("split frame range end %q: %w", e, err)
			}
			fr.End = timestamp.FramePtr(frame)
		}
		ranges = append(ranges, fr)
	}
	return ranges, nil
}
