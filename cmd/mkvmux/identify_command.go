package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mkvmux/internal/identcache"
	"mkvmux/internal/language"
	"mkvmux/internal/logging"
	"mkvmux/internal/mkvmerge"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var rawJSON bool
	var noCache bool

	cmd := &cobra.Command{
		Use:   "identify <file>",
		Short: "Identify a media container and show its tracks",
		Long: `Identify a media container with mkvmerge and display its tracks,
attachments, and chapters. Results are cached per file so repeated
invocations against unchanged files skip the mkvmerge run.

Examples:
  mkvmux identify movie.mkv            # Tabular track listing
  mkvmux identify --json movie.mkv     # Raw identification payload
  mkvmux identify --no-cache movie.mkv # Bypass the identification cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			client, err := ctx.newClient()
			if err != nil {
				return fmt.Errorf("create mkvmerge client: %w", err)
			}

			filePath := strings.TrimSpace(args[0])

			var cache *identcache.Store
			if cfg.IdentifyCache.Enabled && !noCache {
				maxAge := time.Duration(cfg.IdentifyCache.MaxAgeDays) * 24 * time.Hour
				cache, err = identcache.Open(cfg.IdentifyCache.Dir, maxAge)
				if err != nil {
					logger.Warn("identification cache unavailable",
						logging.Error(err),
						logging.String("dir", cfg.IdentifyCache.Dir),
					)
					cache = nil
				} else {
					defer cache.Close()
				}
			}

			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}

			ident, cached, err := identifyWithCache(runCtx, client, cache, filePath, logger)
			if err != nil {
				return err
			}

			if rawJSON {
				var payload any
				if err := json.Unmarshal(ident.RawJSON(), &payload); err != nil {
					return fmt.Errorf("decode identification payload: %w", err)
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File: %s\n", ident.FileName)
			fmt.Fprintf(out, "Container: %s (recognized: %s, supported: %s)\n",
				ident.Container.Type,
				yesNo(ident.Container.Recognized),
				yesNo(ident.Container.Supported))
			if title := strings.TrimSpace(ident.Container.Properties.Title); title != "" {
				fmt.Fprintf(out, "Title: %s\n", title)
			}
			if cached {
				fmt.Fprintln(out, "Source: identification cache")
			}

			if len(ident.Tracks) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable(out,
					[]string{"ID", "Type", "Codec", "Language", "Name", "Default", "Forced"},
					trackRows(ident.Tracks),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				))
			}
			if len(ident.Attachments) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable(out,
					[]string{"ID", "Name", "MIME Type", "Size"},
					attachmentRows(ident.Attachments),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
				))
			}
			if count := ident.ChapterCount(); count > 0 {
				fmt.Fprintf(out, "\nChapters: %d entries\n", count)
			}
			for _, warning := range ident.Warnings {
				fmt.Fprintf(out, "Warning: %s\n", warning)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rawJSON, "json", false, "Print the raw identification payload")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the identification cache")

	return cmd
}

// identifyWithCache returns the identification for filePath, consulting the
// cache first when one is available. The second return reports a cache hit.
func identifyWithCache(ctx context.Context, client *mkvmerge.Client, cache *identcache.Store, filePath string, logger *slog.Logger) (mkvmerge.Identification, bool, error) {
	if cache != nil {
		payload, ok, err := cache.Get(ctx, filePath)
		if err != nil {
			logger.Warn("identification cache read failed", logging.Error(err))
		} else if ok {
			ident, err := mkvmerge.ParseIdentification(payload)
			if err == nil {
				return ident, true, nil
			}
			logger.Warn("cached identification payload invalid", logging.Error(err))
		}
	}

	ident, err := client.Identify(ctx, filePath)
	if err != nil {
		return mkvmerge.Identification{}, false, err
	}
	if cache != nil {
		if err := cache.Put(ctx, filePath, ident.RawJSON()); err != nil {
			logger.Warn("identification cache write failed", logging.Error(err))
		}
	}
	return ident, false, nil
}

func trackRows(tracks []mkvmerge.Track) [][]string {
	rows := make([][]string, 0, len(tracks))
	for _, track := range tracks {
		lang := track.Properties.Language
		if lang != "" {
			if display := language.DisplayName(lang); display != strings.ToUpper(lang) {
				lang = fmt.Sprintf("%s (%s)", display, lang)
			}
		}
		rows = append(rows, []string{
			strconv.FormatInt(track.ID, 10),
			track.Type,
			track.Codec,
			lang,
			track.Properties.TrackName,
			yesNo(track.Properties.DefaultTrack),
			yesNo(track.Properties.ForcedTrack),
		})
	}
	return rows
}

func attachmentRows(attachments []mkvmerge.Attachment) [][]string {
	rows := make([][]string, 0, len(attachments))
	for _, attachment := range attachments {
		rows = append(rows, []string{
			strconv.FormatInt(attachment.ID, 10),
			attachment.FileName,
			attachment.ContentType,
			strconv.FormatInt(attachment.Size, 10),
		})
	}
	return rows
}
