package derive

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/familylane/memory-lane/internal/calendar"
	"github.com/familylane/memory-lane/internal/model"
)

const (
	maxCaptionRunes   = 80
	maxHighlightRunes = 40
	maxSummaryCaps    = 3

	fallbackCaption       = "A family memory"
	fallbackUploadCaption = "Family memory"
	fallbackHighlight     = "Family moment"

	captionSeparator = " • "
)

var (
	sentenceBreakRx = regexp.MustCompile(`[.!?]`)
	fileSeparatorRx = regexp.MustCompile(`[-_]+`)
	fileExtRx       = regexp.MustCompile(`\.[^.]+$`)
)

// AutoCaption builds a caption from the memory's own text when nobody wrote one.
func AutoCaption(m model.Memory, loc *time.Location) string {
	if title := strings.TrimSpace(m.Title); title != "" {
		return title
	}
	if sentence := firstSentence(m.Story); sentence != "" {
		return truncateRunes(sentence, maxCaptionRunes)
	}
	if location := strings.TrimSpace(m.Location); location != "" {
		return "Moment in " + location
	}
	if strings.TrimSpace(m.MemoryDate) != "" {
		if t, err := calendar.ParseTimestamp(m.MemoryDate, loc); err == nil {
			return "Memory from " + calendar.FormatDate(t)
		}
	}
	return fallbackCaption
}

// DisplayCaption returns the first media caption, or AutoCaption when it is blank.
func DisplayCaption(m model.Memory, loc *time.Location) string {
	return displayCaption(m, MediaItems(m), loc)
}

func displayCaption(m model.Memory, media []model.MediaItem, loc *time.Location) string {
	if len(media) > 0 {
		if c := strings.TrimSpace(media[0].Caption); c != "" {
			return c
		}
	}
	return AutoCaption(m, loc)
}

// MediaCaptionSummary joins up to three captions, noting how many were left out.
func MediaCaptionSummary(items []model.MediaItem) string {
	captions := make([]string, 0, len(items))
	for _, it := range items {
		if c := strings.TrimSpace(it.Caption); c != "" {
			captions = append(captions, c)
		}
	}
	if len(captions) == 0 {
		return ""
	}
	if len(captions) <= maxSummaryCaps {
		return strings.Join(captions, captionSeparator)
	}
	sample := strings.Join(captions[:maxSummaryCaps], captionSeparator)
	return fmt.Sprintf("%s%s+%d more", sample, captionSeparator, len(captions)-maxSummaryCaps)
}

// Highlight is the short text a memory contributes to a period summary.
func Highlight(m model.Memory) string {
	if title := strings.TrimSpace(m.Title); title != "" {
		return title
	}
	if media := MediaItems(m); len(media) > 0 {
		if c := strings.TrimSpace(media[0].Caption); c != "" {
			return c
		}
	}
	if story := strings.TrimSpace(m.Story); story != "" {
		return truncateRunes(story, maxHighlightRunes)
	}
	return fallbackHighlight
}

// CaptionForUploadedFile picks the caption stored with a newly uploaded file.
// draft holds the form fields of the memory being saved.
func CaptionForUploadedFile(draft model.Memory, fileName, provided string, loc *time.Location) string {
	if provided != "" {
		return provided
	}
	if hasText(draft) {
		return AutoCaption(draft, loc)
	}
	if fileName != "" {
		return HumanizeFileName(fileName)
	}
	return fallbackUploadCaption
}

// HumanizeFileName turns "beach-day_2024.jpg" into "beach day 2024".
func HumanizeFileName(name string) string {
	name = fileSeparatorRx.ReplaceAllString(name, " ")
	return fileExtRx.ReplaceAllString(name, "")
}

// CaptionLines splits the multi-line captions field into one caption per line.
func CaptionLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ApplyCaptionLines rewrites captions of already attached media when the
// captions field was edited without uploading new files. Line i goes to item
// i; items without a line keep their caption or fall back to an upload caption.
func ApplyCaptionLines(items []model.MediaItem, lines []string, draft model.Memory, loc *time.Location) []model.MediaItem {
	if len(items) == 0 || len(lines) == 0 {
		return items
	}
	out := make([]model.MediaItem, len(items))
	for i, it := range items {
		out[i] = it
		switch {
		case i < len(lines):
			out[i].Caption = lines[i]
		case it.Caption != "":
		default:
			out[i].Caption = CaptionForUploadedFile(draft, "", "", loc)
		}
	}
	return out
}

func hasText(m model.Memory) bool {
	return strings.TrimSpace(m.Title) != "" || strings.TrimSpace(m.Story) != "" || strings.TrimSpace(m.Location) != ""
}

func firstSentence(story string) string {
	if story == "" {
		return ""
	}
	return strings.TrimSpace(sentenceBreakRx.Split(story, 2)[0])
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
