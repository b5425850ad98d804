package transcribe

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/krasnoperov/transcribe/internal/vtt"
)

// Segment is a provider transcript span with absolute timing and an optional
// speaker label.
type Segment struct {
	Start   float64
	End     float64
	Speaker string
	Text    string
}

// Word is a single recognized token with its own timing.
type Word struct {
	Word    string
	Start   float64
	End     float64
	Speaker string
}

// word groups split when consecutive start times drift this far apart
const wordGapLimit = 5.0

// speaking rate used to estimate the end of a final stamped cue
const wordsPerSecond = 2.5

// SegmentsToCues maps provider segments directly onto cues, dropping the
// empty ones.
func SegmentsToCues(segments []Segment) []vtt.Cue {
	return lo.FilterMap(segments, func(s Segment, _ int) (vtt.Cue, bool) {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			return vtt.Cue{}, false
		}
		return vtt.Cue{
			Start:   s.Start,
			End:     s.End,
			Speaker: strings.TrimSpace(s.Speaker),
			Text:    text,
		}, true
	})
}

// WordsToCues groups word tokens into pseudo-segments. A group ends when the
// next word starts more than wordGapLimit seconds after the previous one, or
// when the speaker label changes.
func WordsToCues(words []Word) []vtt.Cue {
	var cues []vtt.Cue
	var group []Word

	flush := func() {
		if len(group) == 0 {
			return
		}
		texts := make([]string, 0, len(group))
		for _, w := range group {
			if t := strings.TrimSpace(w.Word); t != "" {
				texts = append(texts, t)
			}
		}
		if len(texts) > 0 {
			cues = append(cues, vtt.Cue{
				Start:   group[0].Start,
				End:     group[len(group)-1].End,
				Speaker: group[0].Speaker,
				Text:    strings.Join(texts, " "),
			})
		}
		group = nil
	}

	for _, w := range words {
		if len(group) > 0 {
			prev := group[len(group)-1]
			if w.Start-prev.Start > wordGapLimit || w.Speaker != prev.Speaker {
				flush()
			}
		}
		group = append(group, w)
	}
	flush()

	return cues
}

// stamped lines look like "[1:02:03] hello" or "[02:03] Alice: hello"
var (
	stampedLineRegex   = regexp.MustCompile(`^\[(\d{1,2}:\d{2}(?::\d{2})?)\]\s*(.*)$`)
	speakerPrefixRegex = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 .'_-]{0,31}):\s+(.*)$`)
)

// MarkedTextToCues recovers cues from a free-text transcript with bracketed
// timestamps. Each stamped line opens a cue whose end is the next cue's
// start; the last cue's end is estimated from its word count at a typical
// speaking rate. Unstamped lines extend the previous cue, and text before
// the first stamp becomes an implicit cue at offset zero. Recovery is
// best-effort and never fails.
func MarkedTextToCues(text string) []vtt.Cue {
	var cues []vtt.Cue

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := stampedLineRegex.FindStringSubmatch(line)
		if m == nil {
			if len(cues) == 0 {
				cues = append(cues, vtt.Cue{Text: line})
				continue
			}
			last := &cues[len(cues)-1]
			if last.Text == "" {
				last.Text = line
			} else {
				last.Text += " " + line
			}
			continue
		}

		start, _ := vtt.ParseTimestamp(m[1])
		cue := vtt.Cue{Start: start}

		rest := strings.TrimSpace(m[2])
		if sp := speakerPrefixRegex.FindStringSubmatch(rest); sp != nil {
			cue.Speaker = strings.TrimSpace(sp[1])
			rest = sp[2]
		}
		cue.Text = strings.TrimSpace(rest)

		cues = append(cues, cue)
	}

	cues = lo.Filter(cues, func(c vtt.Cue, _ int) bool {
		return c.Text != ""
	})

	for i := range cues {
		if i+1 < len(cues) {
			cues[i].End = cues[i+1].Start
			continue
		}
		words := len(strings.Fields(cues[i].Text))
		cues[i].End = cues[i].Start + float64(words)/wordsPerSecond
	}

	return cues
}
