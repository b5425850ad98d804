package vtt

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Cue is one subtitle block on the timeline: a time range in seconds, the
// spoken text collapsed to a single line, and optionally who spoke it. An
// empty Speaker means the cue carries no voice attribution.
type Cue struct {
	Start   float64
	End     float64
	Speaker string
	Text    string
}

// Fragment is a chunk-local document plus the offset that places its cues on
// the recording's global timeline.
type Fragment struct {
	Text   string
	Offset float64
}

const rangeDelimiter = "-->"

// voice tags look like "<v Alice>Hello there"
var speakerTagRegex = regexp.MustCompile(`^<v ([^>]*)>`)

// ParseDocument extracts the cue sequence from a WebVTT document. Everything
// before the first timestamp-range line is skipped, so the header, metadata
// and stray cue identifiers never get in the way. A voice tag on the first
// text line of a block becomes the cue's Speaker; multi-line cue text is
// joined into one line with single spaces. Blocks whose text ends up empty
// are dropped. A document with no timestamp-range line parses as zero cues.
func ParseDocument(doc string) ([]Cue, error) {
	var cues []Cue
	var current *Cue
	var textLines []string

	flush := func() {
		if current == nil {
			return
		}
		cue := *current
		current = nil
		lines := textLines
		textLines = nil

		if len(lines) > 0 {
			if m := speakerTagRegex.FindStringSubmatch(lines[0]); m != nil {
				cue.Speaker = m[1]
				lines[0] = strings.TrimSpace(lines[0][len(m[0]):])
			}
		}
		var parts []string
		for _, line := range lines {
			if line != "" {
				parts = append(parts, line)
			}
		}
		if len(parts) == 0 {
			return
		}
		cue.Text = strings.Join(parts, " ")
		cues = append(cues, cue)
	}

	scanner := bufio.NewScanner(strings.NewReader(doc))
	firstLine := true
	for scanner.Scan() {
		line := scanner.Text()
		if firstLine {
			line = strings.TrimPrefix(line, "﻿")
			firstLine = false
		}
		line = strings.TrimSpace(line)

		if strings.Contains(line, rangeDelimiter) {
			flush()
			startRaw, endRaw, _ := strings.Cut(line, rangeDelimiter)
			start, err := ParseTimestamp(startRaw)
			if err != nil {
				return nil, err
			}
			end, err := ParseTimestamp(endRaw)
			if err != nil {
				return nil, err
			}
			current = &Cue{Start: start, End: end}
			continue
		}

		if line == "" {
			flush()
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	flush()

	return cues, nil
}

// SerializeDocument renders cues as a WebVTT document: the header, a blank
// line, then one block per cue in exactly the order given. Cues with a
// speaker get a voice tag on the text line.
func SerializeDocument(cues []Cue) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for _, cue := range cues {
		sb.WriteString(FormatTimestamp(cue.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(cue.End))
		sb.WriteByte('\n')
		if cue.Speaker != "" {
			fmt.Fprintf(&sb, "<v %s>%s\n", cue.Speaker, cue.Text)
		} else {
			sb.WriteString(cue.Text)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Shift returns a copy of cues with offset seconds added to every range.
func Shift(cues []Cue, offset float64) []Cue {
	shifted := make([]Cue, len(cues))
	for i, cue := range cues {
		cue.Start += offset
		cue.End += offset
		shifted[i] = cue
	}
	return shifted
}

// MergeCues flattens the given cue sequences into one timeline ordered by
// start time. The sort is stable, so cues starting at the same instant keep
// their input order and re-merging already-merged output changes nothing.
func MergeCues(sequences ...[]Cue) []Cue {
	var merged []Cue
	for _, cues := range sequences {
		merged = append(merged, cues...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start < merged[j].Start
	})
	return merged
}

// MergeDocuments stitches chunk-local documents into one global document.
// Each fragment is parsed, moved onto the global timeline by its offset, and
// the combined cues are serialized in start order.
func MergeDocuments(fragments []Fragment) (string, error) {
	sequences := make([][]Cue, 0, len(fragments))
	for i, fragment := range fragments {
		cues, err := ParseDocument(fragment.Text)
		if err != nil {
			return "", fmt.Errorf("failed to parse fragment %d: %w", i, err)
		}
		sequences = append(sequences, Shift(cues, fragment.Offset))
	}
	return SerializeDocument(MergeCues(sequences...)), nil
}
