package transcribe

import (
	"math"
	"testing"

	"github.com/krasnoperov/transcribe/internal/vtt"
)

func TestSegmentsToCues(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1.5, Speaker: " Alice ", Text: "  Hello world.  "},
		{Start: 1.5, End: 2, Text: "   "},
		{Start: 2, End: 3, Text: "Goodbye."},
	}

	cues := SegmentsToCues(segments)

	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2", len(cues))
	}
	want := vtt.Cue{Start: 0, End: 1.5, Speaker: "Alice", Text: "Hello world."}
	if cues[0] != want {
		t.Errorf("cue 0 = %+v, want %+v", cues[0], want)
	}
	if cues[1].Text != "Goodbye." || cues[1].Speaker != "" {
		t.Errorf("cue 1 = %+v", cues[1])
	}
}

func TestSegmentsToCuesEmpty(t *testing.T) {
	if cues := SegmentsToCues(nil); len(cues) != 0 {
		t.Errorf("got %d cues from nothing", len(cues))
	}
}

func TestWordsToCues(t *testing.T) {
	tests := []struct {
		name  string
		words []Word
		want  []vtt.Cue
	}{
		{
			name: "close words form one cue",
			words: []Word{
				{Word: "Hello", Start: 0, End: 0.4},
				{Word: "world", Start: 0.5, End: 0.9},
				{Word: "today", Start: 1.0, End: 1.4},
			},
			want: []vtt.Cue{
				{Start: 0, End: 1.4, Text: "Hello world today"},
			},
		},
		{
			name: "gap over the limit splits",
			words: []Word{
				{Word: "before", Start: 0, End: 0.5},
				{Word: "after", Start: 5.5, End: 6.0},
			},
			want: []vtt.Cue{
				{Start: 0, End: 0.5, Text: "before"},
				{Start: 5.5, End: 6.0, Text: "after"},
			},
		},
		{
			name: "gap exactly at the limit stays together",
			words: []Word{
				{Word: "first", Start: 0, End: 0.5},
				{Word: "second", Start: 5.0, End: 5.5},
			},
			want: []vtt.Cue{
				{Start: 0, End: 5.5, Text: "first second"},
			},
		},
		{
			name: "speaker change splits",
			words: []Word{
				{Word: "hi", Start: 0, End: 0.3, Speaker: "speaker_0"},
				{Word: "there", Start: 0.4, End: 0.7, Speaker: "speaker_0"},
				{Word: "hello", Start: 0.8, End: 1.1, Speaker: "speaker_1"},
			},
			want: []vtt.Cue{
				{Start: 0, End: 0.7, Speaker: "speaker_0", Text: "hi there"},
				{Start: 0.8, End: 1.1, Speaker: "speaker_1", Text: "hello"},
			},
		},
		{
			name: "blank tokens dropped from text",
			words: []Word{
				{Word: "kept", Start: 0, End: 0.4},
				{Word: "  ", Start: 0.5, End: 0.6},
				{Word: "also", Start: 0.7, End: 1.0},
			},
			want: []vtt.Cue{
				{Start: 0, End: 1.0, Text: "kept also"},
			},
		},
		{
			name:  "no words no cues",
			words: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WordsToCues(tt.words)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d cues, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("cue %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMarkedTextToCues(t *testing.T) {
	text := "[00:00:05] Alice: Hello everyone\n" +
		"[00:12] Bob: Quick reply\n" +
		"[1:02:03] Deep into the recording\n"

	cues := MarkedTextToCues(text)

	if len(cues) != 3 {
		t.Fatalf("got %d cues, want 3: %+v", len(cues), cues)
	}

	if cues[0].Start != 5 || cues[0].Speaker != "Alice" || cues[0].Text != "Hello everyone" {
		t.Errorf("cue 0 = %+v", cues[0])
	}
	if cues[1].Start != 12 || cues[1].Speaker != "Bob" {
		t.Errorf("cue 1 = %+v", cues[1])
	}
	if cues[2].Start != 3723 || cues[2].Speaker != "" {
		t.Errorf("cue 2 = %+v", cues[2])
	}

	// Ends chain to the next cue's start.
	if cues[0].End != 12 {
		t.Errorf("cue 0 end = %v, want 12", cues[0].End)
	}
	if cues[1].End != 3723 {
		t.Errorf("cue 1 end = %v, want 3723", cues[1].End)
	}

	// The final end is estimated from the word count at the speaking rate.
	wantEnd := 3723 + 4/wordsPerSecond
	if math.Abs(cues[2].End-wantEnd) > 1e-6 {
		t.Errorf("cue 2 end = %v, want %v", cues[2].End, wantEnd)
	}
}

func TestMarkedTextContinuationLines(t *testing.T) {
	text := "[00:10] Alice: Starts here\n" +
		"and keeps going\n" +
		"on another line\n" +
		"[00:20] Bob: Next one\n"

	cues := MarkedTextToCues(text)

	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2: %+v", len(cues), cues)
	}
	if cues[0].Text != "Starts here and keeps going on another line" {
		t.Errorf("cue 0 text = %q", cues[0].Text)
	}
	if cues[0].End != 20 {
		t.Errorf("cue 0 end = %v, want 20", cues[0].End)
	}
}

func TestMarkedTextImplicitLeadingCue(t *testing.T) {
	text := "spoken before any stamp\n[00:10] Alice: First stamped cue\n"

	cues := MarkedTextToCues(text)

	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2: %+v", len(cues), cues)
	}
	if cues[0].Start != 0 || cues[0].End != 10 {
		t.Errorf("implicit cue = %+v, want range 0-10", cues[0])
	}
	if cues[0].Text != "spoken before any stamp" {
		t.Errorf("implicit cue text = %q", cues[0].Text)
	}
}

func TestMarkedTextUnstructured(t *testing.T) {
	// No stamps at all: everything collapses into one zero-offset cue.
	cues := MarkedTextToCues("just plain prose\nacross two lines\n")

	if len(cues) != 1 {
		t.Fatalf("got %d cues, want 1: %+v", len(cues), cues)
	}
	if cues[0].Start != 0 {
		t.Errorf("start = %v, want 0", cues[0].Start)
	}
	if cues[0].Text != "just plain prose across two lines" {
		t.Errorf("text = %q", cues[0].Text)
	}
}

func TestMarkedTextEmptyStampedLinesDropped(t *testing.T) {
	text := "[00:05]\n[00:10] Only this one has text\n"

	cues := MarkedTextToCues(text)

	if len(cues) != 1 {
		t.Fatalf("got %d cues, want 1: %+v", len(cues), cues)
	}
	if cues[0].Start != 10 {
		t.Errorf("start = %v, want 10", cues[0].Start)
	}
}

func TestMarkedTextEmptyInput(t *testing.T) {
	if cues := MarkedTextToCues(""); len(cues) != 0 {
		t.Errorf("got %d cues from empty input", len(cues))
	}
	if cues := MarkedTextToCues("  \n\n  "); len(cues) != 0 {
		t.Errorf("got %d cues from blank input", len(cues))
	}
}
