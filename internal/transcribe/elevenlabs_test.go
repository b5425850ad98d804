package transcribe

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestScribeCues(t *testing.T) {
	payload := `{
		"language_code": "en",
		"text": "Hello there. General Kenobi.",
		"words": [
			{"text": "Hello", "start": 0.1, "end": 0.4, "type": "word", "speaker_id": "speaker_0"},
			{"text": " ", "start": 0.4, "end": 0.5, "type": "spacing", "speaker_id": "speaker_0"},
			{"text": "there.", "start": 0.5, "end": 0.9, "type": "word", "speaker_id": "speaker_0"},
			{"text": "General", "start": 1.2, "end": 1.6, "type": "word", "speaker_id": "speaker_1"},
			{"text": "Kenobi.", "start": 1.7, "end": 2.2, "type": "word", "speaker_id": "speaker_1"}
		]
	}`

	var resp scribeResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("failed to decode sample payload: %v", err)
	}

	cues := scribeCues(resp)

	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2: %+v", len(cues), cues)
	}
	if cues[0].Speaker != "speaker_0" || cues[0].Text != "Hello there." {
		t.Errorf("cue 0 = %+v", cues[0])
	}
	if cues[0].Start != 0.1 || cues[0].End != 0.9 {
		t.Errorf("cue 0 range = %v-%v, want 0.1-0.9", cues[0].Start, cues[0].End)
	}
	if cues[1].Speaker != "speaker_1" || cues[1].Text != "General Kenobi." {
		t.Errorf("cue 1 = %+v", cues[1])
	}
}

func TestScribeCuesNoWords(t *testing.T) {
	if cues := scribeCues(scribeResponse{Text: "only text"}); len(cues) != 0 {
		t.Errorf("got %d cues without word timings", len(cues))
	}
}

func TestScribeCuesLongPause(t *testing.T) {
	resp := scribeResponse{
		Words: []scribeWord{
			{Text: "before", Start: 0, End: 0.5, Type: "word", SpeakerID: "speaker_0"},
			{Text: "after", Start: 20, End: 20.5, Type: "word", SpeakerID: "speaker_0"},
		},
	}

	cues := scribeCues(resp)

	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2: %+v", len(cues), cues)
	}
	if cues[0].End != 0.5 || cues[1].Start != 20 {
		t.Errorf("pause should split cues: %+v", cues)
	}
}

func TestElevenLabsErrorMessage(t *testing.T) {
	err := &elevenLabsError{status: 422, body: `{"detail": "bad audio"}`}
	msg := err.Error()
	if msg == "" {
		t.Fatal("empty error message")
	}
	for _, want := range []string{"422", "bad audio"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q should mention %q", msg, want)
		}
	}
}
