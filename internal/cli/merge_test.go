package cli

import "testing"

func TestParseOffsets(t *testing.T) {
	tests := []struct {
		name       string
		offsetsStr string
		count      int
		want       []float64
		wantErr    bool
	}{
		{
			name:       "empty means zero offsets",
			offsetsStr: "",
			count:      3,
			want:       []float64{0, 0, 0},
		},
		{
			name:       "plain seconds",
			offsetsStr: "0,1200",
			count:      2,
			want:       []float64{0, 1200},
		},
		{
			name:       "timestamp forms",
			offsetsStr: "0,20:00,1:00:00",
			count:      3,
			want:       []float64{0, 1200, 3600},
		},
		{
			name:       "fractional seconds",
			offsetsStr: "10.5,0:30.25",
			count:      2,
			want:       []float64{10.5, 30.25},
		},
		{
			name:       "count mismatch",
			offsetsStr: "0,600",
			count:      3,
			wantErr:    true,
		},
		{
			name:       "unparseable offset",
			offsetsStr: "0,later",
			count:      2,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOffsets(tt.offsetsStr, tt.count)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d offsets, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("offset %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
