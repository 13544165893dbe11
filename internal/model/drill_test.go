package model

import "testing"

func TestCategoryFromDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want DrillCategory
		ok   bool
	}{
		{"Putting", CategoryPutting, true},
		{"putting", CategoryPutting, true},
		{"PUTTING", CategoryPutting, true},
		{"  Chipping  ", CategoryChipping, true},
		{"Driver", CategoryDriver, true},
		{"Irons", CategoryIrons, true},
		{"Pitching", CategoryPitching, true},
		{"Juggling", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := CategoryFromDisplayName(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CategoryFromDisplayName(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDisplayNameRoundTrip(t *testing.T) {
	for _, c := range []DrillCategory{CategoryPutting, CategoryChipping, CategoryPitching, CategoryIrons, CategoryDriver} {
		got, ok := CategoryFromDisplayName(c.DisplayName())
		if !ok || got != c {
			t.Errorf("display name of %q does not map back: got %q,%v", c, got, ok)
		}
	}
}

func TestSuccessRate(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	boolPtr := func(v bool) *bool { return &v }

	tests := []struct {
		name  string
		drill Drill
		want  float64
	}{
		{
			name:  "scored",
			drill: Drill{ScoringType: ScoringScored, MaxScore: intPtr(10), ActualScore: intPtr(8)},
			want:  0.8,
		},
		{
			name:  "scored over max clamps to one",
			drill: Drill{ScoringType: ScoringScored, MaxScore: intPtr(10), ActualScore: intPtr(12)},
			want:  1,
		},
		{
			name:  "scored negative clamps to zero",
			drill: Drill{ScoringType: ScoringScored, MaxScore: intPtr(10), ActualScore: intPtr(-2)},
			want:  0,
		},
		{
			name:  "scored zero max",
			drill: Drill{ScoringType: ScoringScored, MaxScore: intPtr(0), ActualScore: intPtr(5)},
			want:  0,
		},
		{
			name:  "scored missing actual",
			drill: Drill{ScoringType: ScoringScored, MaxScore: intPtr(10)},
			want:  0,
		},
		{
			name:  "completion done",
			drill: Drill{ScoringType: ScoringCompletion, IsCompleted: boolPtr(true)},
			want:  1,
		},
		{
			name:  "completion not done",
			drill: Drill{ScoringType: ScoringCompletion, IsCompleted: boolPtr(false)},
			want:  0,
		},
		{
			name:  "completion flag missing",
			drill: Drill{ScoringType: ScoringCompletion},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.drill.SuccessRate(); got != tt.want {
				t.Errorf("SuccessRate() = %v, want %v", got, tt.want)
			}
		})
	}
}
