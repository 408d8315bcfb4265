package table

import (
	"slices"
	"testing"
)

func TestGenerateModes_Uniform(t *testing.T) {
	modes, err := GenerateModes(ModePattern{Kind: ModePatternUniform, Mode: ModeHostOnly}, 10)
	if err != nil {
		t.Fatalf("GenerateModes() error = %v", err)
	}
	if len(modes) != 10 {
		t.Fatalf("len(modes) = %d, want 10", len(modes))
	}
	for i, m := range modes {
		if m != ModeHostOnly {
			t.Errorf("modes[%d] = %v, want %v", i, m, ModeHostOnly)
		}
	}
}

func TestGenerateModes_ZeroValueIsDefault(t *testing.T) {
	modes, err := GenerateModes(ModePattern{}, 4)
	if err != nil {
		t.Fatalf("GenerateModes() error = %v", err)
	}
	for i, m := range modes {
		if m != ModeDefault {
			t.Errorf("modes[%d] = %v, want %v", i, m, ModeDefault)
		}
	}
}

func TestGenerateModes_Alternating(t *testing.T) {
	modes, err := GenerateModes(ModePattern{
		Kind:  ModePatternAlternating,
		ModeA: ModeHostOnly,
		ModeB: ModeExternalOnly,
	}, 5)
	if err != nil {
		t.Fatalf("GenerateModes() error = %v", err)
	}
	want := []Mode{ModeHostOnly, ModeExternalOnly, ModeHostOnly, ModeExternalOnly, ModeHostOnly}
	if !slices.Equal(modes, want) {
		t.Errorf("GenerateModes() = %v, want %v", modes, want)
	}
}

func TestGenerateModes_Repeating(t *testing.T) {
	modes, err := GenerateModes(ModePattern{
		Kind:     ModePatternRepeating,
		Sequence: []Mode{ModeHostOnly, ModeHostOnly, ModeDefault},
	}, 7)
	if err != nil {
		t.Fatalf("GenerateModes() error = %v", err)
	}
	want := []Mode{ModeHostOnly, ModeHostOnly, ModeDefault, ModeHostOnly, ModeHostOnly, ModeDefault, ModeHostOnly}
	if !slices.Equal(modes, want) {
		t.Errorf("GenerateModes() = %v, want %v", modes, want)
	}
}

func TestGenerateModes_RatioExactSplit(t *testing.T) {
	modes, err := GenerateModes(ModePattern{
		Kind: ModePatternRatio,
		Ratios: []ModeRatio{
			{Mode: ModeHostOnly, Ratio: 0.5},
			{Mode: ModeExternalOnly, Ratio: 0.5},
		},
	}, 10)
	if err != nil {
		t.Fatalf("GenerateModes() error = %v", err)
	}
	counts := map[Mode]int{}
	for _, m := range modes {
		counts[m]++
	}
	if counts[ModeHostOnly] != 5 || counts[ModeExternalOnly] != 5 {
		t.Errorf("mode counts = %v, want 5 host and 5 external", counts)
	}
	// The greedy fill interleaves rather than producing blocks.
	if modes[0] == modes[1] && modes[1] == modes[2] {
		t.Errorf("GenerateModes() = %v, want interleaved distribution", modes)
	}
}

func TestGenerateModes_RatioRemainderIsDefault(t *testing.T) {
	modes, err := GenerateModes(ModePattern{
		Kind: ModePatternRatio,
		Ratios: []ModeRatio{
			{Mode: ModeHostOnly, Ratio: 0.25},
		},
	}, 8)
	if err != nil {
		t.Fatalf("GenerateModes() error = %v", err)
	}
	counts := map[Mode]int{}
	for _, m := range modes {
		counts[m]++
	}
	if counts[ModeHostOnly] != 2 || counts[ModeDefault] != 6 {
		t.Errorf("mode counts = %v, want 2 host and 6 default", counts)
	}
}

func TestGenerateModes_RatioRoundingOvershoot(t *testing.T) {
	// Two 0.5 ratios over 5 seats round to 3+3; the later declaration is
	// trimmed so the table still seats exactly 5.
	modes, err := GenerateModes(ModePattern{
		Kind: ModePatternRatio,
		Ratios: []ModeRatio{
			{Mode: ModeHostOnly, Ratio: 0.5},
			{Mode: ModeExternalOnly, Ratio: 0.5},
		},
	}, 5)
	if err != nil {
		t.Fatalf("GenerateModes() error = %v", err)
	}
	counts := map[Mode]int{}
	for _, m := range modes {
		counts[m]++
	}
	if counts[ModeHostOnly] != 3 || counts[ModeExternalOnly] != 2 {
		t.Errorf("mode counts = %v, want 3 host and 2 external", counts)
	}
}

func TestGenerateModes_Specific(t *testing.T) {
	modes, err := GenerateModes(ModePattern{
		Kind:      ModePatternSpecific,
		Overrides: map[int]Mode{0: ModeHostOnly, 3: ModeExternalOnly},
	}, 4)
	if err != nil {
		t.Fatalf("GenerateModes() error = %v", err)
	}
	want := []Mode{ModeHostOnly, ModeDefault, ModeDefault, ModeExternalOnly}
	if !slices.Equal(modes, want) {
		t.Errorf("GenerateModes() = %v, want %v", modes, want)
	}
}

func TestGenerateModes_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern ModePattern
		count   int
	}{
		{"zero count", ModePattern{}, 0},
		{"empty sequence", ModePattern{Kind: ModePatternRepeating}, 4},
		{"ratio above one", ModePattern{Kind: ModePatternRatio, Ratios: []ModeRatio{{Mode: ModeHostOnly, Ratio: 1.5}}}, 4},
		{"ratios exceed one", ModePattern{Kind: ModePatternRatio, Ratios: []ModeRatio{
			{Mode: ModeHostOnly, Ratio: 0.8}, {Mode: ModeExternalOnly, Ratio: 0.8},
		}}, 4},
		{"override out of range", ModePattern{Kind: ModePatternSpecific, Overrides: map[int]Mode{9: ModeHostOnly}}, 4},
		{"unknown kind", ModePattern{Kind: "striped"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateModes(tt.pattern, tt.count); err == nil {
				t.Error("GenerateModes() error = nil, want error")
			}
		})
	}
}

func TestRescaleModes(t *testing.T) {
	src := []Mode{ModeHostOnly, ModeHostOnly, ModeDefault, ModeDefault, ModeExternalOnly, ModeExternalOnly}

	tests := []struct {
		name     string
		newCount int
		want     []Mode
	}{
		{"same size", 6, src},
		{"shrink", 3, []Mode{ModeHostOnly, ModeDefault, ModeExternalOnly}},
		{"single seat", 1, []Mode{ModeHostOnly}},
		{"grow", 11, []Mode{
			ModeHostOnly, ModeHostOnly, ModeHostOnly,
			ModeDefault, ModeDefault, ModeDefault, ModeDefault,
			ModeExternalOnly, ModeExternalOnly, ModeExternalOnly, ModeExternalOnly,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RescaleModes(src, tt.newCount)
			if !slices.Equal(got, tt.want) {
				t.Errorf("RescaleModes(%d) = %v, want %v", tt.newCount, got, tt.want)
			}
		})
	}
}

func TestRescaleModes_EmptySource(t *testing.T) {
	got := RescaleModes(nil, 3)
	want := []Mode{ModeDefault, ModeDefault, ModeDefault}
	if !slices.Equal(got, want) {
		t.Errorf("RescaleModes(nil, 3) = %v, want %v", got, want)
	}
}

func TestModeAccepts(t *testing.T) {
	tests := []struct {
		mode     Mode
		fromHost bool
		want     bool
	}{
		{ModeDefault, true, true},
		{ModeDefault, false, true},
		{ModeHostOnly, true, true},
		{ModeHostOnly, false, false},
		{ModeExternalOnly, true, false},
		{ModeExternalOnly, false, true},
	}
	for _, tt := range tests {
		if got := tt.mode.Accepts(tt.fromHost); got != tt.want {
			t.Errorf("%v.Accepts(%v) = %v, want %v", tt.mode, tt.fromHost, got, tt.want)
		}
	}
}
