package engine

import "testing"

func TestComputeRewards(t *testing.T) {
	cases := []struct {
		name       string
		won        bool
		level      int
		damage     int
		wantPoints int
		wantExp    int
	}{
		{"loss pays consolation", false, 5, 900, 10, 5},
		{"win with small damage keeps factor 1", true, 5, 80, 100, 55},
		{"win scales with damage factor", true, 5, 250, 200, 110},
		{"level raises the base", true, 10, 80, 150, 80},
	}
	for _, tc := range cases {
		got := ComputeRewards(tc.won, tc.level, tc.damage)
		if got.Points != tc.wantPoints || got.Experience != tc.wantExp {
			t.Errorf("%s: expected %d/%d, got %d/%d", tc.name, tc.wantPoints, tc.wantExp, got.Points, got.Experience)
		}
	}
}

func TestApplyExperience_RollsOverMultipleLevels(t *testing.T) {
	// Level 1 needs 100, level 2 needs 200: 350 earned from zero must land
	// at level 3 with 50 left over.
	level, exp := ApplyExperience(1, 0, 350)
	if level != 3 || exp != 50 {
		t.Fatalf("expected level 3 with 50 exp, got level %d with %d", level, exp)
	}
}

func TestApplyExperience_NoLevelBelowThreshold(t *testing.T) {
	level, exp := ApplyExperience(4, 100, 50)
	if level != 4 || exp != 150 {
		t.Fatalf("expected level 4 with 150 exp, got level %d with %d", level, exp)
	}
}
