package blocks

import "testing"

func TestStreakRarity(t *testing.T) {
	tests := []struct {
		length int
		want   Rarity
	}{
		{5, RarityCommon},
		{9, RarityCommon},
		{10, RarityRare},
		{15, RarityEpic},
		{19, RarityEpic},
		{20, RarityLegendary},
		{100, RarityLegendary},
	}

	for _, tt := range tests {
		got := StreakRarity(tt.length)
		if got != tt.want {
			t.Errorf("StreakRarity(%d) = %q, want %q", tt.length, got, tt.want)
		}
	}
}

func TestSessionRarity(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     Rarity
	}{
		{0.0, RarityCommon},
		{0.49, RarityCommon},
		{0.50, RarityRare},
		{0.74, RarityRare},
		{0.75, RarityEpic},
		{0.89, RarityEpic},
		{0.90, RarityLegendary},
		{1.0, RarityLegendary},
	}

	for _, tt := range tests {
		got := SessionRarity(tt.accuracy)
		if got != tt.want {
			t.Errorf("SessionRarity(%.2f) = %q, want %q", tt.accuracy, got, tt.want)
		}
	}
}

func TestDisplayNames(t *testing.T) {
	if RarityEpic.DisplayName() != "Epic" || Rarity("odd").DisplayName() != "odd" {
		t.Error("unexpected rarity display name")
	}
	for _, k := range AllKinds() {
		if k.DisplayName() == string(k) || k.Icon() == "" {
			t.Errorf("kind %q lacks a display name or icon", k)
		}
	}
	if AllKinds()[0] != KindDirt {
		t.Error("dirt should be listed first")
	}
}

func TestAllRarities_Ordered(t *testing.T) {
	rarities := AllRarities()
	if len(rarities) != 4 || rarities[0] != RarityCommon || rarities[3] != RarityLegendary {
		t.Fatalf("AllRarities = %v", rarities)
	}
	for _, r := range rarities {
		if r.DisplayName() == string(r) {
			t.Errorf("%q has no display name", r)
		}
	}
}
