package blocks

// Kind is the material of a structure block.
type Kind string

const (
	KindDirt  Kind = "dirt"
	KindWood  Kind = "wood"
	KindStone Kind = "stone"
	KindGlass Kind = "glass"
	KindGold  Kind = "gold"
)

// AllKinds returns every kind in display order.
func AllKinds() []Kind {
	return []Kind{KindDirt, KindWood, KindStone, KindGlass, KindGold}
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindDirt:
		return "Dirt"
	case KindWood:
		return "Wood"
	case KindStone:
		return "Stone"
	case KindGlass:
		return "Glass"
	case KindGold:
		return "Gold"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindDirt:
		return "🟫"
	case KindWood:
		return "🪵"
	case KindStone:
		return "🪨"
	case KindGlass:
		return "🧊"
	case KindGold:
		return "🟨"
	default:
		return "▪"
	}
}
