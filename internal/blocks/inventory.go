package blocks

// Inventory counts blocks by kind. Every kind is present, dirt included,
// even at zero.
type Inventory map[Kind]int

// NewInventory builds an inventory from stored per-kind counts. Unknown
// kinds are kept so nothing the store holds is hidden.
func NewInventory(counts map[string]int) Inventory {
	inv := make(Inventory, len(AllKinds()))
	for _, k := range AllKinds() {
		inv[k] = 0
	}
	for k, n := range counts {
		inv[Kind(k)] += n
	}
	return inv
}

// Add counts the given awards.
func (inv Inventory) Add(awards ...Award) {
	for _, a := range awards {
		inv[a.Kind]++
	}
}

// Total returns the number of blocks across all kinds.
func (inv Inventory) Total() int {
	total := 0
	for _, n := range inv {
		total += n
	}
	return total
}
