package shop

// Cosmetic is a purchasable avatar decoration. Visuals live in the view
// layer; the engine only tracks prices and ownership.
type Cosmetic struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

var catalog = []Cosmetic{
	{ID: 1, Name: "Neural Crown", Price: 150},
	{ID: 2, Name: "Holographic Aura", Price: 100},
	{ID: 3, Name: "Quantum Visor", Price: 120},
	{ID: 4, Name: "Energy Shield", Price: 80},
	{ID: 5, Name: "Synth Cape", Price: 60},
	{ID: 6, Name: "Neon Trail", Price: 50},
}

// freeCosmeticIDs are available to every tier without purchase.
var freeCosmeticIDs = []int{5, 6}

func Catalog() []Cosmetic {
	out := make([]Cosmetic, len(catalog))
	copy(out, catalog)
	return out
}

func AllCosmeticIDs() []int {
	ids := make([]int, 0, len(catalog))
	for _, c := range catalog {
		ids = append(ids, c.ID)
	}
	return ids
}

func findCosmetic(id int) *Cosmetic {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

func isFreeCosmetic(id int) bool {
	for _, free := range freeCosmeticIDs {
		if free == id {
			return true
		}
	}
	return false
}
