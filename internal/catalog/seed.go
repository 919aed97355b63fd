package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultSeed returns the built-in cap collection used when no seed file is
// configured and the catalog key is empty.
func DefaultSeed() []Product {
	sizes := []string{"S", "M", "L", "XL"}
	return []Product{
		{
			ID:            "gm-classic-black",
			Name:          "Gorra Clásica Negra",
			Description:   "Gorra plana clásica con logo bordado.",
			Price:         50000,
			OriginalPrice: 65000,
			Sizes:         sizes,
			Colors:        []string{"negro"},
			Stock:         25,
			Active:        true,
		},
		{
			ID:            "gm-urban-blue",
			Name:          "Gorra Urbana Azul",
			Description:   "Visera curva, ajuste snapback.",
			Price:         45000,
			OriginalPrice: 45000,
			Sizes:         sizes,
			Colors:        []string{"azul"},
			Stock:         18,
			Active:        true,
		},
		{
			ID:            "gm-trucker-white",
			Name:          "Gorra Trucker Blanca",
			Description:   "Malla trasera, panel frontal estampado.",
			Price:         38000,
			OriginalPrice: 52000,
			Sizes:         []string{"M", "L"},
			Colors:        []string{"blanco", "negro"},
			Stock:         32,
			Active:        true,
		},
		{
			ID:            "gm-vintage-red",
			Name:          "Gorra Vintage Roja",
			Description:   "Edición limitada lavada a la piedra.",
			Price:         60000,
			OriginalPrice: 80000,
			Sizes:         sizes,
			Colors:        []string{"rojo"},
			Stock:         7,
			Active:        true,
		},
	}
}

// LoadSeedFile reads a product list from a JSON fixture on disk.
func LoadSeedFile(path string) ([]Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decoding seed file: %w", err)
	}
	return products, nil
}
