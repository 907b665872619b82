package domain

import "time"

// Drug is a catalog entry. Category carries the joined category name, never
// stored on the drug row itself.
type Drug struct {
	ID                   int       `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Composition          string    `json:"composition"`
	Price                float64   `json:"price"`
	Stock                int       `json:"stock"`
	CategoryID           int       `json:"categoryId"`
	Category             string    `json:"category"`
	Manufacturer         string    `json:"manufacturer"`
	Dosage               string    `json:"dosage"`
	SideEffects          []string  `json:"sideEffects"`
	Contraindications    []string  `json:"contraindications"`
	ImageURL             string    `json:"imageUrl"`
	RequiresPrescription bool      `json:"requiresPrescription"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Count       int       `json:"count"` // drugs referencing this category, computed per query
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CartLine pairs a fully joined drug with the quantity held in the cart.
type CartLine struct {
	Drug     Drug `json:"drug"`
	Quantity int  `json:"quantity"`
}

type Cart struct {
	UserID    int        `json:"userId"`
	Items     []CartLine `json:"items"`
	ItemCount int        `json:"itemCount"`
	Subtotal  float64    `json:"subtotal"`
}
