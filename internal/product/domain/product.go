package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidSortCriteria = errors.New("invalid sorting criteria")

type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"` // Tidak divalidasi, boleh negatif
	Dimensions string  `json:"dimensions"`
	StoreID    string  `json:"storeId"`
	Score      float64 `json:"score"`
}

// ProductRequest is the body accepted on create and update.
type ProductRequest struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Dimensions string  `json:"dimensions"`
	StoreID    string  `json:"storeId"`
}

// NewProduct builds an unsaved product; the store assigns the ID.
func NewProduct(req ProductRequest) *Product {
	return &Product{
		Name:       req.Name,
		Category:   req.Category,
		Price:      req.Price,
		Dimensions: req.Dimensions,
		StoreID:    req.StoreID,
	}
}

// Apply overwrites every client-editable field. ID and Score are kept.
func (p *Product) Apply(req ProductRequest) {
	p.Name = req.Name
	p.Category = req.Category
	p.Price = req.Price
	p.Dimensions = req.Dimensions
	p.StoreID = req.StoreID
}

type SortCriteria int

const (
	SortAscPrice SortCriteria = iota + 1
	SortDescPrice
	SortScore
)

func ParseSortCriteria(s string) (SortCriteria, error) {
	switch s {
	case "ascPrice":
		return SortAscPrice, nil
	case "descPrice":
		return SortDescPrice, nil
	case "score":
		return SortScore, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSortCriteria, s)
	}
}

func (c SortCriteria) String() string {
	switch c {
	case SortAscPrice:
		return "ascPrice"
	case SortDescPrice:
		return "descPrice"
	case SortScore:
		return "score"
	default:
		return fmt.Sprintf("SortCriteria(%d)", int(c))
	}
}

// Less reports whether a orders strictly before b. Equal keys return false so
// that a stable sort keeps the original relative order.
func (c SortCriteria) Less(a, b Product) bool {
	switch c {
	case SortAscPrice:
		return a.Price < b.Price
	case SortDescPrice:
		return a.Price > b.Price
	case SortScore:
		return a.Score < b.Score
	default:
		return false
	}
}
