package dto

import "github.com/shopline/catalog-service/internal/domain"

// ProductView is the external representation of a product.
type ProductView struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// NewProductView projects a product.
func NewProductView(p *domain.Product) ProductView {
	return ProductView{
		ID:    p.ID,
		Title: p.Title,
		Price: p.Price,
	}
}

// NewProductViews projects a list, never returning nil.
func NewProductViews(products []domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, NewProductView(&products[i]))
	}
	return views
}
