package domain

// Product is a catalog item addressed by its external ID.
type Product struct {
	ID    string
	Title string
	Price float64
}

// ProductPatch carries the fields supplied by a create or partial update.
// Nil fields are left untouched.
type ProductPatch struct {
	Title *string
	Price *float64
}

// Empty reports whether no field is set.
func (p ProductPatch) Empty() bool {
	return p.Title == nil && p.Price == nil
}

// Fields returns the names of the set fields.
func (p ProductPatch) Fields() []string {
	fields := make([]string, 0, 2)
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Price != nil {
		fields = append(fields, "price")
	}
	return fields
}

// Apply merges the patch into the product.
func (p ProductPatch) Apply(product *Product) {
	if p.Title != nil {
		product.Title = *p.Title
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
}
