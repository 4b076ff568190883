package domain

// Product represents a digital book in the catalog. The catalog is supplied
// whole at startup and is read-only; nothing in the service mutates a Product.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	CoverImage  string  `json:"coverImage"`
	Format      string  `json:"format"`
	Rating      float64 `json:"rating"`
	Pages       int     `json:"pages"`
	Language    string  `json:"language"`
	ReleaseDate string  `json:"releaseDate"`
}

// EffectivePrice returns the unit price after applying the discount fraction.
func (p Product) EffectivePrice() float64 {
	return p.Price * (1 - p.Discount)
}
