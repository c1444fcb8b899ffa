package domain

// Masterclass is a catalog entry. The catalog is managed elsewhere; this
// service only reads it.
type Masterclass struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int32  `json:"price_cents"`
	ModuleCount int32  `json:"module_count"`
	CreatedOn   string `json:"created_on"`
}
