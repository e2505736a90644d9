package category

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Condition is new (1) or used (2) in the stock catalog.
type Condition struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
