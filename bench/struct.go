package bench

type Struct3 struct {
	Name   string   `json:"name"`
	Number int      `json:"number"`
	Tags   []string `json:"tags"`
}

// Catalog is the shape of the documents Generate produces.
type Catalog struct {
	Count int       `json:"count"`
	Items []Struct3 `json:"items"`
}
