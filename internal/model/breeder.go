package model

type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Breeder struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Rating      float64           `json:"rating"`
	Reviews     int               `json:"reviews"`
	Location    Location          `json:"location"`
	Species     []string          `json:"species"`
	Contact     map[string]string `json:"contact,omitempty"`
	ReviewsList []Review          `json:"reviews_list,omitempty"`
}

// BreederQuery filters the breeder directory
type BreederQuery struct {
	Lat     *float64
	Lon     *float64
	Species string
}
