package domain

type Airport struct {
	Code          string  `json:"code"`
	Name          string  `json:"name,omitempty"`
	DistanceFromA float64 `json:"distance_from_a"`
	DistanceFromB float64 `json:"distance_from_b"`
}
