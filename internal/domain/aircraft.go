package domain

type Aircraft struct {
	TypeCode            string  `json:"type_code"`
	CostPerSeatPer100km float64 `json:"cost_per_seat_per_100km"`
	MaxRange            float64 `json:"max_range"`
	TotalSeats          int     `json:"total_seats"`
	EconomySeats        int     `json:"economy_seats"`
	BusinessSeats       int     `json:"business_seats"`
	FirstClassSeats     int     `json:"first_class_seats"`
}

// ClassCapacity is the sum of the per-class capacities. It is expected, but
// not guaranteed by the source data, to be at most TotalSeats.
func (a Aircraft) ClassCapacity() int {
	return a.EconomySeats + a.BusinessSeats + a.FirstClassSeats
}

func (a Aircraft) Capacity(class SeatClass) int {
	switch class {
	case SeatClassEconomy:
		return a.EconomySeats
	case SeatClassBusiness:
		return a.BusinessSeats
	case SeatClassFirst:
		return a.FirstClassSeats
	default:
		return 0
	}
}
