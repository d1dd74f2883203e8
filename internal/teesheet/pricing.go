package teesheet

// PriceRange is the per-player price window quoted for a slot.
type PriceRange struct {
	Min float64
	Max float64
}

// PricingFunc prices a slot from its course, tee time and current occupancy.
type PricingFunc func(cfg CourseConfig, teeTime Clock, currentPlayers int) PriceRange

// ConstantPricing quotes the course's base and max price for every slot.
func ConstantPricing(cfg CourseConfig, _ Clock, _ int) PriceRange {
	return PriceRange{Min: cfg.BasePrice, Max: cfg.MaxPrice}
}
