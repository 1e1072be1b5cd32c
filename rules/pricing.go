package rules

// Total discount tiers. Amounts in [DiscountMinAmount, DiscountUpperAmount]
// earn DiscountLowRate; amounts above DiscountUpperAmount earn DiscountHighRate.
const (
	DiscountMinAmount   = 100.0
	DiscountUpperAmount = 500.0
	DiscountLowRate     = 0.10
	DiscountHighRate    = 0.20
)

// TotalDiscount returns the discount earned by an order amount.
func TotalDiscount(amount float64) float64 {
	switch {
	case amount < DiscountMinAmount:
		return 0
	case amount <= DiscountUpperAmount:
		return amount * DiscountLowRate
	}
	return amount * DiscountHighRate
}

// Quantity tier upper bounds, inclusive. Quantities above
// MidQuantityMax fall in the top tier.
const (
	SmallQuantityMax = 5
	MidQuantityMax   = 10
)

// Quantity discount labels.
const (
	NoDiscount     = "No Discount"
	FivePercentOff = "5% Discount"
	TenPercentOff  = "10% Discount"
)

type quantityTier struct {
	label string
	rate  float64
}

var (
	tierSmall = quantityTier{label: NoDiscount, rate: 0}
	tierMid   = quantityTier{label: FivePercentOff, rate: 0.05}
	tierLarge = quantityTier{label: TenPercentOff, rate: 0.10}
)

// tierFor places a line quantity in its discount tier. Non-positive
// quantities land in the small tier.
func tierFor(quantity int) quantityTier {
	switch {
	case quantity <= SmallQuantityMax:
		return tierSmall
	case quantity <= MidQuantityMax:
		return tierMid
	}
	return tierLarge
}

// QuantityDiscount names the discount a line quantity qualifies for.
func QuantityDiscount(quantity int) string {
	return tierFor(quantity).label
}

// OrderItem is one order line.
type OrderItem struct {
	Quantity int     `json:"quantity" yaml:"quantity"`
	Price    float64 `json:"price" yaml:"price"`
}

// OrderTotal sums price × quantity over items, applying each line's
// quantity discount. An empty order totals 0.
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity) * (1 - tierFor(it.Quantity).rate)
	}
	return total
}

// Product category bands, inclusive.
const (
	CategoryAMin = 10
	CategoryAMax = 50
	CategoryBMin = 51
	CategoryBMax = 100
	CategoryCMin = 101
	CategoryCMax = 200
)

// Product category labels.
const (
	CategoryA = "Category A"
	CategoryB = "Category B"
	CategoryC = "Category C"
	CategoryD = "Category D"
)

// CategorizeProduct places a price in a category. Prices below CategoryAMin
// and above CategoryCMax are both Category D.
func CategorizeProduct(price int) string {
	switch {
	case price >= CategoryAMin && price <= CategoryAMax:
		return CategoryA
	case price >= CategoryBMin && price <= CategoryBMax:
		return CategoryB
	case price >= CategoryCMin && price <= CategoryCMax:
		return CategoryC
	}
	return CategoryD
}
