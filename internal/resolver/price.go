package resolver

import "math"

// The shop always charges 40% of the original listed price, regardless of
// platform or product type.
const markdownRate = 0.4

// Discounted applies the markdown policy to an original price. The result
// is floored to whole pence, so 59.99 yields 23.99. Currency is unchanged.
func Discounted(price float64) float64 {
	pence := math.Floor(price*100*markdownRate + 1e-6)
	return pence / 100
}
