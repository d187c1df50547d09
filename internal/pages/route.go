package pages

import (
	"strconv"
	"strings"
)

var (
	OrderPrefixes   = []string{"/orders/", "/order-detail/"}
	PaymentPrefixes = []string{"/payment/", "/payment-someone/"}
	ProductPrefixes = []string{"/product/"}
)

// IDFromPath strips the first matching prefix and the trailing slash from
// path and parses the rest as an integer. It returns nil when no prefix
// matches or the remainder is empty or not a number.
func IDFromPath(path string, prefixes ...string) *int {
	for _, prefix := range prefixes {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		rest := strings.TrimSuffix(strings.TrimPrefix(path, prefix), "/")
		if rest == "" {
			return nil
		}
		id, err := strconv.Atoi(rest)
		if err != nil {
			return nil
		}
		return &id
	}
	return nil
}
