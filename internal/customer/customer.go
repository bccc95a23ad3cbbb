// Package customer classifies customers by account naming convention.
package customer

import "strings"

// Premium accounts are provisioned with a VIP-prefixed customer name.
const premiumPrefix = "VIP"

// IsPremium reports whether the named customer holds a premium account.
func IsPremium(name string) bool {
	return strings.HasPrefix(name, premiumPrefix)
}
