// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Family expresses an IP address family preference when resolving a host name
// into a concrete address to measure.
type Family int

// The address family preferences for host resolution.
const (
	FamilyAny Family = iota // first address of whatever family the resolver returns.
	FamilyV4                // force an IPv4 address.
	FamilyV6                // force an IPv6 address.
)

// String returns the clear-text representation of a Family value.
func (f Family) String() string {
	switch f {
	case FamilyAny:
		return "any"
	case FamilyV4:
		return "IPv4"
	case FamilyV6:
		return "IPv6"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}
