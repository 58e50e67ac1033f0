// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolve

import (
	"context"
	"fmt"
	"net"

	"github.com/siemens/pingmon/types"
)

// Address is a single concrete IP address a host name resolved into, together
// with its address family.
type Address struct {
	IP   string // textual IP address representation
	IPv6 bool
}

// Resolver maps a host name (or IP address literal) plus an address family
// preference to exactly one concrete address. Implementations report
// resolution failures as [ResolveError] values so that callers can tell them
// apart from any other error.
type Resolver interface {
	Resolve(ctx context.Context, host string, family types.Family) (Address, error)
}

// ResolveError reports that a host could not be resolved at all, or that no
// address of the requested family exists for it.
type ResolveError struct {
	Host   string
	Family types.Family
	Err    error // underlying resolver error, if any
}

// Error returns the clear-text representation of a ResolveError.
func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot resolve %q (%s): %s", e.Host, e.Family, e.Err.Error())
	}
	return fmt.Sprintf("cannot resolve %q: no %s address", e.Host, e.Family)
}

// Unwrap returns the underlying resolver error, if any.
func (e *ResolveError) Unwrap() error { return e.Err }

// System returns a Resolver backed by the system ("libc-like") resolver. The
// chosen address is the first one the system resolver returns for the given
// family filter, without any further ranking.
func System() Resolver { return systemResolver{} }

type systemResolver struct{}

// Resolve implements the [Resolver] interface using [net.DefaultResolver].
func (systemResolver) Resolve(ctx context.Context, host string, family types.Family) (Address, error) {
	network := "ip"
	switch family {
	case types.FamilyV4:
		network = "ip4"
	case types.FamilyV6:
		network = "ip6"
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, network, host)
	if err != nil {
		return Address{}, &ResolveError{Host: host, Family: family, Err: err}
	}
	if len(ips) == 0 {
		return Address{}, &ResolveError{Host: host, Family: family}
	}
	return Address{
		IP:   ips[0].String(),
		IPv6: ips[0].To4() == nil,
	}, nil
}
