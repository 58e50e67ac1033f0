/*
Package resolve maps host names to single concrete IP addresses, honoring an
optional address family preference.

	         +---+
	string-->| R +-->Address
	         +---+

The [System] resolver asks the OS resolver and picks the first address
returned for the requested family, nothing fancier. [Pool] instead talks to a
specific DNS server over a size-limited pool of DNS client connections; both
satisfy the [Resolver] interface consumed by the measurement stream and ledger
packages.

Resolution failures are always reported as [ResolveError] values, keeping them
strictly apart from any other error a measurement pipeline can produce:
failing to resolve a host is fatal to constructing its stream, and callers
usually want to report it differently from, say, a malformed output line.

# Acknowledgements

Under its hood, [Pool] leverages [gammazero/workerpool] as the limiting
goroutine pool.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package resolve
