/*
Package probe owns the external echo utility processes that actually put ICMP
packets on the wire. This design deliberately shells out to the OS ping
utility instead of opening raw ICMP sockets: ping is usually installed setuid
root (or with the matching capability), so the measuring process itself can
stay unprivileged.

	          +---+
	Target -->| P +-->lines ([]byte)
	          +---+

A [Probe] is launched from an immutable [Target] describing the resolved
address and the fixed invocation options. It then surfaces the process
standard output as a blocking line source with a non-blocking
buffered-line-count lookahead, which is exactly the primitive the stream
package's latest-only policy needs. [Probe.Terminate] kills the process and is
idempotent; terminating an already-exited process is an expected path and
never fails.

On platforms without a compatible ping argument convention (Windows, for one)
launching fails early with [ErrUnsupportedPlatform].
*/
package probe
