/*
Package types defines pingmon's information model. Which is rather simple and
mainly revolves around [Sample], a single parsed round-trip observation, and
[Family], an IP address family preference.

A [Sample] either carries a round-trip time in milliseconds or records that the
target was unreachable for that particular sequence number. Unreachable
observations deliberately do not enter latency statistics: an unreachable host
must not corrupt its latency distribution with a sentinel value. The loss
itself is not tracked here; a higher layer wanting loss rates has to count
unresponsive samples itself.
*/
package types
