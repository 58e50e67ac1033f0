/*
Package ledger aggregates measurement streams for a whole set of hosts: an
ordered, addressable collection of live streams together with their
accumulated round-trip histories and running statistics.

	             +---+
	[]string --> | L +--> Next/NextAll() Sample(s)
	             +---+--> Fastest/Slowest/Mean()

Entries keep their construction order and are addressable by zero-based index
or by the host string they were created from (first match). [Ledger.NextAll]
advances every entry by one sample, strictly in entry order; this is
round-robin sampling and not simultaneous cross-host polling, a deliberate
limitation. Removing an entry stops its stream first and then shifts all
subsequent indices down by one.

Histories record only responsive round-trip times: an unreachable observation
must not corrupt a latency distribution with some sentinel value, so it is
simply not recorded. The flip side is that loss rates are not tracked here at
all; a consumer wanting loss reporting has to count unreachable samples from
[Ledger.Next] itself.

[Ledger.StopAll] tears down every probe process and tolerates
already-stopped entries, making it safe to call both on orderly shutdown and
from a signal handler.
*/
package ledger
