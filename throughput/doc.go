/*
Package throughput implements a bulk file-transfer throughput probe: it
downloads a payload over HTTP(S) and samples the download speed once per
512 KiB chunk, alongside the time taken to establish the connection.

	       +---+
	URL -->| T +--> Result{ConnectTime, Speeds}
	       +---+

This is the second, independent measurement tool next to the ping pipeline.
It shares no machinery with it on purpose: latency and bulk throughput stress
entirely different parts of a network path, and a probe download would skew
any concurrently running latency measurement anyway. Run them one after the
other.
*/
package throughput
