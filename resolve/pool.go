// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolve

import (
	"context"
	"fmt"
	"sync"

	"github.com/siemens/pingmon/types"

	"github.com/gammazero/workerpool"
	"github.com/miekg/dns"
)

// Pool is a (size-limited) pool of DNS client connections talking with the
// same DNS resolver address. It implements [Resolver], so a ledger that should
// bypass the system resolver and ask a specific DNS server instead can be
// constructed on top of a Pool.
type Pool struct {
	workers *workerpool.WorkerPool
	mu      sync.Mutex // protects the pool of DNS connections
	free    []*dns.Conn
}

// NewPool returns a pool of the specified size of DNS client connections, with
// each connection using the specified context and talking to the same DNS
// resolver address.
//
// The passed context is used for creating (dialing) the DNS client connections
// only; queries submitted later capture their own contexts.
func NewPool(ctx context.Context, size int, dnsclnt *dns.Client, addr string) (*Pool, error) {
	pool := &Pool{
		workers: workerpool.New(size),
	}
	free := make([]*dns.Conn, 0, size)
	for i := 0; i < size; i++ {
		conn, err := dnsclnt.DialContext(ctx, addr)
		if err != nil {
			// Immediately release all connections created so far.
			for _, conn := range free {
				conn.Close()
			}
			return nil, err
		}
		free = append(free, conn)
	}
	pool.free = free
	return pool, nil
}

// Submit a task to the DNS client connection pool, where it gets enqueued to
// be executed on an available DNS client connection.
func (p *Pool) Submit(task func(conn *dns.Conn)) {
	p.workers.Submit(func() { p.task(task) })
}

// Resolve implements the [Resolver] interface: it queries the pool's DNS
// server for an address record of the host, honoring the family preference.
// For [types.FamilyAny] an A record wins over an AAAA record simply because it
// is queried first; there is no ranking beyond that. Resolve blocks until a
// pool connection has processed the query or the context is done.
func (p *Pool) Resolve(ctx context.Context, host string, family types.Family) (Address, error) {
	type answer struct {
		addr Address
		err  error
	}
	ch := make(chan answer, 1)
	p.Submit(func(conn *dns.Conn) {
		addr, err := lookup(ctx, conn, host, family)
		ch <- answer{addr: addr, err: err}
	})
	select {
	case a := <-ch:
		if a.err != nil {
			return Address{}, &ResolveError{Host: host, Family: family, Err: a.err}
		}
		return a.addr, a.err
	case <-ctx.Done():
		return Address{}, &ResolveError{Host: host, Family: family, Err: ctx.Err()}
	}
}

// lookup runs the A/AAAA queries appropriate for the family preference over
// the specified DNS client connection, returning the first address found.
func lookup(ctx context.Context, conn *dns.Conn, host string, family types.Family) (Address, error) {
	var qtypes []uint16
	switch family {
	case types.FamilyV4:
		qtypes = []uint16{dns.TypeA}
	case types.FamilyV6:
		qtypes = []uint16{dns.TypeAAAA}
	default:
		qtypes = []uint16{dns.TypeA, dns.TypeAAAA}
	}
	dnsclnt := dns.Client{}
	for _, qtype := range qtypes {
		// don't fire off the next query if the context has been cancelled.
		select {
		case <-ctx.Done():
			return Address{}, ctx.Err()
		default:
		}

		msg := dns.Msg{
			MsgHdr: dns.MsgHdr{Id: dns.Id()},
		}
		msg.SetQuestion(dns.Fqdn(host), qtype)
		r, _, err := dnsclnt.ExchangeWithConn(&msg, conn)
		if err != nil {
			return Address{}, err
		}
		for _, rr := range r.Answer {
			if addrRR, ok := rr.(*dns.A); ok {
				return Address{IP: addrRR.A.String()}, nil
			}
			if addrRR, ok := rr.(*dns.AAAA); ok {
				return Address{IP: addrRR.AAAA.String(), IPv6: true}, nil
			}
		}
	}
	return Address{}, fmt.Errorf("no %s address records", family)
}

// task grabs the next free DNS client and passes it to the specified function.
// After the function returns, the connection is put back into the free list.
func (p *Pool) task(task func(conn *dns.Conn)) {
	// pop off a free DNS client connection,
	// https://ueokande.github.io/go-slice-tricks/,
	p.mu.Lock()
	if len(p.free) == 0 {
		panic("no free DNS client connection available")
	}
	last := len(p.free) - 1
	conn := p.free[last]
	p.free = p.free[:last]
	p.mu.Unlock()
	// run the task with its assigned DNS client connection...
	task(conn)
	// ...and push the DNS client connection back into the free list.
	p.mu.Lock()
	p.free = append(p.free, conn)
	p.mu.Unlock()
}

// StopWait waits for all enqueued resolution tasks to finish, and then shuts
// down the pool.
func (p *Pool) StopWait() {
	p.workers.StopWait()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, conn := range p.free {
		conn.Close()
	}
	p.free = nil
}
