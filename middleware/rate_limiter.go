package middleware

import (
	"net"
	"sync"
	"time"

	"github.com/rohanthewiz/rtrie"
	"github.com/rohanthewiz/rtrie/consts"
	"golang.org/x/time/rate"
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// Visitors maps remote hosts to their Visitor.
type Visitors struct {
	val        map[string]Visitor
	limit      rate.Limit
	burst      int
	idle       time.Duration
	sweepEvery time.Duration
	lastSweep  time.Time
	now        func() time.Time
	sync.Mutex
}

// NewVisitors limits each remote host to perSecond requests with bursts of burst.
// Hosts idle for an hour are forgotten; the map is swept at most once a minute.
func NewVisitors(perSecond float64, burst int) *Visitors {
	vs := &Visitors{
		val:        make(map[string]Visitor),
		limit:      rate.Limit(perSecond),
		burst:      burst,
		idle:       time.Hour,
		sweepEvery: time.Minute,
		now:        time.Now,
	}
	vs.lastSweep = vs.now()
	return vs
}

// Fetch retrieves the Visitor for host, creating it if not seen.
func (vs *Visitors) Fetch(host string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	now := vs.now()
	if now.Sub(vs.lastSweep) >= vs.sweepEvery {
		vs.cleanup(now)
	}

	v, ok := vs.val[host]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = now
	vs.val[host] = v
	return v
}

// Len is the number of tracked hosts.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()
	return len(vs.val)
}

// cleanup forgets hosts not seen within the idle window.
// The caller holds the lock.
func (vs *Visitors) cleanup(now time.Time) {
	vs.lastSweep = now
	for host, v := range vs.val {
		if now.Sub(v.LastSeen) > vs.idle {
			delete(vs.val, host)
		}
	}
}

// RateLimit ends requests over the visitor's budget with 429.
func RateLimit(visitors *Visitors) rtrie.Handler {
	return func(ctx rtrie.Context) error {
		if !visitors.Fetch(remoteHost(ctx.Request().RemoteAddr())).Limiter.Allow() {
			ctx.Response().SetStatus(consts.StatusTooManyRequests)
			return nil
		}

		return ctx.Next()
	}
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
