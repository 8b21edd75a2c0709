package fetchcache

import (
	"regexp"
	"time"
)

// Policy selects a TTL for a request URL by matching it against an
// ordered list of patterns. The first match wins.
type Policy struct {
	rules      []rule
	defaultTTL time.Duration
}

type rule struct {
	pattern *regexp.Regexp
	ttl     time.Duration
}

// DefaultPolicy mirrors how often each endpoint family actually
// changes: the bulk driver listing is effectively static during a
// season, per-driver career queries move race to race, and the
// current/next race endpoints go stale within a session weekend.
func DefaultPolicy() *Policy {
	return &Policy{
		rules: []rule{
			{regexp.MustCompile(`/drivers(\.json)?(\?.*)?$`), time.Hour * 24 * 7},
			{regexp.MustCompile(`/drivers/`), time.Hour},
			{regexp.MustCompile(`/current(/next)?(\?.*)?$`), time.Minute * 10},
		},
		defaultTTL: time.Hour * 48,
	}
}

func (p *Policy) TTL(url string) time.Duration {
	for _, r := range p.rules {
		if r.pattern.MatchString(url) {
			return r.ttl
		}
	}
	return p.defaultTTL
}
