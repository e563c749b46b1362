package trends

import (
	"strings"
	"sync/atomic"
)

// URLPool rotates requests round-robin across one or more provider endpoints
type URLPool struct {
	urls    []string
	current int64
}

// NewURLPool creates a URL pool from comma-separated URLs.
// Trailing slashes are trimmed so endpoint paths can be appended directly.
func NewURLPool(urlString string) *URLPool {
	if urlString == "" {
		return &URLPool{urls: []string{}}
	}

	rawURLs := strings.Split(urlString, ",")
	urls := make([]string, 0, len(rawURLs))

	for _, url := range rawURLs {
		cleaned := strings.TrimRight(strings.TrimSpace(url), "/")
		if cleaned != "" {
			urls = append(urls, cleaned)
		}
	}

	return &URLPool{
		urls:    urls,
		current: -1, // first call returns index 0
	}
}

// Next returns the next URL
func (p *URLPool) Next() string {
	if len(p.urls) == 0 {
		return ""
	}

	if len(p.urls) == 1 {
		return p.urls[0]
	}

	next := atomic.AddInt64(&p.current, 1)
	// ((n % m) + m) % m stays positive after overflow
	urlsLen := int64(len(p.urls))
	index := ((next % urlsLen) + urlsLen) % urlsLen
	return p.urls[index]
}

// URLs returns a copy of the configured endpoints
func (p *URLPool) URLs() []string {
	result := make([]string, len(p.urls))
	copy(result, p.urls)
	return result
}

func (p *URLPool) Size() int {
	return len(p.urls)
}

func (p *URLPool) IsEmpty() bool {
	return len(p.urls) == 0
}
