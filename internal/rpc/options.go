package rpc

import "time"

const (
	DefaultPrefix  = "catalog"
	DefaultTimeout = 5 * time.Second
)

type options struct {
	prefix  string
	timeout time.Duration
}

// Option configures a Client or a Server
type Option func(*options)

// WithPrefix sets the first subject token, both sides must agree on it
func WithPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// WithTimeout bounds a single call on the client and a single handler run
// on the server
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{prefix: DefaultPrefix, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
