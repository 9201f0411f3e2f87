package health

import (
	"context"
	"fmt"
	"net"
	"net/url"
)

// EndpointChecker checks that the host of an HTTP(S) URL accepts TCP connections.
type EndpointChecker struct {
	name    string
	address string
	err     error
}

// NewEndpointChecker creates a checker for rawURL. An unparsable URL makes
// every check report down.
func NewEndpointChecker(name, rawURL string) *EndpointChecker {
	c := &EndpointChecker{name: name}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		c.err = fmt.Errorf("invalid endpoint url %q", rawURL)
		return c
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	c.address = net.JoinHostPort(u.Hostname(), port)
	return c
}

func (c *EndpointChecker) Name() string {
	return c.name
}

// Check dials the endpoint host.
func (c *EndpointChecker) Check(ctx context.Context) Result {
	if c.err != nil {
		return Down(c.err.Error())
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.address)
	if err != nil {
		return Down(err.Error())
	}
	_ = conn.Close()
	return Up()
}
