package ldap

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	goldap "github.com/go-ldap/ldap/v3"

	"github.com/Nabagata/scim/spec"
)

// Pool manages a fixed number of bound LDAP connections to one directory, redialing with
// exponential backoff when a connection is lost. Grounded on cmd/internal/args/rabbit.go's
// RabbitMQ.Connect, which drives backoff.Retry through a cancellable channel handoff the same way;
// this package generalizes that single-connection pattern to a reusable pool.
type Pool struct {
	addr         string
	bindDN       string
	bindPassword string
	size         int

	conns chan *goldap.Conn
}

// NewPool returns a Pool that will open size connections to addr (an LDAP URL, e.g.
// "ldap://localhost:389") and bind each as bindDN/bindPassword.
func NewPool(addr, bindDN, bindPassword string, size int) *Pool {
	return &Pool{addr: addr, bindDN: bindDN, bindPassword: bindPassword, size: size}
}

// start dials and binds every pooled connection, retrying each with exponential backoff until
// ctx is done.
func (p *Pool) start(ctx context.Context) error {
	p.conns = make(chan *goldap.Conn, p.size)
	for i := 0; i < p.size; i++ {
		conn, err := p.dial(ctx)
		if err != nil {
			p.stop()
			return err
		}
		p.conns <- conn
	}
	return nil
}

// stop closes every pooled connection. Safe to call after start failed partway through.
func (p *Pool) stop() {
	if p.conns == nil {
		return
	}
	close(p.conns)
	for conn := range p.conns {
		_ = conn.Close()
	}
}

func (p *Pool) dial(ctx context.Context) (*goldap.Conn, error) {
	connChan := make(chan *goldap.Conn, 1)
	errChan := make(chan error, 1)

	go func() {
		err := backoff.Retry(func() error {
			conn, err := goldap.DialURL(p.addr)
			if err != nil {
				return err
			}
			if p.bindDN != "" {
				if err := conn.Bind(p.bindDN, p.bindPassword); err != nil {
					_ = conn.Close()
					return err
				}
			}
			connChan <- conn
			return nil
		}, backoff.NewExponentialBackOff())
		if err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errChan:
		return nil, err
	case conn := <-connChan:
		return conn, nil
	}
}

// acquire checks out a connection, redialing in place when the checked-out connection was found
// closing.
func (p *Pool) acquire(ctx context.Context) (*goldap.Conn, error) {
	select {
	case conn, ok := <-p.conns:
		if !ok {
			return nil, fmt.Errorf("%w: pool stopped", spec.ErrInternal)
		}
		if conn.IsClosing() {
			return p.dial(ctx)
		}
		return conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// release returns conn to the pool, or closes it outright when the pool is stopped or full.
func (p *Pool) release(conn *goldap.Conn) {
	// stop closes p.conns, and a send on a closed channel panics.
	defer func() {
		if recover() != nil {
			_ = conn.Close()
		}
	}()
	select {
	case p.conns <- conn:
	default:
		_ = conn.Close()
	}
}
