package ldap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	goldap "github.com/go-ldap/ldap/v3"
)

func TestPoolAcquireAfterStopErrors(t *testing.T) {
	p := &Pool{size: 1}
	p.conns = make(chan *goldap.Conn)
	close(p.conns)

	_, err := p.acquire(context.Background())
	require.Error(t, err)
}

func TestPoolAcquireRespectsContextCancellation(t *testing.T) {
	p := &Pool{size: 1}
	p.conns = make(chan *goldap.Conn)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.acquire(ctx)
	require.Error(t, err)
}
