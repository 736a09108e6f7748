package surreal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/slurp/pkg/slurp"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o deadline reached" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want TransportKind
	}{
		{"context canceled", fmt.Errorf("post: %w", context.Canceled), KindCanceled},
		{"context deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), KindTimeout},
		{"os deadline", os.ErrDeadlineExceeded, KindTimeout},
		{"net timeout", &net.OpError{Op: "read", Err: timeoutError{}}, KindTimeout},
		{"dns not found", &net.DNSError{Err: "no such host", Name: "surreal.invalid", IsNotFound: true}, KindDNS},
		{"dns timeout", &net.DNSError{Err: "timeout", Name: "surreal.invalid", IsTimeout: true}, KindTimeout},
		{"refused", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, KindConnectionRefused},
		{"reset", &net.OpError{Op: "read", Err: os.NewSyscallError("read", syscall.ECONNRESET)}, KindConnectionReset},
		{"refused by message", errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), KindConnectionRefused},
		{"unknown", errors.New("tls: handshake failure"), KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyTransportError(tt.err)
			require.Error(t, err)

			var te *TransportError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.want, te.Kind)
			assert.True(t, errors.Is(err, slurp.ErrTransport))
			assert.True(t, errors.Is(err, tt.err), "original error must stay in the chain")
		})
	}
}

func TestClassifyTransportError_Nil(t *testing.T) {
	assert.NoError(t, ClassifyTransportError(nil))
}

func TestClassifyTransportError_Idempotent(t *testing.T) {
	once := ClassifyTransportError(context.DeadlineExceeded)
	twice := ClassifyTransportError(once)
	assert.Same(t, once, twice)
}
