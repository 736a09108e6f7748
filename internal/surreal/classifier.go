package surreal

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"syscall"

	"github.com/vvka-141/slurp/pkg/slurp"
)

// TransportKind names the broad cause of a failed submission.
type TransportKind string

const (
	KindTimeout           TransportKind = "timeout"
	KindDNS               TransportKind = "dns"
	KindConnectionRefused TransportKind = "connection refused"
	KindConnectionReset   TransportKind = "connection reset"
	KindCanceled          TransportKind = "canceled"
	KindOther             TransportKind = "network"
)

// TransportError wraps a failure to obtain any response from the endpoint.
// errors.Is(err, slurp.ErrTransport) holds for every TransportError.
type TransportError struct {
	Kind TransportKind
	Err  error
}

func (e *TransportError) Error() string {
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports the transport sentinel in addition to the wrapped chain.
func (e *TransportError) Is(target error) bool {
	return target == slurp.ErrTransport
}

// ClassifyTransportError wraps err into a TransportError with its kind set.
// A nil err returns nil.
func ClassifyTransportError(err error) error {
	if err == nil {
		return nil
	}
	var existing *TransportError
	if errors.As(err, &existing) {
		return err
	}
	return &TransportError{Kind: transportKind(err), Err: err}
}

func transportKind(err error) TransportKind {
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return KindTimeout
		}
		return KindDNS
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindConnectionRefused
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return KindConnectionReset
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	// Fallback on message fragments for wrapped platform errors.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return KindConnectionRefused
	case strings.Contains(msg, "connection reset"), strings.Contains(msg, "broken pipe"):
		return KindConnectionReset
	case strings.Contains(msg, "no such host"):
		return KindDNS
	case strings.Contains(msg, "timeout"):
		return KindTimeout
	}
	return KindOther
}
