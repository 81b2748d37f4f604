package constsvc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/signalsfoundry/astroconst/registry"
)

// ErrInvalidRequest marks a malformed request: a missing field, a field of
// the wrong type or a non-integral index.
var ErrInvalidRequest = errors.New("invalid request")

// ToStatusError maps registry and request errors onto gRPC status codes.
func ToStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, registry.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, registry.ErrIndexOutOfRange):
		return status.Error(codes.OutOfRange, err.Error())
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, registry.ErrInvalidDefinition):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// FromStatusError is the client-side inverse of ToStatusError: the returned
// error matches the registry sentinel with errors.Is and keeps the server's
// message.
func FromStatusError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error
	switch st.Code() {
	case codes.NotFound:
		sentinel = registry.ErrNotFound
	case codes.OutOfRange:
		sentinel = registry.ErrIndexOutOfRange
	case codes.InvalidArgument:
		sentinel = ErrInvalidRequest
	default:
		return err
	}
	return &remoteError{sentinel: sentinel, msg: st.Message(), status: err}
}

type remoteError struct {
	sentinel error
	msg      string
	status   error
}

func (e *remoteError) Error() string { return e.msg }

// Unwrap exposes both the sentinel and the original status error, so
// status.Code keeps working on the result.
func (e *remoteError) Unwrap() []error { return []error{e.sentinel, e.status} }
