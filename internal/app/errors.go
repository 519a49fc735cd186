package app

import (
	"errors"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorKind classifies store errors.
type ErrorKind string

const (
	KindNone                 ErrorKind = ""
	KindMissingEndpoint      ErrorKind = "MissingEndpoint"
	KindInvalidEndpoint      ErrorKind = "InvalidEndpoint"
	KindUnsupportedOperation ErrorKind = "UnsupportedOperation"
	KindNotImplemented       ErrorKind = "NotImplemented"
	KindTransport            ErrorKind = "Transport"
)

const (
	msgMissingEndpoint = "missing required property: 'url'"
	msgInvalidEndpoint = "invalid url, cannot create store"
)

func missingEndpointError() error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msgMissingEndpoint)
}

func invalidEndpointError(cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msgInvalidEndpoint).
		WithCause(cause)
}

func unsupportedOperationError(op string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodePermissionDenied).
		WithMsg(op + " not supported")
}

func notImplementedError(op string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeUnimplemented).
		WithMsg(op + " not implemented")
}

// KindOf reports which store error kind err belongs to. Errors raised by
// the transport during an operation are KindTransport.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var builder *errbuilder.ErrBuilder
	if !errors.As(err, &builder) {
		return KindTransport
	}
	code := errbuilder.CodeOf(err)
	switch {
	case code == errbuilder.CodeInvalidArgument && builder.Msg == msgMissingEndpoint:
		return KindMissingEndpoint
	case code == errbuilder.CodeFailedPrecondition && builder.Msg == msgInvalidEndpoint:
		return KindInvalidEndpoint
	case code == errbuilder.CodePermissionDenied && strings.HasSuffix(builder.Msg, " not supported"):
		return KindUnsupportedOperation
	case code == errbuilder.CodeUnimplemented:
		return KindNotImplemented
	}
	return KindTransport
}
