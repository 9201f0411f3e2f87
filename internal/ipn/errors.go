package ipn

import "errors"

var (
	// ErrNotVerified is returned when the processor answers with anything but VERIFIED.
	ErrNotVerified = errors.New("ipn not verified")

	// ErrVerifierUnavailable is returned on transport failures and timeouts.
	ErrVerifierUnavailable = errors.New("ipn verifier unavailable")

	// ErrUnexpectedStatus is returned when the processor answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("ipn verifier unexpected status")
)
