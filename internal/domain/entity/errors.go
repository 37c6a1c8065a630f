package entity

import "errors"

// Error taxonomy shared by the domain packages. Call sites wrap these with
// fmt.Errorf("...: %w", err); callers match with errors.Is.
var (
	// ErrInvalidArgument reports malformed input: a domain with no host,
	// an out-of-range port, a negative level count or a missing base URL.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfiguration reports a value that violates a construction
	// invariant, such as a port without a host, or an invalid setting in
	// the config file.
	ErrConfiguration = errors.New("invalid configuration")
)
