package eq

import "errors"

var (
	// ErrUnsupportedEnvironment reports that the processing environment
	// could not allocate the filter stages a chain needs. It is fatal to
	// chain construction and is not retried.
	ErrUnsupportedEnvironment = errors.New("eq: environment cannot allocate filter stages")

	// ErrInvalidBandIndex reports a band index outside [0, N).
	ErrInvalidBandIndex = errors.New("eq: band index out of range")

	// ErrChainNotActive reports a control call on a destroyed chain.
	ErrChainNotActive = errors.New("eq: chain is not active")

	// ErrNoBands reports a chain construction with an empty band layout.
	ErrNoBands = errors.New("eq: band layout must contain at least one band")
)
