// Package errs defines the sentinel errors returned by this module.
//
// Every error returned from encoding or decoding wraps one of these
// sentinels, so callers can classify failures with errors.Is while the
// wrapped message carries the field or value that triggered it.
//
// The sentinels fall into four groups:
//
//   - Malformed input: ErrTruncated, ErrUnknownTagID, ErrVarintOverflow,
//     ErrInvalidLength, ErrUnexpectedRootTag. The input bytes cannot be a
//     valid document; retrying cannot succeed.
//   - Resource limits: ErrAllocationLimit, ErrMaxDepthExceeded,
//     ErrSizeLimit. The document may be well formed but exceeds a
//     configured budget.
//   - Unencodable values: ErrInvalidValue, ErrHeterogeneousList,
//     ErrStringTooLong. The in-memory tree cannot be represented on the
//     wire with the active options.
//   - Caller contract: ErrNameMismatch. Misuse of the container API,
//     reported immediately rather than deferred to encode time.
package errs

import "errors"

var (
	// ErrTruncated indicates the input ended before a declared field was
	// fully available.
	ErrTruncated = errors.New("truncated input")

	// ErrUnknownTagID indicates a type byte outside the defined tag range.
	ErrUnknownTagID = errors.New("unknown tag id")

	// ErrVarintOverflow indicates a varint with more continuation bytes
	// than its width allows.
	ErrVarintOverflow = errors.New("varint overflow")

	// ErrInvalidLength indicates a negative or implausibly large length or
	// element count prefix.
	ErrInvalidLength = errors.New("invalid length")

	// ErrUnexpectedRootTag indicates a document whose root is neither a
	// compound nor a list.
	ErrUnexpectedRootTag = errors.New("unexpected root tag")

	// ErrAllocationLimit indicates the decoder's allocation budget was
	// exhausted before the document was fully read.
	ErrAllocationLimit = errors.New("allocation limit reached")

	// ErrMaxDepthExceeded indicates nesting beyond the configured depth.
	ErrMaxDepthExceeded = errors.New("max nesting depth exceeded")

	// ErrSizeLimit indicates output past a configured maximum, either the
	// encoder's size cap or the decompression inflation cap.
	ErrSizeLimit = errors.New("size limit exceeded")

	// ErrInvalidValue indicates a nil or unrepresentable value in the tree.
	ErrInvalidValue = errors.New("invalid value")

	// ErrHeterogeneousList indicates a list whose elements do not share a
	// single tag type.
	ErrHeterogeneousList = errors.New("heterogeneous list")

	// ErrStringTooLong indicates a string longer than the 16-bit length
	// prefix of fixed-width mode can carry.
	ErrStringTooLong = errors.New("string too long")

	// ErrNameMismatch indicates a named compound stored under a different
	// key than its own name.
	ErrNameMismatch = errors.New("name mismatch")
)
