package pack

// Reasons passed to Hooks.
const (
	ReasonTooMany        = "too_many"
	ReasonNotSorted      = "not_sorted"
	ReasonEncode         = "encode_error"
	ReasonCorrupt        = "corrupt"
	ReasonSchemeMismatch = "scheme_mismatch"
	ReasonDecode         = "decode_error"
	ReasonTrailingBits   = "trailing_bits"
)

// Hooks lightweight callbacks for rejected input.
// Implementations MUST be cheap and non-blocking.
type Hooks interface {
	// Pack refused a value list.
	// reason ∈ {"too_many", "not_sorted", "encode_error"}
	PackRejected(scheme string, count int, reason string)

	// Unpack refused a block.
	// reason ∈ {"corrupt", "scheme_mismatch", "too_many", "decode_error", "trailing_bits"}
	BlockRejected(scheme string, reason string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) PackRejected(string, int, string)     {}
func (NopHooks) BlockRejected(string, string, error) {}
