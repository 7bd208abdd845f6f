package pagination

// LimitDefault is applied when a request does not specify a limit.
const LimitDefault = 50

// LimitMax caps a single page of results.
const LimitMax = 1_000

// LimitOffset represents a limit/offset pagination request.
type LimitOffset struct {
	Limit  int `json:"limit" query:"limit"`
	Offset int `json:"offset" query:"offset"`
}

// Normalize clamps the parameters into their valid ranges, applying defaults
// for unset values.
func (r *LimitOffset) Normalize() {
	if r.Limit <= 0 {
		r.Limit = LimitDefault
	}
	if r.Limit > LimitMax {
		r.Limit = LimitMax
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}
