package domain

import "strings"

// CompositeState is a pair (R, locations) — the shared valuation together
// with the current location of every component process. Two composite
// states are the same reachable state iff they are Equal; the explorer
// deduplicates on that basis.
type CompositeState struct {
	R         Valuation
	Locations []Location
}

// NewCompositeState builds a CompositeState from a valuation and a
// location per process, cloning neither — callers that mutate shared
// slices afterward must copy first.
func NewCompositeState(r Valuation, locs []Location) CompositeState {
	return CompositeState{R: r, Locations: locs}
}

// Equal reports whether s and other represent the same composite state:
// equal valuations and an identical location sequence.
func (s CompositeState) Equal(other CompositeState) bool {
	if len(s.Locations) != len(other.Locations) {
		return false
	}
	for i, l := range s.Locations {
		if l != other.Locations[i] {
			return false
		}
	}
	if s.R == nil || other.R == nil {
		return s.R == nil && other.R == nil
	}
	return s.R.Equal(other.R)
}

// bucketKey returns the key used to group candidate-equal states before a
// final Equal check. It combines the valuation's hash with the location
// sequence; a hash collision across differing valuations only costs an
// extra Equal comparison, never a false dedup.
func (s CompositeState) bucketKey() string {
	var h uint64
	if s.R != nil {
		h = s.R.Hash()
	}
	b := make([]byte, 0, 32)
	b = appendUint64(b, h)
	b = append(b, '|')
	for i, l := range s.Locations {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, l...)
	}
	return string(b)
}

func appendUint64(b []byte, v uint64) []byte {
	const hex = "0123456789abcdef"
	var tmp [16]byte
	for i := 15; i >= 0; i-- {
		tmp[i] = hex[v&0xf]
		v >>= 4
	}
	return append(b, tmp[:]...)
}

// String renders the state as "<R> <loc1> <loc2> ..." for deadlock reports
// and visualization annotations.
func (s CompositeState) String() string {
	var sb strings.Builder
	if s.R != nil {
		sb.WriteString(s.R.String())
	}
	for _, l := range s.Locations {
		sb.WriteByte(' ')
		sb.WriteString(string(l))
	}
	return sb.String()
}

// LocationsString renders only the location tuple, space separated.
func (s CompositeState) LocationsString() string {
	strs := make([]string, len(s.Locations))
	for i, l := range s.Locations {
		strs[i] = string(l)
	}
	return strings.Join(strs, " ")
}
