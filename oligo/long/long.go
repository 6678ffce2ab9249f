// Package oligo/long implements the Oligo interface for sequences of
// any length.
package long

import (
	"strings"

	"localmatch/oligo"
)

type Oligo struct {
	// Sequence of nts
	// Each nt uses one byte with nt at position 0 stored
	// in seq[0], etc.
	seq []byte
}

// Creates a new long oligo object with the specified length and
// value of "AAA...AA"
func New(olen int) *Oligo {
	return &Oligo{make([]byte, olen)}
}

// Creates a new long oligo object with the specified oligo value
// Returns an Object and true if the conversion was successful
func FromString(s string) (*Oligo, bool) {
	seq := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		nt := oligo.Char2Nt(s[i])
		if nt < 0 {
			return nil, false
		}

		seq[i] = byte(nt)
	}

	return &Oligo{seq}, true
}

// Converts raw sequence bytes. U is read as T and the letters other than
// ACGT (N and the other IUPAC ambiguity codes) are read as A. Only
// non-letters fail the conversion, the position of the first one is
// returned. On success the position is -1.
func FromBytesLoose(b []byte) (*Oligo, int) {
	seq := make([]byte, len(b))
	for i, c := range b {
		nt := oligo.Char2Nt(c)
		if nt < 0 {
			switch {
			case c == 'U' || c == 'u':
				nt = oligo.T
			case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
				nt = oligo.A
			default:
				return nil, i
			}
		}

		seq[i] = byte(nt)
	}

	return &Oligo{seq}, -1
}

// for when we know that there can't be error
func FromString1(s string) *Oligo {
	o, _ := FromString(s)
	return o
}

// Copies oligo of any type (implementing the Oligo interface) to a long
// Oligo.
// Returns a new Oligo object and true (because the conversion is alwys possible)
func Copy(o oligo.Oligo) (*Oligo, bool) {
	if lo, ok := o.(*Oligo); ok {
		return lo.Clone().(*Oligo), true
	}

	ol := New(o.Len())
	for i := range ol.seq {
		ol.seq[i] = byte(o.At(i))
	}

	return ol, true
}

// Implementation of the Oligo interface...
func (o *Oligo) Len() int {
	return len(o.seq)
}

func (o *Oligo) String() string {
	var sb strings.Builder

	sb.Grow(len(o.seq))
	for _, nt := range o.seq {
		sb.WriteByte(oligo.Nt2Char(int(nt)))
	}

	return sb.String()
}

// Returns the sequence as ASCII characters
func (o *Oligo) Bytes() []byte {
	ret := make([]byte, len(o.seq))
	for i, nt := range o.seq {
		ret[i] = oligo.Nt2Char(int(nt))
	}

	return ret
}

func (o *Oligo) Cmp(other oligo.Oligo) int {
	olen := other.Len()
	if len(o.seq) < olen {
		return -1
	} else if len(o.seq) > olen {
		return 1
	}

	for i := range o.seq {
		n := o.At(i) - other.At(i)
		if n < 0 {
			return -1
		} else if n > 0 {
			return 1
		}
	}

	return 0
}

func (o *Oligo) At(idx int) int {
	if idx < 0 || idx >= len(o.seq) {
		return -1
	}

	return int(o.seq[idx])
}

func (o *Oligo) Set(idx int, nt int) {
	o.seq[idx] = byte(nt)
}

// Returns a copy of [start, end). Negative or zero end counts from the end
// of the oligo.
func (o *Oligo) Slice(start, end int) oligo.Oligo {
	olen := len(o.seq)
	if end <= 0 {
		end = olen + end
	}

	if end > olen {
		end = olen
	} else if end < 0 {
		end = 0
	}

	if start < 0 || start > olen || start > end {
		return &Oligo{nil}
	}

	no := New(end - start)
	copy(no.seq, o.seq[start:end])

	return no
}

func (o *Oligo) Clone() oligo.Oligo {
	no := New(len(o.seq))
	copy(no.seq, o.seq)

	return no
}

// Overwrites the nts starting at pos with the nts of other.
// Returns false (and doesn't change anything) if other doesn't fit.
func (o *Oligo) Overwrite(pos int, other oligo.Oligo) bool {
	if pos < 0 || pos+other.Len() > len(o.seq) {
		return false
	}

	if lo, ok := other.(*Oligo); ok {
		copy(o.seq[pos:], lo.seq)
		return true
	}

	for i := 0; i < other.Len(); i++ {
		o.seq[pos+i] = byte(other.At(i))
	}

	return true
}
