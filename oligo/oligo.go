// The oligo package defines nucleotide sequence data structures and functions
package oligo

const (
	A = 0
	T = 1
	C = 2
	G = 3
)

// Generic interface of an oligo that represents a nucleotide sequence.
// The implementation is in package long.
type Oligo interface {
	// Length of the oligo
	Len() int

	// Converts the oligo to string
	String() string

	// Compares two oligos.
	// Returns
	//     -1 if the oligo comes before the other oligo
	//     0 if the oligos are the same
	//     1 if the oligo comes after the other oligo
	// Note: if the oligos are of different lengths, the shorter one comes
	// before the longer one
	Cmp(other Oligo) int

	// Returns the nucleotide at position idx, -1 if out of bounds
	At(idx int) int

	// Sets the nucleotide at position idx
	Set(idx int, nt int)

	// Returns a copy of part of the oligo
	Slice(start, end int) Oligo

	// Creates a copy of the oligo
	Clone() Oligo
}

var ntNames = "ATCG"

// Converts an numeric value of a nucleotide (nt) to its string value
func Nt2String(nt int) string {
	if nt < 0 || nt >= len(ntNames) {
		return "?"
	}

	return string(ntNames[nt])
}

// Converts an numeric value of a nucleotide to its character
func Nt2Char(nt int) byte {
	if nt < 0 || nt >= len(ntNames) {
		return '?'
	}

	return ntNames[nt]
}

// Converts string value of a nt to its numeric value
func String2Nt(nt string) int {
	if len(nt) != 1 {
		return -1
	}

	return Char2Nt(nt[0])
}

// Converts a character to the nt numeric value, -1 if it isn't one of ACGT.
// Lowercase (soft-masked) nts are accepted.
func Char2Nt(c byte) int {
	switch c {
	default:
		return -1
	case 'A', 'a':
		return A
	case 'T', 't':
		return T
	case 'C', 'c':
		return C
	case 'G', 'g':
		return G
	}
}

// Watson-Crick complement of a nt (A<->T, C<->G)
func Complement(nt int) int {
	// A/T and C/G differ only in the lowest bit
	return nt ^ 1
}

// Reverses the order of the nts in place
func Reverse(ol Oligo) {
	for i, j := 0, ol.Len()-1; i < j; i, j = i+1, j-1 {
		a, b := ol.At(i), ol.At(j)
		ol.Set(i, b)
		ol.Set(j, a)
	}
}

// Replaces every nt with its complement in place
func Invert(ol Oligo) {
	for i := 0; i < ol.Len(); i++ {
		ol.Set(i, Complement(ol.At(i)))
	}
}

// Returns the reverse complement of ol as a new oligo. ol is not changed.
// RevComp(RevComp(ol)) is equal to ol.
func RevComp(ol Oligo) Oligo {
	ret := ol.Clone()
	Reverse(ret)
	Invert(ret)

	return ret
}

// Number of positions at which two oligos of the same length differ.
// If the lengths differ, the missing positions count as differences.
func Mismatches(a, b Oligo) (n int) {
	alen, blen := a.Len(), b.Len()
	if alen > blen {
		alen, blen = blen, alen
	}

	for i := 0; i < alen; i++ {
		if a.At(i) != b.At(i) {
			n++
		}
	}

	return n + blen - alen
}

// Overwrites the nts of dst starting at pos with the nts of src.
// Returns false (and doesn't change dst) if src doesn't fit.
func Overwrite(dst Oligo, pos int, src Oligo) bool {
	if w, ok := dst.(interface{ Overwrite(int, Oligo) bool }); ok {
		return w.Overwrite(pos, src)
	}

	if pos < 0 || pos+src.Len() > dst.Len() {
		return false
	}

	for i := 0; i < src.Len(); i++ {
		dst.Set(pos+i, src.At(i))
	}

	return true
}

// Returns the ASCII representation of the oligo
func Bytes(ol Oligo) []byte {
	if b, ok := ol.(interface{ Bytes() []byte }); ok {
		return b.Bytes()
	}

	ret := make([]byte, ol.Len())
	for i := range ret {
		ret[i] = Nt2Char(ol.At(i))
	}

	return ret
}
