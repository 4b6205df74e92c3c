// Package bitutil implements the low-level bit operations that the board,
// magic-bitboard, and move-ordering packages are built on.
package bitutil

import "math/bits"

// Precalculated magic used to index the bitScanLookup table.
const bitscanMagic uint64 = 0x07EDD5E59A4E28C2

// bitScanLookup maps the De Bruijn sequence produced by isolating a
// bitboard's least significant bit to that bit's index.
//
// See http://pradu.us/old/Nov27_2008/Buzz/research/magic/Bitboards.pdf
// section 3.2.
var bitScanLookup = [64]int{
	63, 0, 58, 1, 59, 47, 53, 2,
	60, 39, 48, 27, 54, 33, 42, 3,
	61, 51, 37, 40, 49, 18, 28, 20,
	55, 30, 34, 11, 43, 14, 22, 4,
	62, 57, 46, 52, 38, 26, 32, 41,
	50, 36, 17, 19, 29, 10, 13, 21,
	56, 45, 25, 31, 35, 16, 9, 12,
	44, 24, 15, 8, 23, 7, 6, 5,
}

// BitScan returns the index of the least significant set bit of bitboard.
//
// NOTE: BitScan returns 63 for an empty bitboard.
func BitScan(bitboard uint64) int {
	return bitScanLookup[bitboard&-bitboard*bitscanMagic>>58]
}

// PopLSB clears the least significant set bit of bitboard and returns its
// index.
//
// NOTE: PopLSB returns 63 for an empty bitboard.
func PopLSB(bitboard *uint64) int {
	lsb := BitScan(*bitboard)
	*bitboard &= *bitboard - 1
	return lsb
}

// CountBits returns the number of set bits (population count) of bitboard.
func CountBits(bitboard uint64) int {
	return bits.OnesCount64(bitboard)
}

// SquareMask returns the single-bit bitboard for the given square.
func SquareMask(square int) uint64 {
	return uint64(1) << uint(square)
}
