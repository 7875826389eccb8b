package engine

import (
	"testing"
)

func testResult(t *testing.T, s string, val uint64, expected uint64) {
	if val != expected {
		t.Errorf(s, val, expected)
	}
}

func TestBitboard(t *testing.T) {
	// Lose H file when going E
	testResult(t, "E(0x8000008080800000) is 0x%016x expected 0x%016x\n", E(0x8000008080800000), 0)
	// Lose A file when going W
	testResult(t, "W(0x0100000101010000) is 0x%016x expected 0x%016x\n", W(0x0100000101010000), 0)
	// Non-H files move E
	testResult(t, "E(0x8040201008040201) is 0x%016x expected 0x%016x\n", E(0x8040201008040201), 0x0080402010080402)
	// Non-A files move W
	testResult(t, "W(0x8040201008040201) is 0x%016x expected 0x%016x\n", W(0x8040201008040201), 0x4020100804020100)

	testResult(t, "N(0x8040201008040201) is 0x%016x expected 0x%016x\n", N(0x8040201008040201), 0x4020100804020100)
	testResult(t, "S(0x8040201008040201) is 0x%016x expected 0x%016x\n", S(0x8040201008040201), 0x0080402010080402)
	testResult(t, "N(0x0804020180402010) is 0x%016x expected 0x%016x\n", N(0x0804020180402010), 0x0402018040201000)
	testResult(t, "S(0x0804020180402010) is 0x%016x expected 0x%016x\n", S(0x0804020180402010), 0x0008040201804020)

	testResult(t, "WPawnScope(0x0180000000000100) is 0x%016x expected 0x%016x\n", WPawnScope(0x0180000000000100), 0xc303030303030000)
	testResult(t, "WPawnScope(0x8140000000000200) is 0x%016x expected 0x%016x\n", WPawnScope(0x8140000000000200), 0xe707070707070000)

	testResult(t, "BPawnScope(0x0001000000008001) is 0x%016x expected 0x%016x\n", BPawnScope(0x0001000000008001), 0x00000303030303c3)
	testResult(t, "BPawnScope(0x0002000000004081) is 0x%016x expected 0x%016x\n", BPawnScope(0x0002000000004081), 0x00000707070707e7)
}

func TestFileFill(t *testing.T) {
	// A single pawn on e4 fills the whole e-file
	testResult(t, "FileFill(e4) is 0x%016x expected 0x%016x\n", FileFill(SquareBB(28)), FileBB(4))
	// Edge files stay on their file
	testResult(t, "FileFill(a1) is 0x%016x expected 0x%016x\n", FileFill(SquareBB(0)), FileA)
	testResult(t, "FileFill(h8) is 0x%016x expected 0x%016x\n", FileFill(SquareBB(63)), FileH)
}

func TestPawnAttacks(t *testing.T) {
	// e4 pawn attacks d5 and f5
	testResult(t, "WPawnAttacks(e4) is 0x%016x expected 0x%016x\n", WPawnAttacks(SquareBB(28)), SquareBB(35)|SquareBB(37))
	// Edge pawns attack a single square
	testResult(t, "WPawnAttacks(a2) is 0x%016x expected 0x%016x\n", WPawnAttacks(SquareBB(8)), SquareBB(17))
	testResult(t, "BPawnAttacks(h7) is 0x%016x expected 0x%016x\n", BPawnAttacks(SquareBB(55)), SquareBB(46))
}

func TestKnightAttacks(t *testing.T) {
	// Knight on b1 hits a3, c3 and d2
	testResult(t, "KnightAttacks(b1) is 0x%016x expected 0x%016x\n", KnightAttacks(1), SquareBB(16)|SquareBB(18)|SquareBB(11))
	// Corner knight has exactly two targets
	testResult(t, "KnightAttacks(a1) is 0x%016x expected 0x%016x\n", KnightAttacks(0), SquareBB(17)|SquareBB(10))
}

func TestKingAttacks(t *testing.T) {
	// Corner king has three neighbours
	testResult(t, "KingAttacks(a1) is 0x%016x expected 0x%016x\n", KingAttacks(0), SquareBB(1)|SquareBB(8)|SquareBB(9))
}

func TestSliderAttacks(t *testing.T) {
	// Rook on a1, empty board - whole rank and file minus its own square
	testResult(t, "RookAttacks(a1, 0) is 0x%016x expected 0x%016x\n", RookAttacks(0, 0), (FileA|0xff) & ^SquareBB(0))

	// Rook on a1 blocked by a piece on a3 - a2, a3, and the first rank
	occ := SquareBB(16)
	testResult(t, "RookAttacks(a1, a3) is 0x%016x expected 0x%016x\n", RookAttacks(0, occ), SquareBB(8)|SquareBB(16)|(0xfe))

	// Bishop on a1, empty board - the long diagonal
	testResult(t, "BishopAttacks(a1, 0) is 0x%016x expected 0x%016x\n", BishopAttacks(0, 0), 0x8040201008040200)
}
