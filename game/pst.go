package game

import "math"

// bonusScale undoes the scaling applied when the tables were packed into
// signed bytes.
const bonusScale = 1.461

// egOffset is the piece-type slot offset of the endgame tables.
const egOffset = 6

// packedTables holds 12 tables of 8 words, middlegame pawn..king then
// endgame pawn..king. Word pieceType*8+row holds one row with row 0 being
// the eighth rank from White's side; byte f of a word is the signed bonus
// for file f.
var packedTables = [12 * 8]uint64{
	// mg pawn
	0x0000000000000000, 0xf817562f412a5c43, 0xf211262c151205fc, 0xf00c08100e0409f6,
	0xef07040c08fdffee, 0xf8170202f9fdfdee, 0xf11a10f6f0f2ffe8, 0x0000000000000000,
	// mg knight
	0xb7f6be2adee9c38e, 0xf4052a101931e4ce, 0x1e3258392c1929e0, 0x0f0c2f19240d0cfa,
	0xfb0e0d13090b03f7, 0xf5110c0d0708faf0, 0xf3f60cfffef8dcec, 0xf0f3edf4e9d8f2b8,
	// mg bishop
	0xfb05e3efe7c803ec, 0xe00c2815f7f40bee, 0xff1922181b1d19f5, 0xff051919220d03fd,
	0x03070817120909fc, 0x070c120a0a0a0a00, 0x01170e05000b0a03, 0xf2e5f8f7f2f6fee9,
	// mg rook
	0x1d15062b23161d16, 0x1e122e372a281612, 0x0b2a1f0c19120dfd, 0xf2fb18101205f8f0,
	0xf004fb06fff8eee7, 0xe9fd0002f4f5efe1, 0xcffc08fffaf2f5e2, 0xeee7050b0c01f7f3,
	// mg queen
	0x1f1d1e28081400ed, 0x251327f501fde5f0, 0x272026140505f4f7, 0x01ff0cfff5f5eeee,
	0xfe02fdfff9faeefa, 0x030a01fdfff801f6, 0x01fe0a050108fbe8, 0xdeebeff607faf4ff,
	// mg king
	0x0901e9daf60b10d4, 0xece6fdfbfbf2ff14, 0xf10f04f2f50110fa, 0xe7f6efebeef8f2f4,
	0xdde9e2e1e5eeffde, 0xeef6ebe2e1f1f6f6, 0x0506f5e3d4fb0501, 0x0a10ed05db0819f6,
	// eg pawn
	0x0000000000000000, 0x7f715a655c6c767a, 0x393824262e3a4440, 0x0c0c03ff03091016,
	0xff02fbfbfbfe0609, 0xfbfffd0001fc0503, 0xfb01000907050509, 0x0000000000000000,
	// eg knight
	0xbcd5eeebedf7e6d8, 0xdcf0effaffeffbef, 0xe4f3faff0607f2f0, 0xf405080f0f0f02f4,
	0xf4030c0b110bfcf4, 0xf1f2fe070afffef0, 0xe2f0f2fffdf9f2e3, 0xd4def4f1f6f0ddec,
	// eg bishop
	0xf0f4fafbfbf8f2f6, 0xf6fdf7fef805fdfb, 0x030004ffff00fb01, 0x0102070a060806fe,
	0xfafe07050d0902fc, 0xf6fb02090705fef8, 0xeef6fa03fffbf4f6, 0xf4fdf5fafdf0faf0,
	// eg rook
	0x030508080a0c0709, 0x020502fe08090908, 0xfefdfe0303050505, 0x01ff010101090203,
	0xf8fbfcfd03050302, 0xf5fbf8fbfffd00fd, 0xfef8fafa0100fcfc, 0xf203f7fdff0201fa,
	// eg queen
	0x0e070d12120f0ffa, 0x001511281c160ef4, 0x060d1820220604f2, 0x19271b271f100f02,
	0x101b1715200d13f4, 0x03070c06040aeef5, 0xeae7f0f5f5ebf0f1, 0xe4f2eafde3f1ede9,
	// eg king
	0xf4030af8f4f4e8cd, 0x08101a0c0c0a0cf8, 0x091e1f0e0a100c07, 0x0212171212100ffb,
	0xf8061012100efdf4, 0xfa050b100e08fef3, 0xf4fd030a0903f8ee, 0xe3f0f6edf8f2e9dc,
}

// unpackBonus extracts the signed byte for file from a packed row and scales
// it back to centipawns.
func unpackBonus(word uint64, file int) int {
	b := int8(word >> (uint(file) * 8) & 0xff)
	return int(math.Round(float64(b) * bonusScale))
}

// tableIndex selects the packed row for a piece. Tables are authored for
// Black's orientation, so White's ranks are mirrored.
func tableIndex(slot int, c Color, rank int) int {
	if c == White {
		rank = 7 - rank
	}
	return slot*8 + rank
}

// middlegameBonus and endgameBonus return the piece-square bonus of a piece
// of type pt and color c on sq.
func middlegameBonus(pt PieceType, c Color, sq Square) int {
	return unpackBonus(packedTables[tableIndex(int(pt), c, sq.Rank())], sq.File())
}

func endgameBonus(pt PieceType, c Color, sq Square) int {
	return unpackBonus(packedTables[tableIndex(int(pt)+egOffset, c, sq.Rank())], sq.File())
}
