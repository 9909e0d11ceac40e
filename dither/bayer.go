package dither

// bayer4x4 is the 4x4 Bayer index matrix.
var bayer4x4 = [4][4]uint8{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// bayer16x16 is the 16x16 Bayer index matrix, built from bayer4x4 by two
// more doublings of M(2n) = [4M, 4M+2; 4M+3, 4M+1].
var bayer16x16 = [16][16]uint8{
	{0, 128, 32, 160, 8, 136, 40, 168, 2, 130, 34, 162, 10, 138, 42, 170},
	{192, 64, 224, 96, 200, 72, 232, 104, 194, 66, 226, 98, 202, 74, 234, 106},
	{48, 176, 16, 144, 56, 184, 24, 152, 50, 178, 18, 146, 58, 186, 26, 154},
	{240, 112, 208, 80, 248, 120, 216, 88, 242, 114, 210, 82, 250, 122, 218, 90},
	{12, 140, 44, 172, 4, 132, 36, 164, 14, 142, 46, 174, 6, 134, 38, 166},
	{204, 76, 236, 108, 196, 68, 228, 100, 206, 78, 238, 110, 198, 70, 230, 102},
	{60, 188, 28, 156, 52, 180, 20, 148, 62, 190, 30, 158, 54, 182, 22, 150},
	{252, 124, 220, 92, 244, 116, 212, 84, 254, 126, 222, 94, 246, 118, 214, 86},
	{3, 131, 35, 163, 11, 139, 43, 171, 1, 129, 33, 161, 9, 137, 41, 169},
	{195, 67, 227, 99, 203, 75, 235, 107, 193, 65, 225, 97, 201, 73, 233, 105},
	{51, 179, 19, 147, 59, 187, 27, 155, 49, 177, 17, 145, 57, 185, 25, 153},
	{243, 115, 211, 83, 251, 123, 219, 91, 241, 113, 209, 81, 249, 121, 217, 89},
	{15, 143, 47, 175, 7, 135, 39, 167, 13, 141, 45, 173, 5, 133, 37, 165},
	{207, 79, 239, 111, 199, 71, 231, 103, 205, 77, 237, 109, 197, 69, 229, 101},
	{63, 191, 31, 159, 55, 183, 23, 151, 61, 189, 29, 157, 53, 181, 21, 149},
	{255, 127, 223, 95, 247, 119, 215, 87, 253, 125, 221, 93, 245, 117, 213, 85},
}

// Threshold tables, scaled from the index matrices to [0, 255].
var (
	bayer4x4Thresholds   = scale4(&bayer4x4)
	bayer16x16Thresholds = scale16(&bayer16x16)
)

// scaleIndex maps index i of an n-cell matrix to the center of its slot,
// (2i+1)*255 / 2n. Index 0 never lets black through and the last index
// always lets white through.
func scaleIndex(i uint8, n int) uint8 {
	return uint8((2*int(i) + 1) * 255 / (2 * n))
}

func scale4(m *[4][4]uint8) (t [4][4]uint8) {
	for y := range m {
		for x := range m[y] {
			t[y][x] = scaleIndex(m[y][x], 4*4)
		}
	}
	return t
}

func scale16(m *[16][16]uint8) (t [16][16]uint8) {
	for y := range m {
		for x := range m[y] {
			t[y][x] = scaleIndex(m[y][x], 16*16)
		}
	}
	return t
}
