package synth

import "math"

// One full cycle of a sine, centered on 127.
var sineTable = [256]uint8{
	127, 130, 133, 136, 139, 143, 146, 149, 152, 155, 158, 161, 164, 167, 170, 173,
	176, 179, 181, 184, 187, 190, 193, 195, 198, 200, 203, 205, 208, 210, 213, 215,
	217, 219, 221, 223, 225, 227, 229, 231, 233, 235, 236, 238, 239, 241, 242, 243,
	245, 246, 247, 248, 249, 250, 250, 251, 252, 252, 253, 253, 253, 254, 254, 254,
	254, 254, 254, 254, 253, 253, 252, 252, 251, 251, 250, 249, 248, 247, 246, 245,
	244, 243, 241, 240, 239, 237, 235, 234, 232, 230, 228, 226, 224, 222, 220, 218,
	216, 214, 211, 209, 207, 204, 202, 199, 196, 194, 191, 188, 186, 183, 180, 177,
	174, 171, 168, 166, 163, 159, 156, 153, 150, 147, 144, 141, 138, 135, 132, 129,
	125, 122, 119, 116, 113, 110, 107, 104, 101, 98, 95, 91, 88, 86, 83, 80,
	77, 74, 71, 68, 66, 63, 60, 58, 55, 52, 50, 47, 45, 43, 40, 38,
	36, 34, 32, 30, 28, 26, 24, 22, 20, 19, 17, 15, 14, 13, 11, 10,
	9, 8, 7, 6, 5, 4, 3, 3, 2, 2, 1, 1, 0, 0, 0, 0,
	0, 0, 0, 1, 1, 1, 2, 2, 3, 4, 4, 5, 6, 7, 8, 9,
	11, 12, 13, 15, 16, 18, 19, 21, 23, 25, 27, 29, 31, 33, 35, 37,
	39, 41, 44, 46, 49, 51, 54, 56, 59, 61, 64, 67, 70, 73, 75, 78,
	81, 84, 87, 90, 93, 96, 99, 102, 105, 108, 111, 115, 118, 121, 124, 126,
}

// FreqTable maps a note index (General MIDI numbering, 69 is A4) to the
// tuning word producing that note at a given sample rate.
type FreqTable [128]uint8

// Tuning words at 8 kHz. Notes too low to move the phase accumulator, or too
// high to fit in a tuning word, are 0.
var freqTable8k = FreqTable{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2,
	2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 3, 4, 4, 4,
	4, 4, 5, 5, 5, 6, 6, 6, 7, 7, 7, 8, 8, 9, 9, 10,
	11, 11, 12, 13, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 24, 25,
	27, 28, 30, 32, 34, 35, 38, 40, 42, 45, 47, 50, 53, 56, 60, 63,
	67, 71, 75, 80, 84, 89, 95, 100, 106, 113, 119, 126, 134, 142, 150, 159,
	169, 179, 189, 201, 213, 225, 239, 253, 0, 0, 0, 0, 0, 0, 0, 0,
}

// NewFreqTable returns the note to tuning word table for sampleRate. The
// 8 kHz table is the reference one; other rates are computed once with
// equal temperament (A4 = 440 Hz), rounding to the nearest tuning word.
func NewFreqTable(sampleRate uint32) FreqTable {
	if sampleRate == 8000 {
		return freqTable8k
	}

	var tbl FreqTable
	for note := range tbl {
		freq := 440 * math.Pow(2, float64(note-69)/12)
		tw := math.Round(freq * 256 / float64(sampleRate))
		if tw < 256 {
			tbl[note] = uint8(tw)
		}
	}
	return tbl
}
