// Completion: 100% - Hash module complete
package picrt

// djb2 name hashing. The same function runs in two contexts: at bake time,
// turning module and export names into the constants carried by generated
// code, and at run time, hashing names read out of loader and image
// structures. Both contexts must produce bit-identical results, so all
// arithmetic is fixed at 32 bits and every code unit passes through the same
// normalization before it reaches the accumulator.
//
// Normalization rule: ASCII letters a..z map to A..Z, nothing else changes.
// Module names arrive as UTF-16 units and export names as bytes; for the
// ASCII names the Windows loader deals in, the unit values coincide, so one
// rule covers both.

const hashSeed uint32 = 5381

// Hash computes the djb2 code of a sequence of already-normalized code units:
// acc starts at 5381 and each unit folds in as acc = acc*33 + unit, modulo 2^32.
func Hash(units []uint32) uint32 {
	acc := hashSeed
	for _, u := range units {
		acc = acc*33 + u
	}
	return acc
}

// HashName hashes a name given as a Go string, applying the normalization
// rule to each byte. This is the bake-time entry point: the constant it
// returns equals what the run-time walkers compute for the same name, whether
// the name is stored as bytes or as UTF-16 units.
func HashName(s string) uint32 {
	h := newHasher()
	for i := 0; i < len(s); i++ {
		h.add(uint32(s[i]))
	}
	return h.sum()
}

// normalizeUnit uppercases ASCII letters. Applied to every code unit on both
// the bake-time and run-time paths.
func normalizeUnit(u uint32) uint32 {
	if u >= 'a' && u <= 'z' {
		u -= 0x20
	}
	return u
}

// hasher is the incremental form used by the walkers, which discover name
// units one at a time while reading mapped memory.
type hasher struct {
	acc uint32
}

func newHasher() hasher {
	return hasher{acc: hashSeed}
}

func (h *hasher) add(unit uint32) {
	h.acc = h.acc*33 + normalizeUnit(unit)
}

func (h hasher) sum() uint32 {
	return h.acc
}
