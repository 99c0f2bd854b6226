// Completion: 100% - Export walk module complete
package picrt

import "iter"

// Walks the export directory of a PE image mapped at a known base. All reads
// go through an AddressSpace at image-relative virtual addresses, so the same
// walker serves a live module, a synthetic test image and a DLL file
// presented at its preferred base by LoadImageFile.
//
// The mapped image is trusted: no checksum or signature validation. Any
// structure that is absent, truncated or points outside mapped memory ends
// the walk; an image without a usable export directory yields an empty
// sequence.

// ExportEntry describes one named export: the hash of its name and its
// resolved virtual address (base + RVA). Entries are produced on the fly and
// not retained.
type ExportEntry struct {
	NameHash uint32
	Addr     uint64
}

// PE constants. The walker reads fields by offset instead of declaring header
// structs; it needs seven fields out of the whole format.
const (
	dosMagic    = 0x5A4D     // "MZ"
	peSignature = 0x00004550 // "PE\0\0"

	lfanewOffset = 0x3C // DOS header -> PE signature offset

	optMagicPE32Plus = 0x020B
	optMagicPE32     = 0x010B

	// data-directory table offset inside the optional header
	dataDirOffset64 = 112
	dataDirOffset32 = 96
)

// maxExportNames bounds the name walk against a garbled count field.
const maxExportNames = 1 << 17

// maxExportNameLen bounds a single export name scan.
const maxExportNameLen = 2048

// Exports yields one ExportEntry per named export of the image mapped at
// base. Lazy, finite, restartable.
func Exports(as AddressSpace, base uint64) iter.Seq[ExportEntry] {
	return func(yield func(ExportEntry) bool) {
		dirRVA, dirSize, ok := exportDirectory(as, base)
		if !ok || dirRVA == 0 || dirSize == 0 {
			return
		}
		dir := base + uint64(dirRVA)

		numNames, ok := readU32(as, dir+24)
		if !ok {
			return
		}
		if numNames > maxExportNames {
			numNames = maxExportNames
		}
		funcTable, ok1 := readU32(as, dir+28)
		nameTable, ok2 := readU32(as, dir+32)
		ordTable, ok3 := readU32(as, dir+36)
		if !ok1 || !ok2 || !ok3 {
			return
		}
		numFuncs, ok := readU32(as, dir+20)
		if !ok {
			return
		}

		for i := uint32(0); i < numNames; i++ {
			nameRVA, ok := readU32(as, base+uint64(nameTable)+uint64(4*i))
			if !ok {
				return
			}
			ordinal, ok := readU16(as, base+uint64(ordTable)+uint64(2*i))
			if !ok {
				return
			}
			if uint32(ordinal) >= numFuncs {
				continue
			}
			funcRVA, ok := readU32(as, base+uint64(funcTable)+uint64(4*uint32(ordinal)))
			if !ok {
				return
			}
			hash, ok := hashExportName(as, base+uint64(nameRVA))
			if !ok {
				continue
			}
			if !yield(ExportEntry{NameHash: hash, Addr: base + uint64(funcRVA)}) {
				return
			}
		}
	}
}

// exportDirectory locates data directory entry 0 of the image at base and
// returns its RVA and size.
func exportDirectory(as AddressSpace, base uint64) (rva, size uint32, ok bool) {
	magic, ok := readU16(as, base)
	if !ok || magic != dosMagic {
		return 0, 0, false
	}
	lfanew, ok := readU32(as, base+lfanewOffset)
	if !ok {
		return 0, 0, false
	}
	pe := base + uint64(lfanew)
	sig, ok := readU32(as, pe)
	if !ok || sig != peSignature {
		return 0, 0, false
	}

	// Optional header follows the 20-byte COFF header.
	opt := pe + 4 + 20
	optMagic, ok := readU16(as, opt)
	if !ok {
		return 0, 0, false
	}
	var dirTable uint64
	switch optMagic {
	case optMagicPE32Plus:
		dirTable = opt + dataDirOffset64
	case optMagicPE32:
		dirTable = opt + dataDirOffset32
	default:
		return 0, 0, false
	}

	rva, ok1 := readU32(as, dirTable)
	size, ok2 := readU32(as, dirTable+4)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return rva, size, true
}

// hashExportName hashes the NUL-terminated byte string at addr, read out of
// the mapped image rather than compiled in.
func hashExportName(as AddressSpace, addr uint64) (uint32, bool) {
	h := newHasher()
	for i := 0; i < maxExportNameLen; i++ {
		var b [1]byte
		if !as.ReadAt(addr+uint64(i), b[:]) {
			return 0, false
		}
		if b[0] == 0 {
			return h.sum(), true
		}
		h.add(uint32(b[0]))
	}
	return 0, false
}
