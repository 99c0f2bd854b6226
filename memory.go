// Completion: 100% - Address space module complete
package picrt

// AddressSpace is the read-only view the walkers operate on. Implementations
// exist for synthetic images (tests, DLL files presented at their preferred
// base) and for the live process on Windows.
//
// There is no error value anywhere in this interface: before the runtime is
// bootstrapped there is no facility to report to, so an unmapped or truncated
// read returns false and the caller treats it as "nothing found".
type AddressSpace interface {
	// ReadAt copies len(p) bytes starting at virtual address addr into p.
	// Returns false if any part of the range is not mapped.
	ReadAt(addr uint64, p []byte) bool
}

// ============================================================================
// Typed reads
// ============================================================================

func readU16(as AddressSpace, addr uint64) (uint16, bool) {
	var b [2]byte
	if !as.ReadAt(addr, b[:]) {
		return 0, false
	}
	return uint16(b[0]) | uint16(b[1])<<8, true
}

func readU32(as AddressSpace, addr uint64) (uint32, bool) {
	var b [4]byte
	if !as.ReadAt(addr, b[:]) {
		return 0, false
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, true
}

func readU64(as AddressSpace, addr uint64) (uint64, bool) {
	lo, ok := readU32(as, addr)
	if !ok {
		return 0, false
	}
	hi, ok := readU32(as, addr+4)
	if !ok {
		return 0, false
	}
	return uint64(hi)<<32 | uint64(lo), true
}

// readPtr reads a loader pointer of the layout's width.
func readPtr(as AddressSpace, addr uint64, ptrSize int) (uint64, bool) {
	if ptrSize == 4 {
		v, ok := readU32(as, addr)
		return uint64(v), ok
	}
	return readU64(as, addr)
}

// ============================================================================
// Image: a sparse synthetic address space
// ============================================================================

// Image is an address space assembled from placed segments. It backs the
// synthetic process views used by tests and the mapped presentation of DLL
// files loaded from disk.
type Image struct {
	segs []segment
}

type segment struct {
	base uint64
	data []byte
}

// NewImage returns an empty image; reads against it all fail.
func NewImage() *Image {
	return &Image{}
}

// Place maps data at base. Later placements win on overlap, which lets tests
// patch a structure after building it.
func (im *Image) Place(base uint64, data []byte) {
	im.segs = append(im.segs, segment{base: base, data: data})
}

// Merge places every segment of other into im.
func (im *Image) Merge(other *Image) {
	im.segs = append(im.segs, other.segs...)
}

// ReadAt implements AddressSpace. The whole range must fall inside a single
// segment; the loader and image structures this package walks never straddle
// mapping boundaries.
func (im *Image) ReadAt(addr uint64, p []byte) bool {
	if len(p) == 0 {
		return true
	}
	// Later placements shadow earlier ones.
	for i := len(im.segs) - 1; i >= 0; i-- {
		seg := im.segs[i]
		if addr < seg.base {
			continue
		}
		off := addr - seg.base
		if off+uint64(len(p)) > uint64(len(seg.data)) {
			continue
		}
		CopyMem(p, seg.data[off:off+uint64(len(p))])
		return true
	}
	return false
}
