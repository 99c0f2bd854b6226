// Completion: 100% - Synthetic process view complete
package picrt

import (
	"encoding/binary"
	"unicode/utf16"
)

// A synthetic process view: loader structures built into an Image so the
// walkers can run against a hand-assembled module list. Tests use it to model
// edge cases; the CLI uses it to resolve exports inside a DLL file as if the
// file were the only loaded module.

// ModuleSpec names one module of a synthetic view. If Image is non-nil its
// segments are merged into the view, so export walks against Base see the
// module's mapped content.
type ModuleSpec struct {
	Name  string
	Base  uint64
	Image *Image
}

// SynthProcess is an assembled view: control block, loader data and a
// well-formed doubly linked module list.
type SynthProcess struct {
	img    *Image
	peb    uint64
	layout LoaderLayout
}

// Offsets of the pieces inside the one segment holding the loader structures.
// Entries are spaced generously so every layout's descriptor fields fit.
const (
	synthBase      = 0x00300000 // fits 32-bit layouts too
	synthLdrOff    = 0x080
	synthEntryOff  = 0x100
	synthEntrySize = 0x100
)

// NewSynthProcess builds a view containing the given modules in list order.
func NewSynthProcess(layout LoaderLayout, mods []ModuleSpec) *SynthProcess {
	ps := uint64(layout.PtrSize)

	// One blob holds control block, loader data, descriptors and name buffers.
	nameOff := uint64(synthEntryOff + synthEntrySize*(len(mods)+1))
	blobSize := nameOff
	for _, m := range mods {
		blobSize += uint64(2*len(utf16.Encode([]rune(m.Name))) + 2)
	}
	blob := make([]byte, blobSize)

	put := func(off, val uint64) {
		if layout.PtrSize == 4 {
			binary.LittleEndian.PutUint32(blob[off:], uint32(val))
		} else {
			binary.LittleEndian.PutUint64(blob[off:], val)
		}
	}

	// Control block: loader data pointer.
	put(layout.LdrOffset, synthBase+synthLdrOff)

	head := uint64(synthBase) + synthLdrOff + layout.ListOffset
	entryAddr := func(i int) uint64 {
		return synthBase + uint64(synthEntryOff+synthEntrySize*i)
	}

	img := NewImage()
	for i, m := range mods {
		off := uint64(synthEntryOff + synthEntrySize*i)

		// Forward and backward links; the last entry links back to the head.
		next := head
		if i+1 < len(mods) {
			next = entryAddr(i + 1)
		}
		prev := head
		if i > 0 {
			prev = entryAddr(i - 1)
		}
		put(off, next)
		put(off+ps, prev)

		put(off+layout.BaseOffset, m.Base)

		// Counted UTF-16 name: {lenBytes, capBytes, buffer}.
		units := utf16.Encode([]rune(m.Name))
		lenBytes := uint64(2 * len(units))
		binary.LittleEndian.PutUint16(blob[off+layout.NameOffset:], uint16(lenBytes))
		binary.LittleEndian.PutUint16(blob[off+layout.NameOffset+2:], uint16(lenBytes+2))
		put(off+layout.NameOffset+ps, synthBase+nameOff)
		for _, u := range units {
			binary.LittleEndian.PutUint16(blob[nameOff:], u)
			nameOff += 2
		}
		nameOff += 2 // NUL

		if m.Image != nil {
			img.Merge(m.Image)
		}
	}

	// List head links: first entry forward, last entry backward. An empty
	// list points at itself.
	headOff := synthLdrOff + layout.ListOffset
	if len(mods) > 0 {
		put(headOff, entryAddr(0))
		put(headOff+ps, entryAddr(len(mods)-1))
	} else {
		put(headOff, head)
		put(headOff+ps, head)
	}

	img.Place(synthBase, blob)
	return &SynthProcess{img: img, peb: synthBase, layout: layout}
}

// Image returns the underlying address space, so callers can place module
// content or patch structures.
func (p *SynthProcess) Image() *Image { return p.img }

// PEB returns the control block address the walk starts from.
func (p *SynthProcess) PEB() uint64 { return p.peb }

// Resolver returns a resolver over this view.
func (p *SynthProcess) Resolver() *Resolver {
	return &Resolver{Space: p.img, PEB: p.peb, Layout: p.layout}
}
