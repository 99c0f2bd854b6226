// Completion: 100% - Loader walk module complete
package picrt

import "iter"

// Walks the loader-maintained module list: process control block -> loader
// data -> doubly linked list of module descriptors. Everything is reached
// through fixed per-architecture offsets; nothing here calls an API or names
// a structure, which is the point.

// ModuleRecord describes one loaded module as seen during a walk. Records are
// produced on the fly and not retained beyond the enumeration that yielded
// them.
type ModuleRecord struct {
	Base     uint64
	NameHash uint32
}

// LoaderLayout carries the fixed offsets of the loader structures for one
// architecture: where the loader data pointer sits inside the process control
// block, where the in-load-order list head sits inside the loader data, and
// where each descriptor keeps its base address and name.
type LoaderLayout struct {
	PtrSize    int    // loader pointer width in bytes
	LdrOffset  uint64 // control block -> loader data pointer
	ListOffset uint64 // loader data -> list head (first link)
	BaseOffset uint64 // descriptor link -> module base address
	NameOffset uint64 // descriptor link -> counted UTF-16 name {lenBytes u16, capBytes u16, pad, buffer ptr}
}

// Layout64 is the 64-bit Windows loader layout (PEB -> Ldr at 0x18,
// InLoadOrderModuleList at 0x10, DllBase at +0x30, BaseDllName at +0x58).
var Layout64 = LoaderLayout{
	PtrSize:    8,
	LdrOffset:  0x18,
	ListOffset: 0x10,
	BaseOffset: 0x30,
	NameOffset: 0x58,
}

// Layout32 is the 32-bit Windows loader layout.
var Layout32 = LoaderLayout{
	PtrSize:    4,
	LdrOffset:  0x0C,
	ListOffset: 0x0C,
	BaseOffset: 0x18,
	NameOffset: 0x2C,
}

// maxModules bounds a walk so that a corrupted circular link cannot spin
// forever. No real process approaches this count.
const maxModules = 4096

// maxNameUnits bounds how many UTF-16 units of a module name are hashed.
const maxNameUnits = 512

// Modules walks the module list reachable from the control block at peb and
// yields one ModuleRecord per descriptor. The sequence is lazy, finite and
// restartable: ranging over it again restarts the walk from the list head.
//
// A missing or corrupt head or link terminates the walk silently; an invalid
// control block yields an empty sequence, and a corrupt mid-list link
// truncates it — records already yielded stand, the unreachable remainder
// reads as nothing found. That is the only failure signal at this layer.
func Modules(as AddressSpace, peb uint64, layout LoaderLayout) iter.Seq[ModuleRecord] {
	return func(yield func(ModuleRecord) bool) {
		ldr, ok := readPtr(as, peb+layout.LdrOffset, layout.PtrSize)
		if !ok || ldr == 0 {
			return
		}
		head := ldr + layout.ListOffset
		cur, ok := readPtr(as, head, layout.PtrSize)
		if !ok {
			return
		}
		for n := 0; cur != 0 && cur != head && n < maxModules; n++ {
			base, ok := readPtr(as, cur+layout.BaseOffset, layout.PtrSize)
			if !ok {
				return
			}
			if base != 0 {
				hash, ok := hashModuleName(as, cur+layout.NameOffset, layout.PtrSize)
				if ok && !yield(ModuleRecord{Base: base, NameHash: hash}) {
					return
				}
			}
			cur, ok = readPtr(as, cur, layout.PtrSize) // forward link is the first field
			if !ok {
				return
			}
		}
	}
}

// hashModuleName hashes the counted UTF-16 name whose descriptor sits at
// addr: {length-in-bytes u16, capacity u16, buffer ptr}. The buffer pointer
// is aligned to the pointer width, so it sits at addr+PtrSize on both
// layouts.
func hashModuleName(as AddressSpace, addr uint64, ptrSize int) (uint32, bool) {
	lenBytes, ok := readU16(as, addr)
	if !ok {
		return 0, false
	}
	buf, ok := readPtr(as, addr+uint64(ptrSize), ptrSize)
	if !ok || buf == 0 {
		return 0, false
	}
	units := int(lenBytes) / 2
	if units > maxNameUnits {
		units = maxNameUnits
	}
	h := newHasher()
	for i := 0; i < units; i++ {
		u, ok := readU16(as, buf+uint64(2*i))
		if !ok {
			return 0, false
		}
		h.add(uint32(u))
	}
	return h.sum(), true
}
