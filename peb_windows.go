//go:build windows

// Completion: 100% - Live process layer complete
package picrt

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Live layer: the walkers run against the calling process's own loader
// structures. This is the run-time half of the contract the rest of the
// package bakes constants for, and it doubles as an end-to-end check that the
// layout offsets match the OS the binary runs on.

// processSpace reads the current process's own memory. The loader structures
// a walk touches are valid by construction, so reads go straight through;
// only the null page is rejected.
type processSpace struct{}

// ReadAt implements AddressSpace over the process's own address space.
func (processSpace) ReadAt(addr uint64, p []byte) bool {
	if addr < 0x10000 || addr+uint64(len(p)) < addr {
		return false
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), len(p))
	CopyMem(p, src)
	return true
}

// CurrentPEB returns the address of the process control block, obtained from
// the loader rather than from a fixed thread-local offset so the Go runtime's
// thread handling cannot interfere.
func CurrentPEB() (uint64, error) {
	var pbi windows.PROCESS_BASIC_INFORMATION
	var retLen uint32
	err := windows.NtQueryInformationProcess(
		windows.CurrentProcess(),
		windows.ProcessBasicInformation,
		unsafe.Pointer(&pbi),
		uint32(unsafe.Sizeof(pbi)),
		&retLen,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to query process information: %v", err)
	}
	return uint64(uintptr(unsafe.Pointer(pbi.PebBaseAddress))), nil
}

// NewProcessResolver returns a resolver over the live process.
func NewProcessResolver() (*Resolver, error) {
	peb, err := CurrentPEB()
	if err != nil {
		return nil, err
	}
	layout := Layout64
	if unsafe.Sizeof(uintptr(0)) == 4 {
		layout = Layout32
	}
	return &Resolver{Space: processSpace{}, PEB: peb, Layout: layout}, nil
}
