// Completion: 100% - Image file loading complete
package picrt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"iter"
	"os"
	"strings"
)

// Loads a PE file from disk and presents it as an Image mapped at its
// preferred base, headers at base and each section at base+VirtualAddress.
// The export walker and resolver then treat the file exactly like a live
// module, so hash constants can be baked and verified against the same DLLs
// the generated code will meet at run time.

// coffHeader is the COFF file header.
type coffHeader struct {
	Machine              uint16
	NumberOfSections     uint16
	TimeDateStamp        uint32
	PointerToSymbolTable uint32
	NumberOfSymbols      uint32
	SizeOfOptionalHeader uint16
	Characteristics      uint16
}

// sectionHeader is a PE section header.
type sectionHeader struct {
	Name                 [8]byte
	VirtualSize          uint32
	VirtualAddress       uint32
	SizeOfRawData        uint32
	PointerToRawData     uint32
	PointerToRelocations uint32
	PointerToLinenumbers uint32
	NumberOfRelocations  uint16
	NumberOfLinenumbers  uint16
	Characteristics      uint32
}

// GetName returns the section name, trimming padding.
func (sh *sectionHeader) GetName() string {
	name := string(sh.Name[:])
	if idx := strings.IndexByte(name, 0); idx != -1 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}

// ImageFile is a PE file mapped into a synthetic address space.
type ImageFile struct {
	Path     string
	Base     uint64 // preferred image base
	Machine  uint16
	Space    *Image
	Sections []sectionHeader
}

// LoadImageFile reads path, validates the PE headers and maps the image at
// its preferred base. PE32+ and PE32 files are both accepted; the loader
// never applies relocations, which is consistent with the position-
// independent contract everything downstream obeys.
func LoadImageFile(path string) (*ImageFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %v", err)
	}
	return loadImageBytes(path, raw)
}

func loadImageBytes(path string, raw []byte) (*ImageFile, error) {
	if len(raw) < 0x40 || binary.LittleEndian.Uint16(raw) != dosMagic {
		return nil, fmt.Errorf("%s: not a PE file (bad DOS magic)", path)
	}
	lfanew := binary.LittleEndian.Uint32(raw[lfanewOffset:])
	if uint64(lfanew)+4 > uint64(len(raw)) {
		return nil, fmt.Errorf("%s: PE signature offset out of range", path)
	}
	if binary.LittleEndian.Uint32(raw[lfanew:]) != peSignature {
		return nil, fmt.Errorf("%s: invalid PE signature", path)
	}

	r := bytes.NewReader(raw[lfanew+4:])
	var coff coffHeader
	if err := binary.Read(r, binary.LittleEndian, &coff); err != nil {
		return nil, fmt.Errorf("%s: failed to read COFF header: %v", path, err)
	}

	optOff := uint64(lfanew) + 4 + 20
	if optOff+2 > uint64(len(raw)) {
		return nil, fmt.Errorf("%s: truncated optional header", path)
	}
	optMagic := binary.LittleEndian.Uint16(raw[optOff:])

	var base uint64
	var sizeOfHeaders uint32
	switch optMagic {
	case optMagicPE32Plus:
		// ImageBase at +24, SizeOfHeaders at +60.
		if optOff+64 > uint64(len(raw)) {
			return nil, fmt.Errorf("%s: truncated PE32+ optional header", path)
		}
		base = binary.LittleEndian.Uint64(raw[optOff+24:])
		sizeOfHeaders = binary.LittleEndian.Uint32(raw[optOff+60:])
	case optMagicPE32:
		// ImageBase at +28, SizeOfHeaders at +60.
		if optOff+64 > uint64(len(raw)) {
			return nil, fmt.Errorf("%s: truncated PE32 optional header", path)
		}
		base = uint64(binary.LittleEndian.Uint32(raw[optOff+28:]))
		sizeOfHeaders = binary.LittleEndian.Uint32(raw[optOff+60:])
	default:
		return nil, fmt.Errorf("%s: unknown optional header magic 0x%04x", path, optMagic)
	}

	secOff := optOff + uint64(coff.SizeOfOptionalHeader)
	sections := make([]sectionHeader, coff.NumberOfSections)
	sr := bytes.NewReader(raw)
	if _, err := sr.Seek(int64(secOff), 0); err != nil {
		return nil, fmt.Errorf("%s: failed to seek to section headers: %v", path, err)
	}
	if err := binary.Read(sr, binary.LittleEndian, sections); err != nil {
		return nil, fmt.Errorf("%s: failed to read section headers: %v", path, err)
	}

	img := NewImage()

	// Headers map at the base.
	if uint64(sizeOfHeaders) > uint64(len(raw)) {
		sizeOfHeaders = uint32(len(raw))
	}
	hdr := make([]byte, sizeOfHeaders)
	CopyMem(hdr, raw[:sizeOfHeaders])
	img.Place(base, hdr)

	// Each section maps at base+VA, raw data padded out to its virtual size.
	for i := range sections {
		s := &sections[i]
		vsize := s.VirtualSize
		if vsize == 0 {
			vsize = s.SizeOfRawData
		}
		data := make([]byte, vsize)
		if s.PointerToRawData != 0 && uint64(s.PointerToRawData) < uint64(len(raw)) {
			end := uint64(s.PointerToRawData) + uint64(s.SizeOfRawData)
			if end > uint64(len(raw)) {
				end = uint64(len(raw))
			}
			CopyMem(data, raw[s.PointerToRawData:end])
		}
		img.Place(base+uint64(s.VirtualAddress), data)
	}

	return &ImageFile{
		Path:     path,
		Base:     base,
		Machine:  coff.Machine,
		Space:    img,
		Sections: sections,
	}, nil
}

// Exports walks the mapped file's export directory.
func (f *ImageFile) Exports() iter.Seq[ExportEntry] {
	return Exports(f.Space, f.Base)
}
