package picrt

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// buildImageFileBytes assembles a minimal PE32+ file on disk layout: 0x400
// bytes of headers, one .edata section at RVA 0x1000 backed by raw data at
// file offset 0x400.
func buildImageFileBytes(imageBase uint64, exports []testExport) []byte {
	const (
		headerSize = 0x400
		edataRVA   = 0x1000
		edataRaw   = 0x400
	)
	block := buildExportBlock(edataRVA, exports)

	raw := make([]byte, headerSize+0x400)
	le := binary.LittleEndian

	le.PutUint16(raw[0:], dosMagic)
	le.PutUint32(raw[lfanewOffset:], 0x80)
	le.PutUint32(raw[0x80:], peSignature)
	le.PutUint16(raw[0x84:], 0x8664) // Machine
	le.PutUint16(raw[0x86:], 1)      // NumberOfSections
	le.PutUint16(raw[0x94:], 240)    // SizeOfOptionalHeader

	opt := 0x98
	le.PutUint16(raw[opt:], optMagicPE32Plus)
	binary.LittleEndian.PutUint64(raw[opt+24:], imageBase)
	le.PutUint32(raw[opt+60:], headerSize)
	le.PutUint32(raw[opt+int(dataDirOffset64):], edataRVA)
	le.PutUint32(raw[opt+int(dataDirOffset64)+4:], uint32(len(block)))

	sec := opt + 240
	copy(raw[sec:], ".edata")
	le.PutUint32(raw[sec+8:], uint32(len(block))) // VirtualSize
	le.PutUint32(raw[sec+12:], edataRVA)          // VirtualAddress
	le.PutUint32(raw[sec+16:], 0x400)             // SizeOfRawData
	le.PutUint32(raw[sec+20:], edataRaw)          // PointerToRawData

	copy(raw[edataRaw:], block)
	return raw
}

func TestLoadImageBytes(t *testing.T) {
	base := uint64(0x0000000180000000)
	raw := buildImageFileBytes(base, []testExport{
		{"VirtualAlloc", 0x1100},
		{"VirtualFree", 0x1200},
	})

	f, err := loadImageBytes("synthetic.dll", raw)
	if err != nil {
		t.Fatal(err)
	}
	if f.Base != base {
		t.Errorf("Base = %#x, want %#x", f.Base, base)
	}
	if f.Machine != 0x8664 {
		t.Errorf("Machine = %#x, want 0x8664", f.Machine)
	}
	if len(f.Sections) != 1 || f.Sections[0].GetName() != ".edata" {
		t.Fatalf("sections = %+v", f.Sections)
	}

	// The mapped view must satisfy the same export walk as a live module.
	var got []ExportEntry
	for e := range f.Exports() {
		got = append(got, e)
	}
	want := []ExportEntry{
		{NameHash: HashVirtualAlloc, Addr: base + 0x1100},
		{NameHash: HashVirtualFree, Addr: base + 0x1200},
	}
	if len(got) != len(want) {
		t.Fatalf("walked %d exports, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("export %d = %+v, want %+v", i, got[i], w)
		}
	}
}

func TestLoadImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.dll")
	raw := buildImageFileBytes(0x10000000, []testExport{{"ExitProcess", 0x1080}})
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadImageFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for e := range f.Exports() {
		if e.NameHash != HashExitProcess {
			t.Errorf("NameHash = 0x%08X, want 0x%08X", e.NameHash, uint32(HashExitProcess))
		}
		if e.Addr != 0x10000000+0x1080 {
			t.Errorf("Addr = %#x", e.Addr)
		}
	}

	if _, err := LoadImageFile(filepath.Join(t.TempDir(), "missing.dll")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoadImageBytesRejectsGarbage(t *testing.T) {
	good := buildImageFileBytes(0x10000000, nil)

	cases := map[string]func() []byte{
		"short file": func() []byte {
			return good[:16]
		},
		"bad DOS magic": func() []byte {
			b := append([]byte(nil), good...)
			b[0], b[1] = 'X', 'Y'
			return b
		},
		"lfanew out of range": func() []byte {
			b := append([]byte(nil), good...)
			binary.LittleEndian.PutUint32(b[lfanewOffset:], 0xFFFFFF00)
			return b
		},
		"bad PE signature": func() []byte {
			b := append([]byte(nil), good...)
			binary.LittleEndian.PutUint32(b[0x80:], 0xDEADBEEF)
			return b
		},
		"unknown optional magic": func() []byte {
			b := append([]byte(nil), good...)
			binary.LittleEndian.PutUint16(b[0x98:], 0x0333)
			return b
		},
	}
	for name, build := range cases {
		if _, err := loadImageBytes(name, build()); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadImagePE32(t *testing.T) {
	// Same layout with a PE32 optional header: 32-bit ImageBase at +28,
	// export directory entry at +96.
	const (
		headerSize = 0x400
		edataRVA   = 0x1000
	)
	block := buildExportBlock(edataRVA, []testExport{{"WriteConsoleW", 0x1300}})

	raw := make([]byte, headerSize+0x400)
	le := binary.LittleEndian
	le.PutUint16(raw[0:], dosMagic)
	le.PutUint32(raw[lfanewOffset:], 0x80)
	le.PutUint32(raw[0x80:], peSignature)
	le.PutUint16(raw[0x84:], 0x014C) // i386
	le.PutUint16(raw[0x86:], 1)
	le.PutUint16(raw[0x94:], 224) // SizeOfOptionalHeader (PE32)

	opt := 0x98
	le.PutUint16(raw[opt:], optMagicPE32)
	le.PutUint32(raw[opt+28:], 0x00400000) // ImageBase
	le.PutUint32(raw[opt+60:], headerSize)
	le.PutUint32(raw[opt+int(dataDirOffset32):], edataRVA)
	le.PutUint32(raw[opt+int(dataDirOffset32)+4:], uint32(len(block)))

	sec := opt + 224
	copy(raw[sec:], ".edata")
	le.PutUint32(raw[sec+8:], uint32(len(block)))
	le.PutUint32(raw[sec+12:], edataRVA)
	le.PutUint32(raw[sec+16:], 0x400)
	le.PutUint32(raw[sec+20:], headerSize)
	copy(raw[headerSize:], block)

	f, err := loadImageBytes("fake32.dll", raw)
	if err != nil {
		t.Fatal(err)
	}
	if f.Base != 0x00400000 {
		t.Errorf("Base = %#x, want 0x00400000", f.Base)
	}
	found := false
	for e := range f.Exports() {
		found = true
		if e.Addr != 0x00400000+0x1300 {
			t.Errorf("Addr = %#x", e.Addr)
		}
	}
	if !found {
		t.Error("no exports walked from PE32 image")
	}
}
