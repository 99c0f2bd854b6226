package picrt

import "testing"

// The canonical scenario: one module, KERNEL32.DLL at base 0x10000000,
// exporting WriteConsoleW at RVA 0x1000.
func kernel32Process(exports []testExport) *SynthProcess {
	base := uint64(0x10000000)
	return NewSynthProcess(Layout64, []ModuleSpec{
		{Name: "KERNEL32.DLL", Base: base, Image: buildModuleImage(base, exports)},
	})
}

func TestResolveFunction(t *testing.T) {
	p := kernel32Process([]testExport{{"WriteConsoleW", 0x1000}})
	r := p.Resolver()

	addr := r.ResolveFunction(HashName("KERNEL32.DLL"), HashName("WriteConsoleW"))
	if addr != 0x10001000 {
		t.Fatalf("ResolveFunction = 0x%X, want 0x10001000", addr)
	}
}

func TestResolveFunctionAbsent(t *testing.T) {
	p := kernel32Process([]testExport{{"WriteConsoleW", 0x1000}})
	r := p.Resolver()

	if addr := r.ResolveFunction(HashKernel32, HashName("NoSuchFunc")); addr != 0 {
		t.Errorf("absent export resolved to 0x%X, want 0", addr)
	}
	if addr := r.ResolveFunction(HashName("absent.dll"), HashWriteConsoleW); addr != 0 {
		t.Errorf("absent module resolved to 0x%X, want 0", addr)
	}
}

func TestResolveFirstModuleWins(t *testing.T) {
	// Two modules hashing the same name: the first in load order is used.
	base1, base2 := uint64(0x10000000), uint64(0x20000000)
	p := NewSynthProcess(Layout64, []ModuleSpec{
		{Name: "dup.dll", Base: base1, Image: buildModuleImage(base1, []testExport{{"Fn", 0x100}})},
		{Name: "dup.dll", Base: base2, Image: buildModuleImage(base2, []testExport{{"Fn", 0x200}})},
	})
	addr := p.Resolver().ResolveFunction(HashName("dup.dll"), HashName("Fn"))
	if addr != base1+0x100 {
		t.Fatalf("resolved 0x%X, want the first module's 0x%X", addr, base1+0x100)
	}
}

func TestNewSymbolCache(t *testing.T) {
	p := kernel32Process([]testExport{
		{"ExitProcess", 0x4000},
		{"VirtualAlloc", 0x1000},
		{"VirtualFree", 0x2000},
		{"WriteConsoleW", 0x3000},
	})

	cache, err := NewSymbolCache(p.Resolver())
	if err != nil {
		t.Fatalf("NewSymbolCache: %v", err)
	}
	base := uint64(0x10000000)
	if cache.ExitProcess != base+0x4000 {
		t.Errorf("ExitProcess = 0x%X", cache.ExitProcess)
	}
	if cache.VirtualAlloc != base+0x1000 {
		t.Errorf("VirtualAlloc = 0x%X", cache.VirtualAlloc)
	}
	if cache.VirtualFree != base+0x2000 {
		t.Errorf("VirtualFree = 0x%X", cache.VirtualFree)
	}
	if cache.WriteConsole != base+0x3000 {
		t.Errorf("WriteConsole = 0x%X", cache.WriteConsole)
	}
}

func TestNewSymbolCacheResolutionFailure(t *testing.T) {
	// WriteConsoleW missing: startup must fail with the exact pair named,
	// and no partial cache may escape.
	p := kernel32Process([]testExport{
		{"ExitProcess", 0x4000},
		{"VirtualAlloc", 0x1000},
		{"VirtualFree", 0x2000},
	})

	cache, err := NewSymbolCache(p.Resolver())
	if cache != nil {
		t.Fatalf("partial cache returned: %+v", cache)
	}
	re, ok := err.(*ResolutionError)
	if !ok {
		t.Fatalf("error type %T, want *ResolutionError", err)
	}
	if re.ModuleHash != HashKernel32 || re.FunctionHash != HashWriteConsoleW {
		t.Errorf("failure pair = %08X/%08X, want KERNEL32/WriteConsoleW", re.ModuleHash, re.FunctionHash)
	}
}

func TestTerminateResolvedFirst(t *testing.T) {
	// With an empty export table every required symbol fails; the reported
	// failure must be the terminate primitive, because it resolves first.
	p := kernel32Process(nil)
	_, err := NewSymbolCache(p.Resolver())
	re, ok := err.(*ResolutionError)
	if !ok {
		t.Fatalf("error type %T, want *ResolutionError", err)
	}
	if re.FunctionHash != HashExitProcess {
		t.Errorf("first failure = 0x%08X, want ExitProcess 0x%08X", re.FunctionHash, uint32(HashExitProcess))
	}
}
