// Completion: 100% - Symbol resolution module complete
package picrt

import "fmt"

// Symbol resolution composes the module walk and the export walk:
// (module-name hash, export-name hash) -> address. The Resolver is an
// explicit context object constructed once at process start and passed to
// whatever needs an address; there is no hidden global.

// Baked hash constants for the operating-system entry points the runtime
// must resolve at startup. Each equals HashName of the name shown, under the
// package's normalization rule; hash_test.go holds the bake equation to the
// names themselves.
const (
	HashKernel32      = 0x6DDB9555 // KERNEL32.DLL
	HashVirtualAlloc  = 0x097BC257 // VirtualAlloc
	HashVirtualFree   = 0xE144A60E // VirtualFree
	HashExitProcess   = 0xD154167E // ExitProcess
	HashWriteConsoleW = 0x271DA47A // WriteConsoleW
)

// Resolver locates exported functions in the modules of one process view.
type Resolver struct {
	Space  AddressSpace
	PEB    uint64 // control block address the module walk starts from
	Layout LoaderLayout
}

// ResolveFunction returns the address of the export whose name hashes to
// functionHash inside the first module whose name hashes to moduleHash, or 0
// if either lookup finds nothing. Resolution is a pure function of the
// process view; retrying cannot change the outcome.
func (r *Resolver) ResolveFunction(moduleHash, functionHash uint32) uint64 {
	mod, found := r.Module(moduleHash)
	if !found {
		return 0
	}
	for e := range Exports(r.Space, mod.Base) {
		if e.NameHash == functionHash {
			return e.Addr
		}
	}
	return 0
}

// Module returns the first loaded module whose name hashes to moduleHash.
func (r *Resolver) Module(moduleHash uint32) (ModuleRecord, bool) {
	for m := range Modules(r.Space, r.PEB, r.Layout) {
		if m.NameHash == moduleHash {
			return m, true
		}
	}
	return ModuleRecord{}, false
}

// ============================================================================
// One-shot symbol cache
// ============================================================================

// SymbolCache holds the startup-resolved entry points everything above this
// layer calls through. It is populated exactly once, before any other
// component runs, and never written again; later use is lock-free reads.
//
// The allocator consumes VirtualAlloc/VirtualFree, the console façade
// consumes WriteConsole, and the exit wrapper consumes ExitProcess; those
// collaborators live outside this package and see only these addresses.
type SymbolCache struct {
	ExitProcess  uint64
	VirtualAlloc uint64
	VirtualFree  uint64
	WriteConsole uint64
}

// ResolutionError reports a required entry point that could not be located
// during startup. It is fatal: every later component assumes cached addresses
// are valid, so the only valid response is immediate termination with a
// non-zero status.
type ResolutionError struct {
	ModuleHash   uint32
	FunctionHash uint32
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolution failure: no export %08X in module %08X",
		e.FunctionHash, e.ModuleHash)
}

// requiredSymbol pairs a baked hash with the cache slot it fills.
type requiredSymbol struct {
	functionHash uint32
	slot         func(*SymbolCache) *uint64
}

// requiredSymbols lists the startup set in resolution order. The terminate
// primitive comes first: if anything later fails, the failure path already
// has a way out of the process.
var requiredSymbols = []requiredSymbol{
	{HashExitProcess, func(c *SymbolCache) *uint64 { return &c.ExitProcess }},
	{HashVirtualAlloc, func(c *SymbolCache) *uint64 { return &c.VirtualAlloc }},
	{HashVirtualFree, func(c *SymbolCache) *uint64 { return &c.VirtualFree }},
	{HashWriteConsoleW, func(c *SymbolCache) *uint64 { return &c.WriteConsole }},
}

// NewSymbolCache resolves the required entry points and returns the populated
// cache. The first miss aborts with a *ResolutionError naming the pair that
// failed; a partially filled cache is never returned.
func NewSymbolCache(r *Resolver) (*SymbolCache, error) {
	cache := &SymbolCache{}
	for _, sym := range requiredSymbols {
		addr := r.ResolveFunction(HashKernel32, sym.functionHash)
		if addr == 0 {
			return nil, &ResolutionError{
				ModuleHash:   HashKernel32,
				FunctionHash: sym.functionHash,
			}
		}
		*sym.slot(cache) = addr
	}
	return cache, nil
}
