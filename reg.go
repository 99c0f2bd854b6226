// Completion: 100% - Register tables complete
package picrt

// Register definitions for the architectures the emitters target. Only the
// registers the embedding conventions touch are listed: the scratch register
// the scalar loads build in, the destination buffer pointer, and their
// floating-point counterparts.

type Register struct {
	Name     string
	Size     int   // size in bits
	Encoding uint8 // encoding for instruction generation
}

// x86-64: RDI carries the destination buffer (first integer argument), RAX
// builds scalar immediates, XMM0 receives scalar results.
var x86Registers = map[string]Register{
	"rax": {Name: "rax", Size: 64, Encoding: 0},
	"rcx": {Name: "rcx", Size: 64, Encoding: 1},
	"rdx": {Name: "rdx", Size: 64, Encoding: 2},
	"rdi": {Name: "rdi", Size: 64, Encoding: 7},
	"rsi": {Name: "rsi", Size: 64, Encoding: 6},

	"xmm0": {Name: "xmm0", Size: 128, Encoding: 0},
	"xmm1": {Name: "xmm1", Size: 128, Encoding: 1},
}

// ARM64: X0 carries the destination buffer and builds scalar immediates,
// W1 stages store values, D0 receives scalar results.
var arm64Registers = map[string]Register{
	"x0": {Name: "x0", Size: 64, Encoding: 0},
	"x1": {Name: "x1", Size: 64, Encoding: 1},
	"w1": {Name: "w1", Size: 32, Encoding: 1},
	"w2": {Name: "w2", Size: 32, Encoding: 2},

	"d0": {Name: "d0", Size: 64, Encoding: 0},
	"d1": {Name: "d1", Size: 64, Encoding: 1},
}

// GetRegister looks up a register by name for the given architecture.
func GetRegister(arch Arch, name string) (Register, bool) {
	switch arch {
	case ArchX86_64:
		r, ok := x86Registers[name]
		return r, ok
	case ArchARM64:
		r, ok := arm64Registers[name]
		return r, ok
	default:
		return Register{}, false
	}
}
