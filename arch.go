// Completion: 100% - Architecture selection complete
package picrt

import "fmt"

// Arch identifies a target instruction set for the embedding emitters.
type Arch int

const (
	ArchX86_64 Arch = iota
	ArchARM64
)

func (a Arch) String() string {
	switch a {
	case ArchX86_64:
		return "x86_64"
	case ArchARM64:
		return "arm64"
	default:
		return "unknown"
	}
}

// ParseArch maps a target name to an Arch. Accepts the common aliases.
func ParseArch(name string) (Arch, error) {
	switch name {
	case "x86_64", "amd64":
		return ArchX86_64, nil
	case "arm64", "aarch64":
		return ArchARM64, nil
	default:
		return 0, fmt.Errorf("unsupported architecture: %s", name)
	}
}
