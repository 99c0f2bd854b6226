// Completion: 100% - CLI complete
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"
	"go.uber.org/zap"

	"github.com/xyproto/picrt"
)

// picgen - bake-time companion for position-independent code
//
// Subcommands:
//   picgen hash NAME...            print djb2 hash constants for baking
//   picgen exports FILE            list a DLL's exports with hashes and addresses
//   picgen resolve FILE FUNC       resolve FUNC inside FILE by hash
//   picgen embed-string TEXT       emit a byte-sequence materialization routine
//   picgen embed-wide TEXT         emit a UTF-16 sequence materialization routine
//   picgen embed-float VALUE       emit a scalar materialization routine
//
// Environment:
//   PICGEN_ARCH     target for embed-* (x86_64 or arm64, default x86_64)
//   PICGEN_VERBOSE  enable diagnostic logging

func main() {
	log := zap.NewNop()
	if env.Bool("PICGEN_VERBOSE") {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = l
	}
	defer log.Sync()

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	arch, err := picrt.ParseArch(env.Str("PICGEN_ARCH", "x86_64"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(log, arch, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(log *zap.Logger, arch picrt.Arch, cmd string, args []string) error {
	switch cmd {
	case "hash":
		return cmdHash(args)
	case "exports":
		return cmdExports(log, args)
	case "resolve":
		return cmdResolve(log, args)
	case "embed-string":
		return cmdEmbedString(log, arch, args, false)
	case "embed-wide":
		return cmdEmbedString(log, arch, args, true)
	case "embed-float":
		return cmdEmbedFloat(log, arch, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func usage() {
	fmt.Println("picgen - bake hashes and emit position-independent materialization stubs")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  picgen hash NAME...")
	fmt.Println("  picgen exports FILE.dll")
	fmt.Println("  picgen resolve FILE.dll FUNCTION")
	fmt.Println("  picgen embed-string TEXT")
	fmt.Println("  picgen embed-wide TEXT")
	fmt.Println("  picgen embed-float VALUE|0xBITS")
	fmt.Println()
	fmt.Println("Environment: PICGEN_ARCH (x86_64|arm64), PICGEN_VERBOSE")
}

// cmdHash prints one baked constant per name.
func cmdHash(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("hash: at least one name required")
	}
	for _, n := range names {
		fmt.Printf("0x%08X  %s\n", picrt.HashName(n), n)
	}
	return nil
}

// cmdExports lists every named export of a DLL with its hash and mapped
// address.
func cmdExports(log *zap.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exports: exactly one file required")
	}
	f, err := picrt.LoadImageFile(args[0])
	if err != nil {
		return err
	}
	log.Info("image loaded",
		zap.String("path", f.Path),
		zap.Uint64("base", f.Base),
		zap.Int("sections", len(f.Sections)))

	count := 0
	for e := range f.Exports() {
		fmt.Printf("0x%08X  0x%012X\n", e.NameHash, e.Addr)
		count++
	}
	log.Info("exports walked", zap.Int("count", count))
	if count == 0 {
		return fmt.Errorf("%s: no named exports found", args[0])
	}
	return nil
}

// cmdResolve presents the file as the only module of a synthetic process and
// resolves a function inside it the way the injected code would: by hash.
func cmdResolve(log *zap.Logger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("resolve: FILE and FUNCTION required")
	}
	f, err := picrt.LoadImageFile(args[0])
	if err != nil {
		return err
	}
	modName := filepath.Base(args[0])
	proc := picrt.NewSynthProcess(picrt.Layout64, []picrt.ModuleSpec{
		{Name: modName, Base: f.Base, Image: f.Space},
	})

	modHash := picrt.HashName(modName)
	funcHash := picrt.HashName(args[1])
	log.Info("resolving",
		zap.String("module", modName), zap.Uint32("moduleHash", modHash),
		zap.String("function", args[1]), zap.Uint32("functionHash", funcHash))

	addr := proc.Resolver().ResolveFunction(modHash, funcHash)
	if addr == 0 {
		return fmt.Errorf("%s: %s not found (hash 0x%08X)", modName, args[1], funcHash)
	}
	fmt.Printf("0x%012X  %s!%s\n", addr, modName, args[1])
	return nil
}

// cmdEmbedString emits a sequence materialization routine and dumps it.
func cmdEmbedString(log *zap.Logger, arch picrt.Arch, args []string, wide bool) error {
	if len(args) != 1 {
		return fmt.Errorf("embed-string: exactly one text argument required")
	}
	e := picrt.NewEmitter(arch)
	if wide {
		e.EmitWideSequence(picrt.EmbedWideString(args[0]))
	} else {
		e.EmitByteSequence(picrt.EmbedString(args[0]))
	}
	log.Info("sequence emitted",
		zap.Stringer("arch", arch),
		zap.Int("units", len(args[0])),
		zap.Int("codeBytes", len(e.Bytes())))
	dump(e.Bytes())
	return nil
}

// cmdEmbedFloat emits a scalar materialization routine. The value is either a
// decimal float or an explicit 0x bit pattern.
func cmdEmbedFloat(log *zap.Logger, arch picrt.Arch, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("embed-float: exactly one value required")
	}
	var scalar picrt.Scalar
	if strings.HasPrefix(args[0], "0x") || strings.HasPrefix(args[0], "0X") {
		bits, err := strconv.ParseUint(args[0][2:], 16, 64)
		if err != nil {
			return fmt.Errorf("embed-float: bad bit pattern %q: %v", args[0], err)
		}
		scalar = picrt.ScalarFromBits(picrt.U64FromUint(bits))
	} else {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("embed-float: bad value %q: %v", args[0], err)
		}
		scalar = picrt.EmbedFloat(v)
	}

	e := picrt.NewEmitter(arch)
	e.EmitScalar(scalar)
	log.Info("scalar emitted",
		zap.Stringer("arch", arch),
		zap.Uint64("bits", scalar.Bits().Uint()),
		zap.Int("codeBytes", len(e.Bytes())))
	dump(e.Bytes())
	return nil
}

// dump prints code bytes in rows of sixteen.
func dump(code []byte) {
	for i, b := range code {
		if i > 0 && i%16 == 0 {
			fmt.Println()
		}
		fmt.Printf("%02x ", b)
	}
	fmt.Println()
}
