// Completion: 100% - Package documentation complete
//
// Package picrt is a toolkit for building and validating position-independent
// machine code: code that can be copied to an arbitrary address and executed
// with no relocations, no import table and no reads from a constant section.
//
// The package has three layers:
//
//   - Symbol resolution: a djb2 name hash, a loader module-list walker, a PE
//     export-directory walker and a Resolver that composes them into
//     (moduleHash, functionHash) -> address lookups, plus the one-shot
//     SymbolCache populated at startup.
//
//   - Constant embedding: descriptors for text and floating-point literals,
//     and emitters that materialize them as x86-64 or ARM64 instruction
//     sequences built from immediate operands only.
//
//   - Wide arithmetic: U64, I64 and F64, 64-bit integer and IEEE-754 binary64
//     value types implemented entirely from 32-bit words, so that code
//     generated from them never needs a compiler constant pool.
//
// Everything operates on an AddressSpace, so the same walkers serve synthetic
// test images, DLL files loaded from disk and, on Windows, the live process.
package picrt
