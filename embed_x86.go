// Completion: 100% - x86-64 embedding emitter complete
package picrt

// x86-64 materialization routines. Convention: RDI holds the destination
// buffer (System V first argument), RAX stages scalar immediates, XMM0
// returns scalar values. Every value written is an instruction operand; the
// routines contain no loads.

// storeByteImmX86 emits MOV BYTE PTR [RDI+disp], imm8 (C6 /0 ib).
func (e *Emitter) storeByteImmX86(disp int, imm uint8) {
	e.buf.Write(0xC6)
	e.modRMDispRDI(0, disp)
	e.buf.Write(imm)
}

// storeWordImmX86 emits MOV WORD PTR [RDI+disp], imm16 (66 C7 /0 iw).
func (e *Emitter) storeWordImmX86(disp int, imm uint16) {
	e.buf.Write(0x66)
	e.buf.Write(0xC7)
	e.modRMDispRDI(0, disp)
	e.buf.WriteU16(imm)
}

// modRMDispRDI writes the ModRM byte and displacement for [RDI+disp] with the
// given opcode-extension reg field.
func (e *Emitter) modRMDispRDI(reg uint8, disp int) {
	rdi, _ := GetRegister(ArchX86_64, "rdi")
	rm := rdi.Encoding & 7
	switch {
	case disp == 0:
		e.buf.Write(0x00 | reg<<3 | rm) // mod=00, no displacement
	case disp >= -128 && disp <= 127:
		e.buf.Write(0x40 | reg<<3 | rm) // mod=01, disp8
		e.buf.Write(uint8(disp))
	default:
		e.buf.Write(0x80 | reg<<3 | rm) // mod=10, disp32
		e.buf.WriteU32(uint32(disp))
	}
}

// byteSeqX86: one byte store per unit, a zero store, RET.
func (e *Emitter) byteSeqX86(units []byte) {
	for i, u := range units {
		e.storeByteImmX86(i, u)
	}
	e.storeByteImmX86(len(units), 0)
	e.buf.Write(0xC3) // RET
}

// wideSeqX86: one word store per unit, a zero store, RET.
func (e *Emitter) wideSeqX86(units []uint16) {
	for i, u := range units {
		e.storeWordImmX86(2*i, u)
	}
	e.storeWordImmX86(2*len(units), 0)
	e.buf.Write(0xC3) // RET
}

// scalarX86: MOV RAX, imm64 (REX.W B8 io), MOVQ XMM0, RAX (66 REX.W 0F 6E /r),
// RET. The pattern travels immediate -> integer register -> vector register
// without touching memory.
func (e *Emitter) scalarX86(bits U64) {
	rax, _ := GetRegister(ArchX86_64, "rax")
	xmm0, _ := GetRegister(ArchX86_64, "xmm0")

	e.buf.Write(0x48)                  // REX.W
	e.buf.Write(0xB8 | rax.Encoding&7) // MOV r64, imm64
	e.buf.WriteU64(bits)

	e.buf.Write(0x66) // operand-size override
	e.buf.Write(0x48) // REX.W
	e.buf.Write(0x0F)
	e.buf.Write(0x6E) // MOVQ xmm, r64
	e.buf.Write(0xC0 | (xmm0.Encoding&7)<<3 | rax.Encoding&7)

	e.buf.Write(0xC3) // RET
}
