package assembler

// Word packing for the six RV32I instruction layouts. Register fields are
// masked to 5 bits and immediates to their field width before placement; the
// callers have already range-checked, so masking here only strips the sign
// extension of negative values.

func packRType(opcode, rd, rs1, rs2, funct7, funct3 uint32) uint32 {
	return (funct7 << 25) | ((rs2 & 0x1F) << 20) | ((rs1 & 0x1F) << 15) |
		(funct3 << 12) | ((rd & 0x1F) << 7) | opcode
}

func packIType(opcode, rd, rs1, imm, funct3 uint32) uint32 {
	return ((imm & 0xFFF) << 20) | ((rs1 & 0x1F) << 15) | (funct3 << 12) |
		((rd & 0x1F) << 7) | opcode
}

func packSType(opcode, rs1, rs2, imm, funct3 uint32) uint32 {
	imm &= 0xFFF
	return ((imm >> 5) << 25) | ((rs2 & 0x1F) << 20) | ((rs1 & 0x1F) << 15) |
		(funct3 << 12) | ((imm & 0x1F) << 7) | opcode
}

// packBType places a 13-bit byte offset into the scrambled B-type layout:
// imm[12] at bit 31, imm[10:5] at 30:25, imm[4:1] at 11:8, imm[11] at bit 7.
// Bit 0 of the offset has no home in the encoding and must already be zero.
func packBType(opcode, rs1, rs2, imm, funct3 uint32) uint32 {
	imm &= 0x1FFF
	word := ((rs2 & 0x1F) << 20) | ((rs1 & 0x1F) << 15) | (funct3 << 12) | opcode
	word |= ((imm >> 12) & 0x1) << 31
	word |= ((imm >> 5) & 0x3F) << 25
	word |= ((imm >> 1) & 0xF) << 8
	word |= ((imm >> 11) & 0x1) << 7
	return word
}

func packUType(opcode, rd, imm uint32) uint32 {
	return ((imm & 0xFFFFF) << 12) | ((rd & 0x1F) << 7) | opcode
}

// packJType places a 21-bit byte offset into the scrambled J-type layout:
// imm[20] at bit 31, imm[10:1] at 30:21, imm[11] at bit 20, imm[19:12] at
// 19:12.
func packJType(opcode, rd, imm uint32) uint32 {
	imm &= 0x1FFFFF
	word := ((rd & 0x1F) << 7) | opcode
	word |= ((imm >> 20) & 0x1) << 31
	word |= ((imm >> 1) & 0x3FF) << 21
	word |= ((imm >> 11) & 0x1) << 20
	word |= ((imm >> 12) & 0xFF) << 12
	return word
}

// The decoders below invert the packers. They exist for the round-trip tests
// and for rendering hover text; the assembler itself never decodes.

func Opcode(word uint32) uint32 { return word & 0x7F }

func DecodeRType(word uint32) (opcode, rd, rs1, rs2, funct7, funct3 uint32) {
	opcode = word & 0x7F
	rd = (word >> 7) & 0x1F
	funct3 = (word >> 12) & 0x7
	rs1 = (word >> 15) & 0x1F
	rs2 = (word >> 20) & 0x1F
	funct7 = (word >> 25) & 0x7F
	return
}

func DecodeIType(word uint32) (opcode, rd, rs1, imm, funct3 uint32) {
	opcode = word & 0x7F
	rd = (word >> 7) & 0x1F
	funct3 = (word >> 12) & 0x7
	rs1 = (word >> 15) & 0x1F
	imm = (word >> 20) & 0xFFF
	return
}

func DecodeSType(word uint32) (opcode, rs1, rs2, imm, funct3 uint32) {
	opcode = word & 0x7F
	funct3 = (word >> 12) & 0x7
	rs1 = (word >> 15) & 0x1F
	rs2 = (word >> 20) & 0x1F
	imm = (((word >> 25) & 0x7F) << 5) | ((word >> 7) & 0x1F)
	return
}

func DecodeBType(word uint32) (opcode, rs1, rs2, imm, funct3 uint32) {
	opcode = word & 0x7F
	funct3 = (word >> 12) & 0x7
	rs1 = (word >> 15) & 0x1F
	rs2 = (word >> 20) & 0x1F
	imm = ((word >> 31) & 0x1) << 12
	imm |= ((word >> 7) & 0x1) << 11
	imm |= ((word >> 25) & 0x3F) << 5
	imm |= ((word >> 8) & 0xF) << 1
	return
}

func DecodeUType(word uint32) (opcode, rd, imm uint32) {
	opcode = word & 0x7F
	rd = (word >> 7) & 0x1F
	imm = (word >> 12) & 0xFFFFF
	return
}

func DecodeJType(word uint32) (opcode, rd, imm uint32) {
	opcode = word & 0x7F
	rd = (word >> 7) & 0x1F
	imm = ((word >> 31) & 0x1) << 20
	imm |= ((word >> 21) & 0x3FF) << 1
	imm |= ((word >> 20) & 0x1) << 11
	imm |= ((word >> 12) & 0xFF) << 12
	return
}
