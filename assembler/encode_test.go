package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.gatech.edu/ECEInnovation/RISC-V-Assembler/assembler"
)

func TestRTypeFieldPlacement(t *testing.T) {
	// add x1, x2, x3
	program := assembler.Assemble("add x1, x2, x3")
	validateWords(t, program, []uint32{0x003100B3})

	opcode, rd, rs1, rs2, funct7, funct3 := assembler.DecodeRType(program.Words[0])
	assert.Equal(t, uint32(0x33), opcode)
	assert.Equal(t, uint32(1), rd)
	assert.Equal(t, uint32(2), rs1)
	assert.Equal(t, uint32(3), rs2)
	assert.Equal(t, uint32(0), funct7)
	assert.Equal(t, uint32(0), funct3)
}

func TestSTypeImmediateSplit(t *testing.T) {
	// The store immediate splits around the register fields; decoding
	// must stitch the halves back together.
	program := assembler.Assemble("sw x2, 0x7FF, x1")
	require.False(t, assembler.HasErrors(program.Diagnostics))

	opcode, rs1, rs2, imm, funct3 := assembler.DecodeSType(program.Words[0])
	assert.Equal(t, uint32(0x23), opcode)
	assert.Equal(t, uint32(1), rs1)
	assert.Equal(t, uint32(2), rs2)
	assert.Equal(t, uint32(0x7FF), imm)
	assert.Equal(t, uint32(2), funct3)
}

// The branch immediate is scrambled across the word: bit 12 lands in bit 31,
// bit 11 in bit 7. A backward branch exercises the sign bit placement.
func TestBTypeImmediateScramble(t *testing.T) {
	program := assembler.Assemble(`
		top: addi x1, x0, 1
		addi x2, x0, 2
		beq x1, x2, top
	`)
	require.False(t, assembler.HasErrors(program.Diagnostics))

	word := program.Words[2]
	assert.Equal(t, uint32(1), word>>31, "imm[12] must occupy bit 31")

	_, rs1, rs2, imm, _ := assembler.DecodeBType(program.Words[2])
	assert.Equal(t, uint32(1), rs1)
	assert.Equal(t, uint32(2), rs2)
	assert.Equal(t, uint32(0x1FF8), imm) // -8 in 13 bits
}

func TestJTypeImmediateScramble(t *testing.T) {
	program := assembler.Assemble(`
		jal x1, target
		addi x2, x0, 2
		target: addi x3, x0, 3
	`)
	require.False(t, assembler.HasErrors(program.Diagnostics))

	_, rd, imm := assembler.DecodeJType(program.Words[0])
	assert.Equal(t, uint32(1), rd)
	assert.Equal(t, uint32(8), imm)
}

func TestUTypeKeepsTopTwentyBits(t *testing.T) {
	program := assembler.Assemble("lui x1, 0xFFFFF")
	require.False(t, assembler.HasErrors(program.Diagnostics))

	opcode, rd, imm := assembler.DecodeUType(program.Words[0])
	assert.Equal(t, uint32(0x37), opcode)
	assert.Equal(t, uint32(1), rd)
	assert.Equal(t, uint32(0xFFFFF), imm)
	assert.Equal(t, uint32(0xFFFFF0B7), program.Words[0])
}

func TestOpcodeExtraction(t *testing.T) {
	assert.Equal(t, uint32(0x33), assembler.Opcode(0x003100B3))
	assert.Equal(t, uint32(0x13), assembler.Opcode(0x00A00293))
	assert.Equal(t, uint32(0x6F), assembler.Opcode(0x008000EF))
}
