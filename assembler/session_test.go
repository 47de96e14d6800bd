package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.gatech.edu/ECEInnovation/RISC-V-Assembler/assembler"
)

func validateWords(t *testing.T, program *assembler.Program, expected []uint32) {
	t.Helper()
	require.False(t, assembler.HasErrors(program.Diagnostics),
		"unexpected diagnostics: %v", program.Diagnostics)
	require.Equal(t, len(expected), len(program.Words))
	for i, want := range expected {
		assert.Equalf(t, want, program.Words[i], "word %d", i)
	}
}

func diagnosticCodes(program *assembler.Program) []assembler.DiagnosticCode {
	codes := make([]assembler.DiagnosticCode, 0, len(program.Diagnostics))
	for _, d := range program.Diagnostics {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestProgramRType(t *testing.T) {
	source := `
		add x1, x2, x3
		sub x3, x4, x5
	`
	expected := []uint32{
		0x003100B3,
		0x405201B3,
	}
	validateWords(t, assembler.Assemble(source), expected)
}

func TestProgramIType(t *testing.T) {
	source := `
		addi x5, x0, 10
		addi x1, x0, 1
		addi x2, x0, 2
	`
	expected := []uint32{
		0x00A00293,
		0x00100093,
		0x00200113,
	}
	validateWords(t, assembler.Assemble(source), expected)
}

func TestNegativeImmediateMasksToTwelveBits(t *testing.T) {
	program := assembler.Assemble("addi x1, x0, -1")
	validateWords(t, program, []uint32{0xFFF00093})

	_, _, _, imm, _ := assembler.DecodeIType(program.Words[0])
	assert.Equal(t, uint32(0xFFF), imm)
}

func TestProgramShifts(t *testing.T) {
	source := `
		slli x1, x2, 3
		srai x1, x2, 3
	`
	expected := []uint32{
		0x00311093,
		0x40315093,
	}
	validateWords(t, assembler.Assemble(source), expected)
}

func TestProgramLoadsAndStores(t *testing.T) {
	source := `
		lw x2, 8, x1
		sw x2, 4, x1
	`
	expected := []uint32{
		0x0080A103,
		0x0020A223,
	}
	validateWords(t, assembler.Assemble(source), expected)
}

func TestProgramUpperImmediates(t *testing.T) {
	source := `
		lui x1, 0x12345
		auipc x2, 1
	`
	expected := []uint32{
		0x123450B7,
		0x00001117,
	}
	validateWords(t, assembler.Assemble(source), expected)
}

func TestProgramBranchesAndLabels(t *testing.T) {
	source := `
		label1: addi x1, x0, 1
		addi x2, x0, 2
		beq x1, x2, label1 # should evaluate to -8
	`
	expected := []uint32{
		0x00100093,
		0x00200113,
		0xFE208CE3,
	}
	validateWords(t, assembler.Assemble(source), expected)
}

func TestProgramForwardJump(t *testing.T) {
	source := `
		jal x1, label1
		addi x2, x0, 2
		label1: addi x3, x0, 3
	`
	expected := []uint32{
		0x008000EF,
		0x00200113,
		0x00300193,
	}
	validateWords(t, assembler.Assemble(source), expected)
}

// A recognized instruction on a line with a label binds the label to that
// same instruction, so a branch to the label on its own line loops to
// itself with offset zero.
func TestBranchToOwnLabelIsZeroOffset(t *testing.T) {
	program := assembler.Assemble("loop: beq x0, x0, loop")
	validateWords(t, program, []uint32{0x00000063})
}

func TestSwappedSourceBranches(t *testing.T) {
	direct := assembler.Assemble(`
		top: add x1, x2, x3
		blt x2, x1, top
	`)
	swapped := assembler.Assemble(`
		top: add x1, x2, x3
		bgt x1, x2, top
	`)
	validateWords(t, direct, []uint32{0x003100B3, 0xFE114EE3})
	require.Equal(t, direct.Words, swapped.Words)

	directGE := assembler.Assemble("top: add x1, x2, x3\nbge x2, x1, top")
	swappedLE := assembler.Assemble("top: add x1, x2, x3\nble x1, x2, top")
	require.Equal(t, directGE.Words, swappedLE.Words)
}

func TestPseudoInstructionExpansion(t *testing.T) {
	source := `
		li x5, 10
		mv x3, x4
		jr x5
		ret
	`
	expected := []uint32{
		0x00A00293,
		0x00020193,
		0x00028067,
		0x00008067,
	}
	validateWords(t, assembler.Assemble(source), expected)
}

func TestJumpPseudoCountsAsOneWord(t *testing.T) {
	source := `
		j skip
		addi x1, x0, 1
		skip: addi x2, x0, 2
	`
	expected := []uint32{
		0x0080006F,
		0x00100093,
		0x00200113,
	}
	validateWords(t, assembler.Assemble(source), expected)
}

func TestABIRegisterNames(t *testing.T) {
	numeric := assembler.Assemble("addi x5, x0, 10")
	abi := assembler.Assemble("addi t0, zero, 10")
	validateWords(t, abi, numeric.Words)

	fp := assembler.Assemble("add fp, s0, x8")
	validateWords(t, fp, []uint32{0x00840433})
}

func TestCommentsAndBlankLines(t *testing.T) {
	source := `
		# full-line comment

		addi x1, x0, 1 # trailing comment
		# another comment
	`
	validateWords(t, assembler.Assemble(source), []uint32{0x00100093})
}

func TestAssembleIsDeterministic(t *testing.T) {
	source := `
		start: addi x1, x0, 5
		loop: addi x1, x1, -1
		bne x1, x0, loop
		jal x0, start
	`
	first := assembler.Assemble(source)
	second := assembler.Assemble(source)
	require.Equal(t, first.Words, second.Words)
	require.Equal(t, first.Diagnostics, second.Diagnostics)
}

func TestSessionIsReusable(t *testing.T) {
	session := assembler.NewSession(assembler.Config{})
	first := session.Assemble("top: addi x1, x0, 1\nbeq x0, x0, top")
	second := session.Assemble("addi x2, x0, 2")
	validateWords(t, first, []uint32{0x00100093, 0xFE000EE3})
	validateWords(t, second, []uint32{0x00200113})
}

func TestUnsupportedMnemonic(t *testing.T) {
	program := assembler.Assemble("addx x1, x2, x3")
	assert.Empty(t, program.Words)
	require.Len(t, program.Diagnostics, 1)
	assert.Equal(t, assembler.CodeUnsupportedMnemonic, program.Diagnostics[0].Code)
	assert.Equal(t, 0, program.Diagnostics[0].Range.Start.Line)
}

// An unrecognized line must not occupy an instruction slot: the branch
// around it still sees the same label offsets.
func TestUnsupportedMnemonicDoesNotShiftAddresses(t *testing.T) {
	clean := assembler.Assemble(`
		top: addi x1, x0, 1
		beq x0, x0, top
	`)
	dirty := assembler.Assemble(`
		top: addi x1, x0, 1
		bogus x9
		beq x0, x0, top
	`)
	require.True(t, assembler.HasErrors(dirty.Diagnostics))
	assert.Equal(t, clean.Words, dirty.Words)
}

func TestInvalidRegister(t *testing.T) {
	program := assembler.Assemble("add x1, x2, x40")
	assert.Empty(t, program.Words)
	assert.Contains(t, diagnosticCodes(program), assembler.CodeInvalidRegisterName)
}

func TestMalformedImmediates(t *testing.T) {
	cases := []string{
		"addi x1, x0, banana!",
		"addi x1, x0, 4096",
		"addi x1, x0, -2049",
		"slli x1, x2, 32",
		"lui x1, 0x100000",
	}
	for _, source := range cases {
		program := assembler.Assemble(source)
		assert.Emptyf(t, program.Words, "source %q", source)
		assert.Containsf(t, diagnosticCodes(program), assembler.CodeMalformedImmediate, "source %q", source)
	}
}

func TestHexImmediates(t *testing.T) {
	program := assembler.Assemble("addi x1, x0, 0xFFF")
	validateWords(t, program, []uint32{0xFFF00093})
}

func TestMalformedOperandCount(t *testing.T) {
	program := assembler.Assemble("add x1, x2")
	assert.Empty(t, program.Words)
	assert.Contains(t, diagnosticCodes(program), assembler.CodeMalformedInstruction)
}

func TestUnresolvedLabel(t *testing.T) {
	program := assembler.Assemble("beq x1, x2, nowhere")
	assert.Empty(t, program.Words)
	assert.Contains(t, diagnosticCodes(program), assembler.CodeUnresolvedLabel)
}

func TestDuplicateLabel(t *testing.T) {
	program := assembler.Assemble(`
		here: addi x1, x0, 1
		here: addi x2, x0, 2
	`)
	assert.Contains(t, diagnosticCodes(program), assembler.CodeDuplicateLabel)
}

func TestNumericBranchTarget(t *testing.T) {
	// -8 bytes, same delta as the labeled branch in
	// TestProgramBranchesAndLabels, plus an advisory warning.
	program := assembler.Assemble(`
		addi x1, x0, 1
		addi x2, x0, 2
		beq x1, x2, -8
	`)
	require.False(t, assembler.HasErrors(program.Diagnostics))
	require.Equal(t, []uint32{0x00100093, 0x00200113, 0xFE208CE3}, program.Words)
	assert.Contains(t, diagnosticCodes(program), assembler.CodeNumericJumpTarget)
}

func TestMisalignedNumericTarget(t *testing.T) {
	program := assembler.Assemble("beq x1, x2, 7")
	assert.Empty(t, program.Words)
	assert.Contains(t, diagnosticCodes(program), assembler.CodeMalformedImmediate)
}

func TestBranchOutOfRange(t *testing.T) {
	program := assembler.Assemble("beq x1, x2, 4096")
	assert.Empty(t, program.Words)
	assert.Contains(t, diagnosticCodes(program), assembler.CodeMalformedImmediate)
}

// A failed line never contributes a word, and the words around it survive.
func TestFailedLineEmitsNoWord(t *testing.T) {
	program := assembler.Assemble(`
		addi x1, x0, 1
		addi x2, x0, 99999
		addi x3, x0, 3
	`)
	require.True(t, assembler.HasErrors(program.Diagnostics))
	assert.Equal(t, []uint32{0x00100093, 0x00300193}, program.Words)
}

func TestInstructionLimit(t *testing.T) {
	session := assembler.NewSession(assembler.Config{MaxInstructions: 2})
	program := session.Assemble(`
		addi x1, x0, 1
		addi x2, x0, 2
		addi x3, x0, 3
		addi x4, x0, 4
	`)
	assert.Len(t, program.Words, 2)
	assert.Contains(t, diagnosticCodes(program), assembler.CodeCapacityExceeded)
}

func TestLabelLimit(t *testing.T) {
	session := assembler.NewSession(assembler.Config{MaxLabels: 1})
	program := session.Assemble(`
		one: addi x1, x0, 1
		two: addi x2, x0, 2
	`)
	assert.Contains(t, diagnosticCodes(program), assembler.CodeCapacityExceeded)
}

func TestLineLengthLimit(t *testing.T) {
	session := assembler.NewSession(assembler.Config{MaxLineLength: 10})
	program := session.Assemble("addi x1, x0, 1")
	assert.Empty(t, program.Words)
	assert.Contains(t, diagnosticCodes(program), assembler.CodeCapacityExceeded)
}

func TestDiagnosticPositions(t *testing.T) {
	program := assembler.Assemble("add x1, x2, x40")
	require.Len(t, program.Diagnostics, 1)
	r := program.Diagnostics[0].Range
	assert.Equal(t, 0, r.Start.Line)
	assert.Equal(t, 12, r.Start.Char)
	assert.Equal(t, 15, r.End.Char)
}

func TestWordToLineMapping(t *testing.T) {
	program := assembler.Assemble("\naddi x1, x0, 1\n# gap\naddi x2, x0, 2")
	require.Len(t, program.WordToLine, 2)
	assert.Equal(t, 1, program.WordToLine[0])
	assert.Equal(t, 3, program.WordToLine[1])
}
