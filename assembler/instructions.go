package assembler

// instruction formats of the RV32I base ISA
type instructionFormat int

const (
	formatR      instructionFormat = iota // <op> rd, rs1, rs2
	formatI                               // <op> rd, rs1, imm
	formatIShift                          // <op> rd, rs1, shamt (funct7 shares the immediate field)
	formatLoad                            // <op> rd, imm(rs1)
	formatStore                           // <op> rs2, imm(rs1)
	formatBranch                          // <op> rs1, rs2, label
	formatU                               // <op> rd, imm
	formatJump                            // <op> rd, label
)

const (
	opcodeRType = 0b0110011
	opcodeIType = 0b0010011
	opcodeLoad  = 0b0000011
	opcodeSType = 0b0100011
	opcodeBType = 0b1100011
	opcodeLUI   = 0b0110111
	opcodeAUIPC = 0b0010111
	opcodeJAL   = 0b1101111
	opcodeJALR  = 0b1100111
)

// descriptor carries everything the field encoder needs to emit one
// mnemonic: the format selects the bit layout, opcode/funct3/funct7 fill the
// fixed fields. swapSources covers bgt and ble, which encode as blt/bge with
// the source registers exchanged.
type descriptor struct {
	format      instructionFormat
	opcode      uint32
	funct3      uint32
	funct7      uint32
	swapSources bool
}

// instructionSet drives classification and encoding for every real mnemonic.
// Pseudo-instructions are rewritten onto these entries before encoding, see
// pseudo.go.
var instructionSet = map[string]descriptor{
	"add":  {format: formatR, opcode: opcodeRType, funct3: 0b000, funct7: 0b0000000},
	"sub":  {format: formatR, opcode: opcodeRType, funct3: 0b000, funct7: 0b0100000},
	"xor":  {format: formatR, opcode: opcodeRType, funct3: 0b100, funct7: 0b0000000},
	"or":   {format: formatR, opcode: opcodeRType, funct3: 0b110, funct7: 0b0000000},
	"and":  {format: formatR, opcode: opcodeRType, funct3: 0b111, funct7: 0b0000000},
	"sll":  {format: formatR, opcode: opcodeRType, funct3: 0b001, funct7: 0b0000000},
	"srl":  {format: formatR, opcode: opcodeRType, funct3: 0b101, funct7: 0b0000000},
	"sra":  {format: formatR, opcode: opcodeRType, funct3: 0b101, funct7: 0b0100000},
	"slt":  {format: formatR, opcode: opcodeRType, funct3: 0b010, funct7: 0b0000000},
	"sltu": {format: formatR, opcode: opcodeRType, funct3: 0b011, funct7: 0b0000000},

	"addi":  {format: formatI, opcode: opcodeIType, funct3: 0b000},
	"xori":  {format: formatI, opcode: opcodeIType, funct3: 0b100},
	"ori":   {format: formatI, opcode: opcodeIType, funct3: 0b110},
	"andi":  {format: formatI, opcode: opcodeIType, funct3: 0b111},
	"slti":  {format: formatI, opcode: opcodeIType, funct3: 0b010},
	"sltiu": {format: formatI, opcode: opcodeIType, funct3: 0b011},

	"slli": {format: formatIShift, opcode: opcodeIType, funct3: 0b001, funct7: 0b0000000},
	"srli": {format: formatIShift, opcode: opcodeIType, funct3: 0b101, funct7: 0b0000000},
	"srai": {format: formatIShift, opcode: opcodeIType, funct3: 0b101, funct7: 0b0100000},

	"jalr": {format: formatI, opcode: opcodeJALR, funct3: 0b000},

	"lb":  {format: formatLoad, opcode: opcodeLoad, funct3: 0b000},
	"lh":  {format: formatLoad, opcode: opcodeLoad, funct3: 0b001},
	"lw":  {format: formatLoad, opcode: opcodeLoad, funct3: 0b010},
	"lbu": {format: formatLoad, opcode: opcodeLoad, funct3: 0b100},
	"lhu": {format: formatLoad, opcode: opcodeLoad, funct3: 0b101},

	"sb": {format: formatStore, opcode: opcodeSType, funct3: 0b000},
	"sh": {format: formatStore, opcode: opcodeSType, funct3: 0b001},
	"sw": {format: formatStore, opcode: opcodeSType, funct3: 0b010},

	"beq":  {format: formatBranch, opcode: opcodeBType, funct3: 0b000},
	"bne":  {format: formatBranch, opcode: opcodeBType, funct3: 0b001},
	"blt":  {format: formatBranch, opcode: opcodeBType, funct3: 0b100},
	"bge":  {format: formatBranch, opcode: opcodeBType, funct3: 0b101},
	"bltu": {format: formatBranch, opcode: opcodeBType, funct3: 0b110},
	"bgeu": {format: formatBranch, opcode: opcodeBType, funct3: 0b111},
	"bgt":  {format: formatBranch, opcode: opcodeBType, funct3: 0b100, swapSources: true},
	"ble":  {format: formatBranch, opcode: opcodeBType, funct3: 0b101, swapSources: true},

	"lui":   {format: formatU, opcode: opcodeLUI},
	"auipc": {format: formatU, opcode: opcodeAUIPC},

	"jal": {format: formatJump, opcode: opcodeJAL},
}

// operandShapes holds the usage string reported when an instruction has the
// wrong operand count for its format.
var operandShapes = map[instructionFormat]string{
	formatR:      "<op> <reg>, <reg>, <reg>",
	formatI:      "<op> <reg>, <reg>, <imm>",
	formatIShift: "<op> <reg>, <reg>, <shamt>",
	formatLoad:   "<op> <reg>, <imm>(<reg>)",
	formatStore:  "<op> <reg>, <imm>(<reg>)",
	formatBranch: "<op> <reg>, <reg>, <label>",
	formatU:      "<op> <reg>, <imm>",
	formatJump:   "<op> <reg>, <label>",
}

func operandCount(f instructionFormat) int {
	switch f {
	case formatR, formatI, formatIShift, formatLoad, formatStore, formatBranch:
		return 3
	default:
		return 2
	}
}

// recognizedMnemonic reports whether the mnemonic names a real or pseudo
// instruction. The first pass counts only recognized instructions so that
// unsupported lines cannot shift label addresses between passes.
func recognizedMnemonic(mnemonic string) bool {
	if _, ok := instructionSet[mnemonic]; ok {
		return true
	}
	_, ok := pseudoInstructions[mnemonic]
	return ok
}
