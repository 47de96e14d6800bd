package assembler

import (
	"fmt"
	"strings"
)

// instructionHovers holds the markdown shown when the cursor rests on a
// mnemonic. One line each; the encoded word is appended when the line
// assembled cleanly.
var instructionHovers = map[string]string{
	"add":  "**add** rd, rs1, rs2 — rd = rs1 + rs2",
	"sub":  "**sub** rd, rs1, rs2 — rd = rs1 - rs2",
	"xor":  "**xor** rd, rs1, rs2 — rd = rs1 ^ rs2",
	"or":   "**or** rd, rs1, rs2 — rd = rs1 | rs2",
	"and":  "**and** rd, rs1, rs2 — rd = rs1 & rs2",
	"sll":  "**sll** rd, rs1, rs2 — rd = rs1 << rs2",
	"srl":  "**srl** rd, rs1, rs2 — rd = rs1 >> rs2 (logical)",
	"sra":  "**sra** rd, rs1, rs2 — rd = rs1 >> rs2 (arithmetic)",
	"slt":  "**slt** rd, rs1, rs2 — rd = (rs1 < rs2) ? 1 : 0, signed",
	"sltu": "**sltu** rd, rs1, rs2 — rd = (rs1 < rs2) ? 1 : 0, unsigned",

	"addi":  "**addi** rd, rs1, imm — rd = rs1 + imm",
	"xori":  "**xori** rd, rs1, imm — rd = rs1 ^ imm",
	"ori":   "**ori** rd, rs1, imm — rd = rs1 | imm",
	"andi":  "**andi** rd, rs1, imm — rd = rs1 & imm",
	"slli":  "**slli** rd, rs1, shamt — rd = rs1 << shamt",
	"srli":  "**srli** rd, rs1, shamt — rd = rs1 >> shamt (logical)",
	"srai":  "**srai** rd, rs1, shamt — rd = rs1 >> shamt (arithmetic)",
	"slti":  "**slti** rd, rs1, imm — rd = (rs1 < imm) ? 1 : 0, signed",
	"sltiu": "**sltiu** rd, rs1, imm — rd = (rs1 < imm) ? 1 : 0, unsigned",

	"lb":  "**lb** rd, offset, rs1 — load sign-extended byte from rs1 + offset",
	"lh":  "**lh** rd, offset, rs1 — load sign-extended halfword from rs1 + offset",
	"lw":  "**lw** rd, offset, rs1 — load word from rs1 + offset",
	"lbu": "**lbu** rd, offset, rs1 — load zero-extended byte from rs1 + offset",
	"lhu": "**lhu** rd, offset, rs1 — load zero-extended halfword from rs1 + offset",

	"sb": "**sb** rs2, offset, rs1 — store low byte of rs2 to rs1 + offset",
	"sh": "**sh** rs2, offset, rs1 — store low halfword of rs2 to rs1 + offset",
	"sw": "**sw** rs2, offset, rs1 — store rs2 to rs1 + offset",

	"beq":  "**beq** rs1, rs2, target — branch if rs1 == rs2",
	"bne":  "**bne** rs1, rs2, target — branch if rs1 != rs2",
	"blt":  "**blt** rs1, rs2, target — branch if rs1 < rs2, signed",
	"bge":  "**bge** rs1, rs2, target — branch if rs1 >= rs2, signed",
	"bgt":  "**bgt** rs1, rs2, target — branch if rs1 > rs2, signed",
	"ble":  "**ble** rs1, rs2, target — branch if rs1 <= rs2, signed",
	"bltu": "**bltu** rs1, rs2, target — branch if rs1 < rs2, unsigned",
	"bgeu": "**bgeu** rs1, rs2, target — branch if rs1 >= rs2, unsigned",

	"lui":   "**lui** rd, imm — rd = imm << 12",
	"auipc": "**auipc** rd, imm — rd = pc + (imm << 12)",
	"jal":   "**jal** rd, target — rd = pc + 4; jump to target",
	"jalr":  "**jalr** rd, rs1, offset — rd = pc + 4; jump to rs1 + offset",

	"li":  "**li** rd, imm — load immediate (expands to addi rd, x0, imm)",
	"mv":  "**mv** rd, rs — copy register (expands to addi rd, rs, 0)",
	"j":   "**j** target — unconditional jump (expands to jal x0, target)",
	"jr":  "**jr** rs — jump to register (expands to jalr x0, rs, 0)",
	"ret": "**ret** — return (expands to jalr x0, ra, 0)",
}

var registerRoles = [32]string{
	"hard-wired zero",
	"return address",
	"stack pointer",
	"global pointer",
	"thread pointer",
	"temporary",
	"temporary",
	"temporary",
	"saved register / frame pointer",
	"saved register",
	"argument / return value",
	"argument / return value",
	"argument",
	"argument",
	"argument",
	"argument",
	"argument",
	"argument",
	"saved register",
	"saved register",
	"saved register",
	"saved register",
	"saved register",
	"saved register",
	"saved register",
	"saved register",
	"saved register",
	"saved register",
	"temporary",
	"temporary",
	"temporary",
	"temporary",
}

// EvaluateHover returns markdown for the token under position, or false when
// nothing there warrants a hover.
func (p *Program) EvaluateHover(position TextPosition) (string, bool) {
	if position.Line < 0 || position.Line >= len(p.lines) {
		return "", false
	}
	norm := normalizeLine(p.lines[position.Line])

	if norm.hasLabel && tokenContains(norm.label, position.Char) {
		if addr, ok := p.Symbols.Resolve(norm.label.text); ok {
			return fmt.Sprintf("**%s** — label bound to instruction %d (byte address 0x%X)", norm.label.text, addr, addr*4), true
		}
		return fmt.Sprintf("**%s** — label", norm.label.text), true
	}

	for i, t := range norm.tokens {
		if !tokenContains(t, position.Char) {
			continue
		}
		if i == 0 {
			doc, ok := instructionHovers[strings.ToLower(t.text)]
			if !ok {
				return "", false
			}
			if wordIndex, ok := p.lineToWord[position.Line]; ok {
				return fmt.Sprintf("%s\n\nEncoded: `%s`", doc, FormatHex(p.Words[wordIndex])), true
			}
			return doc, true
		}
		if n, ok := RegisterNumber(t.text); ok {
			return fmt.Sprintf("**x%d** (%s) — %s", n, registerABINames[n], registerRoles[n]), true
		}
		if addr, ok := p.Symbols.Resolve(t.text); ok {
			return fmt.Sprintf("**%s** — label bound to instruction %d (byte address 0x%X)", t.text, addr, addr*4), true
		}
		if v, err := parseImmediate(t.text); err == nil {
			return fmt.Sprintf("Integer literal %d (0x%X)", v, uint32(v)), true
		}
		return "", false
	}
	return "", false
}

func tokenContains(t token, char int) bool {
	return char >= t.pos && char < t.pos+len(t.text)
}
