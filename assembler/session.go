package assembler

import (
	"strconv"
	"strings"
)

// Config bounds one assembly session. A zero value means unbounded; limits
// exist for callers that need the historical fixed-capacity behavior, and
// exceeding one produces a capacity diagnostic instead of silent truncation.
type Config struct {
	MaxInstructions int
	MaxLabels       int
	MaxLineLength   int
}

// Session owns the state of one assembly run: the configuration and the
// symbol table built by the first pass. The per-pass instruction cursors are
// local to each pass. Sessions are not safe for concurrent use; assemble
// independent files on independent sessions.
type Session struct {
	config  Config
	symbols *SymbolTable
}

func NewSession(config Config) *Session {
	return &Session{config: config}
}

// Program is the result of assembling one source text: the machine words in
// source order, the symbol table, and every diagnostic produced by either
// pass. A program with error diagnostics still carries the words of the
// lines that encoded cleanly; callers deciding whether to write output
// should consult HasErrors.
type Program struct {
	Words       []uint32
	WordToLine  []int // source line of each emitted word
	Symbols     *SymbolTable
	Diagnostics []Diagnostic

	lines      []string
	lineToWord map[int]int
}

func (p *Program) report(d Diagnostic) {
	p.Diagnostics = append(p.Diagnostics, d)
}

// Assemble runs both passes over source with an unbounded default session.
func Assemble(source string) *Program {
	return NewSession(Config{}).Assemble(source)
}

// Assemble runs the two-pass translation: the first pass walks every line to
// bind labels to instruction indexes, the second re-walks the same lines and
// encodes. All labels are known before the second pass starts, so forward
// and backward references resolve identically.
func (s *Session) Assemble(source string) *Program {
	p := &Program{
		Symbols:    NewSymbolTable(),
		lines:      strings.Split(source, "\n"),
		lineToWord: make(map[int]int),
	}
	s.symbols = p.Symbols
	s.runFirstPass(p)
	s.runSecondPass(p)
	return p
}

func lineRange(lineNum, length int) TextRange {
	return TextRange{
		Start: TextPosition{Line: lineNum},
		End:   TextPosition{Line: lineNum, Char: length},
	}
}

func (s *Session) lineTooLong(raw string) bool {
	return s.config.MaxLineLength > 0 && len(raw) > s.config.MaxLineLength
}

// runFirstPass discovers labels. A label binds to the index of the next
// recognized instruction; pseudo-instructions count as exactly one word.
// Unrecognized mnemonics are not counted, and not reported here either: the
// second pass owns that diagnostic, and skipping them in both passes keeps
// the instruction cursors aligned.
func (s *Session) runFirstPass(p *Program) {
	count := 0
	instructionLimitHit := false
	labelLimitHit := false

	for lineNum, raw := range p.lines {
		if s.lineTooLong(raw) {
			p.report(Errors.LineTooLong(s.config.MaxLineLength, lineRange(lineNum, len(raw))))
			continue
		}
		norm := normalizeLine(raw)

		if norm.hasLabel {
			switch {
			case norm.labelError != "":
				p.report(Errors.InvalidLabelName(norm.label.text, norm.labelError, norm.label.rangeOn(lineNum)))
			case s.config.MaxLabels > 0 && s.symbols.Len() >= s.config.MaxLabels:
				if !labelLimitHit {
					labelLimitHit = true
					p.report(Errors.TooManyLabels(s.config.MaxLabels, norm.label.rangeOn(lineNum)))
				}
			default:
				if firstLine, ok := s.symbols.Define(norm.label.text, uint32(count), lineNum); !ok {
					p.report(Errors.DuplicateLabel(norm.label.text, firstLine, norm.label.rangeOn(lineNum)))
				}
			}
		}

		if norm.empty() || !recognizedMnemonic(strings.ToLower(norm.tokens[0].text)) {
			continue
		}
		if s.config.MaxInstructions > 0 && count >= s.config.MaxInstructions {
			if !instructionLimitHit {
				instructionLimitHit = true
				p.report(Errors.TooManyInstructions(s.config.MaxInstructions, norm.tokens[0].rangeOn(lineNum)))
			}
			continue
		}
		count++
	}
}

// runSecondPass encodes. The pass keeps its own instruction cursor, advanced
// for every recognized instruction whether or not it encodes cleanly, so a
// bad line cannot shift the offsets of the branches around it.
func (s *Session) runSecondPass(p *Program) {
	index := 0

	for lineNum, raw := range p.lines {
		if s.lineTooLong(raw) {
			continue // reported by the first pass
		}
		norm := normalizeLine(raw)
		if norm.empty() {
			continue
		}

		head := norm.tokens[0]
		mnemonic := strings.ToLower(head.text)
		operands := norm.tokens[1:]

		if expansion, ok := pseudoInstructions[mnemonic]; ok {
			if len(operands) != expansion.operands {
				p.report(Errors.MalformedInstruction(mnemonic, pseudoShapes[mnemonic], statementRange(lineNum, head, operands)))
				index++
				continue
			}
			operands = expansion.rewrite(head.pos, operands)
			mnemonic = expansion.target
		}

		desc, ok := instructionSet[mnemonic]
		if !ok {
			p.report(Errors.UnsupportedMnemonic(head.text, head.rangeOn(lineNum)))
			continue
		}
		if s.config.MaxInstructions > 0 && index >= s.config.MaxInstructions {
			continue // reported by the first pass
		}

		word, ok := s.encodeInstruction(p, desc, head, operands, lineNum, int32(index))
		if ok {
			p.lineToWord[lineNum] = len(p.Words)
			p.WordToLine = append(p.WordToLine, lineNum)
			p.Words = append(p.Words, word)
		}
		index++
	}
}

func statementRange(lineNum int, head token, operands []token) TextRange {
	end := head.pos + len(head.text)
	for _, op := range operands {
		if op.pos+len(op.text) > end {
			end = op.pos + len(op.text)
		}
	}
	return TextRange{
		Start: TextPosition{Line: lineNum, Char: head.pos},
		End:   TextPosition{Line: lineNum, Char: end},
	}
}

// encodeInstruction packs one classified instruction into its machine word.
// It returns false, after reporting, when any operand is invalid; no word is
// ever fabricated for a failed line.
func (s *Session) encodeInstruction(p *Program, desc descriptor, head token, operands []token, lineNum int, index int32) (uint32, bool) {
	if len(operands) != operandCount(desc.format) {
		p.report(Errors.MalformedInstruction(strings.ToLower(head.text), operandShapes[desc.format], statementRange(lineNum, head, operands)))
		return 0, false
	}

	switch desc.format {
	case formatR:
		rd, ok := s.register(p, operands[0], lineNum)
		if !ok {
			return 0, false
		}
		rs1, ok := s.register(p, operands[1], lineNum)
		if !ok {
			return 0, false
		}
		rs2, ok := s.register(p, operands[2], lineNum)
		if !ok {
			return 0, false
		}
		return packRType(desc.opcode, rd, rs1, rs2, desc.funct7, desc.funct3), true

	case formatI:
		rd, ok := s.register(p, operands[0], lineNum)
		if !ok {
			return 0, false
		}
		rs1, ok := s.register(p, operands[1], lineNum)
		if !ok {
			return 0, false
		}
		imm, ok := s.immediate(p, operands[2], lineNum, -2048, 4095, 12)
		if !ok {
			return 0, false
		}
		return packIType(desc.opcode, rd, rs1, uint32(imm), desc.funct3), true

	case formatIShift:
		rd, ok := s.register(p, operands[0], lineNum)
		if !ok {
			return 0, false
		}
		rs1, ok := s.register(p, operands[1], lineNum)
		if !ok {
			return 0, false
		}
		shamt, ok := s.immediate(p, operands[2], lineNum, 0, 31, 5)
		if !ok {
			return 0, false
		}
		return packIType(desc.opcode, rd, rs1, desc.funct7<<5|uint32(shamt), desc.funct3), true

	case formatLoad:
		rd, ok := s.register(p, operands[0], lineNum)
		if !ok {
			return 0, false
		}
		imm, ok := s.immediate(p, operands[1], lineNum, -2048, 4095, 12)
		if !ok {
			return 0, false
		}
		base, ok := s.register(p, operands[2], lineNum)
		if !ok {
			return 0, false
		}
		return packIType(desc.opcode, rd, base, uint32(imm), desc.funct3), true

	case formatStore:
		src, ok := s.register(p, operands[0], lineNum)
		if !ok {
			return 0, false
		}
		imm, ok := s.immediate(p, operands[1], lineNum, -2048, 4095, 12)
		if !ok {
			return 0, false
		}
		base, ok := s.register(p, operands[2], lineNum)
		if !ok {
			return 0, false
		}
		return packSType(desc.opcode, base, src, uint32(imm), desc.funct3), true

	case formatBranch:
		rs1, ok := s.register(p, operands[0], lineNum)
		if !ok {
			return 0, false
		}
		rs2, ok := s.register(p, operands[1], lineNum)
		if !ok {
			return 0, false
		}
		if desc.swapSources {
			rs1, rs2 = rs2, rs1
		}
		offset, ok := s.relativeTarget(p, operands[2], lineNum, index)
		if !ok {
			return 0, false
		}
		if offset < -4096 || offset > 4095 {
			p.report(Errors.OffsetOutOfRange(operands[2].text, 13, operands[2].rangeOn(lineNum)))
			return 0, false
		}
		return packBType(desc.opcode, rs1, rs2, uint32(offset), desc.funct3), true

	case formatU:
		rd, ok := s.register(p, operands[0], lineNum)
		if !ok {
			return 0, false
		}
		imm, ok := s.immediate(p, operands[1], lineNum, -524288, 1048575, 20)
		if !ok {
			return 0, false
		}
		return packUType(desc.opcode, rd, uint32(imm)), true

	case formatJump:
		rd, ok := s.register(p, operands[0], lineNum)
		if !ok {
			return 0, false
		}
		offset, ok := s.relativeTarget(p, operands[1], lineNum, index)
		if !ok {
			return 0, false
		}
		if offset < -1048576 || offset > 1048575 {
			p.report(Errors.OffsetOutOfRange(operands[1].text, 21, operands[1].rangeOn(lineNum)))
			return 0, false
		}
		return packJType(desc.opcode, rd, uint32(offset)), true
	}

	return 0, false
}

func (s *Session) register(p *Program, t token, lineNum int) (uint32, bool) {
	n, ok := RegisterNumber(t.text)
	if !ok {
		p.report(Errors.InvalidRegister(t.text, t.rangeOn(lineNum)))
		return 0, false
	}
	return n, true
}

func (s *Session) immediate(p *Program, t token, lineNum int, min, max int64, bits int) (int64, bool) {
	v, err := parseImmediate(t.text)
	if err != nil {
		p.report(Errors.MalformedImmediate(t.text, t.rangeOn(lineNum)))
		return 0, false
	}
	if v < min || v > max {
		p.report(Errors.ImmediateOverflow(t.text, bits, t.rangeOn(lineNum)))
		return 0, false
	}
	return v, true
}

// relativeTarget resolves a branch or jump operand to a byte offset from the
// current instruction. Label addresses are instruction indexes, so the delta
// to the label is a word distance and shifts left by 2 to become a byte
// offset. A target that parses as an immediate is taken as a raw byte
// offset.
func (s *Session) relativeTarget(p *Program, t token, lineNum int, index int32) (int32, bool) {
	if addr, ok := s.symbols.Resolve(t.text); ok {
		return (int32(addr) - index) << 2, true
	}
	if v, err := parseImmediate(t.text); err == nil {
		if v < -(1 << 21) || v > 1<<21 {
			p.report(Errors.OffsetOutOfRange(t.text, 21, t.rangeOn(lineNum)))
			return 0, false
		}
		if v&1 != 0 {
			p.report(Errors.MisalignedOffset(t.text, t.rangeOn(lineNum)))
			return 0, false
		}
		p.report(Warnings.NumericJumpTarget(t.rangeOn(lineNum)))
		return int32(v), true
	}
	if ok, _ := checkLabelName(t.text); ok {
		p.report(Errors.UnresolvedLabel(t.text, t.rangeOn(lineNum)))
	} else {
		p.report(Errors.MalformedImmediate(t.text, t.rangeOn(lineNum)))
	}
	return 0, false
}

// parseImmediate accepts decimal (optionally negative) and 0x-prefixed
// hexadecimal literals. Notably it does not accept octal: a leading zero on
// a decimal literal is just a leading zero.
func parseImmediate(text string) (int64, error) {
	if len(text) > 2 && (strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X")) {
		v, err := strconv.ParseUint(text[2:], 16, 32)
		return int64(v), err
	}
	return strconv.ParseInt(text, 10, 32)
}
