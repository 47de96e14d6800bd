package assembler

// A pseudo-instruction is rewritten onto the operand shape of a real
// instruction before encoding. Each expansion is exactly one word wide, so
// instruction-count addressing is unaffected by expansion. Injected operands
// borrow the position of the pseudo mnemonic, which is the text a diagnostic
// about them should point at.
type pseudoExpansion struct {
	target   string
	operands int
	rewrite  func(at int, operands []token) []token
}

func syntheticToken(text string, at int) token {
	return token{text: text, pos: at}
}

var pseudoInstructions = map[string]pseudoExpansion{
	// li rd, imm  ->  addi rd, x0, imm
	// Only the single-word form is supported: the immediate must fit in the
	// signed 12-bit field of addi.
	"li": {
		target:   "addi",
		operands: 2,
		rewrite: func(at int, operands []token) []token {
			return []token{operands[0], syntheticToken("x0", at), operands[1]}
		},
	},
	// mv rd, rs  ->  addi rd, rs, 0
	"mv": {
		target:   "addi",
		operands: 2,
		rewrite: func(at int, operands []token) []token {
			return []token{operands[0], operands[1], syntheticToken("0", at)}
		},
	},
	// j label  ->  jal x0, label
	"j": {
		target:   "jal",
		operands: 1,
		rewrite: func(at int, operands []token) []token {
			return []token{syntheticToken("x0", at), operands[0]}
		},
	},
	// jr rs  ->  jalr x0, rs, 0
	"jr": {
		target:   "jalr",
		operands: 1,
		rewrite: func(at int, operands []token) []token {
			return []token{syntheticToken("x0", at), operands[0], syntheticToken("0", at)}
		},
	},
	// ret  ->  jalr x0, ra, 0
	"ret": {
		target:   "jalr",
		operands: 0,
		rewrite: func(at int, operands []token) []token {
			return []token{syntheticToken("x0", at), syntheticToken("ra", at), syntheticToken("0", at)}
		},
	},
}

// pseudoShapes holds the usage strings reported when a pseudo-instruction is
// written with the wrong operand count.
var pseudoShapes = map[string]string{
	"li":  "li <reg>, <imm>",
	"mv":  "mv <reg>, <reg>",
	"j":   "j <label>",
	"jr":  "jr <reg>",
	"ret": "ret",
}
