package assembler

import "strconv"

// TextPosition and TextRange follow the zero-based line/character convention
// of the language server protocol so diagnostics can be forwarded to editor
// clients without translation.
type TextPosition struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

type TextRange struct {
	Start TextPosition `json:"start"`
	End   TextPosition `json:"end"`
}

type DiagnosticSeverity int

const (
	SeverityError   DiagnosticSeverity = 1
	SeverityWarning DiagnosticSeverity = 2
)

// DiagnosticCode identifies the kind of failure independently of the message
// text. Callers that need to react to a particular failure class key off the
// code, never the message.
type DiagnosticCode string

const (
	CodeUnsupportedMnemonic  DiagnosticCode = "unsupported-mnemonic"
	CodeInvalidRegisterName  DiagnosticCode = "invalid-register-name"
	CodeMalformedImmediate   DiagnosticCode = "malformed-immediate"
	CodeUnresolvedLabel      DiagnosticCode = "unresolved-label"
	CodeDuplicateLabel       DiagnosticCode = "duplicate-label"
	CodeCapacityExceeded     DiagnosticCode = "capacity-exceeded"
	CodeMalformedInstruction DiagnosticCode = "malformed-instruction"
	CodeInvalidLabelName     DiagnosticCode = "invalid-label-name"
	CodeNumericJumpTarget    DiagnosticCode = "numeric-jump-target"
)

// Diagnostic is one reported problem, positioned in the source text. A line
// that produced an error diagnostic never contributes a machine word.
type Diagnostic struct {
	Range    TextRange          `json:"range"`
	Code     DiagnosticCode     `json:"code,omitempty"`
	Message  string             `json:"message"`
	Source   string             `json:"source,omitempty"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
}

// Errors and Warnings namespace the diagnostic constructors so call sites
// read as Errors.UnsupportedMnemonic(...), keeping message wording in one
// place.
type errorSet struct{}

var Errors errorSet

func newError(code DiagnosticCode, message string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Code:     code,
		Message:  message,
		Source:   "assembler",
		Severity: SeverityError,
	}
}

func (errorSet) UnsupportedMnemonic(mnemonic string, r TextRange) Diagnostic {
	return newError(CodeUnsupportedMnemonic, "unsupported mnemonic: \""+mnemonic+"\"", r)
}

func (errorSet) InvalidRegister(name string, r TextRange) Diagnostic {
	return newError(CodeInvalidRegisterName, "expected register, got: \""+name+"\"", r)
}

func (errorSet) MalformedImmediate(literal string, r TextRange) Diagnostic {
	return newError(CodeMalformedImmediate, "malformed immediate: \""+literal+"\"", r)
}

func (errorSet) ImmediateOverflow(literal string, bits int, r TextRange) Diagnostic {
	return newError(CodeMalformedImmediate,
		"immediate \""+literal+"\" does not fit in "+strconv.Itoa(bits)+" bits", r)
}

func (errorSet) OffsetOutOfRange(target string, bits int, r TextRange) Diagnostic {
	return newError(CodeMalformedImmediate,
		"target \""+target+"\" is too far away; offset does not fit in "+strconv.Itoa(bits)+" bits", r)
}

func (errorSet) MisalignedOffset(literal string, r TextRange) Diagnostic {
	return newError(CodeMalformedImmediate, "offset \""+literal+"\" must be a multiple of 2", r)
}

func (errorSet) UnresolvedLabel(name string, r TextRange) Diagnostic {
	return newError(CodeUnresolvedLabel, "unresolved label: \""+name+"\"", r)
}

func (errorSet) DuplicateLabel(name string, firstLine int, r TextRange) Diagnostic {
	return newError(CodeDuplicateLabel,
		"label \""+name+"\" already defined on line "+strconv.Itoa(firstLine+1), r)
}

func (errorSet) InvalidLabelName(name, reason string, r TextRange) Diagnostic {
	return newError(CodeInvalidLabelName, "invalid label name: \""+name+"\", "+reason, r)
}

func (errorSet) MalformedInstruction(mnemonic, shape string, r TextRange) Diagnostic {
	return newError(CodeMalformedInstruction,
		"malformed "+mnemonic+" instruction, expected: "+shape, r)
}

func (errorSet) TooManyInstructions(limit int, r TextRange) Diagnostic {
	return newError(CodeCapacityExceeded,
		"program exceeds the configured limit of "+strconv.Itoa(limit)+" instructions", r)
}

func (errorSet) TooManyLabels(limit int, r TextRange) Diagnostic {
	return newError(CodeCapacityExceeded,
		"program exceeds the configured limit of "+strconv.Itoa(limit)+" labels", r)
}

func (errorSet) LineTooLong(limit int, r TextRange) Diagnostic {
	return newError(CodeCapacityExceeded,
		"line exceeds the configured limit of "+strconv.Itoa(limit)+" characters", r)
}

type warningSet struct{}

var Warnings warningSet

func (warningSet) NumericJumpTarget(r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Code:     CodeNumericJumpTarget,
		Message:  "numeric offset used where a label is expected",
		Source:   "assembler",
		Severity: SeverityWarning,
	}
}

// HasErrors reports whether any diagnostic in the slice is an error (as
// opposed to a warning).
func HasErrors(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
