package assembler

import "sort"

// SymbolTable holds the label bindings of one assembly session. It is
// populated during the first pass and only read afterwards. Addresses are
// instruction indexes: a label binds to the index of the instruction that
// follows it in program order.
type SymbolTable struct {
	addresses map[string]uint32
	lines     map[string]int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		addresses: make(map[string]uint32),
		lines:     make(map[string]int),
	}
}

// Define binds name to address. The second definition of a name is rejected:
// ok is false and firstLine reports where the name was first defined.
func (t *SymbolTable) Define(name string, address uint32, line int) (firstLine int, ok bool) {
	if existing, defined := t.lines[name]; defined {
		return existing, false
	}
	t.addresses[name] = address
	t.lines[name] = line
	return line, true
}

// Resolve looks a label up by exact name.
func (t *SymbolTable) Resolve(name string) (uint32, bool) {
	addr, ok := t.addresses[name]
	return addr, ok
}

// Line reports the source line a label was defined on.
func (t *SymbolTable) Line(name string) (int, bool) {
	line, ok := t.lines[name]
	return line, ok
}

func (t *SymbolTable) Len() int { return len(t.addresses) }

// Names returns the defined label names in sorted order.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.addresses))
	for name := range t.addresses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
