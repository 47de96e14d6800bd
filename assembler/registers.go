package assembler

import (
	"strconv"
	"strings"
)

// RegisterNameMap maps every accepted register spelling, numeric (x0..x31)
// and ABI (zero, ra, sp, ...), to its register number.
var RegisterNameMap = map[string]uint32{
	"zero": 0, "ra": 1, "sp": 2, "gp": 3, "tp": 4,
	"t0": 5, "t1": 6, "t2": 7,
	"s0": 8, "fp": 8, "s1": 9,
	"a0": 10, "a1": 11, "a2": 12, "a3": 13, "a4": 14, "a5": 15, "a6": 16, "a7": 17,
	"s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23,
	"s8": 24, "s9": 25, "s10": 26, "s11": 27,
	"t3": 28, "t4": 29, "t5": 30, "t6": 31,
}

func init() {
	for i := uint32(0); i < 32; i++ {
		RegisterNameMap["x"+strconv.Itoa(int(i))] = i
	}
}

// registerABINames gives the preferred ABI spelling for each register number,
// used when rendering hover text.
var registerABINames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// RegisterNumber resolves a register operand to its number. Spellings like
// x07 are accepted the same way x7 is.
func RegisterNumber(name string) (uint32, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if n, ok := RegisterNameMap[name]; ok {
		return n, true
	}
	if strings.HasPrefix(name, "x") {
		n, err := strconv.Atoi(name[1:])
		if err == nil && n >= 0 && n <= 31 {
			return uint32(n), true
		}
	}
	return 0, false
}
