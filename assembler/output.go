package assembler

import (
	"bufio"
	"fmt"
	"io"
)

// FormatHex renders one machine word the way the classic toolchain printed
// it: zero-padded, upper-case, 0x-prefixed.
func FormatHex(word uint32) string {
	return fmt.Sprintf("0x%08X", word)
}

// FormatBinary renders one machine word as its full 32 binary digits.
func FormatBinary(word uint32) string {
	return fmt.Sprintf("%032b", word)
}

// WriteHex writes every word, one per line, in FormatHex form. Words that
// happen to encode to zero are written like any other; dropping them would
// desynchronize the listing from the instruction addresses.
func WriteHex(w io.Writer, words []uint32) error {
	return writeWords(w, words, FormatHex)
}

// WriteBinary writes every word, one per line, in FormatBinary form.
func WriteBinary(w io.Writer, words []uint32) error {
	return writeWords(w, words, FormatBinary)
}

func writeWords(w io.Writer, words []uint32, format func(uint32) string) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := bw.WriteString(format(word)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
