// Package bytefmt renders raw bytes for humans reading machine dumps and
// traces.
package bytefmt

import "strconv"

// C0Names contains the mnemonics of the classic ASCII control characters.
var C0Names = [32]string{
	"<NUL>", "<SOH>", "<STX>", "<ETX>", "<EOT>", "<ENQ>", "<ACK>", "<BEL>",
	"<BS>", "<HT>", "<NL>", "<VT>", "<NP>", "<CR>", "<SO>", "<SI>",
	"<DLE>", "<DC1>", "<DC2>", "<DC3>", "<DC4>", "<NAK>", "<SYN>", "<ETB>",
	"<CAN>", "<EM>", "<SUB>", "<ESC>", "<FS>", "<GS>", "<RS>", "<US>",
}

// Mnemonic returns the typical name of a control byte, space, or delete; it
// returns "" for any other byte.
func Mnemonic(b byte) string {
	switch {
	case b < 0x20:
		return C0Names[b]
	case b == 0x20:
		return "<SP>"
	case b == 0x7f:
		return "<DEL>"
	}
	return ""
}

// CaretForm computes the ^-escaped printable form of a C0 control byte or
// delete; it returns "" for any other byte.
func CaretForm(b byte) string {
	if b < 0x20 || b == 0x7f {
		return "^" + string(rune(b^0x40))
	}
	return ""
}

// Format renders a byte as a quoted printable character, a mnemonic, or a
// hex escape for bytes outside of ASCII.
func Format(b byte) string {
	if name := Mnemonic(b); name != "" {
		return name
	}
	if b < 0x80 {
		return "'" + string(rune(b)) + "'"
	}
	return `\x` + strconv.FormatUint(uint64(b), 16)
}
