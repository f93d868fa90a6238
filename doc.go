/* Package main: a wide cell Brainfuck machine

The machine interprets a Brainfuck dialect over a circular tape of 30000
bytes. Program text is the instruction stream: there is no parsing step, each
byte of the program is decoded and executed in turn, and any byte that is not
an instruction is a comment.

	>   move the cursor backward by the active width
	<   move the cursor forward by the active width
	+   increment the value under the cursor
	-   decrement the value under the cursor
	.   write the bytes under the cursor to output
	,   read bytes from input into the cursor
	[   if the value under the cursor is zero, skip past the matching ]
	]   jump back to the matching [ to test it again
	2   use 2 byte values for the next instruction
	4   use 4 byte values for the next instruction
	8   use 8 byte values for the next instruction
	;   ignore everything up to, and including, the next newline

Which way is "backward" is only a naming convention: the language only cares
that > and < undo each other.

Values are normally single bytes. The width modifiers 2, 4, and 8 widen
exactly the one instruction that follows them, after which the width returns
to one byte; this happens regardless of what that instruction was, so a
modifier followed by another modifier is cancelled out:

	2+    increments a 16-bit little-endian value
	24+   increments a single byte
	222+  increments a 16-bit value

Multi-byte values are little-endian, wrap around the end of the tape just
like the cursor does, and all arithmetic wraps without error. Input and
output are always one byte at a time; a wide . or , transfers that many
consecutive bytes, leaving the cursor where it started.

A ; comment hides everything on the rest of its line, brackets included,
even while skipping over the body of a loop.

Errors halt the machine, leaving any tape changes and output made so far in
place: an unmatched ] is a syntax error, running out of input or failing to
write output is an i/o error, and exceeding any configured loop nesting limit
exhausts a resource.

*/
package main
