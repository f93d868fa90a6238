package fileinput

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
)

// Location names a position within a named Source.
type Location struct {
	Name string
	Line int
	Col  int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Col) }

// Source is a named program text.
type Source struct {
	Name string
	Text []byte
}

// ReadSource reads all of r into a Source; if r implements Name() string, that
// is used for the source name, otherwise a placeholder naming the type of r.
func ReadSource(r io.Reader) (Source, error) {
	text, err := ioutil.ReadAll(r)
	return Source{Name: nameOf(r), Text: text}, err
}

// Open reads the named file into a Source.
func Open(name string) (Source, error) {
	f, err := os.Open(name)
	if err != nil {
		return Source{Name: name}, err
	}
	defer f.Close()
	return ReadSource(f)
}

// Locate returns the 1-based line and column of the given byte offset.
// Offsets past the end of text locate the position just after the last byte.
func (src Source) Locate(offset int) Location {
	text := src.Text
	if offset > len(text) {
		offset = len(text)
	} else if offset < 0 {
		offset = 0
	}
	head := text[:offset]
	loc := Location{Name: src.Name, Line: 1 + bytes.Count(head, []byte{'\n'})}
	loc.Col = 1 + offset - (bytes.LastIndexByte(head, '\n') + 1)
	return loc
}

// Line returns the text of the line containing offset, without its trailing
// newline.
func (src Source) Line(offset int) []byte {
	text := src.Text
	if offset > len(text) {
		offset = len(text)
	} else if offset < 0 {
		offset = 0
	}
	start := bytes.LastIndexByte(text[:offset], '\n') + 1
	end := len(text)
	if i := bytes.IndexByte(text[offset:], '\n'); i >= 0 {
		end = offset + i
	}
	return text[start:end]
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
