package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/arloliu/nbt/tag"
)

const (
	maxInlineBytes = 32
	maxInlineInts  = 16
)

// writeTree renders a tag tree as indented text, one entry per line.
// Compound entries print in key order so the output is stable.
func writeTree(w io.Writer, root tag.Value) error {
	p := &treePrinter{w: w}

	switch v := root.(type) {
	case *tag.Compound:
		p.printf("Compound %q (%s)\n", v.Name(), plural(v.Len(), "entry", "entries"))
		p.compoundEntries(v, 1)
	case *tag.List:
		p.printf("%s\n", listHeader(v))
		p.listElems(v, 1)
	default:
		p.value("", root, 0)
	}

	return p.err
}

// treePrinter accumulates the first write error so the render code can
// stay free of per-line error plumbing.
type treePrinter struct {
	w   io.Writer
	err error
}

func (p *treePrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *treePrinter) compoundEntries(c *tag.Compound, depth int) {
	keys := c.Keys()
	slices.Sort(keys)
	for _, key := range keys {
		v, _ := c.Get(key)
		p.value(key+": ", v, depth)
	}
}

func (p *treePrinter) listElems(l *tag.List, depth int) {
	for _, elem := range l.Elems {
		p.value("- ", elem, depth)
	}
}

// value prints one entry line (and, for containers, the nested lines).
// The label is either "key: " for compound entries or "- " for list
// elements.
func (p *treePrinter) value(label string, v tag.Value, depth int) {
	indent := strings.Repeat("  ", depth)

	switch t := v.(type) {
	case tag.Byte:
		p.printf("%s%sByte %d\n", indent, label, t)
	case tag.Short:
		p.printf("%s%sShort %d\n", indent, label, t)
	case tag.Int:
		p.printf("%s%sInt %d\n", indent, label, t)
	case tag.Long:
		p.printf("%s%sLong %d\n", indent, label, t)
	case tag.Float:
		p.printf("%s%sFloat %v\n", indent, label, float32(t))
	case tag.Double:
		p.printf("%s%sDouble %v\n", indent, label, float64(t))
	case tag.String:
		p.printf("%s%sString %q\n", indent, label, string(t))
	case tag.ByteArray:
		p.printf("%s%s%s\n", indent, label, byteArrayLine(t))
	case tag.IntArray:
		p.printf("%s%s%s\n", indent, label, intArrayLine(t))
	case *tag.List:
		p.printf("%s%s%s\n", indent, label, listHeader(t))
		p.listElems(t, depth+1)
	case *tag.Compound:
		p.printf("%s%sCompound (%s)\n", indent, label, plural(t.Len(), "entry", "entries"))
		p.compoundEntries(t, depth+1)
	default:
		p.printf("%s%s<nil>\n", indent, label)
	}
}

func listHeader(l *tag.List) string {
	elemID, ok := l.ElementID()
	if !ok {
		return "List (empty)"
	}

	return fmt.Sprintf("List<%s> (%s)", elemID, plural(l.Len(), "element", "elements"))
}

func byteArrayLine(a tag.ByteArray) string {
	if len(a) > maxInlineBytes {
		return fmt.Sprintf("ByteArray (%d bytes)", len(a))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ByteArray (%d bytes)", len(a))
	for _, b := range a {
		fmt.Fprintf(&sb, " %02x", b)
	}

	return sb.String()
}

func intArrayLine(a tag.IntArray) string {
	if len(a) > maxInlineInts {
		return fmt.Sprintf("IntArray (%d ints)", len(a))
	}

	elems := make([]string, len(a))
	for i, v := range a {
		elems[i] = fmt.Sprintf("%d", v)
	}

	return fmt.Sprintf("IntArray (%d ints) [%s]", len(a), strings.Join(elems, ", "))
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}

	return fmt.Sprintf("%d %s", n, pluralForm)
}
