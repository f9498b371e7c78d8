package kapp

import "strings"

// Form distinguishes the two Kapp variants: a single key action, or an
// ordered composite of Kapps.
type Form int

const (
	FormAtom Form = iota
	FormList
)

// Kapp is the recursive symbolic expression at the heart of the remapper:
// either a single key event (an atom) or an ordered sequence of child
// kapps (a list). Exactly one of Event (FormAtom) or Children (FormList) is
// meaningful for a given value, selected by Form. The zero value is an
// atom (a Press of KeyUnknown), since FormAtom is zero; List() builds the
// empty list.
type Kapp struct {
	Form     Form
	Event    KeyEvent
	Children []Kapp
}

// Atom wraps a single key event as a leaf Kapp.
func Atom(e KeyEvent) Kapp {
	return Kapp{Form: FormAtom, Event: e}
}

// List builds a composite Kapp from an ordered sequence of children. A nil
// or empty slice is a valid, well-formed empty list.
func List(children ...Kapp) Kapp {
	return Kapp{Form: FormList, Children: children}
}

// FromEvent converts a raw key event into the atom kapp the reducer logs
// and evaluates for it. It is the reducer's one call site into this
// package for turning a live OS key event into a kapp.
func FromEvent(e KeyEvent) Kapp {
	return Atom(e)
}

// AtomCount is the recursive atom count: 1 for an atom, the sum of
// children's atom counts for a list.
func (k Kapp) AtomCount() uint32 {
	if k.Form == FormAtom {
		return 1
	}
	var n uint32
	for _, c := range k.Children {
		n += c.AtomCount()
	}
	return n
}

// Equal reports structural equality: two kapps are equal iff they have the
// same form and, recursively, the same content.
func (k Kapp) Equal(other Kapp) bool {
	if k.Form != other.Form {
		return false
	}
	if k.Form == FormAtom {
		return k.Event == other.Event
	}
	if len(k.Children) != len(other.Children) {
		return false
	}
	for i := range k.Children {
		if !k.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Render produces a human-readable form: a pressed-key atom renders as
// "<Name", a released-key atom as "Name>", and a list as "(" followed by
// each child's rendering suffixed with a single space, then ")".
func (k Kapp) Render() string {
	var b strings.Builder
	k.render(&b)
	return b.String()
}

func (k Kapp) render(b *strings.Builder) {
	if k.Form == FormAtom {
		name := stripRenderedName(k.Event.Key.Name())
		if k.Event.Kind == Press {
			b.WriteByte('<')
			b.WriteString(name)
		} else {
			b.WriteString(name)
			b.WriteByte('>')
		}
		return
	}
	b.WriteByte('(')
	for _, c := range k.Children {
		c.render(b)
		b.WriteByte(' ')
	}
	b.WriteByte(')')
}

// stripRenderedName strips whitespace and commas from a key's printable
// identifier. Key.Name() never contains either today, but the strip is
// kept so a future key name can't silently corrupt rendering.
func stripRenderedName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ',':
			return -1
		default:
			return r
		}
	}, name)
}

// CanonicalKey returns a canonical, collision-free string encoding of k
// suitable for use as a map key: a tag-discriminated recursive shape that
// doubles as both a hash key and a serialization form.
func (k Kapp) CanonicalKey() string {
	var b strings.Builder
	k.canonical(&b)
	return b.String()
}

func (k Kapp) canonical(b *strings.Builder) {
	if k.Form == FormAtom {
		b.WriteByte('a')
		if k.Event.Kind == Press {
			b.WriteByte('p')
		} else {
			b.WriteByte('r')
		}
		writeUvarint(b, uint64(k.Event.Key))
		return
	}
	b.WriteByte('l')
	writeUvarint(b, uint64(len(k.Children)))
	for _, c := range k.Children {
		c.canonical(b)
	}
}

// writeUvarint writes n as a length-prefixed decimal so canonical keys never
// need escaping: "2:42" reads back unambiguously regardless of what follows.
func writeUvarint(b *strings.Builder, n uint64) {
	s := uitoa(n)
	b.WriteString(uitoa(uint64(len(s))))
	b.WriteByte(':')
	b.WriteString(s)
}

func uitoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
