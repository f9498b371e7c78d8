package kapp

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Wire tags for the binary codec. Encoded once, replayed forever — the
// wire format must stay backward-compatible with every record already
// written to a commit log.
const (
	tagAtom byte = 1
	tagList byte = 2

	wireKindPress   byte = 0
	wireKindRelease byte = 1
)

// Encode serializes k using a compact self-describing binary encoding: tag
// + event kind + key for an atom, tag + length-prefixed children for a
// list. The same codec is used for both append and replay, and round-trips
// exactly.
func Encode(k Kapp) []byte {
	var buf bytes.Buffer
	encodeInto(&buf, k)
	return buf.Bytes()
}

func encodeInto(buf *bytes.Buffer, k Kapp) {
	if k.Form == FormAtom {
		buf.WriteByte(tagAtom)
		if k.Event.Kind == Press {
			buf.WriteByte(wireKindPress)
		} else {
			buf.WriteByte(wireKindRelease)
		}
		var keyBuf [binary.MaxVarintLen64]byte
		n := binary.PutUvarint(keyBuf[:], uint64(k.Event.Key))
		buf.Write(keyBuf[:n])
		return
	}
	buf.WriteByte(tagList)
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(k.Children)))
	buf.Write(lenBuf[:n])
	for _, c := range k.Children {
		encodeInto(buf, c)
	}
}

// Decode deserializes a single Kapp from the front of data and returns it
// along with the remaining, unconsumed bytes. A malformed record is a fatal
// condition for the caller — serialization failure is never recoverable.
func Decode(data []byte) (Kapp, []byte, error) {
	r := bytes.NewReader(data)
	k, err := decodeFrom(r)
	if err != nil {
		return Kapp{}, nil, err
	}
	rest := data[len(data)-r.Len():]
	return k, rest, nil
}

func decodeFrom(r *bytes.Reader) (Kapp, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return Kapp{}, fmt.Errorf("kapp: read tag: %w", err)
	}
	switch tag {
	case tagAtom:
		kindByte, err := r.ReadByte()
		if err != nil {
			return Kapp{}, fmt.Errorf("kapp: read event kind: %w", err)
		}
		key, err := binary.ReadUvarint(r)
		if err != nil {
			return Kapp{}, fmt.Errorf("kapp: read key: %w", err)
		}
		kind := Press
		if kindByte == wireKindRelease {
			kind = Release
		} else if kindByte != wireKindPress {
			return Kapp{}, fmt.Errorf("kapp: invalid event kind byte %d", kindByte)
		}
		return Atom(KeyEvent{Kind: kind, Key: Key(key)}), nil
	case tagList:
		count, err := binary.ReadUvarint(r)
		if err != nil {
			return Kapp{}, fmt.Errorf("kapp: read list length: %w", err)
		}
		children := make([]Kapp, 0, count)
		for i := uint64(0); i < count; i++ {
			c, err := decodeFrom(r)
			if err != nil {
				return Kapp{}, err
			}
			children = append(children, c)
		}
		return List(children...), nil
	default:
		return Kapp{}, fmt.Errorf("kapp: unknown tag %d", tag)
	}
}
