package kapp

import "testing"

// Expectations:
//   - Decode(Encode(k)) reproduces k exactly (structural equality) for an atom
//   - ...and for a list, including nested lists and an empty list
//   - Decode leaves no unconsumed bytes when given exactly one encoded record
func TestCodecRoundTrip(t *testing.T) {
	cases := []Kapp{
		Atom(PressOf(KeyA)),
		Atom(ReleaseOf(KeyMetaLeft)),
		List(),
		List(Atom(PressOf(KeyJ)), Atom(ReleaseOf(KeyJ))),
		List(List(Atom(PressOf(KeyA))), Atom(ReleaseOf(KeyB))),
	}
	for _, k := range cases {
		encoded := Encode(k)
		got, rest, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%v) error: %v", k, err)
		}
		if !got.Equal(k) {
			t.Errorf("round trip mismatch: got %v, want %v", got, k)
		}
		if len(rest) != 0 {
			t.Errorf("expected no unconsumed bytes, got %d", len(rest))
		}
	}
}

// Expectations:
//   - Multiple encoded records concatenated back-to-back decode in order,
//     each call consuming exactly its own bytes and returning the remainder
func TestCodecSequentialDecode(t *testing.T) {
	k1 := Atom(PressOf(KeyA))
	k2 := Atom(ReleaseOf(KeyA))
	data := append(Encode(k1), Encode(k2)...)

	got1, rest, err := Decode(data)
	if err != nil {
		t.Fatalf("first decode error: %v", err)
	}
	if !got1.Equal(k1) {
		t.Fatalf("first decode mismatch: got %v, want %v", got1, k1)
	}

	got2, rest2, err := Decode(rest)
	if err != nil {
		t.Fatalf("second decode error: %v", err)
	}
	if !got2.Equal(k2) {
		t.Fatalf("second decode mismatch: got %v, want %v", got2, k2)
	}
	if len(rest2) != 0 {
		t.Fatalf("expected no trailing bytes, got %d", len(rest2))
	}
}

// Expectations:
//   - Decode on truncated/empty input returns an error, not a panic
func TestCodecDecodeErrors(t *testing.T) {
	if _, _, err := Decode(nil); err == nil {
		t.Fatalf("expected error decoding empty input")
	}
	if _, _, err := Decode([]byte{tagAtom}); err == nil {
		t.Fatalf("expected error decoding truncated atom")
	}
	if _, _, err := Decode([]byte{tagList, 5}); err == nil {
		t.Fatalf("expected error decoding list with missing children")
	}
	if _, _, err := Decode([]byte{0xFF}); err == nil {
		t.Fatalf("expected error decoding unknown tag")
	}
}
