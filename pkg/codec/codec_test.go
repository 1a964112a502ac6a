package codec

import (
	"bytes"
	"testing"
)

type payload struct {
	Name  string
	Count int
	Tags  []string
}

func TestGobRoundTrip(t *testing.T) {
	c := Gob[payload]{}
	in := payload{Name: "job-7", Count: 3, Tags: []string{"a", "b"}}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Name != in.Name || out.Count != in.Count || len(out.Tags) != 2 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestGobScalar(t *testing.T) {
	c := Gob[int]{}
	b, err := c.Encode(42)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != 42 {
		t.Fatalf("got %d", out)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := JSON[map[string]int]{}
	b, err := c.Encode(map[string]int{"x": 1})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["x"] != 1 {
		t.Fatalf("got %v", out)
	}
}

func TestJSONDecodeError(t *testing.T) {
	c := JSON[int]{}
	if _, err := c.Decode([]byte("{")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestRawPassthrough(t *testing.T) {
	c := Raw{}
	in := []byte{0x00, 0xFF, 0x10}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("raw codec altered payload")
	}
}
