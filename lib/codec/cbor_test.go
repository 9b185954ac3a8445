// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

type sampleOccurrences struct {
	Expression  string      `json:"expression"`
	Direction   string      `json:"direction,omitempty"`
	Occurrences []time.Time `json:"occurrences"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	location := time.FixedZone("UTC+2", 2*60*60)
	original := sampleOccurrences{
		Expression: "0 0 1 1 *",
		Direction:  "forward",
		Occurrences: []time.Time{
			time.Date(2024, 1, 1, 0, 0, 0, 0, location),
			time.Date(2025, 1, 1, 0, 0, 0, 0, location),
		},
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleOccurrences
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Expression != original.Expression || decoded.Direction != original.Direction {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
	if len(decoded.Occurrences) != len(original.Occurrences) {
		t.Fatalf("got %d occurrences, want %d", len(decoded.Occurrences), len(original.Occurrences))
	}
	for i := range original.Occurrences {
		if !decoded.Occurrences[i].Equal(original.Occurrences[i]) {
			t.Errorf("occurrence %d: got %v, want %v", i, decoded.Occurrences[i], original.Occurrences[i])
		}
		_, offset := decoded.Occurrences[i].Zone()
		if offset != 2*60*60 {
			t.Errorf("occurrence %d: offset %d, want %d", i, offset, 2*60*60)
		}
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]any{"minute": []int{0, 30}, "hour": 7, "expression": "0,30 7 * * *"}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestTimeEncodesAsTaggedText(t *testing.T) {
	data, err := Marshal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := cbor.Diagnose(data)
	if err != nil {
		t.Fatalf("cbor.Diagnose: %v", err)
	}
	if want := `0("2024-01-01T00:00:00Z")`; notation != want {
		t.Errorf("notation = %s, want %s", notation, want)
	}
}

func TestOmitemptyRespected(t *testing.T) {
	withDirection := sampleOccurrences{Expression: "* * * * *", Direction: "backward"}
	withoutDirection := sampleOccurrences{Expression: "* * * * *"}

	dataWith, err := Marshal(withDirection)
	if err != nil {
		t.Fatal(err)
	}
	dataWithout, err := Marshal(withoutDirection)
	if err != nil {
		t.Fatal(err)
	}
	if len(dataWithout) >= len(dataWith) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes",
			len(dataWithout), len(dataWith))
	}
}

func TestEncoderStream(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, expression := range []string{"@daily", "@hourly"} {
		if err := encoder.Encode(expression); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}
	notation, err := cbor.Diagnose(buffer.Bytes()[:7])
	if err != nil {
		t.Fatalf("cbor.Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"@daily"`) {
		t.Errorf("notation %q does not contain \"@daily\"", notation)
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var value sampleOccurrences
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &value); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}
