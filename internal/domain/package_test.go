package domain

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestIDSetJSON(t *testing.T) {
	b, err := json.Marshal(NewIDSet(14, 12, 14))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[12,14]" {
		t.Fatalf("Marshal = %s, want [12,14]", b)
	}

	var s IDSet
	if err := json.Unmarshal([]byte("[3,1]"), &s); err != nil {
		t.Fatal(err)
	}
	if !s.Has(1) || !s.Has(3) || len(s) != 2 {
		t.Fatalf("Unmarshal = %v", s.Sorted())
	}
	if !s.ContainsAny([]int{9, 3}) || s.ContainsAny([]int{9}) {
		t.Fatal("ContainsAny mismatch")
	}
}
