package core

import (
	"testing"
)

func TestComputeTestConfigHashDeterministic(t *testing.T) {
	params := map[string]interface{}{"lmin": 2, "lmax": 100}
	a := ComputeTestConfigHash("point_parity", 1000, params)
	b := ComputeTestConfigHash("point_parity", 1000, map[string]interface{}{"lmax": 100, "lmin": 2})
	if !Hash(a).Equals(Hash(b)) {
		t.Error("parameter map order must not change the hash")
	}
}

func TestComputeTestConfigHashDiscriminates(t *testing.T) {
	base := ComputeTestConfigHash("point_parity", 1000, map[string]interface{}{"lmax": 100})

	others := []TestConfigHash{
		ComputeTestConfigHash("axis_alignment", 1000, map[string]interface{}{"lmax": 100}),
		ComputeTestConfigHash("point_parity", 2000, map[string]interface{}{"lmax": 100}),
		ComputeTestConfigHash("point_parity", 1000, map[string]interface{}{"lmax": 64}),
		ComputeTestConfigHash("point_parity", 1000, nil),
	}
	for i, h := range others {
		if Hash(base).Equals(Hash(h)) {
			t.Errorf("variant %d collided with the base configuration", i)
		}
	}
}

func TestHashBasics(t *testing.T) {
	h := NewHash([]byte("abc"))
	if h.IsEmpty() {
		t.Error("hash of data is empty")
	}
	if len(h.String()) != 64 {
		t.Errorf("hash length %d, want 64 hex chars", len(h.String()))
	}
	if !h.Equals(NewHash([]byte("abc"))) {
		t.Error("equal inputs must hash equal")
	}
	if h.Equals(NewHash([]byte("abd"))) {
		t.Error("different inputs collided")
	}
}
