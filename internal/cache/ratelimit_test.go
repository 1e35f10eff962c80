package cache

import "testing"

func TestHashIP(t *testing.T) {
	a := hashIP("192.168.1.1")
	b := hashIP("192.168.1.1")
	c := hashIP("192.168.1.2")

	if a != b {
		t.Error("same IP should hash to same value")
	}
	if a == c {
		t.Error("different IPs should hash to different values")
	}
	if len(a) != 16 {
		t.Errorf("hash length = %d, want 16", len(a))
	}
	if a == "192.168.1.1" {
		t.Error("hash should not expose the raw IP")
	}
}
