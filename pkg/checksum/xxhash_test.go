package checksum

import "testing"

func TestSumDeterministic(t *testing.T) {
	a := Sum([]byte("masterlist content"))
	b := Sum([]byte("masterlist content"))
	if a != b {
		t.Errorf("Expected identical digests, got %s and %s", a, b)
	}

	c := Sum([]byte("different content"))
	if a == c {
		t.Error("Expected different digests for different content")
	}
}
