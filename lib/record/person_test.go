package record

import (
	"strconv"
	"testing"
)

// TestNewPerson tests the fixed fields of the generated record
func TestNewPerson(t *testing.T) {
	p := NewPerson(5)

	if p.ID != PersonID {
		t.Errorf("Expected id %d, got %d", PersonID, p.ID)
	}
	if p.Name != PersonName {
		t.Errorf("Expected name %q, got %q", PersonName, p.Name)
	}
	if len(p.Tags) != TagCount {
		t.Fatalf("Expected %d tags, got %d", TagCount, len(p.Tags))
	}
	for i, tag := range p.Tags {
		if tag != int32(i) {
			t.Errorf("Tag %d should be %d, got %d", i, i, tag)
		}
	}
	if len(p.Logs) != 5 {
		t.Fatalf("Expected 5 logs, got %d", len(p.Logs))
	}
}

// TestNewPersonLogs tests the content of each generated log entry
func TestNewPersonLogs(t *testing.T) {
	p := NewPerson(100)

	for i, l := range p.Logs {
		if l.ID != int32(i) {
			t.Errorf("Log %d: expected id %d, got %d", i, i, l.ID)
		}
		if want := "Log Contents..." + strconv.Itoa(i); l.Content != want {
			t.Errorf("Log %d: expected content %q, got %q", i, want, l.Content)
		}
		if l.Status != int32(i%2) {
			t.Errorf("Log %d: expected status %d, got %d", i, i%2, l.Status)
		}
		if l.Times != 10000000+int64(i) {
			t.Errorf("Log %d: expected times %d, got %d", i, 10000000+i, l.Times)
		}
	}
}

// TestNewPersonEmpty tests that zero and negative amounts produce no logs
func TestNewPersonEmpty(t *testing.T) {
	for _, n := range []int{0, -3} {
		p := NewPerson(n)
		if p.Logs == nil {
			t.Errorf("NewPerson(%d): logs should be an empty slice, not nil", n)
		}
		if len(p.Logs) != 0 {
			t.Errorf("NewPerson(%d): expected no logs, got %d", n, len(p.Logs))
		}
	}
}

// TestEqual tests record comparison
func TestEqual(t *testing.T) {
	a := NewPerson(3)
	b := NewPerson(3)

	if !Equal(a, b) {
		t.Error("Records built with the same amount should be equal")
	}

	b.Logs[2].Content = "changed"
	if Equal(a, b) {
		t.Error("Records with different log content should not be equal")
	}

	if Equal(NewPerson(3), NewPerson(4)) {
		t.Error("Records with different log counts should not be equal")
	}

	// nil and empty slices are the same
	empty := NewPerson(0)
	nilLogs := NewPerson(0)
	nilLogs.Logs = nil
	if !Equal(empty, nilLogs) {
		t.Error("Nil and empty logs should compare equal")
	}
}
