package util

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCSVToSlice(t *testing.T) {
	in := "http://10.10.0.2:13800,http://10.10.0.3:13800,http://10.10.0.4:13800"
	want := []string{
		"http://10.10.0.2:13800",
		"http://10.10.0.3:13800",
		"http://10.10.0.4:13800",
	}

	got, err := CSVToSlice(in)
	if err != nil {
		t.Error("Unexpected error:", err)
	}

	if diff := cmp.Diff(&got, &want); diff != "" {
		t.Errorf("Bad parse (-got,+want): %s", diff)
	}
}

func TestCSVToSliceEmpty(t *testing.T) {
	got, err := CSVToSlice("")
	if err != nil {
		t.Error("Unexpected error:", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no elements, got %v", got)
	}
}
