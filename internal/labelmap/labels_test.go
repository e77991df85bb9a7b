package labelmap

import (
	"errors"
	"testing"
)

func TestFindAllLabels(t *testing.T) {
	m, _ := FromRows([][]int{
		{0, 7, 7, 0},
		{3, 0, 12, 12},
		{3, 3, 0, 7},
	})
	got := FindAllLabels(m)
	want := []int{3, 7, 12}
	if len(got) != len(want) {
		t.Fatalf("FindAllLabels: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindAllLabels[%d]: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFindAllLabels_Background(t *testing.T) {
	m, _ := FromRows([][]int{{0, 0}, {0, 0}})
	if got := FindAllLabels(m); len(got) != 0 {
		t.Errorf("expected no labels, got %v", got)
	}
}

func TestIndex_Lookup(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
	}{
		{"compact", []int{4, 2, 9}},
		{"negative labels", []int{-3, 5}},
		{"sparse range", []int{1, 1 << 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix, err := NewIndex(tt.labels)
			if err != nil {
				t.Fatalf("NewIndex failed: %v", err)
			}
			if ix.Len() != len(tt.labels) {
				t.Errorf("Len: got %d, want %d", ix.Len(), len(tt.labels))
			}
			for want, label := range tt.labels {
				got, ok := ix.Lookup(label)
				if !ok || got != want {
					t.Errorf("Lookup(%d): got (%d,%v), want (%d,true)", label, got, ok, want)
				}
			}
			if _, ok := ix.Lookup(0); ok {
				t.Error("Lookup(0) should not find background")
			}
			if _, ok := ix.Lookup(6); ok {
				t.Error("Lookup(6) should not find an untracked label")
			}
		})
	}
}

func TestIndex_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
	}{
		{"duplicate", []int{1, 2, 1}},
		{"background", []int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIndex(tt.labels)
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Errorf("expected InvalidInputError, got %v", err)
			}
		})
	}
}

func TestIndex_Labels_ReturnsCopy(t *testing.T) {
	ix, _ := NewIndex([]int{1, 2})
	labels := ix.Labels()
	labels[0] = 99
	if ix.Labels()[0] != 1 {
		t.Error("Labels should return a copy")
	}
}

func TestIndex_Empty(t *testing.T) {
	ix, err := NewIndex(nil)
	if err != nil {
		t.Fatalf("NewIndex(nil) failed: %v", err)
	}
	if _, ok := ix.Lookup(1); ok {
		t.Error("empty index should not find any label")
	}
}
