package vexel

import "testing"

func TestRectOverlaps(t *testing.T) {
	base := NewRect(0, 0, 10, 10)
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"overlapping", NewRect(5, 5, 10, 10), true},
		{"contained", NewRect(2, 2, 4, 4), true},
		{"edge touching", NewRect(10, 0, 5, 5), false},
		{"disjoint", NewRect(20, 20, 5, 5), false},
		{"empty", Rect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.o); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tt.o, got, tt.want)
			}
			if got := tt.o.Overlaps(base); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %+v", tt.o)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 5, 10, 10)

	if got, want := a.Union(b), NewRect(0, 0, 30, 15); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty.Union(a) = %+v, want a", got)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("a.Union(empty) = %+v, want a", got)
	}
}
