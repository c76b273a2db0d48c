package pagination

import (
	"reflect"
	"testing"
)

func TestPageCount(t *testing.T) {
	cases := []struct {
		name       string
		totalItems int
		pageSize   int
		want       int
	}{
		{"exact multiple", 100, 10, 10},
		{"remainder rounds up", 101, 10, 11},
		{"single partial page", 3, 10, 1},
		{"empty collection", 0, 10, 0},
		{"zero page size", 50, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PageCount(tc.totalItems, tc.pageSize); got != tc.want {
				t.Fatalf("PageCount(%d, %d) = %d, want %d", tc.totalItems, tc.pageSize, got, tc.want)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	cases := []struct {
		name       string
		current    int
		totalPages int
		want       []int
	}{
		{"first page slides right", 1, 10, []int{1, 2, 3, 4, 5}},
		{"second page slides right", 2, 10, []int{1, 2, 3, 4, 5}},
		{"centered in the middle", 5, 10, []int{3, 4, 5, 6, 7}},
		{"near the end slides left", 9, 10, []int{6, 7, 8, 9, 10}},
		{"last page slides left", 10, 10, []int{6, 7, 8, 9, 10}},
		{"fewer pages than window", 2, 3, []int{1, 2, 3}},
		{"single page", 1, 1, []int{1}},
		{"out of range clamps high", 99, 10, []int{6, 7, 8, 9, 10}},
		{"out of range clamps low", -4, 10, []int{1, 2, 3, 4, 5}},
		{"no pages", 1, 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Window(tc.current, tc.totalPages)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Window(%d, %d) = %v, want %v", tc.current, tc.totalPages, got, tc.want)
			}
		})
	}
}

func TestWindowNeverExceedsFiveEntries(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for cur := 1; cur <= total; cur++ {
			w := Window(cur, total)
			if len(w) > WindowSize {
				t.Fatalf("Window(%d, %d) has %d entries", cur, total, len(w))
			}
			found := false
			for _, p := range w {
				if p == cur {
					found = true
				}
				if p < 1 || p > total {
					t.Fatalf("Window(%d, %d) contains out-of-range page %d", cur, total, p)
				}
			}
			if !found {
				t.Fatalf("Window(%d, %d) does not contain the current page", cur, total)
			}
		}
	}
}

func TestDescribe(t *testing.T) {
	page := Describe(3, 10, 95)
	if page.TotalPages != 10 {
		t.Fatalf("unexpected total pages %d", page.TotalPages)
	}
	if page.Current != 3 {
		t.Fatalf("unexpected current %d", page.Current)
	}
	if !reflect.DeepEqual(page.Window, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("unexpected window %v", page.Window)
	}
	if !page.HasPrev || !page.HasNext {
		t.Fatalf("expected prev and next from the middle, got %+v", page)
	}

	empty := Describe(4, 10, 0)
	if empty.TotalPages != 0 || empty.Current != 1 || empty.Window != nil {
		t.Fatalf("unexpected empty page %+v", empty)
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1, 10); got != 0 {
		t.Fatalf("Offset(1, 10) = %d", got)
	}
	if got := Offset(4, 10); got != 30 {
		t.Fatalf("Offset(4, 10) = %d", got)
	}
	if got := Offset(0, 10); got != 0 {
		t.Fatalf("Offset(0, 10) = %d", got)
	}
}
