package common

import "testing"

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		total    int
		wantNext *Page
		wantPrev *Page
	}{
		{
			name:  "single page",
			page:  1, limit: 10, total: 5,
			wantNext: nil,
			wantPrev: nil,
		},
		{
			name:  "first of many",
			page:  1, limit: 10, total: 25,
			wantNext: &Page{Page: 2, Limit: 10},
			wantPrev: nil,
		},
		{
			name:  "middle page",
			page:  2, limit: 10, total: 25,
			wantNext: &Page{Page: 3, Limit: 10},
			wantPrev: &Page{Page: 1, Limit: 10},
		},
		{
			name:  "last page",
			page:  3, limit: 10, total: 25,
			wantNext: nil,
			wantPrev: &Page{Page: 2, Limit: 10},
		},
		{
			name:  "exact boundary omits next",
			page:  2, limit: 10, total: 20,
			wantNext: nil,
			wantPrev: &Page{Page: 1, Limit: 10},
		},
		{
			name:  "empty listing",
			page:  1, limit: 10, total: 0,
			wantNext: nil,
			wantPrev: nil,
		},
		{
			name:  "page past the end still links back",
			page:  5, limit: 10, total: 20,
			wantNext: nil,
			wantPrev: &Page{Page: 4, Limit: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.page, tt.limit, tt.total)

			if (got.Next == nil) != (tt.wantNext == nil) {
				t.Fatalf("next presence = %v, want %v", got.Next != nil, tt.wantNext != nil)
			}
			if got.Next != nil && *got.Next != *tt.wantNext {
				t.Errorf("next = %+v, want %+v", *got.Next, *tt.wantNext)
			}
			if (got.Prev == nil) != (tt.wantPrev == nil) {
				t.Fatalf("prev presence = %v, want %v", got.Prev != nil, tt.wantPrev != nil)
			}
			if got.Prev != nil && *got.Prev != *tt.wantPrev {
				t.Errorf("prev = %+v, want %+v", *got.Prev, *tt.wantPrev)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	page, limit := Normalize(0, 0)
	if page != 1 || limit != 10 {
		t.Errorf("Normalize(0,0) = %d,%d, want 1,10", page, limit)
	}

	page, limit = Normalize(3, 25)
	if page != 3 || limit != 25 {
		t.Errorf("Normalize(3,25) = %d,%d", page, limit)
	}

	if Offset(1, 10) != 0 || Offset(3, 10) != 20 {
		t.Error("Offset miscomputed")
	}
}
