package reposync

import "testing"

func TestQueryText(t *testing.T) {
	tests := []struct {
		name string
		cond SearchCondition
		want string
	}{
		{
			name: "defaults",
			cond: NewSearchCondition("Android"),
			want: "sort:stars-desc Android",
		},
		{
			name: "zero value uses defaults",
			cond: SearchCondition{Keyword: "go"},
			want: "sort:stars-desc go",
		},
		{
			name: "created ascending",
			cond: SearchCondition{Keyword: "go", Sort: SortCreatedAt, Order: OrderAsc},
			want: "sort:created-asc go",
		},
		{
			name: "forks",
			cond: SearchCondition{Keyword: "language:rust cli", Sort: SortForks, Order: OrderDesc},
			want: "sort:forks-desc language:rust cli",
		},
		{
			name: "updated without keyword",
			cond: SearchCondition{Sort: SortUpdatedAt, Order: OrderAsc},
			want: "sort:updated-asc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond.QueryText(); got != tt.want {
				t.Errorf("QueryText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		value   string
		want    Sort
		wantErr bool
	}{
		{value: "stars", want: SortStargazers},
		{value: "Stargazers", want: SortStargazers},
		{value: "forks", want: SortForks},
		{value: "created", want: SortCreatedAt},
		{value: "updated-at", want: SortUpdatedAt},
		{value: "popularity", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseSort(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSort(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSort(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		value   string
		want    Order
		wantErr bool
	}{
		{value: "asc", want: OrderAsc},
		{value: "DESC", want: OrderDesc},
		{value: "up", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseOrder(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrder(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOrder(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
