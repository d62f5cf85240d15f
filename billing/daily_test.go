package billing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func agg(date string, total int64) DailyAggregate {
	return DailyAggregate{Date: date, Total: decimal.NewFromInt(total)}
}

func Test_NormalizeDailySales(t *testing.T) {
	tests := []struct {
		name    string
		sparse  []DailyAggregate
		want    []DailyAggregate
		wantErr bool
	}{
		{
			name:   "empty input",
			sparse: nil,
			want:   nil,
		},
		{
			name:   "single day",
			sparse: []DailyAggregate{agg("2024-01-01", 100)},
			want:   []DailyAggregate{agg("2024-01-01", 100)},
		},
		{
			name:   "one day gap",
			sparse: []DailyAggregate{agg("2024-01-01", 100), agg("2024-01-03", 50)},
			want: []DailyAggregate{
				agg("2024-01-01", 100),
				agg("2024-01-02", 0),
				agg("2024-01-03", 50),
			},
		},
		{
			name:   "unsorted input",
			sparse: []DailyAggregate{agg("2024-02-29", 7), agg("2024-02-27", 3)},
			want: []DailyAggregate{
				agg("2024-02-27", 3),
				agg("2024-02-28", 0),
				agg("2024-02-29", 7),
			},
		},
		{
			name:   "month boundary",
			sparse: []DailyAggregate{agg("2024-01-31", 1), agg("2024-02-02", 2)},
			want: []DailyAggregate{
				agg("2024-01-31", 1),
				agg("2024-02-01", 0),
				agg("2024-02-02", 2),
			},
		},
		{
			name:    "invalid date",
			sparse:  []DailyAggregate{agg("01/02/2024", 1)},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDailySales(tt.sparse)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeDailySales() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizeDailySales() length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Date != tt.want[i].Date {
					t.Errorf("NormalizeDailySales()[%d].Date = %s, want %s", i, got[i].Date, tt.want[i].Date)
				}
				if !got[i].Total.Equal(tt.want[i].Total) {
					t.Errorf("NormalizeDailySales()[%d].Total = %s, want %s", i, got[i].Total, tt.want[i].Total)
				}
			}
		})
	}
}

func Test_NormalizeDailySales_contiguous(t *testing.T) {
	sparse := []DailyAggregate{
		agg("2024-03-05", 12),
		agg("2024-03-01", 4),
		agg("2024-03-20", 9),
	}
	series, err := NormalizeDailySales(sparse)
	if err != nil {
		t.Fatalf("NormalizeDailySales() error = %v", err)
	}
	// 2024-03-01 .. 2024-03-20 inclusive.
	if len(series) != 20 {
		t.Fatalf("series length = %d, want 20", len(series))
	}
	seen := make(map[string]struct{})
	for i, day := range series {
		if _, dup := seen[day.Date]; dup {
			t.Errorf("duplicate date %s at index %d", day.Date, i)
		}
		seen[day.Date] = struct{}{}
		if i > 0 && series[i-1].Date >= day.Date {
			t.Errorf("dates not strictly increasing at index %d: %s then %s", i, series[i-1].Date, day.Date)
		}
	}
	// input must not have been reordered.
	if sparse[0].Date != "2024-03-05" {
		t.Errorf("input slice was mutated: first date now %s", sparse[0].Date)
	}
}
