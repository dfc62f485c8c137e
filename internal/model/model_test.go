package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

func intPtr(v int) *int { return &v }

func datePtr(y int, m time.Month, d int) *model.Date {
	dt := model.NewDate(y, m, d)
	return &dt
}

func TestBookItemDetail_DeriveStatus(t *testing.T) {
	t.Parallel()

	today := model.NewDate(2024, 3, 1)

	onLoan := func(due model.Date) model.BookItem {
		return model.BookItem{
			LastHistoryItemID: intPtr(7),
			LastReaderID:      intPtr(3),
			LastDateTaken:     datePtr(2024, 2, 1),
			LastDateDue:       &due,
		}
	}

	tests := []struct {
		name string
		item model.BookItemDetail
		want model.CopyStatus
	}{
		{
			name: "on loan, not yet due",
			item: model.BookItemDetail{
				BookItem:      onLoan(model.NewDate(2024, 3, 10)),
				BookAvailable: true,
			},
			want: model.CopyBorrowed,
		},
		{
			name: "on loan, due today",
			item: model.BookItemDetail{
				BookItem:      onLoan(today),
				BookAvailable: true,
			},
			want: model.CopyBorrowed,
		},
		{
			name: "on loan, overdue",
			item: model.BookItemDetail{
				BookItem:      onLoan(model.NewDate(2024, 2, 20)),
				BookAvailable: true,
			},
			want: model.CopyPending,
		},
		{
			name: "free copy with stock",
			item: model.BookItemDetail{
				BookItem:        model.BookItem{Available: true},
				BookAvailable:   true,
				BookItemTotal:   3,
				BookUnavailable: 2,
			},
			want: model.CopyAvailable,
		},
		{
			name: "free copy, book flagged unavailable",
			item: model.BookItemDetail{
				BookItem:        model.BookItem{Available: true},
				BookAvailable:   false,
				BookItemTotal:   3,
				BookUnavailable: 0,
			},
			want: model.CopyUnavailable,
		},
		{
			name: "free copy, copy flagged unavailable",
			item: model.BookItemDetail{
				BookItem:        model.BookItem{Available: false},
				BookAvailable:   true,
				BookItemTotal:   3,
				BookUnavailable: 0,
			},
			want: model.CopyUnavailable,
		},
		{
			name: "free copy, no stock left",
			item: model.BookItemDetail{
				BookItem:        model.BookItem{Available: true},
				BookAvailable:   true,
				BookItemTotal:   2,
				BookUnavailable: 2,
			},
			want: model.CopyUnavailable,
		},
		{
			name: "returned loan frees the copy",
			item: model.BookItemDetail{
				BookItem: model.BookItem{
					Available:         true,
					LastHistoryItemID: intPtr(7),
					LastReaderID:      intPtr(3),
					LastDateTaken:     datePtr(2024, 2, 1),
					LastDateDue:       datePtr(2024, 2, 20),
					LastDateReturned:  datePtr(2024, 2, 15),
				},
				BookAvailable:   true,
				BookItemTotal:   1,
				BookUnavailable: 0,
			},
			want: model.CopyAvailable,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.item.DeriveStatus(today))
		})
	}
}

func TestBookItem_OnLoan(t *testing.T) {
	t.Parallel()

	require.False(t, model.BookItem{}.OnLoan())
	require.True(t, model.BookItem{
		LastHistoryItemID: intPtr(1),
		LastDateTaken:     datePtr(2024, 1, 1),
		LastDateDue:       datePtr(2024, 1, 15),
	}.OnLoan())
	require.False(t, model.BookItem{
		LastHistoryItemID: intPtr(1),
		LastDateTaken:     datePtr(2024, 1, 1),
		LastDateDue:       datePtr(2024, 1, 15),
		LastDateReturned:  datePtr(2024, 1, 10),
	}.OnLoan())
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()

	d := model.NewDate(2024, 1, 15)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2024-01-15"`, string(raw))

	var back model.Date
	require.NoError(t, json.Unmarshal(raw, &back))
	require.True(t, back.Equal(d.Time))
}

func TestDate_DaysUntil(t *testing.T) {
	t.Parallel()

	a := model.NewDate(2024, 1, 15)
	require.Equal(t, 5, a.DaysUntil(model.NewDate(2024, 1, 20)))
	require.Equal(t, 0, a.DaysUntil(a))
	require.Equal(t, -3, a.DaysUntil(model.NewDate(2024, 1, 12)))
}
