package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

func TestMergeHistoryItem(t *testing.T) {
	t.Parallel()

	returned := model.NewDate(2024, 1, 20)
	newCopy := 9

	orig := model.HistoryItem{
		ID:         1,
		BookItemID: 2,
		ReaderID:   3,
		DateTaken:  model.NewDate(2024, 1, 1),
		DateDue:    model.NewDate(2024, 1, 15),
		DailyFine:  2,
	}
	origReturned := orig
	origReturned.DateReturned = &returned

	tests := []struct {
		name string
		orig model.HistoryItem
		req  model.UpdateHistoryItemRequest
		want func(t *testing.T, upd model.HistoryItem)
	}{
		{
			name: "empty request keeps everything",
			orig: orig,
			req:  model.UpdateHistoryItemRequest{},
			want: func(t *testing.T, upd model.HistoryItem) {
				require.Equal(t, orig, upd)
			},
		},
		{
			name: "return sets the date",
			orig: orig,
			req:  model.UpdateHistoryItemRequest{DateReturned: &returned},
			want: func(t *testing.T, upd model.HistoryItem) {
				require.NotNil(t, upd.DateReturned)
				require.True(t, upd.DateReturned.Equal(returned.Time))
			},
		},
		{
			name: "clear reopens a returned loan",
			orig: origReturned,
			req:  model.UpdateHistoryItemRequest{ClearDateReturned: true},
			want: func(t *testing.T, upd model.HistoryItem) {
				require.Nil(t, upd.DateReturned)
				require.True(t, upd.Open())
			},
		},
		{
			name: "clear wins over a new return date",
			orig: origReturned,
			req: model.UpdateHistoryItemRequest{
				ClearDateReturned: true,
				DateReturned:      &returned,
			},
			want: func(t *testing.T, upd model.HistoryItem) {
				require.Nil(t, upd.DateReturned)
			},
		},
		{
			name: "move copy and reopen in one edit",
			orig: origReturned,
			req: model.UpdateHistoryItemRequest{
				BookItemID:        &newCopy,
				ClearDateReturned: true,
			},
			want: func(t *testing.T, upd model.HistoryItem) {
				require.Equal(t, newCopy, upd.BookItemID)
				require.True(t, upd.Open())
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.want(t, mergeHistoryItem(tt.orig, tt.req))
		})
	}
}
