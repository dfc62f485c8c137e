package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

func TestCopyStatusFilter(t *testing.T) {
	t.Parallel()

	today := model.NewDate(2024, 3, 1)

	tests := []struct {
		name     string
		status   model.CopyStatus
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:   "available",
			status: model.CopyAvailable,
			wantSQL: "(b.available = ? AND i.available = ? AND b.book_item_total > b.book_item_unavailable" +
				" AND (i.last_history_item_id is null OR i.last_date_returned is not null))",
			wantArgs: []interface{}{true, true},
		},
		{
			name:   "unavailable",
			status: model.CopyUnavailable,
			wantSQL: "(b.available = ? OR i.available = ? OR b.book_item_total = b.book_item_unavailable" +
				" OR (i.last_history_item_id is not null AND i.last_date_returned is null))",
			wantArgs: []interface{}{false, false},
		},
		{
			name:    "borrowed",
			status:  model.CopyBorrowed,
			wantSQL: "(i.last_history_item_id is not null AND i.last_date_returned is null)",
		},
		{
			name:   "pending",
			status: model.CopyPending,
			wantSQL: "(i.last_history_item_id is not null AND i.last_date_returned is null" +
				" AND i.last_date_due < ?)",
			wantArgs: []interface{}{today},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			filter := copyStatusFilter(tt.status, today)
			require.NotNil(t, filter)

			gotSQL, gotArgs, err := filter.ToSql()
			require.NoError(t, err)
			require.Equal(t, tt.wantSQL, gotSQL)
			require.Equal(t, tt.wantArgs, gotArgs)
		})
	}
}

func TestCopyStatusFilter_NoFilter(t *testing.T) {
	t.Parallel()

	require.Nil(t, copyStatusFilter("", model.NewDate(2024, 3, 1)))
}
