package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
	"github.com/fabiopiovam/dj-la-library-system/internal/service"
)

func datePtr(y int, m time.Month, d int) *model.Date {
	dt := model.NewDate(y, m, d)
	return &dt
}

func TestCalculateFine(t *testing.T) {
	t.Parallel()

	today := model.NewDate(2024, 2, 1)

	tests := []struct {
		name         string
		dateDue      model.Date
		dateReturned *model.Date
		dailyFine    int
		want         int
	}{
		{
			name:      "not yet due, outstanding",
			dateDue:   model.NewDate(2024, 2, 10),
			dailyFine: 2,
			want:      0,
		},
		{
			name:      "due today, outstanding",
			dateDue:   today,
			dailyFine: 2,
			want:      0,
		},
		{
			name:         "due today, returned late date ignored while not overdue",
			dateDue:      today,
			dateReturned: datePtr(2024, 2, 1),
			dailyFine:    2,
			want:         0,
		},
		{
			name:      "overdue, outstanding, grows daily",
			dateDue:   model.NewDate(2024, 1, 15),
			dailyFine: 2,
			want:      2 * 17,
		},
		{
			name:         "overdue, returned after due, frozen at return",
			dateDue:      model.NewDate(2024, 1, 15),
			dateReturned: datePtr(2024, 1, 20),
			dailyFine:    2,
			want:         10,
		},
		{
			name:         "overdue, returned on due date",
			dateDue:      model.NewDate(2024, 1, 15),
			dateReturned: datePtr(2024, 1, 15),
			dailyFine:    2,
			want:         0,
		},
		{
			name:         "overdue, returned before due date",
			dateDue:      model.NewDate(2024, 1, 15),
			dateReturned: datePtr(2024, 1, 10),
			dailyFine:    2,
			want:         0,
		},
		{
			name:      "zero daily fine",
			dateDue:   model.NewDate(2024, 1, 15),
			dailyFine: 0,
			want:      0,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := service.CalculateFine(tt.dateDue, tt.dateReturned, tt.dailyFine, today)
			require.Equal(t, tt.want, got)

			// Recomputation with identical inputs is idempotent.
			require.Equal(t, got, service.CalculateFine(tt.dateDue, tt.dateReturned, tt.dailyFine, today))
		})
	}
}

func TestCalculateFine_GrowsWhileOutstanding(t *testing.T) {
	t.Parallel()

	dateDue := model.NewDate(2024, 1, 15)
	fineDay1 := service.CalculateFine(dateDue, nil, 3, model.NewDate(2024, 1, 16))
	fineDay5 := service.CalculateFine(dateDue, nil, 3, model.NewDate(2024, 1, 20))

	require.Equal(t, 3, fineDay1)
	require.Equal(t, 15, fineDay5)
}
