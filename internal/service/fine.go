package service

import (
	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

// CalculateFine computes the overdue penalty for a loan. A loan is overdue
// strictly when its due date lies before today; a return on the due date
// itself incurs no fine. While the loan is outstanding the fine grows
// daily; once returned it freezes at the number of days the return came
// after the due date.
func CalculateFine(dateDue model.Date, dateReturned *model.Date, dailyFine int, today model.Date) int {
	if !dateDue.Before(today) {
		return 0
	}
	if dateReturned == nil {
		return dailyFine * dateDue.DaysUntil(today)
	}
	if dateReturned.After(dateDue) {
		return dailyFine * dateDue.DaysUntil(*dateReturned)
	}
	return 0
}
