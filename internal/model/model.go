package model

type Author struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Publisher struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Category struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

type Book struct {
	ID                  int    `json:"id" db:"id"`
	AuthorID            int    `json:"authorID" db:"author_id"`
	PublisherID         int    `json:"publisherID" db:"publisher_id"`
	Title               string `json:"title" db:"title"`
	Year                *int   `json:"year,omitempty" db:"year"`
	ISBN                string `json:"isbn" db:"isbn"`
	Synopsis            string `json:"synopsis" db:"synopsis"`
	Activated           bool   `json:"activated" db:"activated"`
	Available           bool   `json:"available" db:"available"`
	BookItemTotal       int    `json:"bookItemTotal" db:"book_item_total"`
	BookItemUnavailable int    `json:"bookItemUnavailable" db:"book_item_unavailable"`

	CategoryIDs []int `json:"categoryIDs,omitempty" db:"-"`
}

// AvailableItems is the number of copies not accounted for by open loans
// or manual overrides.
func (b Book) AvailableItems() int {
	return b.BookItemTotal - b.BookItemUnavailable
}

// BookItem is one lendable copy of a Book. The last_* columns are a
// denormalized snapshot of the copy's most recent loan; they are either
// all null (never loaned) or all set together.
type BookItem struct {
	ID        int    `json:"id" db:"id"`
	BookID    int    `json:"bookID" db:"book_id"`
	Available bool   `json:"available" db:"available"`
	Comments  string `json:"comments" db:"comments"`

	LastHistoryItemID *int  `json:"lastHistoryItemID,omitempty" db:"last_history_item_id"`
	LastReaderID      *int  `json:"lastReaderID,omitempty" db:"last_reader_id"`
	LastDateTaken     *Date `json:"lastDateTaken,omitempty" db:"last_date_taken"`
	LastDateDue       *Date `json:"lastDateDue,omitempty" db:"last_date_due"`
	LastDateReturned  *Date `json:"lastDateReturned,omitempty" db:"last_date_returned"`
}

// OnLoan reports whether the snapshot shows an open loan.
func (c BookItem) OnLoan() bool {
	return c.LastHistoryItemID != nil && c.LastDateReturned == nil
}

type CopyStatus string

const (
	CopyAvailable   CopyStatus = "AVAILABLE"
	CopyUnavailable CopyStatus = "UNAVAILABLE"
	CopyBorrowed    CopyStatus = "BORROWED"
	CopyPending     CopyStatus = "PENDING"
)

// BookItemDetail is a BookItem joined with the owning book's availability
// fields, enough to derive the copy's effective status on read.
type BookItemDetail struct {
	BookItem `json:",inline"`

	BookTitle       string `json:"bookTitle" db:"book_title"`
	BookAvailable   bool   `json:"bookAvailable" db:"book_available"`
	BookItemTotal   int    `json:"bookItemTotal" db:"book_item_total"`
	BookUnavailable int    `json:"bookItemUnavailable" db:"book_item_unavailable"`

	Status CopyStatus `json:"status" db:"-"`
}

// DeriveStatus computes the copy's effective availability. A copy is
// AVAILABLE iff its book is available, the copy itself is available, the
// book still has unaccounted-for copies, and the snapshot is empty or
// closed. An open loan makes it BORROWED, or PENDING once the due date
// has passed.
func (c BookItemDetail) DeriveStatus(today Date) CopyStatus {
	if c.OnLoan() {
		if c.LastDateDue.Before(today) {
			return CopyPending
		}
		return CopyBorrowed
	}
	if c.BookAvailable && c.Available && c.BookItemTotal > c.BookUnavailable {
		return CopyAvailable
	}
	return CopyUnavailable
}

// HistoryItem is one borrow event against a BookItem. Fine is derived on
// every save and never trusted from the client.
type HistoryItem struct {
	ID           int   `json:"id" db:"id"`
	BookItemID   int   `json:"bookItemID" db:"book_item_id"`
	ReaderID     int   `json:"readerID" db:"reader_id"`
	DateTaken    Date  `json:"dateTaken" db:"date_taken"`
	DateDue      Date  `json:"dateDue" db:"date_due"`
	DateReturned *Date `json:"dateReturned,omitempty" db:"date_returned"`
	Fine         int   `json:"fine" db:"fine"`
	DailyFine    int   `json:"dailyFine" db:"daily_fine"`
	IsFinePaid   bool  `json:"isFinePaid" db:"is_fine_paid"`
}

// Open reports whether the loan is still outstanding.
func (h HistoryItem) Open() bool {
	return h.DateReturned == nil
}

type LoanStatus string

const (
	LoanReturned LoanStatus = "RETURNED"
	LoanBorrowed LoanStatus = "BORROWED"
	LoanPending  LoanStatus = "PENDING"
)

type Account struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	Email        string `json:"email" db:"email"`
	IsStaff      bool   `json:"isStaff" db:"is_staff"`
}

// Reader is a library member: an Account plus library-specific contact
// fields, joined by account_id.
type Reader struct {
	ID          int    `json:"id" db:"id"`
	AccountID   int    `json:"accountID" db:"account_id"`
	Username    string `json:"username" db:"username"`
	FirstName   string `json:"firstName" db:"first_name"`
	LastName    string `json:"lastName" db:"last_name"`
	Email       string `json:"email" db:"email"`
	PhoneNumber string `json:"phoneNumber" db:"phone_number"`
	Address     string `json:"address" db:"address"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type ListBooks struct {
	Paging `json:",inline"`
	Items  []Book `json:"items"`
}

type ListBookItems struct {
	Paging `json:",inline"`
	Items  []BookItemDetail `json:"items"`
}

type ListHistoryItems struct {
	Paging `json:",inline"`
	Items  []HistoryItem `json:"items"`
}

// ReaderLoans is a reader's loan history plus the sum of their unpaid
// positive fines.
type ReaderLoans struct {
	Items     []HistoryItem `json:"items"`
	TotalFine int           `json:"totalFine"`
}
