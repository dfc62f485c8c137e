package model

type CreateBookRequest struct {
	AuthorID      int    `json:"authorID" validate:"required"`
	PublisherID   int    `json:"publisherID" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Year          *int   `json:"year,omitempty" validate:"omitempty,min=1564"`
	ISBN          string `json:"isbn"`
	Synopsis      string `json:"synopsis"`
	Activated     *bool  `json:"activated,omitempty"`
	Available     *bool  `json:"available,omitempty"`
	BookItemTotal int    `json:"bookItemTotal" validate:"min=0"`
	CategoryIDs   []int  `json:"categoryIDs,omitempty" validate:"omitempty,dive,min=1"`
}

// UpdateBookRequest is a partial update: nil fields are left untouched.
type UpdateBookRequest struct {
	AuthorID      *int    `json:"authorID,omitempty"`
	PublisherID   *int    `json:"publisherID,omitempty"`
	Title         *string `json:"title,omitempty"`
	Year          *int    `json:"year,omitempty" validate:"omitempty,min=1564"`
	ISBN          *string `json:"isbn,omitempty"`
	Synopsis      *string `json:"synopsis,omitempty"`
	Activated     *bool   `json:"activated,omitempty"`
	Available     *bool   `json:"available,omitempty"`
	BookItemTotal *int    `json:"bookItemTotal,omitempty" validate:"omitempty,min=0"`
	// CategoryIDs replaces the full set when present; nil leaves it alone.
	CategoryIDs *[]int `json:"categoryIDs,omitempty" validate:"omitempty,dive,min=1"`
}

type ListBooksRequest struct {
	Title      string
	Author     string
	CategoryID int
	Page       int
	Size       int
}

type CreateBookItemRequest struct {
	BookID    int    `json:"bookID" validate:"required"`
	Available *bool  `json:"available,omitempty"`
	Comments  string `json:"comments"`
}

type UpdateBookItemRequest struct {
	BookID    *int    `json:"bookID,omitempty"`
	Available *bool   `json:"available,omitempty"`
	Comments  *string `json:"comments,omitempty"`
}

type ListBookItemsRequest struct {
	BookID int
	Status CopyStatus
	Page   int
	Size   int
}

type CreateHistoryItemRequest struct {
	BookItemID   int   `json:"bookItemID" validate:"required"`
	ReaderID     int   `json:"readerID" validate:"required"`
	DateTaken    Date  `json:"dateTaken" validate:"required"`
	DateDue      Date  `json:"dateDue" validate:"required"`
	DateReturned *Date `json:"dateReturned,omitempty"`
	DailyFine    int   `json:"dailyFine" validate:"min=0"`
}

type UpdateHistoryItemRequest struct {
	BookItemID   *int  `json:"bookItemID,omitempty"`
	ReaderID     *int  `json:"readerID,omitempty"`
	DateTaken    *Date `json:"dateTaken,omitempty"`
	DateDue      *Date `json:"dateDue,omitempty"`
	DateReturned *Date `json:"dateReturned,omitempty"`
	// ClearDateReturned reopens a returned loan; it wins over DateReturned.
	ClearDateReturned bool  `json:"clearDateReturned,omitempty"`
	DailyFine         *int  `json:"dailyFine,omitempty" validate:"omitempty,min=0"`
	IsFinePaid        *bool `json:"isFinePaid,omitempty"`
}

type ListHistoryItemsRequest struct {
	ReaderID int
	Status   LoanStatus
	Page     int
	Size     int
}

type CreateReaderRequest struct {
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type CreateCatalogEntryRequest struct {
	Name string `json:"name" validate:"required"`
}
