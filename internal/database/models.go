package database

import (
	"database/sql"
	"time"
)

type User struct {
	ID     int64
	Name   string
	Email  string
	Role   string
	Active bool
}

type Book struct {
	ID          int64
	Title       string
	Author      string
	Isbn        string
	IsAvailable bool
	Active      bool
}

// LoanRow - строка loans вместе с именем пользователя и названием книги.
type LoanRow struct {
	ID                 int64
	UserID             int64
	BookID             int64
	UserName           string
	BookTitle          string
	LoanDate           time.Time
	ExpectedReturnDate time.Time
	ReturnDate         sql.NullTime
	Status             string
	Active             bool
}
