package database

import (
	"context"
	"database/sql"
	"time"
)

const createUser = `
INSERT INTO users (name, email, role, active)
VALUES ($1, $2, $3, $4)
RETURNING id
`

type CreateUserParams struct {
	Name   string
	Email  string
	Role   string
	Active bool
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (int64, error) {
	row := q.queryRow(ctx, createUser, arg.Name, arg.Email, arg.Role, arg.Active)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getUserByID = `
SELECT id, name, email, role, active
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.queryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.Role, &i.Active)
	return i, err
}

const createBook = `
INSERT INTO books (title, author, isbn, is_available, active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

type CreateBookParams struct {
	Title       string
	Author      string
	Isbn        string
	IsAvailable bool
	Active      bool
}

func (q *Queries) CreateBook(ctx context.Context, arg CreateBookParams) (int64, error) {
	row := q.queryRow(ctx, createBook, arg.Title, arg.Author, arg.Isbn, arg.IsAvailable, arg.Active)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getBookByID = `
SELECT id, title, author, isbn, is_available, active
FROM books
WHERE id = $1
`

func (q *Queries) GetBookByID(ctx context.Context, id int64) (Book, error) {
	row := q.queryRow(ctx, getBookByID, id)
	var i Book
	err := row.Scan(&i.ID, &i.Title, &i.Author, &i.Isbn, &i.IsAvailable, &i.Active)
	return i, err
}

const activeBookExists = `
SELECT COUNT(*) FROM books WHERE id = $1 AND active = TRUE
`

func (q *Queries) ActiveBookExists(ctx context.Context, id int64) (int64, error) {
	row := q.queryRow(ctx, activeBookExists, id)
	var count int64
	err := row.Scan(&count)
	return count, err
}

// Флаг меняется, только если он еще равен expected.
const setBookAvailability = `
UPDATE books
SET is_available = $1
WHERE id = $2 AND active = TRUE AND is_available = $3
`

type SetBookAvailabilityParams struct {
	IsAvailable bool
	ID          int64
	Expected    bool
}

func (q *Queries) SetBookAvailability(ctx context.Context, arg SetBookAvailabilityParams) (int64, error) {
	result, err := q.exec(ctx, setBookAvailability, arg.IsAvailable, arg.ID, arg.Expected)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const insertLoan = `
INSERT INTO loans (user_id, book_id, loan_date, expected_return_date, return_date, status, active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

type InsertLoanParams struct {
	UserID             int64
	BookID             int64
	LoanDate           time.Time
	ExpectedReturnDate time.Time
	ReturnDate         sql.NullTime
	Status             string
	Active             bool
}

func (q *Queries) InsertLoan(ctx context.Context, arg InsertLoanParams) (int64, error) {
	row := q.queryRow(ctx, insertLoan,
		arg.UserID,
		arg.BookID,
		arg.LoanDate,
		arg.ExpectedReturnDate,
		arg.ReturnDate,
		arg.Status,
		arg.Active,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

// Запись проходит, только если выдача еще в состоянии (FromStatus, FromActive).
const updateLoanState = `
UPDATE loans
SET status = $1, return_date = $2, active = $3
WHERE id = $4 AND status = $5 AND active = $6
`

type UpdateLoanStateParams struct {
	Status     string
	ReturnDate sql.NullTime
	Active     bool
	ID         int64
	FromStatus string
	FromActive bool
}

func (q *Queries) UpdateLoanState(ctx context.Context, arg UpdateLoanStateParams) (int64, error) {
	result, err := q.exec(ctx, updateLoanState,
		arg.Status,
		arg.ReturnDate,
		arg.Active,
		arg.ID,
		arg.FromStatus,
		arg.FromActive,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const loanExists = `
SELECT COUNT(*) FROM loans WHERE id = $1
`

func (q *Queries) LoanExists(ctx context.Context, id int64) (int64, error) {
	row := q.queryRow(ctx, loanExists, id)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const selectLoans = `
SELECT l.id, l.user_id, l.book_id, u.name, b.title,
       l.loan_date, l.expected_return_date, l.return_date, l.status, l.active
FROM loans l
JOIN users u ON u.id = l.user_id
JOIN books b ON b.id = l.book_id
`

const getLoanByID = selectLoans + `WHERE l.id = $1`

func (q *Queries) GetLoanByID(ctx context.Context, id int64) (LoanRow, error) {
	row := q.queryRow(ctx, getLoanByID, id)
	var i LoanRow
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.BookID,
		&i.UserName,
		&i.BookTitle,
		&i.LoanDate,
		&i.ExpectedReturnDate,
		&i.ReturnDate,
		&i.Status,
		&i.Active,
	)
	return i, err
}

const listLoans = selectLoans + `ORDER BY l.id`

func (q *Queries) ListLoans(ctx context.Context) ([]LoanRow, error) {
	return q.listLoanRows(ctx, listLoans)
}

const listActiveLoans = selectLoans + `
WHERE l.active = TRUE AND l.status = 'Borrowed'
ORDER BY l.id`

func (q *Queries) ListActiveLoans(ctx context.Context) ([]LoanRow, error) {
	return q.listLoanRows(ctx, listActiveLoans)
}

const listActiveLoansByUser = selectLoans + `
WHERE l.user_id = $1 AND l.active = TRUE AND l.status = 'Borrowed'
ORDER BY l.id`

func (q *Queries) ListActiveLoansByUser(ctx context.Context, userID int64) ([]LoanRow, error) {
	return q.listLoanRows(ctx, listActiveLoansByUser, userID)
}

func (q *Queries) listLoanRows(ctx context.Context, query string, args ...interface{}) ([]LoanRow, error) {
	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LoanRow
	for rows.Next() {
		var i LoanRow
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.BookID,
			&i.UserName,
			&i.BookTitle,
			&i.LoanDate,
			&i.ExpectedReturnDate,
			&i.ReturnDate,
			&i.Status,
			&i.Active,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countActiveLoansByUser = `
SELECT COUNT(*) FROM loans
WHERE user_id = $1 AND active = TRUE AND status = 'Borrowed'
`

func (q *Queries) CountActiveLoansByUser(ctx context.Context, userID int64) (int64, error) {
	row := q.queryRow(ctx, countActiveLoansByUser, userID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countActiveLoansByBook = `
SELECT COUNT(*) FROM loans
WHERE book_id = $1 AND active = TRUE AND status = 'Borrowed'
`

func (q *Queries) CountActiveLoansByBook(ctx context.Context, bookID int64) (int64, error) {
	row := q.queryRow(ctx, countActiveLoansByBook, bookID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
