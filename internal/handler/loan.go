package handler

import (
	"net/http"

	"library-loan-service/api"
	"library-loan-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// LoanHandler обрабатывает HTTP-запросы, связанные с выдачей книг
type LoanHandler struct {
	*BaseHandler
	loanUseCase domain.LoanUseCase
}

// NewLoanHandler создает новый экземпляр LoanHandler
func NewLoanHandler(loanUseCase domain.LoanUseCase, logger *logrus.Logger) *LoanHandler {
	return &LoanHandler{
		BaseHandler: NewBaseHandler(logger),
		loanUseCase: loanUseCase,
	}
}

// CreateLoan обрабатывает выдачу книги
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req api.CreateLoanJSONRequestBody
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind create loan request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "create_loan").WithFields(logrus.Fields{
		"user_id": req.UserId,
		"book_id": req.BookId,
	})
	logEntry.Info("Creating loan")

	loan, err := h.loanUseCase.CreateLoan(c.Request().Context(), req.UserId, req.BookId)
	if err != nil {
		return h.respondError(c, logEntry, err, "Failed to create loan")
	}

	logEntry.WithFields(logrus.Fields{
		"loan_id":              loan.ID,
		"expected_return_date": loan.ExpectedReturnDate,
	}).Info("Loan created successfully")
	return c.JSON(http.StatusCreated, toAPILoan(loan))
}

// ReturnLoan обрабатывает возврат книги
func (h *LoanHandler) ReturnLoan(c echo.Context, id api.LoanID) error {
	logEntry := h.logRequest(c, "return_loan").WithField("loan_id", id)
	logEntry.Info("Returning book")

	loan, err := h.loanUseCase.ReturnBook(c.Request().Context(), id)
	if err != nil {
		return h.respondError(c, logEntry, err, "Failed to return book")
	}

	logEntry.WithField("book_id", loan.BookID).Info("Book returned successfully")
	return c.JSON(http.StatusOK, toAPILoan(loan))
}

// DeleteLoan обрабатывает мягкое удаление выдачи
func (h *LoanHandler) DeleteLoan(c echo.Context, id api.LoanID) error {
	logEntry := h.logRequest(c, "delete_loan").WithField("loan_id", id)
	logEntry.Info("Deleting loan")

	if err := h.loanUseCase.DeleteLoan(c.Request().Context(), id); err != nil {
		return h.respondError(c, logEntry, err, "Failed to delete loan")
	}

	logEntry.Info("Loan deleted successfully")
	return c.NoContent(http.StatusNoContent)
}

// GetLoan возвращает выдачу по id
func (h *LoanHandler) GetLoan(c echo.Context, id api.LoanID) error {
	logEntry := h.logRequest(c, "get_loan").WithField("loan_id", id)

	loan, err := h.loanUseCase.GetLoanByID(c.Request().Context(), id)
	if err != nil {
		return h.respondError(c, logEntry, err, "Failed to get loan")
	}
	if loan == nil {
		return h.respondError(c, logEntry, domain.NewNotFound(domain.EntityLoan, id), "Loan not found")
	}

	return c.JSON(http.StatusOK, toAPILoan(loan))
}

// ListLoans возвращает все выдачи
func (h *LoanHandler) ListLoans(c echo.Context) error {
	logEntry := h.logRequest(c, "list_loans")

	loans, err := h.loanUseCase.ListLoans(c.Request().Context())
	if err != nil {
		return h.respondError(c, logEntry, err, "Failed to list loans")
	}

	logEntry.WithField("count", len(loans)).Debug("Loans listed")
	return c.JSON(http.StatusOK, toAPILoans(loans))
}

// ListActiveLoans возвращает невозвращенные выдачи
func (h *LoanHandler) ListActiveLoans(c echo.Context) error {
	logEntry := h.logRequest(c, "list_active_loans")

	loans, err := h.loanUseCase.ListActiveLoans(c.Request().Context())
	if err != nil {
		return h.respondError(c, logEntry, err, "Failed to list active loans")
	}

	logEntry.WithField("count", len(loans)).Debug("Active loans listed")
	return c.JSON(http.StatusOK, toAPILoans(loans))
}

// ListLoansByUser возвращает невозвращенные выдачи пользователя
func (h *LoanHandler) ListLoansByUser(c echo.Context, userId int64) error {
	logEntry := h.logRequest(c, "list_user_loans").WithField("user_id", userId)

	loans, err := h.loanUseCase.ListLoansByUser(c.Request().Context(), userId)
	if err != nil {
		return h.respondError(c, logEntry, err, "Failed to list user loans")
	}

	logEntry.WithField("count", len(loans)).Debug("User loans listed")
	return c.JSON(http.StatusOK, toAPILoans(loans))
}
