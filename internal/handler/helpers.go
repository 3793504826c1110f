package handler

import (
	"errors"
	"net/http"

	"library-loan-service/api"
	"library-loan-service/internal/domain"
)

// Вспомогательные функции преобразования доменных моделей в API модели

func toAPILoan(loan *domain.Loan) api.Loan {
	return api.Loan{
		Id:                 loan.ID,
		UserId:             loan.UserID,
		UserName:           loan.UserName,
		BookId:             loan.BookID,
		BookTitle:          loan.BookTitle,
		LoanDate:           loan.LoanDate,
		ExpectedReturnDate: loan.ExpectedReturnDate,
		ReturnDate:         loan.ReturnDate,
		Status:             api.LoanStatus(loan.Status),
		Active:             loan.Active,
	}
}

func toAPILoans(loans []*domain.Loan) []api.Loan {
	result := make([]api.Loan, len(loans))
	for i, loan := range loans {
		result[i] = toAPILoan(loan)
	}
	return result
}

func toErrorResponse(code, message string) api.ErrorResponse {
	return api.ErrorResponse{
		Error: struct {
			Code    api.ErrorResponseErrorCode `json:"code"`
			Message string                     `json:"message"`
		}{
			Code:    api.ErrorResponseErrorCode(code),
			Message: message,
		},
	}
}

func toAPIErrorResponse(httpErr domain.HTTPError) api.ErrorResponse {
	return toErrorResponse(httpErr.Code, httpErr.Message)
}

func getHTTPStatusCode(err error) int {
	switch {
	// Conflict errors (409)
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict

	// Not Found errors (404)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	// Bad Request errors (400) - валидация
	case errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidBookID),
		errors.Is(err, domain.ErrInvalidLoanID):
		return http.StatusBadRequest

	// Политика не знает роль пользователя (500)
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}
