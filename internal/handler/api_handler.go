package handler

import (
	"library-loan-service/api"
	"library-loan-service/internal/domain"

	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	*LoanHandler
}

func NewAPIHandler(
	loanUseCase domain.LoanUseCase,
	logger *logrus.Logger,
) api.ServerInterface {

	return &APIHandler{
		LoanHandler: NewLoanHandler(loanUseCase, logger),
	}
}
