// Package validator registers custom validation rules with gin's binding
// engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finbook/internal/models"
)

// Register installs the custom validators. It must be called once before the
// router starts handling requests.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("transaction_type", validTransactionType); err != nil {
		return err
	}
	if err := v.RegisterValidation("debt_type", validDebtType); err != nil {
		return err
	}
	return v.RegisterValidation("investment_type", validInvestmentType)
}

func validTransactionType(fl validator.FieldLevel) bool {
	switch models.TransactionType(fl.Field().String()) {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		return true
	}
	return false
}

func validDebtType(fl validator.FieldLevel) bool {
	switch models.DebtType(fl.Field().String()) {
	case models.DebtTypeLoan, models.DebtTypeCreditCard, models.DebtTypeMortgage, models.DebtTypeOther:
		return true
	}
	return false
}

func validInvestmentType(fl validator.FieldLevel) bool {
	switch models.InvestmentType(fl.Field().String()) {
	case models.InvestmentTypeStock, models.InvestmentTypeBond, models.InvestmentTypeMutualFund,
		models.InvestmentTypeETF, models.InvestmentTypeCrypto, models.InvestmentTypeOther:
		return true
	}
	return false
}
