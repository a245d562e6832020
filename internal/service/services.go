package service

import (
	"github.com/deppfellow/expense-tracker/internal/repository"
	"github.com/deppfellow/expense-tracker/internal/server"
)

type Services struct {
	Category *CategoryService
	Expense  *ExpenseService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Category: NewCategoryService(s.DB, repos.Category, repos.Expense, s.Config.Category),
		Expense:  NewExpenseService(s.DB, repos.Category, repos.Expense),
	}, nil
}
