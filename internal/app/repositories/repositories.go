package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	DepartmentRepository  *DepartmentRepository
	StudentRepository     *StudentRepository
	TransactionRepository *TransactionRepository
	FeeConfigRepository   *FeeConfigRepository
	RemarkRepository      *RemarkRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		DepartmentRepository:  NewDepartmentRepository(db),
		StudentRepository:     NewStudentRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		FeeConfigRepository:   NewFeeConfigRepository(db),
		RemarkRepository:      NewRemarkRepository(db),
	}
}
