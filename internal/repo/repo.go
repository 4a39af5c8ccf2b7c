package repo

import (
	"github.com/GlebRadaev/adrewards/internal/pg"
	userrepo "github.com/GlebRadaev/adrewards/internal/repo/user-repo"
	withdrawalrepo "github.com/GlebRadaev/adrewards/internal/repo/withdrawal-repo"
	"github.com/GlebRadaev/adrewards/internal/service/userservice"
	"github.com/GlebRadaev/adrewards/internal/service/withdrawalservice"
)

// UserRepository is the union of what the user and withdrawal services need
// from the users table.
type UserRepository interface {
	userservice.Repo
	withdrawalservice.UserRepo
}

type Repositories struct {
	UserRepo   UserRepository
	Withdrawal withdrawalservice.WithdrawalRepo
}

func New(conn pg.Database) *Repositories {
	userRepo := userrepo.New(conn)
	withdrawalRepo := withdrawalrepo.New(conn)

	return &Repositories{
		UserRepo:   userRepo,
		Withdrawal: withdrawalRepo,
	}
}
