package http

import (
	"gorm.io/gorm"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/infrastructure/repository"
	"github.com/fixora-app/fixora/internal/shared/db"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo      user.Repository
	complaintRepo complaint.Repository
	voteRepo      complaint.VoteRepository
	txMgr         db.Transactor
}

func newRepositories(gdb *gorm.DB) *repositories {
	return &repositories{
		userRepo:      repository.NewUserRepository(gdb),
		complaintRepo: repository.NewComplaintRepository(gdb),
		voteRepo:      repository.NewComplaintVoteRepository(gdb),
		txMgr:         db.NewTransactionManager(gdb),
	}
}
