package http

import (
	complaintUsecases "github.com/fixora-app/fixora/internal/application/complaint/usecases"
	userUsecases "github.com/fixora-app/fixora/internal/application/user/usecases"
	"github.com/fixora-app/fixora/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User & Auth
	registerStudentUC *userUsecases.RegisterStudentUseCase
	loginUC           *userUsecases.LoginUseCase
	getCurrentUserUC  *userUsecases.GetCurrentUserUseCase
	addStaffUC        *userUsecases.AddStaffUseCase
	listStaffUC       *userUsecases.ListStaffUseCase
	removeStaffUC     *userUsecases.RemoveStaffUseCase

	// Complaints
	createComplaintUC *complaintUsecases.CreateComplaintUseCase
	getComplaintUC    *complaintUsecases.GetComplaintUseCase
	listComplaintsUC  *complaintUsecases.ListComplaintsUseCase
	editComplaintUC   *complaintUsecases.EditComplaintUseCase
	deleteComplaintUC *complaintUsecases.DeleteComplaintUseCase
	approveUC         *complaintUsecases.ApproveComplaintUseCase
	markFixedUC       *complaintUsecases.MarkFixedUseCase
	castVoteUC        *complaintUsecases.CastVoteUseCase
}

func (c *Container) initUseCases() {
	repos := c.repos
	log := c.log

	// A nil interface, not a nil *S3ImageUploader, when storage is off.
	var uploader complaintUsecases.ImageUploader
	if c.cfg.Storage.Enabled() {
		uploader = newImageUploader(c.cfg, log)
	}
	renderer := markdown.NewRenderer()

	c.ucs = &allUseCases{
		registerStudentUC: userUsecases.NewRegisterStudentUseCase(repos.userRepo, c.hasher, c.jwtSvc, log.Named("register")),
		loginUC:           userUsecases.NewLoginUseCase(repos.userRepo, c.hasher, c.jwtSvc, log.Named("login")),
		getCurrentUserUC:  userUsecases.NewGetCurrentUserUseCase(repos.userRepo, log),
		addStaffUC:        userUsecases.NewAddStaffUseCase(repos.userRepo, c.hasher, log),
		listStaffUC:       userUsecases.NewListStaffUseCase(repos.userRepo, log),
		removeStaffUC:     userUsecases.NewRemoveStaffUseCase(repos.userRepo, log),

		createComplaintUC: complaintUsecases.NewCreateComplaintUseCase(
			repos.complaintRepo, uploader, c.complaintCache, c.eventBus, log,
		),
		getComplaintUC: complaintUsecases.NewGetComplaintUseCase(
			repos.complaintRepo, repos.voteRepo, c.complaintCache, c.voteDirCache, renderer, log,
		),
		listComplaintsUC: complaintUsecases.NewListComplaintsUseCase(
			repos.complaintRepo, repos.voteRepo, c.complaintCache, c.voteDirCache, log,
		),
		editComplaintUC: complaintUsecases.NewEditComplaintUseCase(
			repos.complaintRepo, repos.voteRepo, c.complaintCache, c.eventBus, log,
		),
		deleteComplaintUC: complaintUsecases.NewDeleteComplaintUseCase(
			repos.complaintRepo, c.complaintCache, c.voteDirCache, c.eventBus, log,
		),
		approveUC: complaintUsecases.NewApproveComplaintUseCase(
			repos.complaintRepo, c.complaintCache, c.eventBus, log,
		),
		markFixedUC: complaintUsecases.NewMarkFixedUseCase(
			repos.complaintRepo, c.complaintCache, c.eventBus, log,
		),
		castVoteUC: complaintUsecases.NewCastVoteUseCase(
			repos.complaintRepo, repos.voteRepo, repos.txMgr, c.complaintCache, c.voteDirCache, c.eventBus, log,
		),
	}
}
