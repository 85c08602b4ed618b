package http

import (
	"context"

	"github.com/fixora-app/fixora/internal/interfaces/http/handlers"
	"github.com/fixora-app/fixora/internal/interfaces/http/handlers/common"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler    *handlers.HealthHandler
	authHandler      *handlers.AuthHandler
	complaintHandler *handlers.ComplaintHandler
	streamHandler    *handlers.ComplaintStreamHandler
	staffHandler     *handlers.StaffHandler
}

func newHandlers(c *Container) *allHandlers {
	log := c.log
	ucs := c.ucs

	checks := map[string]handlers.Pinger{
		"redis": handlers.PingFunc(func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}),
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}

	return &allHandlers{
		healthHandler: handlers.NewHealthHandler(checks, log),
		authHandler: handlers.NewAuthHandler(
			ucs.registerStudentUC, ucs.loginUC, ucs.getCurrentUserUC, log.Named("auth_handler"),
		),
		complaintHandler: handlers.NewComplaintHandler(handlers.ComplaintUseCases{
			Create:  ucs.createComplaintUC,
			Get:     ucs.getComplaintUC,
			List:    ucs.listComplaintsUC,
			Edit:    ucs.editComplaintUC,
			Delete:  ucs.deleteComplaintUC,
			Approve: ucs.approveUC,
			Fix:     ucs.markFixedUC,
			Vote:    ucs.castVoteUC,
		}, log.Named("complaint_handler")),
		streamHandler: handlers.NewComplaintStreamHandler(
			common.NewSSEHandlerBase(c.feedHub, log.Named("complaint_stream")),
			log.Named("complaint_stream"),
		),
		staffHandler: handlers.NewStaffHandler(
			ucs.addStaffUC, ucs.listStaffUC, ucs.removeStaffUC, log.Named("staff_handler"),
		),
	}
}
