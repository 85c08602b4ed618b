package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/infrastructure/persistence/models"
	db "github.com/fixora-app/fixora/internal/shared/db"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(&models.UserModel{}, &models.ComplaintModel{}, &models.ComplaintVoteModel{}))
	return gdb
}

func testStudent(id uint, hostel uservo.Hostel) user.Profile {
	return user.Profile{
		ID:           id,
		Name:         fmt.Sprintf("student-%d", id),
		Role:         user.Student(),
		Hostel:       hostel,
		Room:         "A1",
		HostelGender: hostel.Wing(),
	}
}

func testWarden(t *testing.T, id uint) user.Profile {
	t.Helper()
	role, err := user.Warden(uservo.WingMale)
	require.NoError(t, err)
	return user.Profile{ID: id, Role: role, HostelGender: uservo.WingMale}
}

func createComplaint(t *testing.T, repo *ComplaintRepository, owner user.Profile, description string) *complaint.Complaint {
	t.Helper()
	c, err := complaint.NewComplaint(complaint.NewComplaintInput{
		Description: description,
		Category:    "Plumbing",
		Visibility:  "public",
	}, owner)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	require.NotZero(t, c.ID())
	return c
}

func TestComplaintRepository_CreateAndGet(t *testing.T) {
	repo := NewComplaintRepository(setupTestDB(t))
	ctx := context.Background()

	c, err := complaint.NewComplaint(complaint.NewComplaintInput{Description: "Tap leaking", Category: "Plumbing"}, testStudent(1, uservo.HostelGirls))
	require.NoError(t, err)
	require.NoError(t, c.AttachImage("https://cdn.fixora.app/tap.jpg"))
	require.NoError(t, repo.Create(ctx, c))

	found, err := repo.GetBySID(ctx, c.SID())
	require.NoError(t, err)
	assert.Equal(t, c.ID(), found.ID())
	assert.Equal(t, "Tap leaking", found.Description())
	assert.Equal(t, vo.CategoryPlumbing, found.Category())
	assert.Equal(t, vo.StatusSubmitted, found.Status())
	assert.Equal(t, uservo.WingFemale, found.HostelType())
	assert.Equal(t, c.Submitter(), found.Submitter())
	assert.Equal(t, "https://cdn.fixora.app/tap.jpg", found.ImageURL())
	assert.Equal(t, c.CreatedAt().UnixMilli(), found.CreatedAt().UnixMilli())
	assert.Nil(t, found.Audit().ApprovedAt)

	byID, err := repo.GetByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, c.SID(), byID.SID())

	_, err = repo.GetBySID(ctx, "cmp_missing")
	assert.ErrorIs(t, err, complaint.ErrComplaintNotFound)
}

func TestComplaintRepository_List(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewComplaintRepository(gdb)
	ctx := context.Background()

	a := createComplaint(t, repo, testStudent(1, uservo.HostelBlockA), "first")
	b := createComplaint(t, repo, testStudent(2, uservo.HostelBlockA), "second")
	c := createComplaint(t, repo, testStudent(3, uservo.HostelBlockA), "third")

	_, err := repo.AdjustVotes(ctx, b.ID(), 3)
	require.NoError(t, err)
	_, err = repo.AdjustVotes(ctx, a.ID(), -1)
	require.NoError(t, err)

	require.NoError(t, c.Approve(testWarden(t, 9)))
	require.NoError(t, repo.UpdateStatus(ctx, c, vo.StatusSubmitted))

	all, err := repo.List(ctx, complaint.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, b.SID(), all[0].SID())
	assert.Equal(t, a.SID(), all[2].SID())

	submitted, err := repo.List(ctx, complaint.ListFilter{Status: vo.StatusSubmitted})
	require.NoError(t, err)
	assert.Len(t, submitted, 2)
}

func TestComplaintRepository_Update(t *testing.T) {
	repo := NewComplaintRepository(setupTestDB(t))
	ctx := context.Background()
	owner := testStudent(1, uservo.HostelBlockA)
	c := createComplaint(t, repo, owner, "Door broken")

	desc := "Door and window broken"
	require.NoError(t, c.Edit(owner, complaint.EditPatch{Description: &desc}))
	require.NoError(t, repo.Update(ctx, c))

	found, err := repo.GetBySID(ctx, c.SID())
	require.NoError(t, err)
	assert.Equal(t, desc, found.Description())
	require.NotNil(t, found.Audit().LastEditedBy)
	assert.Equal(t, owner.ID, *found.Audit().LastEditedBy)
	assert.Equal(t, 2, found.Version())

	// a stale copy cannot be edited once a warden approved the stored one
	require.NoError(t, found.Approve(testWarden(t, 9)))
	require.NoError(t, repo.UpdateStatus(ctx, found, vo.StatusSubmitted))

	again := "stale edit"
	require.NoError(t, c.Edit(owner, complaint.EditPatch{Description: &again}))
	assert.ErrorIs(t, repo.Update(ctx, c), complaint.ErrForbiddenEdit)
}

func TestComplaintRepository_UpdateStatusIsCompareAndSet(t *testing.T) {
	repo := NewComplaintRepository(setupTestDB(t))
	ctx := context.Background()
	c := createComplaint(t, repo, testStudent(1, uservo.HostelBlockA), "Light out")

	first, err := repo.GetBySID(ctx, c.SID())
	require.NoError(t, err)
	second, err := repo.GetBySID(ctx, c.SID())
	require.NoError(t, err)

	require.NoError(t, first.Approve(testWarden(t, 20)))
	require.NoError(t, second.Approve(testWarden(t, 21)))

	require.NoError(t, repo.UpdateStatus(ctx, first, vo.StatusSubmitted))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, second, vo.StatusSubmitted), complaint.ErrForbiddenTransition)

	stored, err := repo.GetBySID(ctx, c.SID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusApproved, stored.Status())
	require.NotNil(t, stored.Audit().ApprovedBy)
	assert.Equal(t, uint(20), *stored.Audit().ApprovedBy)

	missing, err := complaint.ReconstructComplaint(999, "cmp_gone", "x", vo.CategoryOther, vo.VisibilityPublic,
		vo.StatusApproved, 0, uservo.WingMale, complaint.Submitter{ID: 1}, "", complaint.Audit{},
		stored.CreatedAt(), stored.UpdatedAt(), 2)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, missing, vo.StatusSubmitted), complaint.ErrComplaintNotFound)
}

func TestComplaintRepository_AdjustVotes(t *testing.T) {
	repo := NewComplaintRepository(setupTestDB(t))
	ctx := context.Background()
	c := createComplaint(t, repo, testStudent(1, uservo.HostelBlockA), "Fan broken")

	votes, err := repo.AdjustVotes(ctx, c.ID(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, votes)

	votes, err = repo.AdjustVotes(ctx, c.ID(), -2)
	require.NoError(t, err)
	assert.Equal(t, -1, votes)

	require.NoError(t, c.Approve(testWarden(t, 9)))
	require.NoError(t, repo.UpdateStatus(ctx, c, vo.StatusSubmitted))

	_, err = repo.AdjustVotes(ctx, c.ID(), 1)
	assert.ErrorIs(t, err, complaint.ErrVotingClosed)

	stored, err := repo.GetBySID(ctx, c.SID())
	require.NoError(t, err)
	assert.Equal(t, -1, stored.Votes())

	_, err = repo.AdjustVotes(ctx, 12345, 1)
	assert.ErrorIs(t, err, complaint.ErrComplaintNotFound)
}

func TestComplaintRepository_LockForVote(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewComplaintRepository(gdb)
	txm := db.NewTransactionManager(gdb)
	ctx := context.Background()
	c := createComplaint(t, repo, testStudent(1, uservo.HostelBlockA), "Door jammed")

	err := txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.LockForVote(txCtx, c.ID()); err != nil {
			return err
		}
		_, err := repo.AdjustVotes(txCtx, c.ID(), 1)
		return err
	})
	require.NoError(t, err)

	err = txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		return repo.LockForVote(txCtx, 12345)
	})
	assert.ErrorIs(t, err, complaint.ErrComplaintNotFound)

	require.NoError(t, c.Approve(testWarden(t, 9)))
	require.NoError(t, repo.UpdateStatus(ctx, c, vo.StatusSubmitted))

	err = txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		return repo.LockForVote(txCtx, c.ID())
	})
	assert.ErrorIs(t, err, complaint.ErrVotingClosed)
}

func TestComplaintRepository_ConcurrentVotesAreNotLost(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewComplaintRepository(gdb)
	txm := db.NewTransactionManager(gdb)
	ctx := context.Background()
	c := createComplaint(t, repo, testStudent(1, uservo.HostelBlockA), "Water cut")

	const voters = 40
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			delta := 1
			if i%4 == 0 {
				delta = -1
			}
			errs <- txm.RunInTransaction(ctx, func(txCtx context.Context) error {
				_, err := repo.AdjustVotes(txCtx, c.ID(), delta)
				return err
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := repo.GetBySID(ctx, c.SID())
	require.NoError(t, err)
	assert.Equal(t, 30-10, stored.Votes())
}

func TestComplaintRepository_Delete(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewComplaintRepository(gdb)
	votes := NewComplaintVoteRepository(gdb)
	ctx := context.Background()

	doomed := createComplaint(t, repo, testStudent(1, uservo.HostelBlockA), "Duplicate")
	kept := createComplaint(t, repo, testStudent(2, uservo.HostelBlockA), "Keep me")

	require.NoError(t, votes.SetDirection(ctx, doomed.ID(), 5, vo.VoteUp))
	require.NoError(t, votes.SetDirection(ctx, kept.ID(), 5, vo.VoteDown))
	_, err := repo.AdjustVotes(ctx, kept.ID(), -1)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, doomed.ID()))

	_, err = repo.GetBySID(ctx, doomed.SID())
	assert.ErrorIs(t, err, complaint.ErrComplaintNotFound)

	d, err := votes.GetDirection(ctx, doomed.ID(), 5)
	require.NoError(t, err)
	assert.Equal(t, vo.VoteNone, d)

	d, err = votes.GetDirection(ctx, kept.ID(), 5)
	require.NoError(t, err)
	assert.Equal(t, vo.VoteDown, d)

	stored, err := repo.GetBySID(ctx, kept.SID())
	require.NoError(t, err)
	assert.Equal(t, -1, stored.Votes())

	require.NoError(t, kept.Approve(testWarden(t, 9)))
	require.NoError(t, repo.UpdateStatus(ctx, kept, vo.StatusSubmitted))
	assert.ErrorIs(t, repo.Delete(ctx, kept.ID()), complaint.ErrForbiddenEdit)
	assert.ErrorIs(t, repo.Delete(ctx, doomed.ID()), complaint.ErrComplaintNotFound)
}

func TestComplaintVoteRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewComplaintVoteRepository(gdb)
	ctx := context.Background()

	d, err := repo.GetDirection(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, vo.VoteNone, d)

	require.NoError(t, repo.SetDirection(ctx, 1, 7, vo.VoteUp))
	require.NoError(t, repo.SetDirection(ctx, 1, 7, vo.VoteDown))
	require.NoError(t, repo.SetDirection(ctx, 2, 7, vo.VoteUp))
	require.NoError(t, repo.SetDirection(ctx, 2, 8, vo.VoteDown))

	d, err = repo.GetDirection(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, vo.VoteDown, d)

	dirs, err := repo.GetDirections(ctx, 7, []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, map[uint]vo.VoteDirection{1: vo.VoteDown, 2: vo.VoteUp}, dirs)

	require.NoError(t, repo.SetDirection(ctx, 1, 7, vo.VoteNone))
	d, err = repo.GetDirection(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, vo.VoteNone, d)

	var count int64
	require.NoError(t, gdb.Model(&models.ComplaintVoteModel{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	empty, err := repo.GetDirections(ctx, 7, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
