package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
)

func studentProfile(id uint, hostel uservo.Hostel) user.Profile {
	return user.Profile{
		ID:           id,
		Name:         "Student",
		Role:         user.Student(),
		Hostel:       hostel,
		Room:         "101",
		HostelGender: hostel.Wing(),
	}
}

func wardenProfile(t *testing.T, id uint, wing uservo.Wing) user.Profile {
	t.Helper()
	role, err := user.Warden(wing)
	require.NoError(t, err)
	return user.Profile{ID: id, Name: "Warden", Role: role, HostelGender: wing}
}

func staffProfile(t *testing.T, id uint, wing uservo.Wing) user.Profile {
	t.Helper()
	role, err := user.Staff(wing)
	require.NoError(t, err)
	return user.Profile{ID: id, Name: "Staff", Role: role, HostelGender: wing}
}

// persisted builds a stored complaint owned by owner.
func persisted(t *testing.T, id uint, owner user.Profile, visibility string) *complaint.Complaint {
	t.Helper()
	c, err := complaint.NewComplaint(complaint.NewComplaintInput{
		Description: "Fan broken",
		Category:    "Electrical",
		Visibility:  visibility,
	}, owner)
	require.NoError(t, err)
	require.NoError(t, c.SetID(id))
	return c
}

// memStore is an in-memory complaint store with the same guards as the
// SQL repository. It hands out copies so callers cannot mutate what is
// stored without going through a write.
type memStore struct {
	mu       sync.Mutex
	nextID   uint
	byID     map[uint]*complaint.Complaint
	votes    map[[2]uint]vo.VoteDirection
	rowLocks map[uint]*sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		byID:     make(map[uint]*complaint.Complaint),
		votes:    make(map[[2]uint]vo.VoteDirection),
		rowLocks: make(map[uint]*sync.Mutex),
	}
}

type memTxKey struct{}

// memTx collects the row locks taken inside one RunInTransaction call.
type memTx struct {
	release []func()
}

// RunInTransaction releases row locks taken by fn once fn returns. Writes
// are applied immediately; there is no rollback.
func (s *memStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := &memTx{}
	defer func() {
		for _, unlock := range tx.release {
			unlock()
		}
	}()
	return fn(context.WithValue(ctx, memTxKey{}, tx))
}

func cloneComplaint(c *complaint.Complaint, votes int) *complaint.Complaint {
	out, err := complaint.ReconstructComplaint(
		c.ID(), c.SID(), c.Description(), c.Category(), c.Visibility(), c.Status(),
		votes, c.HostelType(), c.Submitter(), c.ImageURL(), c.Audit(),
		c.CreatedAt(), c.UpdatedAt(), c.Version(),
	)
	if err != nil {
		panic(err)
	}
	return out
}

func (s *memStore) Create(ctx context.Context, c *complaint.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	if err := c.SetID(s.nextID); err != nil {
		return err
	}
	s.byID[c.ID()] = cloneComplaint(c, c.Votes())
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id uint) (*complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, complaint.ErrComplaintNotFound
	}
	return cloneComplaint(c, c.Votes()), nil
}

func (s *memStore) GetBySID(ctx context.Context, sid string) (*complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.byID {
		if c.SID() == sid {
			return cloneComplaint(c, c.Votes()), nil
		}
	}
	return nil, complaint.ErrComplaintNotFound
}

func (s *memStore) List(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*complaint.Complaint, 0, len(s.byID))
	for _, c := range s.byID {
		if filter.Status != "" && c.Status() != filter.Status {
			continue
		}
		out = append(out, cloneComplaint(c, c.Votes()))
	}
	return out, nil
}

func (s *memStore) guard(id uint, status vo.Status, conflict error) (*complaint.Complaint, error) {
	stored, ok := s.byID[id]
	if !ok {
		return nil, complaint.ErrComplaintNotFound
	}
	if stored.Status() != status {
		return nil, conflict
	}
	return stored, nil
}

func (s *memStore) Update(ctx context.Context, c *complaint.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.guard(c.ID(), vo.StatusSubmitted, complaint.ErrForbiddenEdit)
	if err != nil {
		return err
	}
	s.byID[c.ID()] = cloneComplaint(c, stored.Votes())
	return nil
}

func (s *memStore) UpdateStatus(ctx context.Context, c *complaint.Complaint, expected vo.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.guard(c.ID(), expected, complaint.ErrForbiddenTransition)
	if err != nil {
		return err
	}
	s.byID[c.ID()] = cloneComplaint(c, stored.Votes())
	return nil
}

// LockForVote blocks while another transaction holds the row. Outside a
// transaction it only checks the status.
func (s *memStore) LockForVote(ctx context.Context, id uint) error {
	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		s.mu.Lock()
		row, ok := s.rowLocks[id]
		if !ok {
			row = &sync.Mutex{}
			s.rowLocks[id] = row
		}
		s.mu.Unlock()

		row.Lock()
		tx.release = append(tx.release, row.Unlock)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.guard(id, vo.StatusSubmitted, complaint.ErrVotingClosed)
	return err
}

func (s *memStore) AdjustVotes(ctx context.Context, id uint, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.guard(id, vo.StatusSubmitted, complaint.ErrVotingClosed)
	if err != nil {
		return 0, err
	}
	votes := stored.Votes() + delta
	s.byID[id] = cloneComplaint(stored, votes)
	return votes, nil
}

func (s *memStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.guard(id, vo.StatusSubmitted, complaint.ErrForbiddenEdit); err != nil {
		return err
	}
	delete(s.byID, id)
	for key := range s.votes {
		if key[0] == id {
			delete(s.votes, key)
		}
	}
	return nil
}

func (s *memStore) GetDirection(ctx context.Context, complaintID, userID uint) (vo.VoteDirection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.votes[[2]uint{complaintID, userID}]; ok {
		return d, nil
	}
	return vo.VoteNone, nil
}

func (s *memStore) GetDirections(ctx context.Context, userID uint, complaintIDs []uint) (map[uint]vo.VoteDirection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint]vo.VoteDirection)
	for _, id := range complaintIDs {
		if d, ok := s.votes[[2]uint{id, userID}]; ok {
			out[id] = d
		}
	}
	return out, nil
}

func (s *memStore) SetDirection(ctx context.Context, complaintID, userID uint, d vo.VoteDirection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uint{complaintID, userID}
	if !d.IsCast() {
		delete(s.votes, key)
		return nil
	}
	s.votes[key] = d
	return nil
}
