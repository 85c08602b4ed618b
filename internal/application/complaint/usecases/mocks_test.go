package usecases

import (
	"context"
	"sync"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
)

type mockComplaintRepository struct {
	CreateFunc       func(ctx context.Context, c *complaint.Complaint) error
	GetByIDFunc      func(ctx context.Context, id uint) (*complaint.Complaint, error)
	GetBySIDFunc     func(ctx context.Context, sid string) (*complaint.Complaint, error)
	ListFunc         func(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, error)
	UpdateFunc       func(ctx context.Context, c *complaint.Complaint) error
	UpdateStatusFunc func(ctx context.Context, c *complaint.Complaint, expected vo.Status) error
	LockForVoteFunc  func(ctx context.Context, id uint) error
	AdjustVotesFunc  func(ctx context.Context, id uint, delta int) (int, error)
	DeleteFunc       func(ctx context.Context, id uint) error
}

func (m *mockComplaintRepository) Create(ctx context.Context, c *complaint.Complaint) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return c.SetID(1)
}

func (m *mockComplaintRepository) GetByID(ctx context.Context, id uint) (*complaint.Complaint, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, complaint.ErrComplaintNotFound
}

func (m *mockComplaintRepository) GetBySID(ctx context.Context, sid string) (*complaint.Complaint, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, complaint.ErrComplaintNotFound
}

func (m *mockComplaintRepository) List(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockComplaintRepository) Update(ctx context.Context, c *complaint.Complaint) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockComplaintRepository) UpdateStatus(ctx context.Context, c *complaint.Complaint, expected vo.Status) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, c, expected)
	}
	return nil
}

func (m *mockComplaintRepository) LockForVote(ctx context.Context, id uint) error {
	if m.LockForVoteFunc != nil {
		return m.LockForVoteFunc(ctx, id)
	}
	return nil
}

func (m *mockComplaintRepository) AdjustVotes(ctx context.Context, id uint, delta int) (int, error) {
	if m.AdjustVotesFunc != nil {
		return m.AdjustVotesFunc(ctx, id, delta)
	}
	return delta, nil
}

func (m *mockComplaintRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockVoteRepository struct {
	GetDirectionFunc  func(ctx context.Context, complaintID, userID uint) (vo.VoteDirection, error)
	GetDirectionsFunc func(ctx context.Context, userID uint, complaintIDs []uint) (map[uint]vo.VoteDirection, error)
	SetDirectionFunc  func(ctx context.Context, complaintID, userID uint, d vo.VoteDirection) error
}

func (m *mockVoteRepository) GetDirection(ctx context.Context, complaintID, userID uint) (vo.VoteDirection, error) {
	if m.GetDirectionFunc != nil {
		return m.GetDirectionFunc(ctx, complaintID, userID)
	}
	return vo.VoteNone, nil
}

func (m *mockVoteRepository) GetDirections(ctx context.Context, userID uint, complaintIDs []uint) (map[uint]vo.VoteDirection, error) {
	if m.GetDirectionsFunc != nil {
		return m.GetDirectionsFunc(ctx, userID, complaintIDs)
	}
	return map[uint]vo.VoteDirection{}, nil
}

func (m *mockVoteRepository) SetDirection(ctx context.Context, complaintID, userID uint, d vo.VoteDirection) error {
	if m.SetDirectionFunc != nil {
		return m.SetDirectionFunc(ctx, complaintID, userID, d)
	}
	return nil
}

// mockTransactor runs fn inline. RolledBack counts calls whose fn failed.
type mockTransactor struct {
	RolledBack int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err != nil {
		m.RolledBack++
	}
	return err
}

type mockComplaintCache struct {
	SaveLocalFunc    func(ctx context.Context, complaints []*complaint.Complaint) error
	NeedsRefreshFunc func(ctx context.Context) (bool, error)
	LoadLocalFunc    func(ctx context.Context) ([]*complaint.Complaint, error)
	PutLocalFunc     func(ctx context.Context, c *complaint.Complaint) error
	RemoveLocalFunc  func(ctx context.Context, sid string) error
}

func (m *mockComplaintCache) SaveLocal(ctx context.Context, complaints []*complaint.Complaint) error {
	if m.SaveLocalFunc != nil {
		return m.SaveLocalFunc(ctx, complaints)
	}
	return nil
}

func (m *mockComplaintCache) NeedsRefresh(ctx context.Context) (bool, error) {
	if m.NeedsRefreshFunc != nil {
		return m.NeedsRefreshFunc(ctx)
	}
	return true, nil
}

func (m *mockComplaintCache) LoadLocal(ctx context.Context) ([]*complaint.Complaint, error) {
	if m.LoadLocalFunc != nil {
		return m.LoadLocalFunc(ctx)
	}
	return nil, nil
}

func (m *mockComplaintCache) PutLocal(ctx context.Context, c *complaint.Complaint) error {
	if m.PutLocalFunc != nil {
		return m.PutLocalFunc(ctx, c)
	}
	return nil
}

func (m *mockComplaintCache) RemoveLocal(ctx context.Context, sid string) error {
	if m.RemoveLocalFunc != nil {
		return m.RemoveLocalFunc(ctx, sid)
	}
	return nil
}

type mockVoteDirectionCache struct {
	GetFunc   func(ctx context.Context, sid string, viewerID uint) (vo.VoteDirection, error)
	SetFunc   func(ctx context.Context, sid string, viewerID uint, d vo.VoteDirection) error
	ClearFunc func(ctx context.Context, sid string) error
}

func (m *mockVoteDirectionCache) Get(ctx context.Context, sid string, viewerID uint) (vo.VoteDirection, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, sid, viewerID)
	}
	return vo.VoteNone, nil
}

func (m *mockVoteDirectionCache) Set(ctx context.Context, sid string, viewerID uint, d vo.VoteDirection) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, sid, viewerID, d)
	}
	return nil
}

func (m *mockVoteDirectionCache) Clear(ctx context.Context, sid string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, sid)
	}
	return nil
}

type mockEventPublisher struct {
	mu     sync.Mutex
	events []complaint.ChangeEvent
	err    error
}

func (m *mockEventPublisher) Publish(ctx context.Context, event complaint.ChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

func (m *mockEventPublisher) types() []complaint.ChangeType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]complaint.ChangeType, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

type mockImageUploader struct {
	UploadImageFunc func(ctx context.Context, upload ImageUpload) (string, error)
}

func (m *mockImageUploader) UploadImage(ctx context.Context, upload ImageUpload) (string, error) {
	if m.UploadImageFunc != nil {
		return m.UploadImageFunc(ctx, upload)
	}
	return "https://cdn.fixora.app/complaints/photo.jpg", nil
}

type mockRenderer struct {
	RenderFunc func(text string) (string, error)
}

func (m *mockRenderer) Render(text string) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(text)
	}
	return "<p>" + text + "</p>", nil
}
