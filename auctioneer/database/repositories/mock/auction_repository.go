package mock

import (
	context "context"
	reflect "reflect"

	models "github.com/pomleague/auctioneer/auctioneer/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockAuctionRepository is a mock of AuctionRepository interface.
type MockAuctionRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAuctionRepositoryMockRecorder
	isgomock struct{}
}

// MockAuctionRepositoryMockRecorder is the mock recorder for MockAuctionRepository.
type MockAuctionRepositoryMockRecorder struct {
	mock *MockAuctionRepository
}

// NewMockAuctionRepository creates a new mock instance.
func NewMockAuctionRepository(ctrl *gomock.Controller) *MockAuctionRepository {
	mock := &MockAuctionRepository{ctrl: ctrl}
	mock.recorder = &MockAuctionRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuctionRepository) EXPECT() *MockAuctionRepositoryMockRecorder {
	return m.recorder
}

// CompleteAuction mocks base method.
func (m *MockAuctionRepository) CompleteAuction(ctx context.Context, threadID int64) (*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CompleteAuction", ctx, threadID)
	ret0, _ := ret[0].(*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CompleteAuction indicates an expected call of CompleteAuction.
func (mr *MockAuctionRepositoryMockRecorder) CompleteAuction(ctx, threadID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CompleteAuction", reflect.TypeOf((*MockAuctionRepository)(nil).CompleteAuction), ctx, threadID)
}

// Create mocks base method.
func (m *MockAuctionRepository) Create(ctx context.Context, auction *models.Auction) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, auction)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockAuctionRepositoryMockRecorder) Create(ctx, auction any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockAuctionRepository)(nil).Create), ctx, auction)
}

// GetByThread mocks base method.
func (m *MockAuctionRepository) GetByThread(ctx context.Context, threadID int64) (*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByThread", ctx, threadID)
	ret0, _ := ret[0].(*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByThread indicates an expected call of GetByThread.
func (mr *MockAuctionRepositoryMockRecorder) GetByThread(ctx, threadID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByThread", reflect.TypeOf((*MockAuctionRepository)(nil).GetByThread), ctx, threadID)
}

// ListActive mocks base method.
func (m *MockAuctionRepository) ListActive(ctx context.Context) ([]*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListActive", ctx)
	ret0, _ := ret[0].([]*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListActive indicates an expected call of ListActive.
func (mr *MockAuctionRepositoryMockRecorder) ListActive(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListActive", reflect.TypeOf((*MockAuctionRepository)(nil).ListActive), ctx)
}

// ListActiveByChannel mocks base method.
func (m *MockAuctionRepository) ListActiveByChannel(ctx context.Context, channelID int64) ([]*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListActiveByChannel", ctx, channelID)
	ret0, _ := ret[0].([]*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListActiveByChannel indicates an expected call of ListActiveByChannel.
func (mr *MockAuctionRepositoryMockRecorder) ListActiveByChannel(ctx, channelID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListActiveByChannel", reflect.TypeOf((*MockAuctionRepository)(nil).ListActiveByChannel), ctx, channelID)
}

// PlaceBid mocks base method.
func (m *MockAuctionRepository) PlaceBid(ctx context.Context, threadID, amount, bidderID int64, bidderName string) (*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PlaceBid", ctx, threadID, amount, bidderID, bidderName)
	ret0, _ := ret[0].(*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PlaceBid indicates an expected call of PlaceBid.
func (mr *MockAuctionRepositoryMockRecorder) PlaceBid(ctx, threadID, amount, bidderID, bidderName any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PlaceBid", reflect.TypeOf((*MockAuctionRepository)(nil).PlaceBid), ctx, threadID, amount, bidderID, bidderName)
}

// Register mocks base method.
func (m *MockAuctionRepository) Register(ctx context.Context, auction *models.Auction) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Register", ctx, auction)
	ret0, _ := ret[0].(error)
	return ret0
}

// Register indicates an expected call of Register.
func (mr *MockAuctionRepositoryMockRecorder) Register(ctx, auction any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Register", reflect.TypeOf((*MockAuctionRepository)(nil).Register), ctx, auction)
}

// SumCommitment mocks base method.
func (m *MockAuctionRepository) SumCommitment(ctx context.Context, bidderID int64) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SumCommitment", ctx, bidderID)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SumCommitment indicates an expected call of SumCommitment.
func (mr *MockAuctionRepositoryMockRecorder) SumCommitment(ctx, bidderID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SumCommitment", reflect.TypeOf((*MockAuctionRepository)(nil).SumCommitment), ctx, bidderID)
}
