package mock

import (
	context "context"
	reflect "reflect"

	repositories "github.com/pomleague/auctioneer/auctioneer/database/repositories"
	gomock "go.uber.org/mock/gomock"
)

// MockPinnedMessageRepository is a mock of PinnedMessageRepository interface.
type MockPinnedMessageRepository struct {
	ctrl     *gomock.Controller
	recorder *MockPinnedMessageRepositoryMockRecorder
	isgomock struct{}
}

// MockPinnedMessageRepositoryMockRecorder is the mock recorder for MockPinnedMessageRepository.
type MockPinnedMessageRepositoryMockRecorder struct {
	mock *MockPinnedMessageRepository
}

// NewMockPinnedMessageRepository creates a new mock instance.
func NewMockPinnedMessageRepository(ctrl *gomock.Controller) *MockPinnedMessageRepository {
	mock := &MockPinnedMessageRepository{ctrl: ctrl}
	mock.recorder = &MockPinnedMessageRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPinnedMessageRepository) EXPECT() *MockPinnedMessageRepositoryMockRecorder {
	return m.recorder
}

// Delete mocks base method.
func (m *MockPinnedMessageRepository) Delete(ctx context.Context, kind repositories.PinnedKind, channelID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, kind, channelID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockPinnedMessageRepositoryMockRecorder) Delete(ctx, kind, channelID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockPinnedMessageRepository)(nil).Delete), ctx, kind, channelID)
}

// Get mocks base method.
func (m *MockPinnedMessageRepository) Get(ctx context.Context, kind repositories.PinnedKind, channelID int64) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, kind, channelID)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockPinnedMessageRepositoryMockRecorder) Get(ctx, kind, channelID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockPinnedMessageRepository)(nil).Get), ctx, kind, channelID)
}

// Set mocks base method.
func (m *MockPinnedMessageRepository) Set(ctx context.Context, kind repositories.PinnedKind, channelID, messageID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Set", ctx, kind, channelID, messageID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Set indicates an expected call of Set.
func (mr *MockPinnedMessageRepositoryMockRecorder) Set(ctx, kind, channelID, messageID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Set", reflect.TypeOf((*MockPinnedMessageRepository)(nil).Set), ctx, kind, channelID, messageID)
}
