package mock

import (
	context "context"
	reflect "reflect"

	sheets "github.com/pomleague/auctioneer/auctioneer/sheets"
	gomock "go.uber.org/mock/gomock"
)

// MockOracle is a mock of Oracle interface.
type MockOracle struct {
	ctrl     *gomock.Controller
	recorder *MockOracleMockRecorder
	isgomock struct{}
}

// MockOracleMockRecorder is the mock recorder for MockOracle.
type MockOracleMockRecorder struct {
	mock *MockOracle
}

// NewMockOracle creates a new mock instance.
func NewMockOracle(ctrl *gomock.Controller) *MockOracle {
	mock := &MockOracle{ctrl: ctrl}
	mock.recorder = &MockOracleMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockOracle) EXPECT() *MockOracleMockRecorder {
	return m.recorder
}

// AppendHistory mocks base method.
func (m *MockOracle) AppendHistory(ctx context.Context, rec sheets.HistoryRecord) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AppendHistory", ctx, rec)
	ret0, _ := ret[0].(error)
	return ret0
}

// AppendHistory indicates an expected call of AppendHistory.
func (mr *MockOracleMockRecorder) AppendHistory(ctx, rec any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AppendHistory", reflect.TypeOf((*MockOracle)(nil).AppendHistory), ctx, rec)
}

// Balance mocks base method.
func (m *MockOracle) Balance(ctx context.Context, userID int64) (*int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Balance", ctx, userID)
	ret0, _ := ret[0].(*int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Balance indicates an expected call of Balance.
func (mr *MockOracleMockRecorder) Balance(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Balance", reflect.TypeOf((*MockOracle)(nil).Balance), ctx, userID)
}

// Debit mocks base method.
func (m *MockOracle) Debit(ctx context.Context, userID, amount int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Debit", ctx, userID, amount)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Debit indicates an expected call of Debit.
func (mr *MockOracleMockRecorder) Debit(ctx, userID, amount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Debit", reflect.TypeOf((*MockOracle)(nil).Debit), ctx, userID, amount)
}

// ListBalances mocks base method.
func (m *MockOracle) ListBalances(ctx context.Context) ([]sheets.BalanceRow, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListBalances", ctx)
	ret0, _ := ret[0].([]sheets.BalanceRow)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListBalances indicates an expected call of ListBalances.
func (mr *MockOracleMockRecorder) ListBalances(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListBalances", reflect.TypeOf((*MockOracle)(nil).ListBalances), ctx)
}
