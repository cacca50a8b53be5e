package mock

import (
	reflect "reflect"

	discord "github.com/disgoorg/disgo/discord"
	snowflake "github.com/disgoorg/snowflake/v2"
	gomock "go.uber.org/mock/gomock"
)

// MockChat is a mock of Chat interface.
type MockChat struct {
	ctrl     *gomock.Controller
	recorder *MockChatMockRecorder
	isgomock struct{}
}

// MockChatMockRecorder is the mock recorder for MockChat.
type MockChatMockRecorder struct {
	mock *MockChat
}

// NewMockChat creates a new mock instance.
func NewMockChat(ctrl *gomock.Controller) *MockChat {
	mock := &MockChat{ctrl: ctrl}
	mock.recorder = &MockChatMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockChat) EXPECT() *MockChatMockRecorder {
	return m.recorder
}

// AddThreadMember mocks base method.
func (m *MockChat) AddThreadMember(threadID, userID snowflake.ID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddThreadMember", threadID, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddThreadMember indicates an expected call of AddThreadMember.
func (mr *MockChatMockRecorder) AddThreadMember(threadID, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddThreadMember", reflect.TypeOf((*MockChat)(nil).AddThreadMember), threadID, userID)
}

// ArchiveThread mocks base method.
func (m *MockChat) ArchiveThread(threadID snowflake.ID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ArchiveThread", threadID)
	ret0, _ := ret[0].(error)
	return ret0
}

// ArchiveThread indicates an expected call of ArchiveThread.
func (mr *MockChatMockRecorder) ArchiveThread(threadID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ArchiveThread", reflect.TypeOf((*MockChat)(nil).ArchiveThread), threadID)
}

// BotUserID mocks base method.
func (m *MockChat) BotUserID() snowflake.ID {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BotUserID")
	ret0, _ := ret[0].(snowflake.ID)
	return ret0
}

// BotUserID indicates an expected call of BotUserID.
func (mr *MockChatMockRecorder) BotUserID() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BotUserID", reflect.TypeOf((*MockChat)(nil).BotUserID))
}

// CreateThread mocks base method.
func (m *MockChat) CreateThread(channelID, messageID snowflake.ID, name string) (*discord.GuildThread, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateThread", channelID, messageID, name)
	ret0, _ := ret[0].(*discord.GuildThread)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateThread indicates an expected call of CreateThread.
func (mr *MockChatMockRecorder) CreateThread(channelID, messageID, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateThread", reflect.TypeOf((*MockChat)(nil).CreateThread), channelID, messageID, name)
}

// EditMessage mocks base method.
func (m *MockChat) EditMessage(channelID, messageID snowflake.ID, update discord.MessageUpdate) (*discord.Message, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EditMessage", channelID, messageID, update)
	ret0, _ := ret[0].(*discord.Message)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// EditMessage indicates an expected call of EditMessage.
func (mr *MockChatMockRecorder) EditMessage(channelID, messageID, update any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EditMessage", reflect.TypeOf((*MockChat)(nil).EditMessage), channelID, messageID, update)
}

// IsThread mocks base method.
func (m *MockChat) IsThread(channelID snowflake.ID) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsThread", channelID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IsThread indicates an expected call of IsThread.
func (mr *MockChatMockRecorder) IsThread(channelID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsThread", reflect.TypeOf((*MockChat)(nil).IsThread), channelID)
}

// PinMessage mocks base method.
func (m *MockChat) PinMessage(channelID, messageID snowflake.ID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PinMessage", channelID, messageID)
	ret0, _ := ret[0].(error)
	return ret0
}

// PinMessage indicates an expected call of PinMessage.
func (mr *MockChatMockRecorder) PinMessage(channelID, messageID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PinMessage", reflect.TypeOf((*MockChat)(nil).PinMessage), channelID, messageID)
}

// PinnedMessages mocks base method.
func (m *MockChat) PinnedMessages(channelID snowflake.ID) ([]discord.Message, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PinnedMessages", channelID)
	ret0, _ := ret[0].([]discord.Message)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PinnedMessages indicates an expected call of PinnedMessages.
func (mr *MockChatMockRecorder) PinnedMessages(channelID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PinnedMessages", reflect.TypeOf((*MockChat)(nil).PinnedMessages), channelID)
}

// RecentMessages mocks base method.
func (m *MockChat) RecentMessages(channelID snowflake.ID, limit int) ([]discord.Message, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecentMessages", channelID, limit)
	ret0, _ := ret[0].([]discord.Message)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RecentMessages indicates an expected call of RecentMessages.
func (mr *MockChatMockRecorder) RecentMessages(channelID, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecentMessages", reflect.TypeOf((*MockChat)(nil).RecentMessages), channelID, limit)
}

// SendMessage mocks base method.
func (m *MockChat) SendMessage(channelID snowflake.ID, msg discord.MessageCreate) (*discord.Message, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendMessage", channelID, msg)
	ret0, _ := ret[0].(*discord.Message)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SendMessage indicates an expected call of SendMessage.
func (mr *MockChatMockRecorder) SendMessage(channelID, msg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendMessage", reflect.TypeOf((*MockChat)(nil).SendMessage), channelID, msg)
}

// Thread mocks base method.
func (m *MockChat) Thread(channelID snowflake.ID) (*discord.GuildThread, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Thread", channelID)
	ret0, _ := ret[0].(*discord.GuildThread)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Thread indicates an expected call of Thread.
func (mr *MockChatMockRecorder) Thread(channelID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Thread", reflect.TypeOf((*MockChat)(nil).Thread), channelID)
}
