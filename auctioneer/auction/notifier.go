package auction

import (
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// Chat is the slice of Discord the auction lifecycle needs. Sweeps and
// settlement run against this instead of the raw client so they can be
// tested without a gateway.
type Chat interface {
	// BotUserID identifies the bot's own messages in history and pin scans.
	BotUserID() snowflake.ID
	SendMessage(channelID snowflake.ID, msg discord.MessageCreate) (*discord.Message, error)
	EditMessage(channelID, messageID snowflake.ID, update discord.MessageUpdate) (*discord.Message, error)
	// RecentMessages returns up to limit messages, newest first.
	RecentMessages(channelID snowflake.ID, limit int) ([]discord.Message, error)
	PinnedMessages(channelID snowflake.ID) ([]discord.Message, error)
	PinMessage(channelID, messageID snowflake.ID) error
	CreateThread(channelID, messageID snowflake.ID, name string) (*discord.GuildThread, error)
	AddThreadMember(threadID, userID snowflake.ID) error
	// ArchiveThread archives and locks a settled auction thread.
	ArchiveThread(threadID snowflake.ID) error
	// Thread resolves a channel as a thread, or nil when it is not one.
	Thread(channelID snowflake.ID) (*discord.GuildThread, error)
	IsThread(channelID snowflake.ID) (bool, error)
}

type restChat struct {
	client bot.Client
}

func NewChat(client bot.Client) Chat {
	return &restChat{client: client}
}

func (c *restChat) BotUserID() snowflake.ID {
	return c.client.ApplicationID()
}

func (c *restChat) SendMessage(channelID snowflake.ID, msg discord.MessageCreate) (*discord.Message, error) {
	return c.client.Rest().CreateMessage(channelID, msg)
}

func (c *restChat) EditMessage(channelID, messageID snowflake.ID, update discord.MessageUpdate) (*discord.Message, error) {
	return c.client.Rest().UpdateMessage(channelID, messageID, update)
}

func (c *restChat) RecentMessages(channelID snowflake.ID, limit int) ([]discord.Message, error) {
	return c.client.Rest().GetMessages(channelID, 0, 0, 0, limit)
}

func (c *restChat) PinnedMessages(channelID snowflake.ID) ([]discord.Message, error) {
	return c.client.Rest().GetPinnedMessages(channelID)
}

func (c *restChat) PinMessage(channelID, messageID snowflake.ID) error {
	return c.client.Rest().PinMessage(channelID, messageID)
}

func (c *restChat) CreateThread(channelID, messageID snowflake.ID, name string) (*discord.GuildThread, error) {
	return c.client.Rest().CreateThreadFromMessage(channelID, messageID, discord.ThreadCreateFromMessage{
		Name: name,
	})
}

func (c *restChat) AddThreadMember(threadID, userID snowflake.ID) error {
	return c.client.Rest().AddThreadMember(threadID, userID)
}

func (c *restChat) ArchiveThread(threadID snowflake.ID) error {
	archived, locked := true, true
	_, err := c.client.Rest().UpdateChannel(threadID, discord.GuildThreadUpdate{
		Archived: &archived,
		Locked:   &locked,
	})
	return err
}

func (c *restChat) Thread(channelID snowflake.ID) (*discord.GuildThread, error) {
	ch, err := c.client.Rest().GetChannel(channelID)
	if err != nil {
		return nil, err
	}
	thread, ok := ch.(discord.GuildThread)
	if !ok {
		return nil, nil
	}
	return &thread, nil
}

func (c *restChat) IsThread(channelID snowflake.ID) (bool, error) {
	thread, err := c.Thread(channelID)
	if err != nil {
		return false, err
	}
	return thread != nil, nil
}
