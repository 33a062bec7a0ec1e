package interview

import (
	"fmt"

	"pairbot/models"

	"github.com/bwmarrin/discordgo"
)

type sentMessage struct {
	channelID string
	content   string
}

// fakePlatform implements Platform in memory and records every outbound
// call in order.
type fakePlatform struct {
	messages map[string]*discordgo.Message // "channelID/messageID"
	reactors map[string][]*discordgo.User  // emoji API name -> reactors
	members  map[string]*discordgo.Member  // "guildID/userID"
	roles    map[string][]*discordgo.Role  // guildID

	failSends map[string]error // channelID -> forced send error

	sent           []sentMessage
	rosters        []sentMessage
	reactionsAdded []string
	fetches        []string
	ops            []string
	nextMessageID  int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		messages:  make(map[string]*discordgo.Message),
		reactors:  make(map[string][]*discordgo.User),
		members:   make(map[string]*discordgo.Member),
		roles:     make(map[string][]*discordgo.Role),
		failSends: make(map[string]error),
	}
}

func (f *fakePlatform) ChannelMessageSend(
	channelID, content string,
	_ ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	if err := f.failSends[channelID]; err != nil {
		return nil, err
	}
	f.nextMessageID++
	f.sent = append(f.sent, sentMessage{channelID: channelID, content: content})
	f.ops = append(f.ops, "send:"+channelID)
	return &discordgo.Message{
		ID:        fmt.Sprintf("m%d", f.nextMessageID),
		ChannelID: channelID,
	}, nil
}

func (f *fakePlatform) ChannelMessageSendComplex(
	channelID string,
	data *discordgo.MessageSend,
	_ ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	if err := f.failSends[channelID]; err != nil {
		return nil, err
	}
	f.nextMessageID++
	f.rosters = append(f.rosters, sentMessage{channelID: channelID, content: data.Content})
	f.ops = append(f.ops, "roster:"+channelID)
	return &discordgo.Message{
		ID:        fmt.Sprintf("m%d", f.nextMessageID),
		ChannelID: channelID,
	}, nil
}

func (f *fakePlatform) ChannelMessage(
	channelID, messageID string,
	_ ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	f.fetches = append(f.fetches, channelID+"/"+messageID)
	message, ok := f.messages[channelID+"/"+messageID]
	if !ok {
		return nil, fmt.Errorf("message %v not found", messageID)
	}
	return message, nil
}

func (f *fakePlatform) MessageReactionAdd(
	channelID, messageID, emojiID string,
	_ ...discordgo.RequestOption,
) error {
	f.reactionsAdded = append(f.reactionsAdded, channelID+"/"+messageID+"/"+emojiID)
	return nil
}

func (f *fakePlatform) MessageReactions(
	channelID, messageID, emojiID string,
	limit int,
	beforeID, afterID string,
	_ ...discordgo.RequestOption,
) ([]*discordgo.User, error) {
	users := f.reactors[emojiID]

	start := 0
	if afterID != "" {
		for i, user := range users {
			if user.ID == afterID {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(users) {
		end = len(users)
	}
	return users[start:end], nil
}

func (f *fakePlatform) GuildMember(
	guildID, userID string,
	_ ...discordgo.RequestOption,
) (*discordgo.Member, error) {
	member, ok := f.members[guildID+"/"+userID]
	if !ok {
		return nil, fmt.Errorf("member %v not found", userID)
	}
	return member, nil
}

func (f *fakePlatform) GuildRoles(
	guildID string,
	_ ...discordgo.RequestOption,
) ([]*discordgo.Role, error) {
	return f.roles[guildID], nil
}

func (f *fakePlatform) UserChannelCreate(
	recipientID string,
	_ ...discordgo.RequestOption,
) (*discordgo.Channel, error) {
	f.ops = append(f.ops, "dm-open:"+recipientID)
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

// dmsTo returns the direct messages delivered to the given user.
func (f *fakePlatform) dmsTo(userID string) []string {
	var contents []string
	for _, message := range f.sent {
		if message.channelID == "dm-"+userID {
			contents = append(contents, message.content)
		}
	}
	return contents
}

// sentTo returns the plain messages delivered to the given channel.
func (f *fakePlatform) sentTo(channelID string) []string {
	var contents []string
	for _, message := range f.sent {
		if message.channelID == channelID {
			contents = append(contents, message.content)
		}
	}
	return contents
}

// fakeStore implements Store in memory.
type fakeStore struct {
	entries       map[int][]models.InterviewMatch
	requestedDays []int
	messageIDs    map[string]string
	failSet       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries:    make(map[int][]models.InterviewMatch),
		messageIDs: make(map[string]string),
	}
}

func (s *fakeStore) InterviewMatchesForDay(day int) ([]models.InterviewMatch, error) {
	s.requestedDays = append(s.requestedDays, day)
	return s.entries[day], nil
}

func (s *fakeStore) SetInterviewMessageID(guildID, messageID string) error {
	if s.failSet != nil {
		return s.failSet
	}
	s.messageIDs[guildID] = messageID
	return nil
}
