package interview

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"pairbot/discordutils"
	"pairbot/models"
	"pairbot/roster"

	"github.com/bwmarrin/discordgo"
)

// RoleName is the community role mentioned in the weekly announcement. A
// guild without it still gets the announcement, just without a mention.
const RoleName = "Interviewee"

const (
	announcementMessage = "%s\nHello everyone, it is time to practice!\n" +
		"React to this message with %s if you want to do a mock interview " +
		"with another member.\n" +
		"Remember you only have 24 hours to react. Have a nice week and " +
		"keep coding!"

	pairMessage = "Hello %s!\n" +
		"You have been paired with %s. Please get in contact with them and " +
		"don't forget to request the resume!\n" +
		"*Have fun!*"

	rosterMessage = "These are the pairs of the week.\n" +
		"Please get in touch with your partner!"

	emptyPoolMessage = "No one wanted to participate this week 😟"
)

// Store is the persistence the weekly matching cycle needs, implemented by
// dal.Store.
type Store interface {
	InterviewMatchesForDay(day int) ([]models.InterviewMatch, error)
	SetInterviewMessageID(guildID, messageID string) error
}

// Orchestrator runs the two phases of the weekly matching activity across
// every configured guild. Phases are serialized so a manual trigger cannot
// overlap a scheduled one.
type Orchestrator struct {
	platform Platform
	store    Store
	mu       sync.Mutex
}

// NewOrchestrator returns an Orchestrator using the given platform and
// store.
func NewOrchestrator(platform Platform, store Store) *Orchestrator {
	return &Orchestrator{platform: platform, store: store}
}

// PostPhase sends the weekly announcement to every guild configured for the
// given weekday and records the new message id for the collect phase. A
// failing guild is logged and does not affect the others.
func (o *Orchestrator) PostPhase(day int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	entries, err := o.store.InterviewMatchesForDay(day)
	if err != nil {
		log.Printf("Failed to load matching configs for day %v: %v", day, err)
		return
	}

	for _, entry := range entries {
		if err := o.postGuild(entry); err != nil {
			log.Printf("Weekly announcement failed for guild %v: %v", entry.GuildID, err)
		}
	}
}

// CollectPhase gathers the reactions to each announcement posted on the
// given weekday, pairs the participants and notifies them. Guilds whose
// announcement is gone are skipped; a failing guild does not affect the
// others.
func (o *Orchestrator) CollectPhase(day int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	entries, err := o.store.InterviewMatchesForDay(day)
	if err != nil {
		log.Printf("Failed to load matching configs for day %v: %v", day, err)
		return
	}

	for _, entry := range entries {
		err := o.collectGuild(entry)
		switch {
		case err == nil:
		case IsSkip(err):
			log.Printf("Nothing to collect for guild %v: %v", entry.GuildID, err)
		default:
			log.Printf("Weekly matching failed for guild %v: %v", entry.GuildID, err)
		}
	}
}

func (o *Orchestrator) postGuild(entry models.InterviewMatch) error {
	mention := ""
	roles, err := o.platform.GuildRoles(entry.GuildID)
	if err != nil {
		log.Printf("Failed to list roles for guild %v: %v", entry.GuildID, err)
	} else if role := discordutils.FindRoleByName(roles, RoleName); role != nil {
		mention = role.Mention()
	} else {
		log.Printf("No %v role in guild %v, announcing without a mention", RoleName, entry.GuildID)
	}

	content := fmt.Sprintf(announcementMessage, mention, entry.Emoji)
	message, err := o.platform.ChannelMessageSend(entry.ChannelID, content)
	if err != nil {
		return fmt.Errorf("sending announcement (%v): %w", ClassifySendError(err), err)
	}

	// The bot seeds the reaction so members only have to click it. Its own
	// reaction never counts toward the pool.
	if err := o.platform.MessageReactionAdd(entry.ChannelID, message.ID, entry.Emoji); err != nil {
		log.Printf("Failed to seed the %v reaction in guild %v: %v", entry.Emoji, entry.GuildID, err)
	}

	if err := o.store.SetInterviewMessageID(entry.GuildID, message.ID); err != nil {
		// The next collect phase finds no message id and skips the guild.
		log.Printf("Failed to store the announcement id for guild %v: %v", entry.GuildID, err)
	}

	return nil
}

func (o *Orchestrator) collectGuild(entry models.InterviewMatch) error {
	if entry.MessageID == "" {
		return ErrNoMessage
	}

	message, err := o.platform.ChannelMessage(entry.ChannelID, entry.MessageID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoMessage, err)
	}

	wildcard, err := o.platform.GuildMember(entry.GuildID, entry.AuthorID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoWildcard, err)
	}

	pool, err := CollectPool(o.platform, message, entry.Emoji)
	if err != nil {
		return err
	}

	if len(pool) == 0 {
		if _, err := o.platform.ChannelMessageSend(entry.ChannelID, emptyPoolMessage); err != nil {
			log.Printf("Failed to send the empty pool notice to guild %v: %v", entry.GuildID, err)
		}
		return nil
	}

	pairs := MakePairs(pool, wildcard.User)
	for _, pair := range pairs {
		o.sendPairNotice(pair[0], pair[1])
		o.sendPairNotice(pair[1], pair[0])
	}

	o.sendRoster(entry.ChannelID, pool, pairs)

	return nil
}

// sendPairNotice DMs one side of a pair about the other. Delivery failures
// are logged per recipient and never stop the remaining pairs.
func (o *Orchestrator) sendPairNotice(to, partner *discordgo.User) {
	channel, err := o.platform.UserChannelCreate(to.ID)
	if err != nil {
		log.Printf("Failed to open a DM with %v: %v", displayName(to), err)
		return
	}

	content := fmt.Sprintf(pairMessage, displayName(to), displayName(partner))
	if _, err := o.platform.ChannelMessageSend(channel.ID, content); err != nil {
		log.Printf("Failed to DM %v their partner (%v): %v", displayName(to), ClassifySendError(err), err)
	}
}

// sendRoster posts the public participant list, with the rendered pairing
// image attached when rendering succeeds.
func (o *Orchestrator) sendRoster(channelID string, pool []*discordgo.User, pairs []Pair) {
	sorted := make([]*discordgo.User, len(pool))
	copy(sorted, pool)
	sort.Slice(sorted, func(i, j int) bool {
		return displayName(sorted[i]) < displayName(sorted[j])
	})

	mentions := make([]string, len(sorted))
	for i, user := range sorted {
		mentions[i] = user.Mention()
	}
	content := rosterMessage + "\n" + strings.Join(mentions, ",")

	names := make([][2]string, len(pairs))
	for i, pair := range pairs {
		names[i] = [2]string{displayName(pair[0]), displayName(pair[1])}
	}

	image, err := roster.Render(names)
	if err != nil {
		log.Printf("Failed to render the pairing roster: %v", err)
		if _, err := o.platform.ChannelMessageSend(channelID, content); err != nil {
			log.Printf("Failed to send the weekly roster (%v): %v", ClassifySendError(err), err)
		}
		return
	}

	_, err = o.platform.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Files: []*discordgo.File{{
			Name:        "pairs.png",
			ContentType: "image/png",
			Reader:      image,
		}},
	})
	if err != nil {
		log.Printf("Failed to send the weekly roster (%v): %v", ClassifySendError(err), err)
	}
}

func displayName(user *discordgo.User) string {
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}
