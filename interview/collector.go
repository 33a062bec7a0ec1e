package interview

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const reactionPageSize = 100

// CollectPool returns the unique non-bot users who reacted to the given
// message with the given emoji. Reactors are fetched page by page; a user
// counts once no matter how many matching reaction entries list them. Other
// emojis on the message are ignored.
func CollectPool(platform Platform, message *discordgo.Message, emoji string) ([]*discordgo.User, error) {
	seen := make(map[string]bool)
	var pool []*discordgo.User

	for _, reaction := range message.Reactions {
		if reaction.Emoji == nil || reaction.Emoji.Name != emoji {
			continue
		}

		afterID := ""
		for {
			users, err := platform.MessageReactions(
				message.ChannelID,
				message.ID,
				reaction.Emoji.APIName(),
				reactionPageSize,
				"",
				afterID,
			)
			if err != nil {
				return nil, fmt.Errorf("listing %v reactors on message %v: %w", emoji, message.ID, err)
			}

			for _, user := range users {
				if user.Bot || seen[user.ID] {
					continue
				}
				seen[user.ID] = true
				pool = append(pool, user)
			}

			if len(users) < reactionPageSize {
				break
			}
			afterID = users[len(users)-1].ID
		}
	}

	return pool, nil
}
