package bot

import (
	"log"
	"time"

	"pairbot/dal"
	"pairbot/interview"
	"pairbot/timelines"

	"github.com/bwmarrin/discordgo"
)

type commandHandler = func(*discordgo.InteractionCreate)

// Bot represents an instance of the pairbot discord bot.
type Bot struct {
	session            *discordgo.Session
	store              *dal.Store
	orchestrator       *interview.Orchestrator
	announcer          *timelines.Announcer
	registeredCommands []*discordgo.ApplicationCommand
	commandHandlers    map[string]commandHandler
	location           *time.Location
}

func (bot *Bot) initSession(token string) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("Failed to create discord session: %v", err)
	}

	session.Identify.Intents = discordgo.IntentsAll

	session.AddHandler(func(*discordgo.Session, *discordgo.Ready) {
		log.Println("Bot is up!")
	})

	session.AddHandler(func(
		s *discordgo.Session,
		i *discordgo.InteractionCreate,
	) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if handler, ok := bot.commandHandlers[i.ApplicationCommandData().Name]; ok {
			handler(i)
		}
	})

	session.AddHandler(bot.handleReactionAdd)
	session.AddHandler(bot.handleMemberJoin)

	err = session.Open()
	if err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}

	bot.session = session
}

func (bot *Bot) registerCommands(guildID string) {
	for _, command := range botCommands {
		newCommand, err := bot.session.ApplicationCommandCreate(
			bot.session.State.User.ID,
			guildID,
			command,
		)
		bot.registeredCommands = append(bot.registeredCommands, newCommand)
		if err != nil {
			log.Fatalf("Failed to create %v command: %v", command.Name, err)
		}
		log.Printf("Created %v command.", command.Name)
	}
}

// New initialises a new pairbot instance.
func New(
	token string,
	guildID string,
	store *dal.Store,
) Bot {
	location, err := time.LoadLocation(interview.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %v: %v", interview.Timezone, err)
	}

	bot := Bot{store: store, location: location}

	bot.commandHandlers = map[string]commandHandler{
		"pair-start":       bot.PairStart,
		"pair-stop":        bot.PairStop,
		"pair-status":      bot.PairStatus,
		"pair-run-post":    bot.PairRunPost,
		"pair-run-collect": bot.PairRunCollect,
		"timelines-start":  bot.TimelinesStart,
		"timelines-stop":   bot.TimelinesStop,
		"timelines-run":    bot.TimelinesRun,
		"welcome-set":      bot.WelcomeSet,
	}

	bot.initSession(token)
	bot.orchestrator = interview.NewOrchestrator(bot.session, store)
	bot.announcer = timelines.New(bot.session, store)
	bot.registerCommands(guildID)

	return bot
}

// Orchestrator returns the weekly matching orchestrator wired to this bot.
func (bot *Bot) Orchestrator() *interview.Orchestrator {
	return bot.orchestrator
}

// Announcer returns the monthly announcer wired to this bot.
func (bot *Bot) Announcer() *timelines.Announcer {
	return bot.announcer
}

// Shutdown shuts down the bot cleanly.
func (bot *Bot) Shutdown(guildID string) {
	log.Println("Shutting down.")

	for _, command := range bot.registeredCommands {
		err := bot.session.ApplicationCommandDelete(
			bot.session.State.User.ID,
			guildID,
			command.ID,
		)
		if err != nil {
			log.Printf("Failed to delete %v command: %v", command.Name, err)
		} else {
			log.Printf("Deleted %v command.", command.Name)
		}
	}

	bot.session.Close()
}
