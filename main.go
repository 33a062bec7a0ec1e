package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"pairbot/bot"
	"pairbot/dal"
	"pairbot/interview"
	"pairbot/timelines"

	"github.com/joho/godotenv"
)

var (
	botToken = flag.String(
		"token",
		"",
		"Bot access token. Falls back to DISCORD_TOKEN.",
	)
	guildID = flag.String(
		"guild",
		"",
		"Test guild ID. If not set, slash commands will be registered globally.",
	)
	dbPath = flag.String(
		"dbPath",
		"pairbot.db",
		"SQLite database file path.",
	)
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found.")
	}

	flag.Parse()

	if *botToken == "" {
		*botToken = os.Getenv("DISCORD_TOKEN")
	}
	if *guildID == "" {
		*guildID = os.Getenv("DISCORD_GUILD")
	}

	if *botToken == "" {
		fmt.Println("-token or DISCORD_TOKEN must be provided.")
		fmt.Println()
		flag.Usage()
		os.Exit(1)
	}
}

func main() {
	db := dal.InitDB(*dbPath)
	store := dal.NewStore(db)

	b := bot.New(*botToken, *guildID, store)
	defer b.Shutdown(*guildID)

	matchScheduler, err := interview.NewScheduler(b.Orchestrator())
	if err != nil {
		log.Fatalf("Failed to set up the matching scheduler: %v", err)
	}
	matchScheduler.Start()
	defer matchScheduler.Stop()

	monthly, err := timelines.NewScheduler(b.Announcer())
	if err != nil {
		log.Fatalf("Failed to set up the monthly scheduler: %v", err)
	}
	monthly.Start()
	defer monthly.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
}
