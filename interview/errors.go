package interview

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Skip conditions that end one guild's cycle without being real failures.
// All of them mean "nothing to process for this guild this week".
var (
	ErrNoMessage  = errors.New("no announcement message to collect")
	ErrNoWildcard = errors.New("wildcard member not found")
)

// SendErrorKind classifies a failed delivery to discord.
type SendErrorKind int

const (
	SendUnknown SendErrorKind = iota
	SendForbidden
	SendRateLimited
)

func (k SendErrorKind) String() string {
	switch k {
	case SendForbidden:
		return "forbidden"
	case SendRateLimited:
		return "rate limited"
	default:
		return "unknown"
	}
}

// ClassifySendError maps a discordgo error onto a SendErrorKind.
func ClassifySendError(err error) SendErrorKind {
	var rateLimit *discordgo.RateLimitError
	if errors.As(err, &rateLimit) {
		return SendRateLimited
	}

	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil && rest.Response.StatusCode == http.StatusForbidden {
		return SendForbidden
	}

	return SendUnknown
}

// IsSkip reports whether the error only means the guild has nothing to
// process this cycle.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoMessage) || errors.Is(err, ErrNoWildcard)
}
