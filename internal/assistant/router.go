package assistant

import (
	"context"
	"errors"
	"log"

	"github.com/fortuna/scorebot/internal/command"
	"github.com/fortuna/scorebot/internal/service"
)

// Say delivers a response to the user (speech, chat, HTTP body, ...).
type Say func(response string)

// Answerer resolves a parsed intent into a response sentence.
type Answerer interface {
	Answer(ctx context.Context, intent command.Intent) (string, error)
}

// Router connects the command parser to the game service.
type Router struct {
	parser *command.Parser
	games  Answerer
}

// NewRouter creates a new sports command router
func NewRouter(parser *command.Parser, games Answerer) *Router {
	return &Router{
		parser: parser,
		games:  games,
	}
}

// Handle parses and answers one command. It returns false when the command
// is not a sports question (including unknown teams and weekdays) so the
// caller can offer it to another handler.
//
// When the schedule source fails, the user still hears the no-info sentence
// and the error is returned with handled=true.
func (r *Router) Handle(ctx context.Context, text string, say Say) (bool, error) {
	intent, err := r.parser.Parse(text)
	if err != nil {
		if !errors.Is(err, command.ErrUnrecognized) {
			log.Printf("[router] rejected %q: %v", text, err)
		}
		return false, nil
	}

	response, err := r.games.Answer(ctx, intent)
	if err != nil {
		log.Printf("[router] %s for %s failed: %v", intent.Kind, intent.Abbrev, err)
		say(fallback(intent.Kind))
		return true, err
	}

	say(response)
	return true, nil
}

func fallback(kind command.Kind) string {
	if kind == command.RecordQuery {
		return service.NoSeasonInfo
	}
	return service.NoGameInfo
}
