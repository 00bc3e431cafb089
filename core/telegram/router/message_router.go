package router

import (
	"strings"
	"time"

	tg "github.com/pamnard/TaroBot/core/telegram"
	"github.com/pamnard/TaroBot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// TextOptions controls how non-command updates are dispatched.
type TextOptions struct {
	// Intake receives plain text messages that are not commands.
	Intake tele.HandlerFunc
	// UnknownCommand is invoked for slash-prefixed text with no registered command.
	UnknownCommand tele.HandlerFunc
	// RefuseMedia is invoked for non-text attachments the bot does not accept.
	RefuseMedia tele.HandlerFunc
}

// TextRoutes builds handlers for text and media routing.
// Command detection takes precedence over intake: a slash-prefixed message is
// never treated as freeform text even when an intake handler is waiting.
func TextRoutes(reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if strings.HasPrefix(text, "/") {
			if reg != nil {
				if key, cmd, ok := reg.LookupCommand(commandWord(text)); ok && cmd.Handler != nil {
					name := normalizeHandlerName(key)
					return handleWithSummary(c, name, start, "", "", func() error {
						return cmd.Handler(c)
					})
				}
			}
			if opts.UnknownCommand != nil {
				return handleWithSummary(c, "unknown_command", start, "", "", func() error {
					return opts.UnknownCommand(c)
				})
			}
			logHandlerSummary(c, "unknown_command", start, "skip", "ok", nil)
			return nil
		}

		if opts.Intake != nil {
			return handleWithSummary(c, "intake", start, "", "", func() error {
				return opts.Intake(c)
			})
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	mediaHandler := func(c tele.Context) error {
		start := time.Now()
		if opts.RefuseMedia != nil {
			return handleWithSummary(c, "unexpected_media", start, "", "", func() error {
				return opts.RefuseMedia(c)
			})
		}
		logHandlerSummary(c, "unexpected_media", start, "skip", "ok", nil)
		return nil
	}

	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
	}

	routes := []tg.Route{
		{Endpoint: tele.OnText, Handler: wrap(handler)},
	}
	for _, endpoint := range []string{
		tele.OnPhoto,
		tele.OnDocument,
		tele.OnAudio,
		tele.OnSticker,
		tele.OnVoice,
		tele.OnVideo,
	} {
		routes = append(routes, tg.Route{Endpoint: endpoint, Handler: wrap(mediaHandler)})
	}
	return routes
}

// commandWord strips bot mentions and arguments: "/new@TaroBot now" -> "/new".
func commandWord(text string) string {
	word := text
	if idx := strings.IndexByte(word, ' '); idx >= 0 {
		word = word[:idx]
	}
	if idx := strings.IndexByte(word, '@'); idx >= 0 {
		word = word[:idx]
	}
	return word
}
