package bot

import (
	"fmt"
	"time"

	"github.com/pamnard/TaroBot/core/buildinfo"
	"github.com/pamnard/TaroBot/core/telegram/helpers"
	"github.com/pamnard/TaroBot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

func askMarkup() *tele.ReplyMarkup {
	return keyboard.SingleButtonMarkup(btnAsk, cbAsk)
}

func (a *App) cmdStart(c tele.Context) error {
	return helpers.SendMD(c, msgGreeting, askMarkup())
}

func (a *App) cmdHelp(c tele.Context) error {
	return helpers.SendMD(c, msgHelp, askMarkup())
}

// cmdNew discards any leftover state and immediately re-prompts, so a stale
// flag or half-delivered reading never leaks into the fresh one.
func (a *App) cmdNew(c tele.Context) error {
	chat, user, ok := conversationIDs(c)
	if !ok {
		return nil
	}
	a.readings.Abandon(chat, user)
	a.readings.RequestQuestion(chat, user)
	return helpers.SendMD(c, msgAskQuestion)
}

// cmdStats is an admin-only snapshot of process health.
func (a *App) cmdStats(c tele.Context) error {
	var sendErrors uint64
	if a.dispatcher != nil {
		sendErrors = a.dispatcher.ErrorCount()
	}
	text := fmt.Sprintf(
		"version: %s\ncommit: %s\nuptime: %s\nsend errors: %d",
		buildinfo.Version,
		buildinfo.Commit,
		time.Since(a.startedAt).Round(time.Second),
		sendErrors,
	)
	return helpers.SendText(c, text)
}
