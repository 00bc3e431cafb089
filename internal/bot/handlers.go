package bot

import (
	"errors"
	"fmt"

	"log/slog"

	"github.com/pamnard/TaroBot/core/logger"
	"github.com/pamnard/TaroBot/core/telegram/format"
	"github.com/pamnard/TaroBot/core/telegram/helpers"
	"github.com/pamnard/TaroBot/core/telegram/keyboard"
	"github.com/pamnard/TaroBot/internal/reading"
	"github.com/pamnard/TaroBot/internal/tarot"

	tele "gopkg.in/telebot.v4"
)

// conversationIDs extracts the (chat, user) pair a session is keyed on.
func conversationIDs(c tele.Context) (int64, int64, bool) {
	chat, sender := c.Chat(), c.Sender()
	if chat == nil || sender == nil {
		return 0, 0, false
	}
	return chat.ID, sender.ID, true
}

// handleAsk flips the pair into question mode and invites the question.
// The callback itself is acknowledged by the router before this runs.
func (a *App) handleAsk(c tele.Context) error {
	chat, user, ok := conversationIDs(c)
	if !ok {
		return nil
	}
	a.readings.RequestQuestion(chat, user)
	return helpers.SendMD(c, msgAskQuestion)
}

// handleNext steps through the queued remainder of a reading. An empty queue
// is the normal drained state, so nothing is sent for it.
func (a *App) handleNext(c tele.Context) error {
	chat, user, ok := conversationIDs(c)
	if !ok {
		return nil
	}
	entry, ok := a.readings.Next(chat, user)
	if !ok {
		return nil
	}
	return a.deliver(c, entry)
}

// handleQuestion runs a full reading for a freeform text message. Text that
// arrives without a pending question request gets the friendly restart hint;
// upstream failures are logged and swallowed so the webhook still acks.
func (a *App) handleQuestion(c tele.Context) error {
	chat, user, ok := conversationIDs(c)
	if !ok {
		return nil
	}
	ctx := helpers.BuildContext(c)
	entry, err := a.readings.Start(ctx, chat, user, c.Text())
	if errors.Is(err, reading.ErrNoPrompt) {
		return helpers.SendMD(c, msgLostThread)
	}
	if err != nil {
		logger.Error(ctx, "llm", "reading.aborted",
			slog.Int64("chat", chat),
			slog.Int64("user", user),
			slog.String("err", err.Error()),
		)
		return nil
	}
	return a.deliver(c, entry)
}

func (a *App) handleUnknownCommand(c tele.Context) error {
	return helpers.SendText(c, msgUnknownCommand)
}

// handleMedia refuses attachments by name; the bot only reads text.
func (a *App) handleMedia(c tele.Context) error {
	name := "stranger"
	if s := c.Sender(); s != nil && s.FirstName != "" {
		name = s.FirstName
	}
	return helpers.SendText(c, fmt.Sprintf(msgRefuseMedia, name))
}

// deliver renders one reading entry. Card entries go out as captioned artwork
// with the next-step button; the closing summary goes out with the fixed
// closing artwork and no button.
func (a *App) deliver(c tele.Context, e reading.Entry) error {
	if e.Card != nil {
		markup := keyboard.SingleButtonMarkup(btnNext, cbNext)
		return helpers.SendPhotoMD(c, e.Card.Image, cardCaption(e), markup)
	}
	return helpers.SendPhotoMD(c, tarot.ClosingImageURL(), mdSafe(e.Text))
}

func cardCaption(e reading.Entry) string {
	return fmt.Sprintf("*%s*\n\n%s", e.Card.Name, mdSafe(e.Text))
}

// mdSafe escapes generated text so stray markdown characters in a model reply
// cannot break the caption parse.
func mdSafe(text string) string {
	escaped, err := format.EscapeMarkdown(text, format.MarkdownV1)
	if err != nil {
		return text
	}
	return escaped
}
