package reading

import (
	"fmt"

	"github.com/pamnard/TaroBot/internal/tarot"
)

const systemPrompt = "You are an experienced tarot reader. You interpret a " +
	"three-card spread for one person, one card at a time. Speak warmly and " +
	"directly to the asker, in their language, in a few short paragraphs. " +
	"Never give medical, legal or financial advice."

const summaryPrompt = "Now give a short closing summary of the whole spread. " +
	"Remember that the cards describe possibilities around the asker, not the " +
	"asker's own intentions. Address the asker directly and tie the three " +
	"cards back to the original question."

func openingPrompt(question string) string {
	return fmt.Sprintf("The asker's question is: %q", question)
}

func cardPrompt(d tarot.Drawn) string {
	return fmt.Sprintf("The card for the %s position is %s. Interpret this card in that position, in the context of the question.",
		d.Position, d.Describe())
}
