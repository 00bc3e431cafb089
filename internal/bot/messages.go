package bot

// Callback keys carried in inline button payloads.
const (
	cbAsk  = "ask"
	cbNext = "get_next_card"
)

// Inline button labels.
const (
	btnAsk  = "Ask the cards"
	btnNext = "Next card"
)

// User-facing texts. The bot speaks a fixed script; only the readings
// themselves are generated.
const (
	msgGreeting = "Welcome. I read tarot: three cards for your question, " +
		"one for the past, one for the present and one for the future.\n\n" +
		"Tap the button below when you are ready to ask."

	msgHelp = "Tap *" + btnAsk + "* and then send me your question as a plain " +
		"message. I will draw three cards and interpret them one by one; use " +
		"the *" + btnNext + "* button to step through the reading.\n\n" +
		"Commands:\n" +
		"/start - introduction\n" +
		"/help - this message\n" +
		"/new - start a fresh reading"

	msgAskQuestion = "Type your question and send it to me as a normal message. " +
		"The cards are waiting."

	msgLostThread = "I lost the thread of our conversation. Tap *" + btnAsk +
		"* to start over."

	msgUnknownCommand = "I don't know that command. Try /help."

	// msgRefuseMedia is formatted with the sender's first name.
	msgRefuseMedia = "I don't understand you, %s"
)
