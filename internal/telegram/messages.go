package telegram

const (
	msgWelcome        = "Send me a YouTube link, and I will summarize that video for you in text format."
	msgInvalidLink    = "Please send a valid YouTube link."
	msgBcastUsage     = "Please use `/bcast` as reply to the message you want to broadcast."
	msgBcastProgress  = "In progress..."
	msgBcastCompleted = "Broadcast completed.\nSuccess: %d\nFailed: %d"
	msgTotalUsers     = "Total Users: %d"

	// maxMessageLength is the Telegram limit for one text message, in characters.
	maxMessageLength = 4096
)
