package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeJob builds the registration email enqueued by the auth flow.
func WelcomeJob(to string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to TaskVault",
		Text:    "Your account is ready. Sign in and start tracking your tasks.",
	}
}
