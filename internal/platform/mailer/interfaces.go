package mailer

// Service delivers transactional mail. Send returns the provider message id
// when one exists.
type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
}
