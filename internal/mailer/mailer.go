package mailer

import "embed"

const (
	FromName                = "AlOmda"
	maxRetries              = 3
	StaffInvitationTemplate = "staff_invitation.tmpl"
	ResetPasswordTemplate   = "reset_password.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
