package mailer

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"
)

const brand = "UofT Projects Club"

var (
	resetHTML = htmltemplate.Must(htmltemplate.New("reset_html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Reset Your Password</h1>
    <p>Hi there,</p>
    <p>We received a request to reset the password for your {{.Brand}} account (<strong>{{.Email}}</strong>).</p>
    <p><a href="{{.Link}}" style="display: inline-block; padding: 12px 30px; background: #2563eb; color: #ffffff; text-decoration: none; border-radius: 6px; font-weight: bold;">Reset Password</a></p>
    <p>Or copy and paste this link into your browser:</p>
    <p style="word-break: break-all; font-family: monospace; font-size: 12px;">{{.Link}}</p>
    <p><strong>Security note:</strong> this link expires in 15 minutes. If you didn't request a reset, you can ignore this email.</p>
    <p>Best regards,<br>The Projects Club Team</p>
  </div>
</body>
</html>`))

	resetText = texttemplate.Must(texttemplate.New("reset_text").Parse(`Reset Your Password - {{.Brand}}

Hi there,

We received a request to reset the password for your account ({{.Email}}).

Click this link to reset your password:
{{.Link}}

This link will expire in 15 minutes.

If you didn't request this password reset, you can safely ignore this email.

Best regards,
The Projects Club Team
`))

	welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome_html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Welcome to Projects Club!</h1>
    <p>Hi there,</p>
    <p>Thanks for signing up! Your account (<strong>{{.Email}}</strong>) has been created successfully.</p>
    <ul>
      <li>Complete your profile to showcase your skills</li>
      <li>Browse upcoming events and workshops</li>
      <li>Join exciting projects</li>
    </ul>
    <p>See you around!<br>The Projects Club Team</p>
  </div>
</body>
</html>`))

	welcomeText = texttemplate.Must(texttemplate.New("welcome_text").Parse(`Welcome to {{.Brand}}!

Hi there,

Thanks for signing up! Your account ({{.Email}}) has been created successfully.

- Complete your profile to showcase your skills
- Browse upcoming events and workshops
- Join exciting projects

See you around!
The Projects Club Team
`))
)

type templateData struct {
	Brand string
	Email string
	Link  string
}

// PasswordReset builds the reset email carrying link.
func PasswordReset(to, link string) (Message, error) {
	data := templateData{Brand: brand, Email: to, Link: link}

	var html, text bytes.Buffer
	if err := resetHTML.Execute(&html, data); err != nil {
		return Message{}, err
	}
	if err := resetText.Execute(&text, data); err != nil {
		return Message{}, err
	}

	return Message{
		To:       to,
		Subject:  "Reset Your Password - " + brand,
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}

// Welcome builds the signup greeting.
func Welcome(to string) (Message, error) {
	data := templateData{Brand: brand, Email: to}

	var html, text bytes.Buffer
	if err := welcomeHTML.Execute(&html, data); err != nil {
		return Message{}, err
	}
	if err := welcomeText.Execute(&text, data); err != nil {
		return Message{}, err
	}

	return Message{
		To:       to,
		Subject:  "Welcome to " + brand + "!",
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}
