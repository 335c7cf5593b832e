package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var index = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type content struct {
	Subject    string
	Title      string
	Body       string
	ButtonText string
}

var catalog = map[Kind]content{
	KindPasswordReset: {
		Subject:    "Reset your password",
		Title:      "Forgot your password?",
		Body:       "We received a request to reset your password. The link below is valid for 10 minutes. If you did not ask for this, ignore this email.",
		ButtonText: "Reset password",
	},
	KindAccountVerification: {
		Subject:    "Verify your account",
		Title:      "Confirm your email address",
		Body:       "Confirm your email address to start publishing quotes. The link below is valid for 10 minutes.",
		ButtonText: "Verify account",
	},
}

type templateData struct {
	Subject    string
	Title      string
	Body       string
	ButtonText string
	Name       string
	URL        string
}

type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

func Render(msg Message) (Rendered, error) {
	c, ok := catalog[msg.Kind]
	if !ok {
		return Rendered{}, fmt.Errorf("no template for mail kind %q", msg.Kind)
	}

	var html bytes.Buffer
	err := index.Execute(&html, templateData{
		Subject:    c.Subject,
		Title:      c.Title,
		Body:       c.Body,
		ButtonText: c.ButtonText,
		Name:       msg.Name,
		URL:        msg.URL,
	})
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", msg.Kind, err)
	}

	text := fmt.Sprintf("Hi %s,\n\n%s\n\n%s: %s\n", msg.Name, c.Body, c.ButtonText, msg.URL)
	return Rendered{Subject: c.Subject, HTML: html.String(), Text: text}, nil
}
