package mail

import (
	"anonforum/internal/config"
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"
	"text/template"
)

type Sender interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// Message is a rendered email ready for the wire.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPSender struct {
	cfg    config.SMTP
	appURL string
	send   sendFunc
}

func NewSMTPSender(cfg config.SMTP, appURL string) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		appURL: appURL,
		send:   smtp.SendMail,
	}
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`Bienvenue {{.Name}} !

Nous sommes ravis de vous accueillir sur notre forum !

Vous pouvez maintenant :
- Participer aux discussions
- Créer vos propres sujets
- Interagir avec la communauté

Votre pseudonyme protège votre identité dans les catégories sensibles.

Visitez {{.URL}} pour commencer.

À très bientôt !

---
Cet email a été envoyé par le forum d'entraide
`))

func WelcomeMessage(from, to, name, appURL string) (*Message, error) {
	var body bytes.Buffer
	err := welcomeTemplate.Execute(&body, struct {
		Name string
		URL  string
	}{Name: name, URL: appURL})
	if err != nil {
		return nil, fmt.Errorf("erreur lors du rendu de l'email de bienvenue : %w", err)
	}

	return &Message{
		From:    from,
		To:      to,
		Subject: "Bienvenue sur notre forum !",
		Text:    body.String(),
	}, nil
}

// Bytes renders the RFC 5322 headers followed by the text body.
func (m *Message) Bytes() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	if m.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", m.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(m.Text, "\n", "\r\n"))
	return []byte(b.String())
}

func (s *SMTPSender) SendWelcome(ctx context.Context, to, name string) error {
	msg, err := WelcomeMessage(s.cfg.From, to, name, s.appURL)
	if err != nil {
		return err
	}
	msg.ReplyTo = s.cfg.ReplyTo

	return s.deliver(ctx, msg)
}

func (s *SMTPSender) deliver(ctx context.Context, msg *Message) error {
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.send(addr, auth, msg.From, []string{msg.To}, msg.Bytes())
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("erreur lors de l'envoi de l'email à %s : %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("envoi de l'email interrompu : %w", ctx.Err())
	}
}
