package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/alvinking254/dircap/config"
	"github.com/alvinking254/dircap/internal/infrastructure/notifier"
)

// Sends a fixed test message with the configured SMTP settings, for
// verifying credentials and transport flags without a dircap run.
func main() {
	fmt.Println("Testing Email Configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	emailCfg := cfg.Email
	fmt.Printf("SMTP Host: %s:%d\n", emailCfg.SMTPHost, emailCfg.SMTPPort)
	fmt.Printf("Sender: %s\n", emailCfg.From)
	fmt.Printf("Recipient: %s\n", emailCfg.To)
	fmt.Printf("SSL: %v, STARTTLS: %v\n", emailCfg.UseSSL, emailCfg.UseTLS)

	sender := notifier.NewSMTPNotifier(emailCfg)

	subject := "dircap test email"
	body := fmt.Sprintf("This is a test email from dircap-notify.\n\nTime: %s\n",
		time.Now().Format("2006-01-02 15:04:05"))

	if err := sender.Send(context.Background(), subject, body); err != nil {
		log.Fatalf("Failed to send email: %v", err)
	}

	fmt.Println("Email sent successfully!")
}
