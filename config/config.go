package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Email EmailConfig
}

// EmailConfig carries everything the SMTP notifier needs for one run.
// It is assembled once at startup and never re-read mid-run.
type EmailConfig struct {
	To       string
	From     string
	SMTPHost string
	SMTPPort int
	Username string
	Password string

	// UseSSL selects an implicit TLS session (encrypted from the first
	// byte, historically port 465). UseTLS selects a STARTTLS upgrade
	// after the plaintext handshake (historically port 587). The flags
	// are independent and are not cross-validated.
	UseSSL bool
	UseTLS bool
}

const defaultPort = "465"

// Environment keys, bound explicitly because the two transport switches
// carry no DIRCAP_ prefix.
var envKeys = map[string]string{
	"email_to":    "DIRCAP_EMAIL_TO",
	"email_from":  "DIRCAP_EMAIL_FROM",
	"smtp_server": "DIRCAP_SMTP_SERVER",
	"smtp_port":   "DIRCAP_SMTP_PORT",
	"smtp_user":   "DIRCAP_SMTP_USER",
	"smtp_pass":   "DIRCAP_SMTP_PASS",
	"use_ssl":     "EMAIL_USE_SSL",
	"use_tls":     "EMAIL_USE_TLS",
}

// LoadConfig reads the mail configuration from the process environment.
// Missing required variables and a non-numeric port are errors; nothing
// papers over those.
func LoadConfig() (*Config, error) {
	v := viper.New()
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	to := getString(v, "email_to")
	host := getString(v, "smtp_server")
	user := getString(v, "smtp_user")
	pass := getString(v, "smtp_pass")

	var missing []string
	for env, val := range map[string]string{
		"DIRCAP_EMAIL_TO":    to,
		"DIRCAP_SMTP_SERVER": host,
		"DIRCAP_SMTP_USER":   user,
		"DIRCAP_SMTP_PASS":   pass,
	} {
		if val == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing env vars: %s", strings.Join(missing, ", "))
	}

	from := getString(v, "email_from")
	if from == "" {
		from = user
	}

	portStr := getString(v, "smtp_port")
	if portStr == "" {
		portStr = defaultPort
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DIRCAP_SMTP_PORT: %s", portStr)
	}

	return &Config{
		Email: EmailConfig{
			To:       to,
			From:     from,
			SMTPHost: host,
			SMTPPort: port,
			Username: user,
			Password: pass,
			UseSSL:   getBool(v, "use_ssl", port == 465),
			UseTLS:   getBool(v, "use_tls", port == 587),
		},
	}, nil
}

func getString(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}

// getBool maps the accepted truthy tokens to true and anything else to
// false; an absent or empty value falls back to def.
func getBool(v *viper.Viper, key string, def bool) bool {
	raw := getString(v, key)
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
