package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"DIRCAP_EMAIL_TO", "DIRCAP_EMAIL_FROM",
		"DIRCAP_SMTP_SERVER", "DIRCAP_SMTP_PORT",
		"DIRCAP_SMTP_USER", "DIRCAP_SMTP_PASS",
		"EMAIL_USE_SSL", "EMAIL_USE_TLS",
	} {
		t.Setenv(env, "")
	}
}

func TestRun_BadArity(t *testing.T) {
	clearEnv(t)

	assert.Equal(t, exitUsage, run(nil))
	assert.Equal(t, exitUsage, run([]string{"only-one.txt"}))
	assert.Equal(t, exitUsage, run([]string{"a.txt", "a.json", "extra"}))
}

func TestRun_MissingConfig(t *testing.T) {
	clearEnv(t)

	// Required variables absent: the run must fail before any network
	// activity, with the usage-family exit code.
	assert.Equal(t, exitUsage, run([]string{"a.txt", "a.json"}))
}
