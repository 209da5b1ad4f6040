// dircap-notify sends a single summary email for a dircap run.
//
// The scheduler runs `dircap check ...`, which writes a text log and a
// JSON log. When the check exits WARN or OVER, the scheduler calls this
// program once:
//
//	dircap-notify <log_txt_path> <log_json_path>
//
// Exit codes: 0 sent, 1 bad usage or missing configuration, 2 send
// failure. A missing or corrupt JSON log is not a failure; the alert is
// sent without details.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alvinking254/dircap/config"
	"github.com/alvinking254/dircap/internal/infrastructure/notifier"
	"github.com/alvinking254/dircap/internal/service"
)

const (
	exitOK     = 0
	exitUsage  = 1
	exitFailed = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: dircap-notify <log_txt_path> <log_json_path>")
		return exitUsage
	}
	logTxt, logJSON := args[0], args[1]

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	// 2. Init Notifier
	emailNotifier := notifier.NewSMTPNotifier(cfg.Email)

	// 3. Init Service and send
	svc := service.NewAlertService(emailNotifier)
	if err := svc.Run(context.Background(), logTxt, logJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Email failed: %v\n", err)
		return exitFailed
	}

	fmt.Printf("Email sent to %s\n", cfg.Email.To)
	return exitOK
}
