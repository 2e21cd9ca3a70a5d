package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"zermelo-cli/internal/cli"
	"zermelo-cli/internal/config"
	"zermelo-cli/internal/ics"
	appLog "zermelo-cli/internal/log"
	"zermelo-cli/internal/model"
	"zermelo-cli/internal/render"
	"zermelo-cli/internal/zermelo"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.2.0-dev"

func main() {
	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// A .env next to the working directory may carry ZERMELO_* variables.
	_ = godotenv.Load()

	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	appLog.SetOutput(stderr)

	inv, err := cli.Parse(args, getenv)
	if err != nil {
		return usageError(stderr, err)
	}

	switch inv.Action {
	case cli.ActionHelp:
		cli.Usage(stdout)
		return 0
	case cli.ActionVersion:
		fmt.Fprintf(stdout, "Version: %s\n", version)
		return 0
	}

	if lvl := getenv(cli.EnvLogLevel); lvl != "" {
		appLog.SetLevel(appLog.ParseLevel(lvl))
	}
	if inv.Verbose {
		appLog.SetLevel(appLog.LevelDebug)
	}

	configPath := inv.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		appLog.Error("config load failed", err, "path", configPath)
		fmt.Fprintf(stderr, "❌ Error loading config: `%v`\n", err)
		return 1
	}
	if err := inv.ApplyDefaults(cfg); err != nil {
		return usageError(stderr, err)
	}
	loc, err := cfg.Location()
	if err != nil {
		appLog.Error("timezone load failed", err, "timezone", cfg.Timezone)
		fmt.Fprintf(stderr, "❌ Error loading config: `%v`\n", err)
		return 1
	}

	appLog.Debug("effective config",
		"config_path", configPath,
		"school", inv.School,
		"credential", inv.Credential.Kind,
		"timezone", loc.String(),
		"timeout", cfg.Timeout,
		"format", inv.Format,
		"color", inv.Color,
	)

	opts := []zermelo.Option{
		zermelo.WithBaseURL(cfg.BaseURLFor(inv.School)),
		zermelo.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		zermelo.WithClock(zermelo.SystemClock{Location: loc}),
	}

	table := inv.Format == config.FormatTable
	// Chatter stays off stdout when it carries an iCalendar document.
	chatter := stdout
	if !table {
		chatter = stderr
	}

	if table {
		fmt.Fprintln(stdout, "Good morning! 👋")
	}

	var session *zermelo.Session
	switch inv.Credential.Kind {
	case model.CredentialCode:
		session, err = zermelo.Exchange(ctx, inv.Credential.Value, inv.School, opts...)
		if err != nil {
			appLog.Error("token exchange failed", err, "school", inv.School, "status", statusOf(err))
			fmt.Fprintf(stderr, "❌ Error getting access token: `%v`\n", err)
			return 1
		}
		fmt.Fprintf(chatter, "Access token is: `%s`, you can use it instead of the code next time\n", session.AccessToken())
	default:
		session = zermelo.FromAccessToken(inv.Credential.Value, inv.School, opts...)
	}

	appointments, err := session.FetchAppointments(ctx)
	if err != nil {
		appLog.Error("appointments fetch failed", err, "school", inv.School, "status", statusOf(err))
		fmt.Fprintf(stderr, "❌ Error getting appointments: `%v`\n", err)
		var fetchErr *zermelo.FetchError
		if errors.As(err, &fetchErr) && fetchErr.Unauthorized() {
			fmt.Fprintln(stderr, "The access token was rejected; request a new code in the portal and run with --code.")
		}
		return 1
	}

	if !table {
		if err := ics.Export(stdout, appointments, ics.ExportOptions{School: inv.School, Now: time.Now()}); err != nil {
			appLog.Error("calendar export failed", err, "school", inv.School)
			fmt.Fprintf(stderr, "❌ Error writing calendar: `%v`\n", err)
			return 1
		}
		return 0
	}

	r := render.New(render.Options{Location: loc, Color: useColor(inv.Color, stdout, getenv)})
	if err := r.Table(stdout, appointments); err != nil {
		appLog.Error("table render failed", err, "count", len(appointments))
		fmt.Fprintf(stderr, "❌ Error writing appointments: `%v`\n", err)
		return 1
	}
	fmt.Fprintln(stdout, "Have a nice day! 🙋")
	return 0
}

func usageError(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "❌ Error parsing arguments: %v\n\n", err)
	cli.Usage(stderr)
	return 1
}

// statusOf returns the HTTP status carried by a client error, 0 if none.
func statusOf(err error) int {
	var authErr *zermelo.AuthError
	if errors.As(err, &authErr) {
		return authErr.StatusCode
	}
	var fetchErr *zermelo.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.StatusCode
	}
	return 0
}

// useColor resolves the auto mode against the output stream and NO_COLOR.
func useColor(mode string, out io.Writer, getenv func(string) string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
