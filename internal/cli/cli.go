// Package cli turns command-line arguments into a resolved invocation:
// which credential to use, for which school, and how to print.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"zermelo-cli/internal/config"
	"zermelo-cli/internal/model"
)

// Environment variables consulted when flags are absent.
const (
	EnvSchool      = "ZERMELO_SCHOOL"
	EnvAccessToken = "ZERMELO_ACCESS_TOKEN"
	EnvConfig      = "ZERMELO_CONFIG"
	EnvLogLevel    = "ZERMELO_LOG_LEVEL"
)

type Action int

const (
	ActionRun Action = iota
	ActionHelp
	ActionVersion
)

// Invocation is the outcome of argument parsing.
type Invocation struct {
	Action     Action
	Credential model.Credential
	// School may be empty after Parse; ApplyDefaults fills it.
	School     string
	ConfigPath string
	// Format and Color are empty unless set on the command line.
	Format     string
	Color      string
	Verbose    bool
}

// ArgumentError reports malformed or missing command-line input.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }

func argErrorf(format string, args ...any) error {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// Parse resolves args (without the program name). getenv supplies the
// environment fallbacks; nil means no environment.
func Parse(args []string, getenv func(string) string) (Invocation, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	if len(args) == 0 {
		return Invocation{Action: ActionHelp}, nil
	}

	var (
		inv         Invocation
		code, token string
		help, ver   bool
	)

	fs := pflag.NewFlagSet("zermelo-cli", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	fs.StringVarP(&code, "code", "c", "", "authorization code to exchange for an access token")
	fs.StringVarP(&token, "access-token", "a", "", "access token to fetch appointments with")
	fs.BoolVarP(&help, "help", "h", false, "print this message")
	fs.BoolVarP(&ver, "version", "V", false, "print version information")
	fs.StringVar(&inv.ConfigPath, "config", getenv(EnvConfig), "path to the config file")
	fs.StringVar(&inv.Format, "format", "", "output format: table or ics")
	fs.StringVar(&inv.Color, "color", "", "colour output: auto, always or never")
	fs.BoolVarP(&inv.Verbose, "verbose", "v", false, "log requests to stderr")

	if err := fs.Parse(args); err != nil {
		return Invocation{}, &ArgumentError{Msg: err.Error()}
	}

	switch {
	case help:
		return Invocation{Action: ActionHelp}, nil
	case ver:
		return Invocation{Action: ActionVersion}, nil
	}

	switch inv.Format {
	case "", config.FormatTable, config.FormatICS:
	default:
		return Invocation{}, argErrorf("invalid --format %q (want table or ics)", inv.Format)
	}
	switch inv.Color {
	case "", config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return Invocation{}, argErrorf("invalid --color %q (want auto, always or never)", inv.Color)
	}

	codeSet := fs.Changed("code")
	tokenSet := fs.Changed("access-token")
	if codeSet && tokenSet {
		return Invocation{}, argErrorf("--code and --access-token cannot be combined")
	}
	if codeSet && code == "" {
		return Invocation{}, argErrorf("No code provided")
	}
	if tokenSet && token == "" {
		return Invocation{}, argErrorf("No access token provided")
	}

	pos := fs.Args()
	switch {
	case codeSet:
		inv.Credential = model.CodeCredential(code)
	case tokenSet:
		inv.Credential = model.AccessTokenCredential(token)
	case len(pos) == 2:
		// Legacy form: zermelo-cli <ACCESS TOKEN> <SCHOOL>
		inv.Credential = model.AccessTokenCredential(pos[0])
		pos = pos[1:]
	default:
		env := strings.TrimSpace(getenv(EnvAccessToken))
		if env == "" {
			return Invocation{}, argErrorf("No code or access token provided")
		}
		inv.Credential = model.AccessTokenCredential(env)
	}

	switch len(pos) {
	case 0:
		inv.School = strings.TrimSpace(getenv(EnvSchool))
	case 1:
		inv.School = pos[0]
	default:
		return Invocation{}, argErrorf("unexpected argument %q", pos[1])
	}

	inv.Action = ActionRun
	return inv, nil
}

// ApplyDefaults fills settings left open on the command line from cfg and
// fails when no school can be determined.
func (inv *Invocation) ApplyDefaults(cfg *config.Config) error {
	if inv.School == "" {
		inv.School = cfg.School
	}
	if inv.School == "" {
		return argErrorf("No school provided")
	}
	if inv.Format == "" {
		inv.Format = cfg.Format
	}
	if inv.Color == "" {
		inv.Color = cfg.Color
	}
	return nil
}

// Usage writes the help text.
func Usage(w io.Writer) {
	fmt.Fprint(w, `zermelo-cli

USAGE:
    zermelo-cli [FLAGS] [ACCESS TOKEN] <SCHOOL>

FLAGS:
    -h, --help                     Prints this message
    -V, --version                  Prints version information
    -c, --code <CODE>              Uses the code to fetch the access token
    -a, --access-token <TOKEN>     Uses the access token to fetch the appointments
        --config <PATH>            Config file (default: user config dir)
        --format <table|ics>       Output format
        --color <auto|always|never>
                                   Colour output
    -v, --verbose                  Log requests to stderr

ARGS:
    [ACCESS TOKEN]    The access token to get the appointments with (optional with -c or -a)
    <SCHOOL>          The school to get appointments from (default: $ZERMELO_SCHOOL or config)

ENVIRONMENT:
    ZERMELO_ACCESS_TOKEN, ZERMELO_SCHOOL, ZERMELO_CONFIG, ZERMELO_LOG_LEVEL

EXAMPLES:
    zermelo-cli -c 123456789101 cgu
    zermelo-cli -a fajsidu29dj2jdmv0sjsj2jd8d usg
    zermelo-cli fajsidu29dj2jdmv0sjsj2jd8d usg
`)
}
