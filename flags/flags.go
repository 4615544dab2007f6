package flags

import (
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/nojima/jsonhttp/exchange"
	"github.com/nojima/jsonhttp/input"
	"github.com/nojima/jsonhttp/output"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var reNumber = regexp.MustCompile(`^[0-9.]+$`)

type FlagSet interface {
	Args() []string
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	InputOptions    input.Options
	Entity          input.Entity
	Auth            input.Auth
	ExchangeOptions exchange.Options
	OutputOptions   output.Options
	LogLevel        string
	ShowVersion     bool
	ShowLicenses    bool
	ConfigFile      string
}

type terminalInfo struct {
	stdinIsTerminal  bool
	stdoutIsTerminal bool
}

// stringFlag is a string option that falls back to a config key when it
// was not given on the command line.
type stringFlag struct {
	option getopt.Option
	value  *string
	key    string
}

func Parse(args []string) (FlagSet, *OptionSet, error) {
	_, flagSet, optionSet, err := parse(args, terminalInfo{
		stdinIsTerminal:  isatty.IsTerminal(os.Stdin.Fd()),
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
	if err != nil {
		return flagSet, nil, err
	}

	auth := &optionSet.Auth
	if auth.Username != "" && auth.Password == "" {
		password, err := askPassword(auth.Username)
		if err != nil {
			return nil, nil, err
		}
		auth.Password = password
	}
	return flagSet, optionSet, nil
}

func parse(args []string, terminalInfo terminalInfo) ([]string, *getopt.Set, *OptionSet, error) {
	optionSet := &OptionSet{}
	var ignoreStdin, verbose, follow bool
	var authFlag, verifyFlag, timeout, logLevel string
	printFlag := "\000" // "\000" is a special value that indicates user did not specified --print

	flagSet := getopt.New()
	flagSet.SetParameters("[METHOD] URL [Name:Value | Name:=Value | @FILE ...]")
	configurable := []stringFlag{
		{flagSet.StringVarLong(&optionSet.InputOptions.JSONMessage, "data", 'd', "JSON message to send"), &optionSet.InputOptions.JSONMessage, "data"},
		{flagSet.StringVarLong(&optionSet.Entity.ContentType, "content-type", 't', "content type of the JSON message"), &optionSet.Entity.ContentType, "content-type"},
		{flagSet.StringVarLong(&optionSet.Entity.Charset, "charset", 0, "charset of the JSON message"), &optionSet.Entity.Charset, "charset"},
		{flagSet.StringVarLong(&authFlag, "auth", 'a', "USER[:PASS]"), &authFlag, "auth"},
		{flagSet.StringVarLong(&optionSet.Auth.Host, "auth-host", 0, "only answer challenges from this host"), &optionSet.Auth.Host, "auth-host"},
		{flagSet.StringVarLong(&optionSet.Auth.Port, "auth-port", 0, "only answer challenges from this port"), &optionSet.Auth.Port, "auth-port"},
		{flagSet.StringVarLong(&optionSet.Auth.Realm, "auth-realm", 0, "only answer challenges for this realm"), &optionSet.Auth.Realm, "auth-realm"},
		{flagSet.StringVarLong(&optionSet.Auth.Domain, "auth-domain", 0, "NTLM domain (switches to NTLM)"), &optionSet.Auth.Domain, "auth-domain"},
		{flagSet.StringVarLong(&optionSet.Auth.Workstation, "auth-workstation", 0, "NTLM workstation"), &optionSet.Auth.Workstation, "auth-workstation"},
		{flagSet.StringVarLong(&printFlag, "print", 'p', "specifies what the output should contain (HBhb)"), &printFlag, "print"},
		{flagSet.StringVarLong(&timeout, "timeout", 0, "Timeout seconds that you allow the whole operation to take"), &timeout, "timeout"},
		{flagSet.StringVarLong(&verifyFlag, "verify", 0, "verify TLS certificates (yes/no)"), &verifyFlag, "verify"},
		{flagSet.StringVarLong(&logLevel, "log-level", 0, "debug, info, warn or error"), &logLevel, "log-level"},
	}
	followOption := flagSet.BoolVarLong(&follow, "follow", 'F', "follow redirects")
	flagSet.BoolVarLong(&ignoreStdin, "ignore-stdin", 0, "do not attempt to read stdin")
	flagSet.BoolVarLong(&verbose, "verbose", 'v', "log the exchange and print failure details")
	flagSet.StringVarLong(&optionSet.ConfigFile, "config", 0, "read defaults from FILE")
	flagSet.BoolVarLong(&optionSet.ShowVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.ShowLicenses, "licenses", 0, "print licenses and exit")
	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, flagSet, nil, errors.Wrap(err, "parsing flags")
	}

	// Fill unset flags from the environment and config file
	v, err := loadConfig(optionSet.ConfigFile)
	if err != nil {
		return nil, flagSet, nil, err
	}
	for _, f := range configurable {
		if f.option.Seen() {
			continue
		}
		if value := v.GetString(f.key); value != "" {
			*f.value = value
		}
	}
	if !followOption.Seen() {
		follow = v.GetBool("follow")
	}

	// Check stdin
	if !ignoreStdin && !terminalInfo.stdinIsTerminal {
		optionSet.InputOptions.ReadStdin = true
	}

	parseAuthFlag(authFlag, &optionSet.Auth)

	if err := parsePrintFlag(printFlag, terminalInfo.stdoutIsTerminal, &optionSet.OutputOptions); err != nil {
		return nil, flagSet, nil, err
	}

	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return nil, flagSet, nil, err
	}
	optionSet.ExchangeOptions.Timeout = d
	optionSet.ExchangeOptions.FollowRedirects = follow

	skipVerify, err := parseVerifyFlag(verifyFlag)
	if err != nil {
		return nil, flagSet, nil, err
	}
	optionSet.ExchangeOptions.SkipVerify = skipVerify

	optionSet.LogLevel = logLevel
	if verbose {
		optionSet.LogLevel = "debug"
		optionSet.OutputOptions.Verbose = true
	}

	// Color
	optionSet.OutputOptions.EnableColor = terminalInfo.stdoutIsTerminal

	return flagSet.Args(), flagSet, optionSet, nil
}

func parseAuthFlag(authFlag string, auth *input.Auth) {
	if authFlag == "" {
		return
	}
	if i := strings.Index(authFlag, ":"); i != -1 {
		auth.Username = authFlag[:i]
		auth.Password = authFlag[i+1:]
	} else {
		auth.Username = authFlag
	}
}

func parsePrintFlag(printFlag string, stdoutIsTerminal bool, outputOptions *output.Options) error {
	if printFlag == "\000" {
		// --print is not specified
		if stdoutIsTerminal {
			outputOptions.PrintResponseHeader = true
			outputOptions.PrintResponseBody = true
		} else {
			outputOptions.PrintResponseBody = true
		}
	} else {
		for _, c := range printFlag {
			switch c {
			case 'H':
				outputOptions.PrintRequestHeader = true
			case 'B':
				outputOptions.PrintRequestBody = true
			case 'h':
				outputOptions.PrintResponseHeader = true
			case 'b':
				outputOptions.PrintResponseBody = true
			default:
				return errors.Errorf("Invalid char in --print value (must be consist of HBhb): %c", c)
			}
		}
	}
	return nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}

func parseVerifyFlag(verifyFlag string) (bool, error) {
	switch strings.ToLower(verifyFlag) {
	case "yes", "true", "":
		return false, nil
	case "no", "false":
		return true, nil
	default:
		return false, errors.Errorf("Value of --verify must be yes or no: %s", verifyFlag)
	}
}
