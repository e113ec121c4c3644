package config

import (
	"flag"
	"fmt"
	"io"
)

// Options holds the runtime configuration assembled from CLI flags and environment.
type Options struct {
	ShowVersion bool
	Debug       bool
	BirthDate   string
	VCard       string
	VCardUser   string
	VCardName   string
	Port        string
	Language    string
	Reminder    string
	Serve       bool
	Watch       bool
}

// ParseFlags parses args and falls back to the environment (via getenv) for every
// option that was left empty on the command line.
func ParseFlags(args []string, getenv func(string) string) (Options, error) {
	var opts Options

	fs := flag.NewFlagSet(AppID, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&opts.ShowVersion, FlagVersion, false, FlagDescVersion)
	fs.BoolVar(&opts.Debug, FlagDebug, false, FlagDescDebug)
	fs.StringVar(&opts.BirthDate, FlagBirthDate, "", FlagDescBirthDate)
	fs.StringVar(&opts.VCard, FlagVCard, "", FlagDescVCard)
	fs.StringVar(&opts.VCardUser, FlagVCardUser, "", FlagDescVCardUser)
	fs.StringVar(&opts.VCardName, FlagVCardName, "", FlagDescVCardName)
	fs.StringVar(&opts.Port, FlagPort, "", FlagDescPort)
	fs.StringVar(&opts.Language, FlagLanguage, "", FlagDescLanguage)
	fs.StringVar(&opts.Reminder, FlagReminder, "", FlagDescReminder)
	fs.BoolVar(&opts.Serve, FlagServe, false, FlagDescServe)
	fs.BoolVar(&opts.Watch, FlagWatch, false, FlagDescWatch)

	if err := fs.Parse(args); err != nil {
		return Options{}, fmt.Errorf("%s: %w", ErrFlags, err)
	}

	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	fallback := func(dst *string, key, def string) {
		if *dst != "" {
			return
		}
		if v := getenv(key); v != "" {
			*dst = v
			return
		}
		*dst = def
	}

	fallback(&opts.BirthDate, EnvBirthDate, "")
	fallback(&opts.VCard, EnvVCard, "")
	fallback(&opts.VCardUser, EnvVCardUser, "")
	fallback(&opts.Port, EnvPort, DefaultPort)
	fallback(&opts.Language, EnvLanguage, DefaultLanguage)
	fallback(&opts.Reminder, EnvReminder, "")

	return opts, nil
}
