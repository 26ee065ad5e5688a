// Command writium serves a directory of Markdown articles.
//
// Usage:
//
//	writium [-env FILE]... [-console=false]
//	writium [-env FILE]... -token SUBJECT
//
// Configuration is read from the environment; see package ranger for the variables.
// With -token, writium prints a bearer token granting the admin scope and exits.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/xy-planning-network/writium/auth"
	"github.com/xy-planning-network/writium/logger"
	"github.com/xy-planning-network/writium/ranger"
)

// envFiles collects every -env flag.
type envFiles []string

func (e *envFiles) String() string { return strings.Join(*e, ",") }

func (e *envFiles) Set(v string) error {
	*e = append(*e, v)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		files   envFiles
		console bool
		subject string
	)

	flag.Var(&files, "env", "env file to load, repeatable (default .env if present)")
	flag.BoolVar(&console, "console", true, "read console commands from standard input")
	flag.StringVar(&subject, "token", "", "print an admin token for subject and exit")
	flag.Parse()

	cfg, err := ranger.NewConfig(files...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "writium: %v\n", err)
		return 1
	}

	if subject != "" {
		return issue(cfg, subject)
	}

	opts := make([]ranger.RangerOption, 0, 1)
	if console {
		opts = append(opts, ranger.WithConsole(os.Stdin))
	}

	rng, err := ranger.New(cfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "writium: %v\n", err)
		return 1
	}

	if err := rng.Guide(); err != nil {
		rng.EmitLogger().Error("web server stopped", &logger.LogContext{Error: err})
		return 1
	}

	return 0
}

// issue prints a token granting ranger.AdminScope to subject.
func issue(cfg ranger.Config, subject string) int {
	svc, err := auth.NewService(cfg.JWTSecret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "writium: %v\n", err)
		return 1
	}

	token, err := svc.Issue(subject, ranger.AdminScope)
	if err != nil {
		fmt.Fprintf(os.Stderr, "writium: %v\n", err)
		return 1
	}

	fmt.Println(token)
	return 0
}
