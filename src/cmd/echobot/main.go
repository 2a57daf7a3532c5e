// echobot is a minimal bot that repeats every message sent to it.
//
// The bot token is read from the GUILDED_TOKEN environment variable, which
// may be supplied via a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/joho/godotenv"
	"github.com/julien777z/guilded-go/src/guilded"
	"github.com/julien777z/guilded-go/src/guilded/client"
	"github.com/julien777z/guilded-go/src/guilded/options"
)

func main() {
	godotenv.Load()

	token := os.Getenv("GUILDED_TOKEN")
	if token == "" {
		fmt.Fprintln(os.Stderr, "GUILDED_TOKEN is not set")
		os.Exit(1)
	}

	logger := &twelf.StandardLogger{
		CaptureDebug: os.Getenv("GUILDED_DEBUG") == "true",
	}

	opts, err := options.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	opts = append(opts, options.Logger(logger))

	c, err := client.New(token, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer c.Close()

	c.On(guilded.EventReady, func(ctx context.Context, e *guilded.ReadyEvent) {
		logger.Log("logged in as %s", e.User.Name)
	})

	c.On(guilded.EventMessage, func(ctx context.Context, e *guilded.MessageEvent) {
		if e.Message.CreatedByBot() {
			return
		}

		if !strings.HasPrefix(e.Message.Content, "!echo ") {
			return
		}

		reply := strings.TrimPrefix(e.Message.Content, "!echo ")
		if _, err := e.Message.Reply(ctx, reply); err != nil {
			logger.Log("could not reply to %s: %s", e.Message.ID, err)
		}
	})

	c.OnError(func(event string, err error) {
		logger.Log("handler failure: %s", err)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := c.Run(ctx); err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
