// Command quizplayer takes an academy quiz in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"resetclub/backend/client"
	"resetclub/backend/quiz"
	"resetclub/backend/utils"

	"github.com/urfave/cli/v2"
)

func main() {
	logger := utils.InitLogger(utils.LoggerConfig{Output: os.Stderr})

	app := &cli.App{
		Name:  "quizplayer",
		Usage: "take a RESET Academy quiz in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api", Value: "http://localhost:8080", EnvVars: []string{"RESET_API_URL"}, Usage: "academy API base URL"},
			&cli.StringFlag{Name: "token", EnvVars: []string{"RESET_API_TOKEN"}, Usage: "bearer token; skips login"},
			&cli.StringFlag{Name: "email", EnvVars: []string{"RESET_EMAIL"}, Usage: "login email or username"},
			&cli.StringFlag{Name: "password", EnvVars: []string{"RESET_PASSWORD"}, Usage: "login password"},
			&cli.UintFlag{Name: "quiz", Required: true, EnvVars: []string{"RESET_QUIZ_ID"}, Usage: "quiz ID"},
			&cli.DurationFlag{Name: "timeout", Value: 10 * time.Second, EnvVars: []string{"RESET_API_TIMEOUT"}, Usage: "API request timeout"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func run(c *cli.Context) error {
	ac, err := connect(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	session, err := quiz.Load(ctx, ac, c.Uint("quiz"))
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("quiz %d does not exist", c.Uint("quiz"))
	}
	if err != nil {
		return err
	}

	return play(os.Stdin, os.Stdout, session)
}

func connect(c *cli.Context) (*client.AcademyClient, error) {
	opts := []client.Option{client.WithTimeout(c.Duration("timeout"))}
	if token := c.String("token"); token != "" {
		return client.New(c.String("api"), token, opts...), nil
	}
	if c.String("email") == "" || c.String("password") == "" {
		return nil, errors.New("either --token or --email and --password are required")
	}
	return client.Login(c.Context, c.String("api"), c.String("email"), c.String("password"), opts...)
}
