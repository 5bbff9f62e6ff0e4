// Package client talks to the academy API on behalf of one authenticated user.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"resetclub/backend/quiz"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrUnauthorized = errors.New("academy api: unauthorized")
	ErrNotFound     = errors.New("academy api: not found")
)

const defaultTimeout = 10 * time.Second

// StatusError is returned for any other non-success status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("academy api: status %d: %s", e.Code, e.Message)
}

// AcademyClient carries its credentials explicitly; build one per user and
// pass it to whatever needs to call the API.
type AcademyClient struct {
	baseURL string
	token   string
	timeout time.Duration
}

type Option func(*AcademyClient)

func WithTimeout(d time.Duration) Option {
	return func(c *AcademyClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func New(baseURL, token string, opts ...Option) *AcademyClient {
	c := &AcademyClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *AcademyClient) Token() string { return c.token }

// Login exchanges credentials for a token and returns a client carrying it.
func Login(ctx context.Context, baseURL, login, password string, opts ...Option) (*AcademyClient, error) {
	anon := New(baseURL, "", opts...)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	a := fiber.Post(anon.baseURL + "/api/auth/login").JSON(fiber.Map{
		"login":    login,
		"password": password,
	})
	if err := anon.do(ctx, a, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Data.Token == "" {
		return nil, fmt.Errorf("login: %w", ErrUnauthorized)
	}

	return New(baseURL, resp.Data.Token, opts...), nil
}

type questionsPayload struct {
	Quiz      quiz.Quiz       `json:"quiz"`
	Questions []quiz.Question `json:"questions"`
}

// QuizQuestions fetches the ordered question set of a quiz.
func (c *AcademyClient) QuizQuestions(ctx context.Context, quizID uint) (quiz.Quiz, []quiz.Question, error) {
	var payload questionsPayload
	a := fiber.Get(fmt.Sprintf("%s/api/academy/quizzes/%d/questions", c.baseURL, quizID))
	if err := c.do(ctx, a, &payload); err != nil {
		return quiz.Quiz{}, nil, fmt.Errorf("quiz %d questions: %w", quizID, err)
	}
	if payload.Questions == nil {
		payload.Questions = []quiz.Question{}
	}
	return payload.Quiz, payload.Questions, nil
}

func (c *AcademyClient) do(ctx context.Context, a *fiber.Agent, out interface{}) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(a)
		return err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	a.Timeout(timeout)
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return err
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return errs[0]
	}

	switch {
	case code == fiber.StatusUnauthorized:
		return ErrUnauthorized
	case code == fiber.StatusNotFound:
		return ErrNotFound
	case code < 200 || code >= 300:
		var e struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &e)
		return &StatusError{Code: code, Message: e.Message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
