// Package server hosts the bot over HTTP. It is the turn dispatcher: it
// decodes inbound messages, keeps turns for one conversation strictly
// sequential, and encodes the engine's replies.
package server

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
	logx "github.com/JIoffe/LearnAI-Bootcamp/pkg/logger"
)

type Config struct {
	Port int `envconfig:"SERVER_PORT" default:"3978"`
}

// TurnHandler is the dialog engine contract the server dispatches to.
type TurnHandler interface {
	HandleTurn(ctx context.Context, conversationID, message string, pre *model.IntentResult) ([]model.Reply, error)
}

type messageRequest struct {
	ConversationID string              `json:"conversation_id"`
	Text           string              `json:"text"`
	Intent         *model.IntentResult `json:"intent,omitempty"`
}

type messageResponse struct {
	ConversationID string        `json:"conversation_id"`
	Replies        []model.Reply `json:"replies"`
}

// Server wraps the fiber app around the dialog engine.
type Server struct {
	app    *fiber.App
	engine TurnHandler
	port   int
	locks  conversationLocks
}

func New(cfg Config, engine TurnHandler) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "picturebot",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:    app,
		engine: engine,
		port:   cfg.Port,
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Post("/api/messages", s.handleMessage)

	return s
}

func (s *Server) handleMessage(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}

	// One conversation at a time; distinct conversations stay concurrent.
	unlock := s.locks.lock(req.ConversationID)
	defer unlock()

	replies, err := s.engine.HandleTurn(c.UserContext(), req.ConversationID, req.Text, req.Intent)
	if err != nil {
		logx.Error().Err(err).Str("conversationID", req.ConversationID).Msg("turn failed")
		return fiber.NewError(fiber.StatusInternalServerError, "turn processing failed")
	}

	return c.JSON(messageResponse{
		ConversationID: req.ConversationID,
		Replies:        replies,
	})
}

// Listen serves until Shutdown is called.
func (s *Server) Listen() error {
	logx.Info().Int("port", s.port).Msg("bot listening")
	return s.app.Listen(fmt.Sprintf(":%d", s.port))
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// conversationLocks serializes turns per conversation id.
type conversationLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (cl *conversationLocks) lock(conversationID string) func() {
	cl.mu.Lock()
	if cl.locks == nil {
		cl.locks = make(map[string]*sync.Mutex)
	}
	l, ok := cl.locks[conversationID]
	if !ok {
		l = &sync.Mutex{}
		cl.locks[conversationID] = l
	}
	cl.mu.Unlock()

	l.Lock()
	return l.Unlock
}
