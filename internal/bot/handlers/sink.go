package handlers

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/winterfair/fairbot/internal/bot/keyboard"
	"github.com/winterfair/fairbot/internal/game/engine"
)

// TelegramSink renders engine views into the user's game message. The
// last game message per user is tracked so delayed narration writes can
// edit it without a live callback context.
type TelegramSink struct {
	bot *telebot.Bot
	kb  *keyboard.Builder
	log *slog.Logger

	mu       sync.RWMutex
	messages map[int64]*telebot.Message
}

// NewTelegramSink wires the sink.
func NewTelegramSink(bot *telebot.Bot, kb *keyboard.Builder, log *slog.Logger) *TelegramSink {
	if log == nil {
		log = slog.Default()
	}

	return &TelegramSink{
		bot:      bot,
		kb:       kb,
		log:      log,
		messages: make(map[int64]*telebot.Message),
	}
}

// Track remembers the message carrying the user's game screen.
func (s *TelegramSink) Track(userID int64, msg *telebot.Message) {
	if msg == nil {
		return
	}

	s.mu.Lock()
	s.messages[userID] = msg
	s.mu.Unlock()
}

// Render edits the tracked game message in place, falling back to a
// fresh message when none is tracked yet.
func (s *TelegramSink) Render(_ context.Context, userID int64, view engine.View) error {
	markup := s.kb.Markup(view)

	s.mu.RLock()
	msg := s.messages[userID]
	s.mu.RUnlock()

	if msg != nil {
		edited, err := s.bot.Edit(msg, view.Text, markup)
		if err == nil {
			s.Track(userID, edited)
			return nil
		}
		if isNotModified(err) {
			return nil
		}
		return err
	}

	sent, err := s.bot.Send(telebot.ChatID(userID), view.Text, markup)
	if err != nil {
		return err
	}
	s.Track(userID, sent)

	return nil
}

// Alert sends a short standalone notice without touching the game screen.
func (s *TelegramSink) Alert(_ context.Context, userID int64, text string) error {
	_, err := s.bot.Send(telebot.ChatID(userID), text)
	return err
}

func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
