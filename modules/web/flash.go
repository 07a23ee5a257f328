package web

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	gonanoid "github.com/jaevor/go-nanoid"
)

const (
	flashKindKey = "flash_kind"
	flashTextKey = "flash_text"
)

// newSessionStore creates the in-memory session store that carries flash
// messages across the post/redirect/get cycle.
func newSessionStore() (*session.Store, error) {
	keygen, err := gonanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("failed to create session key generator: %w", err)
	}
	return session.New(session.Config{
		Expiration:     time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   keygen,
	}), nil
}

// setFlash stores a one-shot message for the next render.
func setFlash(c *fiber.Ctx, store *session.Store, msg Message) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(flashKindKey, msg.Kind)
	sess.Set(flashTextKey, msg.Text)
	return sess.Save()
}

// popFlash returns and clears the pending message, if any.
func popFlash(c *fiber.Ctx, store *session.Store) (Message, bool) {
	sess, err := store.Get(c)
	if err != nil {
		return Message{}, false
	}

	text, _ := sess.Get(flashTextKey).(string)
	kind, _ := sess.Get(flashKindKey).(string)
	if text == "" {
		return Message{}, false
	}

	sess.Delete(flashKindKey)
	sess.Delete(flashTextKey)
	if err := sess.Save(); err != nil {
		return Message{}, false
	}
	return Message{Kind: kind, Text: text}, true
}
