// Package flash carries a one-shot notification across a redirect.  The
// message lives in a short-lived cookie that the next rendered page
// reads and clears, which is how the dashboard shows its toasts.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

const cookieName = "flash"

// GenericError is shown for every failed API call; no upstream detail is
// exposed to the viewer.
const GenericError = "An error occurred"

// Kind is the toast style.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is a pending notification.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Success queues a success toast for the next page.
func Success(c echo.Context, text string) { set(c, Message{Kind: KindSuccess, Text: text}) }

// Error queues an error toast for the next page.
func Error(c echo.Context, text string) { set(c, Message{Kind: KindError, Text: text}) }

func set(c echo.Context, m Message) {
	b, err := json.Marshal(m)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pending reports whether the request carries an unread message.
func Pending(c echo.Context) bool {
	ck, err := c.Cookie(cookieName)
	return err == nil && ck.Value != ""
}

// Pop returns the pending message and clears it.  A missing or corrupt
// cookie yields nil.
func Pop(c echo.Context) *Message {
	ck, err := c.Cookie(cookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil || m.Text == "" {
		return nil
	}
	return &m
}
