package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/service"
)

const flashCookieName = "flash"

// flashCookies carries a single notice across a redirect in a signed cookie.
type flashCookies struct {
	flash  *service.FlashService
	secure bool
}

func newFlashCookies(flash *service.FlashService, secure bool) *flashCookies {
	return &flashCookies{flash: flash, secure: secure}
}

// set stores the notice for the next rendered page.
func (f *flashCookies) set(w http.ResponseWriter, n domain.Notice) {
	token, err := f.flash.Encode(n)
	if err != nil {
		slog.Error("encode flash notice", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(service.FlashTTL.Seconds()),
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// pop returns the pending notice, if any, and clears the cookie.
// Tampered or expired cookies are dropped silently.
func (f *flashCookies) pop(w http.ResponseWriter, r *http.Request) domain.Notice {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return domain.Notice{}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})

	n, err := f.flash.Decode(cookie.Value)
	if err != nil {
		slog.Debug("discard flash cookie", "error", err)
		return domain.Notice{}
	}
	return n
}
