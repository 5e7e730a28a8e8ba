package flash

import (
	"net/http"

	"github.com/gorilla/securecookie"

	"github.com/yigit/coursecatalog/internal/pkg/logger"
)

// CookieName is the cookie carrying pending notices
const CookieName = "catalog_flash"

// Notice categories
const (
	CategorySuccess = "success"
	CategoryError   = "error"
)

// Notice is a transient status message shown on the next rendered page
type Notice struct {
	Category string
	Message  string
}

// Store signs pending notices into a cookie
type Store struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewStore creates a notice store signing with secret. An empty secret
// generates a random key, so notices do not survive a restart.
func NewStore(secret []byte, secureCookie bool) *Store {
	if len(secret) == 0 {
		logger.Warn().Msg("No session secret configured, generating a random one")
		secret = securecookie.GenerateRandomKey(32)
	}

	codec := securecookie.New(secret, nil)
	codec.MaxAge(0)

	return &Store{codec: codec, secure: secureCookie}
}

// Add queues a notice after any notices still pending on the request
func (s *Store) Add(w http.ResponseWriter, r *http.Request, notice Notice) error {
	notices := append(s.read(r), notice)

	encoded, err := s.codec.Encode(CookieName, notices)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Success queues a success notice
func (s *Store) Success(w http.ResponseWriter, r *http.Request, message string) error {
	return s.Add(w, r, Notice{Category: CategorySuccess, Message: message})
}

// Error queues an error notice
func (s *Store) Error(w http.ResponseWriter, r *http.Request, message string) error {
	return s.Add(w, r, Notice{Category: CategoryError, Message: message})
}

// Pop returns the pending notices and clears the cookie
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Notice {
	if _, err := r.Cookie(CookieName); err != nil {
		return nil
	}

	notices := s.read(r)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return notices
}

// read decodes pending notices; invalid cookies are treated as empty
func (s *Store) read(r *http.Request) []Notice {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	var notices []Notice
	if err := s.codec.Decode(CookieName, cookie.Value, &notices); err != nil {
		logger.Debug().Err(err).Msg("Ignoring invalid flash cookie")
		return nil
	}
	return notices
}
