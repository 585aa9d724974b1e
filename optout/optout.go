// Package optout decides whether a visitor may be tracked. The persisted
// flag lives behind a Settings provider so the same policy works over a
// cookie jar, a test map or anything else that stores strings.
package optout

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Key is the settings key of the persisted opt-out flag.
const Key = "analytics_opt_out"

type Settings interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

type Policy struct {
	settings   Settings
	doNotTrack bool
}

func NewPolicy(settings Settings, doNotTrack bool) *Policy {
	return &Policy{settings: settings, doNotTrack: doNotTrack}
}

// ShouldTrack is false when the client sends the do-not-track signal or has
// opted out.
func (p *Policy) ShouldTrack() bool {
	return !p.doNotTrack && !p.OptOut()
}

func (p *Policy) DoNotTrack() bool {
	return p.doNotTrack
}

// OptOut reads the persisted flag. An absent flag is false.
func (p *Policy) OptOut() bool {
	v, ok := p.settings.Get(Key)
	return ok && v == "true"
}

func (p *Policy) SetOptOut(optOut bool) {
	if optOut {
		p.settings.Set(Key, "true")
		return
	}
	p.settings.Set(Key, "false")
}

// Memory is an in-process Settings store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// cookieMaxAge keeps the flag for a year, like a browser-persisted setting.
const cookieMaxAge = int(365 * 24 * time.Hour / time.Second)

// Cookies stores settings as cookies on the visitor's browser. Values set
// during the request are visible to later Gets of the same request.
type Cookies struct {
	c       *gin.Context
	secure  bool
	written map[string]string
}

func NewCookies(c *gin.Context, secure bool) *Cookies {
	return &Cookies{c: c, secure: secure, written: map[string]string{}}
}

func (s *Cookies) Get(key string) (string, bool) {
	if v, ok := s.written[key]; ok {
		return v, true
	}
	v, err := s.c.Cookie(key)
	if err != nil {
		return "", false
	}
	return v, true
}

func (s *Cookies) Set(key, value string) {
	s.written[key] = value
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, value, cookieMaxAge, "/", "", s.secure, true)
}

// FromRequest builds the policy for the visitor of an HTTP request.
func FromRequest(c *gin.Context, secureCookies bool) *Policy {
	return NewPolicy(NewCookies(c, secureCookies), c.GetHeader("DNT") == "1")
}
