// Package site serves the public side of the service: card pages by slug,
// vCard downloads, click tracking redirects, the contact form and the
// tracking opt-out page.
package site

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"cardhub/analytics"
	"cardhub/common"
	"cardhub/config"
	"cardhub/logging"
	"cardhub/metrics"
	"cardhub/models"
	"cardhub/notify"
	"cardhub/optout"
	"cardhub/qr"
	"cardhub/store"
	"cardhub/theme"
	"cardhub/validation"
	"cardhub/vcard"
)

type CardStore interface {
	GetActiveCardBySlug(ctx context.Context, slug string) (*models.BusinessCard, error)
	CreateContactShare(ctx context.Context, share *models.ContactShare) error
}

type Tracker interface {
	TrackAsync(policy analytics.Policy, hit analytics.Hit)
}

type SiteModule struct {
	cards    CardStore
	tracker  Tracker
	notifier notify.Notifier
	cfg      *config.Config
	limiter  *ipLimiter
	wg       sync.WaitGroup
}

func NewSiteModule(cards CardStore, tracker Tracker, notifier notify.Notifier, cfg *config.Config) *SiteModule {
	return &SiteModule{
		cards:    cards,
		tracker:  tracker,
		notifier: notifier,
		cfg:      cfg,
		limiter:  newIPLimiter(cfg.RateLimit.ContactPerMinute, cfg.RateLimit.Burst),
	}
}

func (s *SiteModule) RegisterRoutes(router *gin.Engine) {
	cardGroup := router.Group("/c/:slug")
	cardGroup.Use(s.loadCard)
	{
		cardGroup.GET("", s.card)
		cardGroup.GET("/vcard", s.vcard)
		cardGroup.GET("/qr", s.qr)
		cardGroup.GET("/out/:kind", s.out)
		cardGroup.POST("/contact", s.contact)
	}

	router.GET("/privacy", s.privacy)
	router.POST("/privacy/opt-out", s.setOptOut)
}

// Wait blocks until pending owner notifications are sent.
func (s *SiteModule) Wait() {
	s.wg.Wait()
}

func (s *SiteModule) html(c *gin.Context, status int, name string, data any) {
	c.Render(status, render.HTML{Template: templates, Name: name, Data: data})
}

func (s *SiteModule) loadCard(c *gin.Context) {
	card, err := s.cards.GetActiveCardBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logging.Error().Err(err).Str("slug", c.Param("slug")).Msg("failed to load card")
		}
		s.html(c, http.StatusNotFound, "not_found.html", nil)
		c.Abort()
		return
	}

	c.Set("card", card)
	c.Next()
}

func cardFrom(c *gin.Context) *models.BusinessCard {
	return c.MustGet("card").(*models.BusinessCard)
}

func (s *SiteModule) track(c *gin.Context, card *models.BusinessCard, kind models.EventKind) {
	policy := optout.FromRequest(c, s.cfg.Server.SecureCookies)
	s.tracker.TrackAsync(policy, analytics.HitFromRequest(c, card.ID, kind))
}

type contactForm struct {
	Name    string `form:"name" json:"name" validate:"required,max=100"`
	Email   string `form:"email" json:"email" validate:"required,email,max=254"`
	Phone   string `form:"phone" json:"phone" validate:"max=40"`
	Company string `form:"company" json:"company" validate:"max=100"`
	Notes   string `form:"notes" json:"notes" validate:"max=1000"`
}

type cardPage struct {
	Card       *models.BusinessCard
	CSS        template.CSS
	Bio        template.HTML
	Initials   string
	URL        string
	QRURL      string
	VCardURL   string
	ContactURL string
	Contacts   []contactRow
	Shared     bool
	Form       contactForm
	Errors     []validation.FieldError
}

func (s *SiteModule) page(card *models.BusinessCard) cardPage {
	base := "/c/" + card.Slug
	url := s.cfg.CardURL(card.Slug)
	return cardPage{
		Card:       card,
		CSS:        theme.Stylesheet(theme.ByID(card.ThemeID)),
		Bio:        renderMarkdown(card.Bio),
		Initials:   initials(card.FullName),
		URL:        url,
		QRURL:      qr.ImageURL(s.cfg.QR.BaseURL, url),
		VCardURL:   base + "/vcard",
		ContactURL: base + "/contact",
		Contacts:   contactRows(card, base),
	}
}

func (s *SiteModule) card(c *gin.Context) {
	card := cardFrom(c)
	s.track(c, card, models.EventVisit)

	data := s.page(card)
	data.Shared = c.Query("shared") == "1"
	s.html(c, http.StatusOK, "card.html", data)
}

func (s *SiteModule) vcard(c *gin.Context) {
	start := time.Now()
	card := cardFrom(c)
	s.track(c, card, models.EventVCardDownload)

	body := vcard.Generate(card)
	metrics.ObserveExport("vcard", start)

	c.Header("Content-Disposition", common.Attachment(vcard.Filename(card)))
	c.Data(http.StatusOK, vcard.ContentType, []byte(body))
}

func (s *SiteModule) qr(c *gin.Context) {
	card := cardFrom(c)
	c.Redirect(http.StatusFound, qr.ImageURL(s.cfg.QR.BaseURL, s.cfg.CardURL(card.Slug)))
}

// out records a contact click and forwards to the contact target.
func (s *SiteModule) out(c *gin.Context) {
	card := cardFrom(c)

	var (
		kind   models.EventKind
		target string
	)
	switch c.Param("kind") {
	case "email":
		kind = models.EventEmailClick
		if v := pick(card.Email, card.Emails, c.Query("i")); v != "" {
			target = "mailto:" + v
		}
	case "phone":
		kind = models.EventPhoneClick
		if v := pick(card.Phone, card.Phones, c.Query("i")); v != "" {
			target = "tel:" + strings.ReplaceAll(v, " ", "")
		}
	case "website":
		kind = models.EventWebsiteClick
		if card.Website != "" {
			target = websiteHref(card.Website)
		}
	}

	if target == "" {
		s.html(c, http.StatusNotFound, "not_found.html", nil)
		return
	}

	s.track(c, card, kind)
	c.Redirect(http.StatusFound, target)
}

// pick returns entries[i] when i names one, otherwise the primary value.
func pick(primary string, entries []models.ContactEntry, i string) string {
	if i == "" {
		return primary
	}
	n, err := strconv.Atoi(i)
	if err != nil || n < 0 || n >= len(entries) {
		return ""
	}
	return entries[n].Value
}

func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON || strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON)
}

func (s *SiteModule) contact(c *gin.Context) {
	card := cardFrom(c)
	asJSON := wantsJSON(c)

	if !card.AllowContactSharing {
		if asJSON {
			c.JSON(http.StatusForbidden, gin.H{"error": "contact sharing is disabled for this card"})
		} else {
			s.html(c, http.StatusForbidden, "not_found.html", nil)
		}
		return
	}

	// c.ClientIP only honors forwarding headers from trusted proxies
	if !s.limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
		return
	}

	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)

	if verr := validation.ValidateStruct(&form); verr != nil {
		if asJSON {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields()})
			return
		}
		data := s.page(card)
		data.Form = form
		data.Errors = verr.Fields()
		s.html(c, http.StatusBadRequest, "card.html", data)
		return
	}

	share := &models.ContactShare{
		CardID:         card.ID,
		VisitorName:    form.Name,
		VisitorEmail:   form.Email,
		VisitorPhone:   strings.TrimSpace(form.Phone),
		VisitorCompany: strings.TrimSpace(form.Company),
		VisitorNotes:   strings.TrimSpace(form.Notes),
	}
	if err := s.cards.CreateContactShare(c.Request.Context(), share); err != nil {
		logging.Error().Err(err).Str("card_id", card.ID).Msg("failed to store contact share")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save your details"})
		return
	}
	metrics.ContactShares.Inc()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = s.notifier.ContactShared(ctx, card, share)
	}()

	if asJSON {
		c.JSON(http.StatusCreated, share)
		return
	}
	c.Redirect(http.StatusSeeOther, "/c/"+card.Slug+"?shared=1")
}

type privacyPage struct {
	DoNotTrack bool
	OptOut     bool
}

func (s *SiteModule) privacy(c *gin.Context) {
	policy := optout.FromRequest(c, s.cfg.Server.SecureCookies)
	if wantsJSON(c) {
		c.JSON(http.StatusOK, privacyState(policy))
		return
	}
	s.html(c, http.StatusOK, "privacy.html", privacyPage{
		DoNotTrack: policy.DoNotTrack(),
		OptOut:     policy.OptOut(),
	})
}

func privacyState(policy *optout.Policy) gin.H {
	return gin.H{
		"optOut":     policy.OptOut(),
		"doNotTrack": policy.DoNotTrack(),
		"tracking":   policy.ShouldTrack(),
	}
}

type optOutInput struct {
	OptOut *bool `form:"opt_out" json:"optOut" binding:"required"`
}

func (s *SiteModule) setOptOut(c *gin.Context) {
	var in optOutInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "optOut must be true or false"})
		return
	}

	policy := optout.FromRequest(c, s.cfg.Server.SecureCookies)
	policy.SetOptOut(*in.OptOut)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, privacyState(policy))
		return
	}
	c.Redirect(http.StatusSeeOther, "/privacy")
}
