package admin

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cardhub/common"
	"cardhub/logging"
	"cardhub/metrics"
	"cardhub/models"
	"cardhub/share"
	"cardhub/store"
	"cardhub/validation"
	"cardhub/vcard"
)

const (
	maxUploadBytes   = 32 << 20
	defaultStatsDays = 30
	maxStatsDays     = 365
)

type cardInput struct {
	Slug                string                `json:"slug" validate:"omitempty,max=80,slug"`
	FullName            string                `json:"full_name" validate:"required,max=120"`
	Title               string                `json:"title" validate:"max=120"`
	Company             string                `json:"company" validate:"max=120"`
	Bio                 string                `json:"bio" validate:"max=2000"`
	AvatarURL           string                `json:"avatar_url" validate:"omitempty,url"`
	BannerURL           string                `json:"banner_url" validate:"omitempty,url"`
	Email               string                `json:"email" validate:"omitempty,email"`
	Phone               string                `json:"phone" validate:"max=40"`
	Website             string                `json:"website" validate:"max=255"`
	Address             string                `json:"address" validate:"max=255"`
	Emails              []models.ContactEntry `json:"emails"`
	Phones              []models.ContactEntry `json:"phones"`
	SocialMedia         []models.SocialMedia  `json:"social_media"`
	ThemeID             string                `json:"theme_id" validate:"max=64"`
	IsActive            *bool                 `json:"is_active"`
	AllowContactSharing *bool                 `json:"allow_contact_sharing"`
}

// apply copies the input onto card. Lists left out of the request stay nil
// so the store can fill them from the legacy single fields.
func (in *cardInput) apply(card *models.BusinessCard) {
	card.Slug = strings.TrimSpace(in.Slug)
	card.FullName = strings.TrimSpace(in.FullName)
	card.Title = in.Title
	card.Company = in.Company
	card.Bio = in.Bio
	card.AvatarURL = in.AvatarURL
	card.BannerURL = in.BannerURL
	card.Email = strings.TrimSpace(in.Email)
	card.Phone = strings.TrimSpace(in.Phone)
	card.Website = strings.TrimSpace(in.Website)
	card.Address = in.Address
	card.Emails = in.Emails
	card.Phones = in.Phones
	card.SocialMedia = in.SocialMedia
	card.ThemeID = in.ThemeID
	if in.IsActive != nil {
		card.IsActive = *in.IsActive
	}
	if in.AllowContactSharing != nil {
		card.AllowContactSharing = *in.AllowContactSharing
	}
}

func bindCard(c *gin.Context) (*cardInput, bool) {
	var in cardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, false
	}
	if verr := validation.ValidateStruct(&in); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields()})
		return nil, false
	}
	return &in, true
}

// loadCard resolves :id to a card of the signed-in owner. Cards of other
// owners are reported as missing.
func (a *AdminModule) loadCard(c *gin.Context) {
	card, err := a.store.GetCard(c.Request.Context(), c.Param("id"))
	if err != nil || card.UserID != currentUser(c) {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			logging.Error().Err(err).Str("card_id", c.Param("id")).Msg("failed to load card")
		}
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	c.Set("card", card)
	c.Next()
}

func cardFrom(c *gin.Context) *models.BusinessCard {
	return c.MustGet("card").(*models.BusinessCard)
}

func (a *AdminModule) listCards(c *gin.Context) {
	cards, err := a.store.ListCardsByUser(c.Request.Context(), currentUser(c))
	if err != nil {
		logging.Error().Err(err).Msg("failed to list cards")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cards"})
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (a *AdminModule) createCard(c *gin.Context) {
	in, ok := bindCard(c)
	if !ok {
		return
	}

	card := &models.BusinessCard{UserID: currentUser(c), IsActive: true}
	in.apply(card)

	generated := card.Slug == ""
	if generated {
		slug, err := a.availableSlug(c, generateSlug(card.FullName), "")
		if err != nil {
			logging.Error().Err(err).Msg("failed to pick a slug")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create card"})
			return
		}
		card.Slug = slug
	}

	if err := a.store.CreateCard(c.Request.Context(), card); err != nil {
		a.storeError(c, err, "could not create card")
		return
	}
	c.JSON(http.StatusCreated, card)
}

// availableSlug returns base, or base with the first numeric suffix that no
// active card other than exceptID uses.
func (a *AdminModule) availableSlug(c *gin.Context, base, exceptID string) (string, error) {
	if base == "" {
		base = "card"
	}
	candidate := base
	for i := 2; i < 100; i++ {
		taken, err := a.store.SlugTaken(c.Request.Context(), candidate, exceptID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%d", base, time.Now().Unix()), nil
}

func (a *AdminModule) getCard(c *gin.Context) {
	c.JSON(http.StatusOK, cardFrom(c))
}

func (a *AdminModule) updateCard(c *gin.Context) {
	in, ok := bindCard(c)
	if !ok {
		return
	}

	card := cardFrom(c)
	in.apply(card)
	if card.Slug == "" {
		slug, err := a.availableSlug(c, generateSlug(card.FullName), card.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update card"})
			return
		}
		card.Slug = slug
	}

	if err := a.store.UpdateCard(c.Request.Context(), card); err != nil {
		a.storeError(c, err, "could not update card")
		return
	}
	c.JSON(http.StatusOK, card)
}

func (a *AdminModule) deleteCard(c *gin.Context) {
	if err := a.store.DeleteCard(c.Request.Context(), cardFrom(c).ID); err != nil {
		a.storeError(c, err, "could not delete card")
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *AdminModule) storeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, store.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "this address is already used by another active card"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
	default:
		logging.Error().Err(err).Msg(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

type imageField int

const (
	imageAvatar imageField = iota
	imageBanner
)

func (a *AdminModule) uploadImage(field imageField) gin.HandlerFunc {
	return func(c *gin.Context) {
		card := cardFrom(c)

		header, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		if header.Size > maxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image is larger than 32 MB"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
			return
		}
		defer file.Close()

		sniff := make([]byte, 512)
		n, _ := io.ReadFull(file, sniff)
		if !strings.HasPrefix(http.DetectContentType(sniff[:n]), "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is not an image"})
			return
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
			return
		}

		url, err := a.images.Upload(c.Request.Context(), filepath.Base(header.Filename), file)
		if err != nil {
			logging.Error().Err(err).Str("card_id", card.ID).Msg("image upload failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to upload image, please try again"})
			return
		}

		if field == imageAvatar {
			card.AvatarURL = url
		} else {
			card.BannerURL = url
		}
		if err := a.store.UpdateCard(c.Request.Context(), card); err != nil {
			a.storeError(c, err, "could not save image")
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url, "card": card})
	}
}

func (a *AdminModule) cardAnalytics(c *gin.Context) {
	days := defaultStatsDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxStatsDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("days must be between 1 and %d", maxStatsDays)})
			return
		}
		days = n
	}

	c.JSON(http.StatusOK, a.analytics.Report(c.Request.Context(), cardFrom(c).ID, days))
}

func (a *AdminModule) contacts(c *gin.Context) {
	shares, err := a.store.ListContactShares(c.Request.Context(), cardFrom(c).ID)
	if err != nil {
		logging.Error().Err(err).Msg("failed to list contact shares")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load contacts"})
		return
	}
	if shares == nil {
		shares = []models.ContactShare{}
	}
	c.JSON(http.StatusOK, shares)
}

func (a *AdminModule) pdfExport(c *gin.Context) {
	start := time.Now()
	card := cardFrom(c)

	data, err := a.pdf.Generate(c.Request.Context(), card, c.Query("theme"), a.cfg.CardURL(card.Slug))
	if err != nil {
		logging.Error().Err(err).Str("card_id", card.ID).Msg("pdf generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate PDF"})
		return
	}
	metrics.ObserveExport("pdf", start)

	c.Header("Content-Disposition", common.Attachment(card.Slug+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (a *AdminModule) vcardExport(c *gin.Context) {
	start := time.Now()
	card := cardFrom(c)

	body := vcard.Generate(card)
	metrics.ObserveExport("vcard", start)

	c.Header("Content-Disposition", common.Attachment(vcard.Filename(card)))
	c.Data(http.StatusOK, vcard.ContentType, []byte(body))
}

func (a *AdminModule) shareLinks(c *gin.Context) {
	card := cardFrom(c)
	url := a.cfg.CardURL(card.Slug)
	c.JSON(http.StatusOK, gin.H{
		"url":   url,
		"text":  share.Text(card),
		"links": share.All(card, url),
	})
}
