// Package admin is the owner surface: account sign-up and login, card
// management, exports and per-card analytics, all as JSON under /api.
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"cardhub/analytics"
	"cardhub/config"
	"cardhub/imagehost"
	"cardhub/logging"
	"cardhub/models"
	"cardhub/pdfcard"
	"cardhub/store"
	"cardhub/theme"
	"cardhub/validation"
)

const sessionUserKey = "user_id"

// passwordCost is the bcrypt work factor for new passwords.
var passwordCost = 12

type PDFGenerator interface {
	Generate(ctx context.Context, card *models.BusinessCard, themeID, cardURL string) ([]byte, error)
}

type ProfileWriter interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
}

type Deps struct {
	Store     *store.Store
	Analytics *analytics.Service
	PDF       PDFGenerator
	Images    imagehost.Uploader
	Config    *config.Config
}

type AdminModule struct {
	store     *store.Store
	profiles  ProfileWriter
	analytics *analytics.Service
	pdf       PDFGenerator
	images    imagehost.Uploader
	cfg       *config.Config
}

func NewAdminModule(d Deps) *AdminModule {
	return &AdminModule{
		store:     d.Store,
		profiles:  d.Store,
		analytics: d.Analytics,
		pdf:       d.PDF,
		images:    d.Images,
		cfg:       d.Config,
	}
}

func (a *AdminModule) RegisterRoutes(router *gin.Engine) {
	router.POST("/signup", a.signup)
	router.POST("/login", a.login)
	router.POST("/logout", a.logout)

	api := router.Group("/api")
	api.Use(a.requireAuth)
	{
		api.GET("/me", a.me)
		api.GET("/themes", a.themes)
		api.GET("/pdf-themes", a.pdfThemes)
		api.GET("/cards", a.listCards)
		api.POST("/cards", a.createCard)
		api.GET("/settings/telegram", a.telegramSettings)
		api.PUT("/settings/telegram", a.saveTelegramSettings)
	}

	cardGroup := api.Group("/cards/:id")
	cardGroup.Use(a.loadCard)
	{
		cardGroup.GET("", a.getCard)
		cardGroup.PUT("", a.updateCard)
		cardGroup.DELETE("", a.deleteCard)
		cardGroup.POST("/avatar", a.uploadImage(imageAvatar))
		cardGroup.POST("/banner", a.uploadImage(imageBanner))
		cardGroup.GET("/analytics", a.cardAnalytics)
		cardGroup.GET("/contacts", a.contacts)
		cardGroup.GET("/pdf", a.pdfExport)
		cardGroup.GET("/vcard", a.vcardExport)
		cardGroup.GET("/share", a.shareLinks)
	}
}

func (a *AdminModule) requireAuth(c *gin.Context) {
	session := sessions.Default(c)
	userID, _ := session.Get(sessionUserKey).(string)

	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.Set(sessionUserKey, userID)
	c.Next()
}

func currentUser(c *gin.Context) string {
	return c.GetString(sessionUserKey)
}

type signupInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"max=120"`
}

func (a *AdminModule) signup(c *gin.Context) {
	var in signupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if verr := validation.ValidateStruct(&in); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields()})
		return
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		logging.Error().Err(err).Msg("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create account"})
		return
	}

	user := &models.User{Email: in.Email, PasswordHash: hash}
	if err := a.store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "this email is already registered"})
			return
		}
		logging.Error().Err(err).Msg("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create account"})
		return
	}

	profile := &models.Profile{ID: user.ID, Email: user.Email, FullName: strings.TrimSpace(in.FullName)}
	if err := a.createProfile(c.Request.Context(), profile); err != nil {
		logging.Error().Err(err).Str("user_id", user.ID).Msg("profile creation failed after retry")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "your account was created but your profile could not be saved; sign in to try again",
		})
		return
	}

	a.startSession(c, user.ID)
	c.JSON(http.StatusCreated, gin.H{"user": user, "profile": profile})
}

// createProfile writes the profile, retrying once after the configured delay
// in case the freshly created account is not yet visible to the write.
func (a *AdminModule) createProfile(ctx context.Context, profile *models.Profile) error {
	err := a.profiles.CreateProfile(ctx, profile)
	if err == nil {
		return nil
	}
	logging.Warn().Err(err).Str("user_id", profile.ID).Msg("profile creation failed, retrying")

	select {
	case <-time.After(a.cfg.Auth.ProfileRetryDelay):
	case <-ctx.Done():
		return ctx.Err()
	}
	return a.profiles.CreateProfile(ctx, profile)
}

type loginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (a *AdminModule) login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := a.store.GetUserByEmail(c.Request.Context(), in.Email)
	if err != nil || !checkPasswordHash(in.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
		return
	}

	a.startSession(c, user.ID)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (a *AdminModule) startSession(c *gin.Context, userID string) {
	session := sessions.Default(c)
	session.Set(sessionUserKey, userID)
	if err := session.Save(); err != nil {
		logging.Error().Err(err).Msg("failed to save session")
	}
}

func (a *AdminModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Status(http.StatusNoContent)
}

func (a *AdminModule) me(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := a.store.GetUser(ctx, currentUser(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var profile *models.Profile
	if p, err := a.store.GetProfile(ctx, user.ID); err == nil {
		profile = p
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"profile":    profile,
		"backoffice": a.cfg.IsBackofficeEmail(user.Email),
	})
}

func (a *AdminModule) themes(c *gin.Context) {
	c.JSON(http.StatusOK, theme.All())
}

func (a *AdminModule) pdfThemes(c *gin.Context) {
	c.JSON(http.StatusOK, pdfcard.Layouts())
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
