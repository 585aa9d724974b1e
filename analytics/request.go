package analytics

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"cardhub/models"
)

// Hit is everything the tracker needs from one visitor interaction.
type Hit struct {
	CardID    string
	Kind      models.EventKind
	UserAgent string
	IP        string
	Query     url.Values
}

// HitFromRequest copies the tracking inputs out of the request so they can
// outlive the handler.
func HitFromRequest(c *gin.Context, cardID string, kind models.EventKind) Hit {
	return Hit{
		CardID:    cardID,
		Kind:      kind,
		UserAgent: c.Request.UserAgent(),
		IP:        ClientIP(c),
		Query:     c.Request.URL.Query(),
	}
}

// ClientIP returns the visitor address, preferring proxy headers. The headers
// are client supplied, so the result is only fit for attribution; rate
// limiting keys on gin's Context.ClientIP.
func ClientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		// first entry is the client
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// UTM holds campaign attribution. Absent parameters are nil.
type UTM struct {
	Source   *string
	Medium   *string
	Campaign *string
	Term     *string
	Content  *string
}

func ExtractUTM(q url.Values) UTM {
	get := func(key string) *string {
		v := strings.TrimSpace(q.Get(key))
		if v == "" {
			return nil
		}
		return &v
	}
	return UTM{
		Source:   get("utm_source"),
		Medium:   get("utm_medium"),
		Campaign: get("utm_campaign"),
		Term:     get("utm_term"),
		Content:  get("utm_content"),
	}
}
