package analytics

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardhub/models"
)

const (
	uaIPad          = "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaIPhone        = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaAndroidPhone  = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36"
	uaAndroidTablet = "Mozilla/5.0 (Linux; Android 13; SM-X700) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	uaKindleFire    = "Mozilla/5.0 (Linux; Android 9; KFTRWI) AppleWebKit/537.36 (KHTML, like Gecko) Silk/120.4 like Chrome/120.0 Mobile Safari/537.36"
	uaDesktop       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	uaFirefoxMac    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14.0; rv:121.0) Gecko/20100101 Firefox/121.0"
)

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want models.DeviceType
	}{
		{"empty", "", models.DeviceUnknown},
		{"ipad beats Mobile token", uaIPad, models.DeviceTablet},
		{"iphone", uaIPhone, models.DeviceMobile},
		{"android phone", uaAndroidPhone, models.DeviceMobile},
		{"android tablet", uaAndroidTablet, models.DeviceTablet},
		{"silk", uaKindleFire, models.DeviceTablet},
		{"windows chrome", uaDesktop, models.DeviceDesktop},
		{"mac firefox", uaFirefoxMac, models.DeviceDesktop},
		{"blackberry", "BlackBerry9700/5.0.0.351", models.DeviceMobile},
		{"opera mini", "Opera/9.80 (J2ME/MIDP; Opera Mini/9.80)", models.DeviceMobile},
		{"curl", "curl/8.4.0", models.DeviceDesktop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDevice(tt.ua))
		})
	}
}

func TestBrowser(t *testing.T) {
	assert.Equal(t, "", Browser(""))
	assert.Equal(t, "Chrome", Browser(uaDesktop))
	assert.Equal(t, "Firefox", Browser(uaFirefoxMac))
}

func TestExtractUTM(t *testing.T) {
	q := url.Values{}
	q.Set("utm_source", "linkedin")
	q.Set("utm_campaign", "spring")
	q.Set("utm_medium", "  ")

	utm := ExtractUTM(q)
	require.NotNil(t, utm.Source)
	assert.Equal(t, "linkedin", *utm.Source)
	require.NotNil(t, utm.Campaign)
	assert.Equal(t, "spring", *utm.Campaign)
	assert.Nil(t, utm.Medium)
	assert.Nil(t, utm.Term)
	assert.Nil(t, utm.Content)

	assert.Equal(t, UTM{}, ExtractUTM(nil))
}

func TestClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"cloudflare", map[string]string{"CF-Connecting-IP": "192.0.2.9"}, "192.0.2.9"},
		{"remote addr", nil, "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/c/jane-doe", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(c))
		})
	}
}

func TestHitFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/c/jane-doe?utm_source=qr", nil)
	c.Request.Header.Set("User-Agent", uaIPhone)

	hit := HitFromRequest(c, "card-1", models.EventVisit)
	assert.Equal(t, "card-1", hit.CardID)
	assert.Equal(t, models.EventVisit, hit.Kind)
	assert.Equal(t, uaIPhone, hit.UserAgent)
	assert.Equal(t, "qr", hit.Query.Get("utm_source"))
}
