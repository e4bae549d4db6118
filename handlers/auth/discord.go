package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"portal/config"
	"portal/database"
	"portal/models"
	"portal/utils"
	"portal/utils/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// oauthConfig builds the Discord OAuth2 configuration from the environment
func oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.DiscordClientID,
		ClientSecret: config.DiscordClientSecret,
		RedirectURL:  config.DiscordRedirectURL,
		Scopes:       []string{"identify"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://discord.com/oauth2/authorize",
			TokenURL: config.DiscordApiUrl + "/oauth2/token",
		},
	}
}

// Login redirects the browser to the Discord consent screen
// @Summary Start Discord login
// @Description Redirect to the Discord OAuth2 consent screen
// @Tags Auth
// @Success 307
// @Router /auth/discord [get]
func Login(c *gin.Context) {
	// Random state guards the callback against CSRF
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}
	state := hex.EncodeToString(b)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("oauth_state", state, int((10 * time.Minute).Seconds()), "/", "", true, true)

	c.Redirect(http.StatusTemporaryRedirect, oauthConfig().AuthCodeURL(state))
}

// Callback finishes the OAuth dance: exchanges the code, fetches the Discord
// profile and upserts the portal account
// @Summary Discord OAuth callback
// @Description Exchange the authorization code, upsert the user and set the session cookie
// @Tags Auth
// @Success 307
// @Failure 400,401,500 {object} map[string]string
// @Router /auth/discord/callback [get]
func Callback(c *gin.Context) {
	state, err := c.Cookie("oauth_state")
	if err != nil || state == "" || c.Query("state") != state {
		response.Error(c, http.StatusBadRequest, ErrStateMismatch)
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", true, true)

	conf := oauthConfig()
	token, err := conf.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, ErrCodeExchangeFailed)
		return
	}

	profile, err := fetchProfile(c, conf, token)
	if err != nil {
		response.Error(c, http.StatusBadGateway, ErrProfileFetchFailed)
		return
	}

	user, err := upsertUser(profile)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrUserUpsertFailed)
		return
	}

	if user.Blocked {
		response.Error(c, http.StatusForbidden, ErrAccountBlocked)
		return
	}

	sessionToken, err := utils.GenerateToken(user.ID, true)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	setCookieToken(c, sessionToken)
	c.Redirect(http.StatusTemporaryRedirect, config.ClientUrl)
}

// fetchProfile calls the Discord /users/@me endpoint with the OAuth token
func fetchProfile(c *gin.Context, conf *oauth2.Config, token *oauth2.Token) (discordProfile, error) {
	var profile discordProfile

	client := conf.Client(c.Request.Context(), token)
	resp, err := client.Get(config.DiscordApiUrl + "/users/@me")
	if err != nil {
		return profile, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return profile, err
	}
	return profile, nil
}

// upsertUser creates the account on first login and refreshes the profile
// fields on every subsequent one. Quiz status is never touched here.
func upsertUser(profile discordProfile) (models.User, error) {
	now := time.Now()

	var user models.User
	err := database.DB.Where("discord_id = ?", profile.ID).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{
			DiscordID:     profile.ID,
			Username:      profile.Username,
			Avatar:        profile.Avatar,
			Status:        models.StatusNew,
			LastConnected: &now,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return models.User{}, err
		}
		return user, nil
	}
	if err != nil {
		return models.User{}, err
	}

	user.Username = profile.Username
	user.Avatar = profile.Avatar
	user.LastConnected = &now
	if err := database.DB.Save(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}
