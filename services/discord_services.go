package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"portal/config"
	"portal/database"
	"portal/metrics"
	"portal/models"
)

// DiscordService is the side channel for role grants and notifications. It
// is an optional capability: when the bot credentials are not configured the
// service is disabled and every action reports a failure reason instead of
// erroring. Side-channel outcomes never affect quiz results.
type DiscordService struct {
	baseURL         string
	botToken        string
	guildID         string
	allowlistRoleID string
	webhookURL      string
	client          *http.Client
	enabled         bool
}

// SyncResult summarizes a bulk role re-sync over all passed users
type SyncResult struct {
	Granted     int `json:"granted"`
	AlreadyHad  int `json:"already_had"`
	Failed      int `json:"failed"`
	NotInServer int `json:"not_in_server"`
}

func NewDiscordService() *DiscordService {
	s := &DiscordService{
		baseURL:         config.DiscordApiUrl,
		botToken:        config.DiscordBotToken,
		guildID:         config.DiscordGuildID,
		allowlistRoleID: config.AllowlistRoleID,
		webhookURL:      config.DiscordWebhookURL,
		client:          &http.Client{Timeout: 5 * time.Second},
	}
	s.enabled = s.botToken != "" && s.guildID != "" && s.allowlistRoleID != ""
	if !s.enabled {
		log.Println("Discord side channel disabled: bot token, guild or role not configured")
	}
	return s
}

// Enabled reports whether the side channel is configured
func (s *DiscordService) Enabled() bool {
	return s.enabled
}

func (s *DiscordService) do(method, url string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bot "+s.botToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.client.Do(req)
}

// GrantAllowlistRole assigns the allowlist role to a guild member.
// Returns success and a short reason usable in API responses.
func (s *DiscordService) GrantAllowlistRole(discordID string) (bool, string) {
	if !s.enabled {
		return false, "side channel disabled"
	}

	url := fmt.Sprintf("%s/guilds/%s/members/%s/roles/%s", s.baseURL, s.guildID, discordID, s.allowlistRoleID)
	resp, err := s.do(http.MethodPut, url, nil)
	if err != nil {
		metrics.SideChannelFailures.WithLabelValues("grant_role").Inc()
		log.Printf("Error assigning role to %s: %v", discordID, err)
		return false, err.Error()
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return true, "Role assigned"
	case http.StatusNotFound:
		return false, "User not in server"
	default:
		metrics.SideChannelFailures.WithLabelValues("grant_role").Inc()
		return false, fmt.Sprintf("Discord API returned %s", resp.Status)
	}
}

// RevokeAllowlistRole removes the allowlist role from a guild member
func (s *DiscordService) RevokeAllowlistRole(discordID string) (bool, string) {
	if !s.enabled {
		return false, "side channel disabled"
	}

	url := fmt.Sprintf("%s/guilds/%s/members/%s/roles/%s", s.baseURL, s.guildID, discordID, s.allowlistRoleID)
	resp, err := s.do(http.MethodDelete, url, nil)
	if err != nil {
		metrics.SideChannelFailures.WithLabelValues("revoke_role").Inc()
		log.Printf("Error revoking role from %s: %v", discordID, err)
		return false, err.Error()
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return true, "Role revoked"
	case http.StatusNotFound:
		return false, "User not in server"
	default:
		metrics.SideChannelFailures.WithLabelValues("revoke_role").Inc()
		return false, fmt.Sprintf("Discord API returned %s", resp.Status)
	}
}

// SendPassDM sends a congratulation DM to a user who passed the quiz
func (s *DiscordService) SendPassDM(discordID string) error {
	if !s.enabled {
		return fmt.Errorf("side channel disabled")
	}

	// Open (or reuse) the DM channel
	resp, err := s.do(http.MethodPost, s.baseURL+"/users/@me/channels", map[string]string{
		"recipient_id": discordID,
	})
	if err != nil {
		metrics.SideChannelFailures.WithLabelValues("send_dm").Inc()
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.SideChannelFailures.WithLabelValues("send_dm").Inc()
		return fmt.Errorf("failed to open DM channel: %s", resp.Status)
	}

	var channel struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&channel); err != nil {
		return fmt.Errorf("failed to decode DM channel: %w", err)
	}

	message := map[string]interface{}{
		"embeds": []map[string]interface{}{
			{
				"title":       "Congratulations!",
				"description": "You have passed the allowlist quiz. Welcome aboard!",
				"color":       0x00ff88,
			},
		},
	}
	msgResp, err := s.do(http.MethodPost, fmt.Sprintf("%s/channels/%s/messages", s.baseURL, channel.ID), message)
	if err != nil {
		metrics.SideChannelFailures.WithLabelValues("send_dm").Inc()
		return fmt.Errorf("failed to send DM: %w", err)
	}
	defer msgResp.Body.Close()

	if msgResp.StatusCode != http.StatusOK {
		metrics.SideChannelFailures.WithLabelValues("send_dm").Inc()
		return fmt.Errorf("failed to send DM: %s", msgResp.Status)
	}
	return nil
}

// NotifyPassed grants the role and sends the DM after a passed attempt.
// Best effort: the returned flag and reason feed the API response but a
// failure here never fails the submission itself.
func (s *DiscordService) NotifyPassed(discordID string) (bool, string) {
	granted, reason := s.GrantAllowlistRole(discordID)
	if granted {
		if err := s.SendPassDM(discordID); err != nil {
			log.Printf("Pass DM failed for %s: %v", discordID, err)
		}
	}
	return granted, reason
}

// memberHasRole checks whether a guild member already carries the allowlist
// role. The second return value is false when the member is not in the guild.
func (s *DiscordService) memberHasRole(discordID string) (hasRole bool, inServer bool, err error) {
	url := fmt.Sprintf("%s/guilds/%s/members/%s", s.baseURL, s.guildID, discordID)
	resp, err := s.do(http.MethodGet, url, nil)
	if err != nil {
		return false, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, false, fmt.Errorf("Discord API returned %s", resp.Status)
	}

	var member struct {
		Roles []string `json:"roles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&member); err != nil {
		return false, false, err
	}
	for _, role := range member.Roles {
		if role == s.allowlistRoleID {
			return true, true, nil
		}
	}
	return false, true, nil
}

// SyncPassedUsers re-grants the allowlist role to every passed user. The
// operation is idempotent and covers grants missed when the side channel was
// down at submission time.
func (s *DiscordService) SyncPassedUsers() (SyncResult, error) {
	var result SyncResult
	if !s.enabled {
		return result, fmt.Errorf("side channel disabled")
	}

	var users []models.User
	if err := database.DB.Where("status = ?", models.StatusPassed).Find(&users).Error; err != nil {
		return result, fmt.Errorf("failed to fetch passed users: %w", err)
	}

	for _, user := range users {
		hasRole, inServer, err := s.memberHasRole(user.DiscordID)
		if err != nil {
			result.Failed++
			continue
		}
		if !inServer {
			result.NotInServer++
			continue
		}
		if hasRole {
			result.AlreadyHad++
			continue
		}
		if granted, _ := s.GrantAllowlistRole(user.DiscordID); granted {
			result.Granted++
		} else {
			result.Failed++
		}
	}
	return result, nil
}

// SendSupportMessage forwards a support request to the staff channel webhook
func (s *DiscordService) SendSupportMessage(name, subject, message string) error {
	if s.webhookURL == "" {
		return fmt.Errorf("support webhook not configured")
	}

	payload := map[string]interface{}{
		"embeds": []map[string]interface{}{
			{
				"title":       "Support request: " + subject,
				"description": message,
				"footer":      map[string]string{"text": "From " + name},
			},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to post support message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("support webhook returned %s", resp.Status)
	}
	return nil
}
