package discord

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/snektrials/backend/config"
	"github.com/snektrials/backend/pkg/api"
)

const apiURL = "https://discord.com/api"
const userAgent = "DiscordBot (https://snektrials.io, 1.0)"

const sendMessageResource = "send_message"

type IEndpoint interface {
	SendDirectMessage(ctx context.Context, userID, content string) error
}

type Endpoint struct {
	BotToken string
	BotID    string

	apiGenerator      api.Generator
	rateLimitResource *xsync.MapOf[string, time.Time]
}

func New(cfg config.DiscordConfigs) *Endpoint {
	return &Endpoint{
		BotToken:          cfg.BotToken,
		BotID:             cfg.BotID,
		apiGenerator:      api.NewGenerator(),
		rateLimitResource: xsync.NewMapOf[time.Time](),
	}
}

// SendDirectMessage opens (or reuses) the DM channel with the user and
// posts the content there.
func (e *Endpoint) SendDirectMessage(ctx context.Context, userID, content string) error {
	if err := e.checkLimitingResource(sendMessageResource, userID); err != nil {
		return err
	}

	resp, err := e.apiGenerator.New(apiURL, "/users/@me/channels").
		Header("User-Agent", userAgent).
		Body(api.JSON{"recipient_id": userID}).
		POST(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return errors.New("invalid response")
	}

	channelID, err := body.GetString("id")
	if err != nil {
		return err
	}

	resp, err = e.apiGenerator.New(apiURL, "/channels/%s/messages", channelID).
		Header("User-Agent", userAgent).
		Body(api.JSON{"content": content}).
		POST(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	if err := e.checkTooManyRequest(resp, sendMessageResource, userID); err != nil {
		return err
	}

	return nil
}

func (e *Endpoint) checkLimitingResource(resource, id string) error {
	retryAfter, ok := e.rateLimitResource.Load(resource + "/" + id)
	if ok && time.Now().Before(retryAfter) {
		return errors.New("rate limited by discord")
	}

	return nil
}

func (e *Endpoint) checkTooManyRequest(resp *api.Response, resource, id string) error {
	if resp.Code != 429 {
		return nil
	}

	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter != "" {
		seconds, err := strconv.Atoi(retryAfter)
		if err == nil {
			e.rateLimitResource.Store(
				resource+"/"+id, time.Now().Add(time.Duration(seconds)*time.Second))
		}
	}

	return errors.New("too many requests to discord")
}
