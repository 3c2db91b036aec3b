package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/mfranco1/scrub-in/internal/config"
	"github.com/mfranco1/scrub-in/pkg/utils"
)

// Client wraps the Gmail API client
type Client struct {
	service      *gmail.Service
	ctx          context.Context
	sender       string
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a Gmail client from a token obtained by the Sheets client.
// sender is used as the From header when set.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token, sender string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	service, err := gmail.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{
		service: service,
		ctx:     ctx,
		sender:  sender,
	}, nil
}
