package discord

import (
	"errors"
	"fmt"

	"vlcpresence/internal/config"
	"vlcpresence/pkg/models"

	"github.com/hugolgst/rich-go/client"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotConnected is returned when a presence is set without a live connection
	ErrNotConnected = errors.New("discord rpc not connected")

	// ErrDelivery is returned when Discord rejects or drops an activity update
	ErrDelivery = errors.New("discord presence delivery failed")
)

// ipc is the subset of the rich-go client used here
type ipc interface {
	Login(applicationID string) error
	Logout()
	SetActivity(activity client.Activity) error
}

type richGo struct{}

func (richGo) Login(applicationID string) error { return client.Login(applicationID) }

func (richGo) Logout() { client.Logout() }

func (richGo) SetActivity(activity client.Activity) error { return client.SetActivity(activity) }

// RPCService handles Discord Rich Presence functionality
type RPCService struct {
	config    *config.DiscordConfig
	ipc       ipc
	logger    *logrus.Logger
	enabled   bool
	connected bool
}

// NewRPCService creates a new Discord RPC service
func NewRPCService(cfg *config.DiscordConfig, logger *logrus.Logger) *RPCService {
	return &RPCService{
		config:  cfg,
		ipc:     richGo{},
		logger:  logger,
		enabled: cfg.Enabled,
	}
}

// Connect initializes the Discord RPC connection
func (d *RPCService) Connect() error {
	if !d.enabled || d.connected {
		return nil
	}

	if err := d.ipc.Login(d.config.ApplicationID); err != nil {
		return fmt.Errorf("failed to connect to Discord: %w", err)
	}

	d.connected = true
	d.logger.WithField("application_id", d.config.ApplicationID).Info("Connected to Discord RPC")
	return nil
}

// Disconnect closes the Discord RPC connection
func (d *RPCService) Disconnect() {
	if !d.enabled || !d.connected {
		return
	}

	d.ipc.Logout()
	d.connected = false
	d.logger.Info("Disconnected from Discord RPC")
}

// SetPresence publishes payload as the current activity. A failed write marks
// the connection as down so the next update reconnects first.
func (d *RPCService) SetPresence(payload *models.PresencePayload) error {
	if !d.enabled {
		return nil
	}
	if !d.connected {
		return ErrNotConnected
	}

	if err := d.ipc.SetActivity(toActivity(payload)); err != nil {
		d.ipc.Logout()
		d.connected = false
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	d.logger.WithFields(logrus.Fields{
		"details": payload.Details,
		"state":   payload.State,
	}).Debug("Updated Discord activity")
	return nil
}

// IsEnabled returns whether Discord RPC is enabled
func (d *RPCService) IsEnabled() bool {
	return d.enabled
}

// IsConnected returns whether Discord RPC is connected. A disabled service
// reports true so callers never try to reconnect it.
func (d *RPCService) IsConnected() bool {
	return !d.enabled || d.connected
}

// toActivity converts a payload to a rich-go activity
func toActivity(payload *models.PresencePayload) client.Activity {
	activity := client.Activity{
		Details:    payload.Details,
		State:      payload.State,
		LargeImage: payload.LargeImage,
		LargeText:  payload.LargeText,
	}

	// An empty small image key stalls the Discord client, leave it unset instead
	if payload.HasSmallImage() {
		activity.SmallImage = payload.SmallImage
		activity.SmallText = payload.SmallText
	}

	if payload.Timestamps != nil {
		start := payload.Timestamps.Start()
		end := payload.Timestamps.End()
		activity.Timestamps = &client.Timestamps{
			Start: &start,
			End:   &end,
		}
	}

	if payload.Button != nil {
		activity.Buttons = []*client.Button{
			{Label: payload.Button.Label, Url: payload.Button.URL},
		}
	}

	return activity
}
