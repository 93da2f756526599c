package models

import "time"

// Connection status values for a bot account. The dashboard only ever
// distinguishes "linked to WhatsApp" from "not linked"; there is no
// intermediate state.
const (
	StatusDisconnected = "disconnected"
	StatusConnected    = "connected"
)

// Server status display tags. Tracked separately from the connection status
// because a deployed bot process can be up while the WhatsApp link is down.
const (
	ServerOffline = "offline"
	ServerOnline  = "online"
)

// BotAccount is one managed WhatsApp-bot instance belonging to a user.
//
// The account identifier is immutable after creation. InstanceID is a
// cosmetic 13-character uppercase hex string generated client-side for
// display; it is not a security token.
type BotAccount struct {
	// ID is the opaque, unique identifier of the account (UUID string).
	ID string `json:"id"`

	// InstanceID is the externally-facing display identifier,
	// e.g. "692C275AE02BB".
	InstanceID string `json:"instanceId"`

	// UserID is the identifier of the owning user (foreign key, not
	// containment).
	UserID string `json:"userId"`

	// Name is the human label of the instance.
	Name string `json:"name"`

	// PhoneNumber is unvalidated free text; format checks are a
	// presentation concern.
	PhoneNumber string `json:"phoneNumber"`

	// IsActive signals whether the owner wants this instance running.
	IsActive bool `json:"isActive"`

	// Status is the WhatsApp connection status: StatusDisconnected or
	// StatusConnected.
	Status string `json:"status"`

	// ServerStatus is the deployed-process display tag: ServerOffline or
	// ServerOnline.
	ServerStatus string `json:"serverStatus"`

	// MessagesCount is the number of messages handled by this instance.
	MessagesCount int `json:"messagesCount"`

	// AvatarColor is a display colour tag assigned round-robin at creation.
	AvatarColor string `json:"avatarColor"`

	// LastActive is the last time the instance was seen connected.
	// Optional; survives serialization with second-level precision.
	LastActive *time.Time `json:"lastActive,omitempty"`

	// Config is the embedded AI configuration pushed to the deployed bot.
	Config BotConfig `json:"config"`
}

// TableName returns the name of the database table
// associated with the BotAccount model.
func (a BotAccount) TableName() string {
	return "bot_nodes"
}

// BotConfig is the AI prompt configuration embedded in every account.
// An empty APIKey means "not ready to deploy" at the UI level; the data
// model itself permits it.
type BotConfig struct {
	// SystemInstruction is the free-form prompt handed to the model.
	SystemInstruction string `json:"systemInstruction"`

	// Temperature is the sampling temperature, intended range 0.0–1.0.
	Temperature float64 `json:"temperature"`

	// APIKey is the optional AI provider credential.
	APIKey string `json:"apiKey"`
}

// DefaultSystemInstruction is the prompt a freshly created account starts
// with until the owner edits it.
const DefaultSystemInstruction = "You are a helpful customer support assistant for a small business. " +
	"Answer briefly, politely and in the customer's language. " +
	"If you do not know the answer, say that a human operator will follow up."

// DefaultTemperature is the sampling temperature assigned to new accounts.
const DefaultTemperature = 0.7

// DefaultBotConfig returns the configuration every new account starts with.
func DefaultBotConfig() BotConfig {
	return BotConfig{
		SystemInstruction: DefaultSystemInstruction,
		Temperature:       DefaultTemperature,
		APIKey:            "",
	}
}

// AvatarPalette is the fixed colour palette cycled through when accounts
// are created. Indexed by the tenant's collection size at creation time.
var AvatarPalette = []string{
	"bg-blue-600",
	"bg-purple-600",
	"bg-emerald-600",
	"bg-orange-600",
	"bg-pink-600",
}
