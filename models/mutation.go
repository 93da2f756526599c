package models

import "time"

// Mutation operations recorded by the account controller.
const (
	MutationUpsert = "upsert"
	MutationRemove = "remove"
)

// Mutation states. A receipt starts pending, then settles to confirmed or
// failed once the backing store answers. Failed receipts stay visible until
// a retry confirms them; the optimistic in-memory state is never rolled
// back.
const (
	MutationPending   = "pending"
	MutationConfirmed = "confirmed"
	MutationFailed    = "failed"
)

// MutationReceipt tracks one in-flight optimistic change to a bot account.
// The UI layer reads receipts to surface a non-blocking "sync failed"
// indicator instead of silently diverging from the backing store.
type MutationReceipt struct {
	// ID is the opaque identifier of the receipt.
	ID string `json:"id"`

	// AccountID is the bot account the mutation applies to.
	AccountID string `json:"account_id"`

	// Op is either MutationUpsert or MutationRemove.
	Op string `json:"op"`

	// State is one of MutationPending, MutationConfirmed, MutationFailed.
	State string `json:"state"`

	// Error holds the persistence failure message when State is failed.
	Error string `json:"error,omitempty"`

	// AppliedAt is when the in-memory change was applied.
	AppliedAt time.Time `json:"applied_at"`
}
