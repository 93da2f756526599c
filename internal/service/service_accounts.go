// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aleasistemi/botmanager/internal/config"
	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/internal/store"
	"github.com/aleasistemi/botmanager/internal/utils"
	"github.com/aleasistemi/botmanager/internal/validators"
	"github.com/aleasistemi/botmanager/models"
)

// persistTimeout bounds one background write to the backing store. Background
// persists run detached from the request context on purpose: the optimistic
// response must not wait for, or be cancelled with, the HTTP request.
const persistTimeout = 30 * time.Second

// maxSettledReceipts caps how many confirmed receipts a tenant keeps around.
// Pending and failed receipts are never compacted away; confirmed ones only
// matter as recent history, so older ones are dropped once a write settles.
const maxSettledReceipts = 20

// accountService is the concrete implementation of AccountService.
//
// Per tenant it holds the authoritative in-memory account collection, lazily
// hydrated from the AccountRepository on first touch. Mutations apply to
// memory synchronously and to the store in a background goroutine; the
// outcome of each background write lands in a MutationReceipt. In-memory
// state is never rolled back on a failed write, so reads stay consistent
// with what the caller was already shown.
type accountService struct {
	repository   store.AccountRepository
	validator    validators.Validator
	maxPerTenant int

	mu      sync.Mutex
	tenants map[string]*tenantAccounts

	// wg tracks in-flight background persists so Flush and shutdown can
	// wait them out.
	wg sync.WaitGroup

	idGenerator *utils.UUIDGenerator
	logger      *logger.Logger
}

// tenantAccounts is the controller state of a single tenant. Guarded by the
// owning accountService's mutex.
type tenantAccounts struct {
	loaded     bool
	accounts   []models.BotAccount
	selectedID string

	// receipts holds the tenant's mutation receipts in apply order. Pending
	// and failed entries are always kept; confirmed ones are compacted down
	// to the maxSettledReceipts most recent when a write settles.
	receipts []*models.MutationReceipt
}

// NewAccountService constructs an AccountService backed by the given
// repository. The per-tenant account cap comes from cfg.
func NewAccountService(repository store.AccountRepository, cfg config.Accounts, logger *logger.Logger) AccountService {
	return &accountService{
		repository:   repository,
		validator:    validators.NewBotAccountValidator(),
		maxPerTenant: cfg.MaxPerTenant,
		tenants:      make(map[string]*tenantAccounts),
		idGenerator:  utils.NewUUIDGenerator(),
		logger:       logger,
	}
}

// Accounts returns a snapshot of the tenant's collection in insertion order.
// A first-time tenant or a failed hydration reads as an empty collection.
func (s *accountService) Accounts(ctx context.Context, tenantKey string) []models.BotAccount {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.tenant(ctx, tenantKey)
	snapshot := make([]models.BotAccount, len(state.accounts))
	copy(snapshot, state.accounts)

	return snapshot
}

// CreateAccount adds a new account to the tenant's collection and marks it
// as selected. The account starts disconnected with a zero message count,
// the default bot configuration and a palette colour chosen by the
// collection size at creation time.
//
// Returns ErrAccountLimitReached when the tenant already holds the maximum
// number of accounts; nothing is constructed in that case.
func (s *accountService) CreateAccount(ctx context.Context, tenantKey, name, phoneNumber string) (models.BotAccount, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, models.BotAccount{Name: name}, validators.FieldName); err != nil {
		return models.BotAccount{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	s.mu.Lock()
	state := s.tenant(ctx, tenantKey)

	if len(state.accounts) >= s.maxPerTenant {
		s.mu.Unlock()
		log.Warn().Str("tenant", tenantKey).Int("cap", s.maxPerTenant).Msg("account limit reached")
		return models.BotAccount{}, ErrAccountLimitReached
	}

	account := models.BotAccount{
		ID:           s.idGenerator.Generate(),
		InstanceID:   utils.GenerateInstanceID(),
		UserID:       tenantKey,
		Name:         name,
		PhoneNumber:  phoneNumber,
		IsActive:     false,
		Status:       models.StatusDisconnected,
		ServerStatus: models.ServerOffline,
		AvatarColor:  models.AvatarPalette[len(state.accounts)%len(models.AvatarPalette)],
		Config:       models.DefaultBotConfig(),
	}

	state.accounts = append(state.accounts, account)
	state.selectedID = account.ID
	receipt := s.openReceipt(state, account.ID, models.MutationUpsert)
	s.mu.Unlock()

	s.persistUpsert(tenantKey, account, receipt)

	return account, nil
}

// UpdateAccount replaces the stored account matching the given identifier.
// The identifier itself is immutable; everything else is taken from the
// supplied value. Returns ErrAccountNotFound when no account matches.
func (s *accountService) UpdateAccount(ctx context.Context, tenantKey string, account models.BotAccount) (models.BotAccount, error) {
	if err := s.validator.Validate(ctx, account); err != nil {
		return models.BotAccount{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	s.mu.Lock()
	state := s.tenant(ctx, tenantKey)

	idx := state.indexOf(account.ID)
	if idx < 0 {
		s.mu.Unlock()
		return models.BotAccount{}, ErrAccountNotFound
	}

	account.UserID = tenantKey
	state.accounts[idx] = account
	receipt := s.openReceipt(state, account.ID, models.MutationUpsert)
	s.mu.Unlock()

	s.persistUpsert(tenantKey, account, receipt)

	return account, nil
}

// DeleteAccount removes the account from the tenant's collection and clears
// the selection when the removed account was the selected one. Deleting an
// unknown identifier is a no-op.
func (s *accountService) DeleteAccount(ctx context.Context, tenantKey, accountID string) {
	s.mu.Lock()
	state := s.tenant(ctx, tenantKey)

	idx := state.indexOf(accountID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	state.accounts = append(state.accounts[:idx], state.accounts[idx+1:]...)
	if state.selectedID == accountID {
		state.selectedID = ""
	}
	receipt := s.openReceipt(state, accountID, models.MutationRemove)
	s.mu.Unlock()

	s.persistRemove(tenantKey, accountID, receipt)
}

// Account looks up one account by identifier. Pure read, no side effects.
func (s *accountService) Account(ctx context.Context, tenantKey, accountID string) (models.BotAccount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.tenant(ctx, tenantKey)
	idx := state.indexOf(accountID)
	if idx < 0 {
		return models.BotAccount{}, false
	}

	return state.accounts[idx], true
}

// Selected returns the tenant's currently selected account, if any.
func (s *accountService) Selected(ctx context.Context, tenantKey string) (models.BotAccount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.tenant(ctx, tenantKey)
	if state.selectedID == "" {
		return models.BotAccount{}, false
	}

	idx := state.indexOf(state.selectedID)
	if idx < 0 {
		return models.BotAccount{}, false
	}

	return state.accounts[idx], true
}

// Disconnect drops the account's WhatsApp link: status goes to disconnected,
// the server tag to offline and the active flag to false. The message count
// and configuration are untouched.
func (s *accountService) Disconnect(ctx context.Context, tenantKey, accountID string) (models.BotAccount, error) {
	return s.transition(ctx, tenantKey, accountID, func(account *models.BotAccount) {
		account.Status = models.StatusDisconnected
		account.ServerStatus = models.ServerOffline
		account.IsActive = false
	})
}

// MarkConnected records a successful WhatsApp link: status goes to
// connected, the server tag to online, the active flag to true and
// LastActive to the current time.
func (s *accountService) MarkConnected(ctx context.Context, tenantKey, accountID string) (models.BotAccount, error) {
	return s.transition(ctx, tenantKey, accountID, func(account *models.BotAccount) {
		now := time.Now().Truncate(time.Second)
		account.Status = models.StatusConnected
		account.ServerStatus = models.ServerOnline
		account.IsActive = true
		account.LastActive = &now
	})
}

func (s *accountService) transition(ctx context.Context, tenantKey, accountID string, apply func(*models.BotAccount)) (models.BotAccount, error) {
	s.mu.Lock()
	state := s.tenant(ctx, tenantKey)

	idx := state.indexOf(accountID)
	if idx < 0 {
		s.mu.Unlock()
		return models.BotAccount{}, ErrAccountNotFound
	}

	apply(&state.accounts[idx])
	account := state.accounts[idx]
	receipt := s.openReceipt(state, accountID, models.MutationUpsert)
	s.mu.Unlock()

	s.persistUpsert(tenantKey, account, receipt)

	return account, nil
}

// SyncState returns a snapshot of the tenant's mutation receipts in apply
// order.
func (s *accountService) SyncState(ctx context.Context, tenantKey string) []models.MutationReceipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.tenant(ctx, tenantKey)
	snapshot := make([]models.MutationReceipt, 0, len(state.receipts))
	for _, receipt := range state.receipts {
		snapshot = append(snapshot, *receipt)
	}

	return snapshot
}

// RetryFailed re-drives every failed receipt against the backing store. A
// failed upsert replays the account's current in-memory value; when the
// account has been deleted since, the replay turns into a remove. A failed
// remove replays the remove.
func (s *accountService) RetryFailed(ctx context.Context) {
	log := logger.FromContext(ctx)

	type replay struct {
		tenantKey string
		account   models.BotAccount
		accountID string
		op        string
		receipt   *models.MutationReceipt
	}

	s.mu.Lock()
	var replays []replay
	for tenantKey, state := range s.tenants {
		for _, receipt := range state.receipts {
			if receipt.State != models.MutationFailed {
				continue
			}

			r := replay{tenantKey: tenantKey, accountID: receipt.AccountID, op: receipt.Op, receipt: receipt}
			if receipt.Op == models.MutationUpsert {
				idx := state.indexOf(receipt.AccountID)
				if idx < 0 {
					r.op = models.MutationRemove
				} else {
					r.account = state.accounts[idx]
				}
			}

			receipt.State = models.MutationPending
			replays = append(replays, r)
		}
	}
	s.mu.Unlock()

	if len(replays) > 0 {
		log.Info().Int("count", len(replays)).Msg("retrying failed account persists")
	}

	for _, r := range replays {
		switch r.op {
		case models.MutationUpsert:
			s.persistUpsert(r.tenantKey, r.account, r.receipt)
		case models.MutationRemove:
			s.persistRemove(r.tenantKey, r.accountID, r.receipt)
		}
	}
}

// Flush blocks until every in-flight background persist has settled.
func (s *accountService) Flush() {
	s.wg.Wait()
}

// tenant returns the tenant's controller state, hydrating it from the
// backing store on first touch. A hydration failure degrades to an empty
// collection; the tenant is still marked loaded so one slow store does not
// get hammered on every read.
func (s *accountService) tenant(ctx context.Context, tenantKey string) *tenantAccounts {
	state, ok := s.tenants[tenantKey]
	if !ok {
		state = &tenantAccounts{}
		s.tenants[tenantKey] = state
	}

	if state.loaded {
		return state
	}

	accounts, err := s.repository.LoadAll(ctx, tenantKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("tenant", tenantKey).Msg("account hydration failed, starting empty")
		accounts = nil
	}

	state.accounts = accounts
	state.loaded = true

	return state
}

func (s *accountService) openReceipt(state *tenantAccounts, accountID, op string) *models.MutationReceipt {
	receipt := &models.MutationReceipt{
		ID:        s.idGenerator.Generate(),
		AccountID: accountID,
		Op:        op,
		State:     models.MutationPending,
		AppliedAt: time.Now(),
	}
	state.receipts = append(state.receipts, receipt)

	return receipt
}

func (s *accountService) persistUpsert(tenantKey string, account models.BotAccount, receipt *models.MutationReceipt) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		err := s.repository.Upsert(ctx, tenantKey, account)
		s.settleReceipt(tenantKey, receipt, err)
		if err != nil {
			s.logger.Err(err).Str("tenant", tenantKey).Str("account_id", account.ID).Msg("background upsert failed")
		}
	}()
}

func (s *accountService) persistRemove(tenantKey, accountID string, receipt *models.MutationReceipt) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		err := s.repository.Remove(ctx, tenantKey, accountID)
		s.settleReceipt(tenantKey, receipt, err)
		if err != nil {
			s.logger.Err(err).Str("tenant", tenantKey).Str("account_id", accountID).Msg("background remove failed")
		}
	}()
}

func (s *accountService) settleReceipt(tenantKey string, receipt *models.MutationReceipt, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		receipt.State = models.MutationFailed
		receipt.Error = err.Error()
		return
	}

	receipt.State = models.MutationConfirmed
	receipt.Error = ""

	if state, ok := s.tenants[tenantKey]; ok {
		state.compactReceipts()
	}
}

// compactReceipts drops the oldest confirmed receipts once more than
// maxSettledReceipts of them have accumulated, so the sync history of a busy
// tenant stays bounded over the life of the process.
func (t *tenantAccounts) compactReceipts() {
	confirmed := 0
	for _, receipt := range t.receipts {
		if receipt.State == models.MutationConfirmed {
			confirmed++
		}
	}
	if confirmed <= maxSettledReceipts {
		return
	}

	drop := confirmed - maxSettledReceipts
	kept := make([]*models.MutationReceipt, 0, len(t.receipts)-drop)
	for _, receipt := range t.receipts {
		if receipt.State == models.MutationConfirmed && drop > 0 {
			drop--
			continue
		}
		kept = append(kept, receipt)
	}
	t.receipts = kept
}

func (t *tenantAccounts) indexOf(accountID string) int {
	for i := range t.accounts {
		if t.accounts[i].ID == accountID {
			return i
		}
	}

	return -1
}
