// SPDX-License-Identifier: Apache-2.0

// Package adapter provides the transport layer for the remote budgeting
// service.
//
// The primary abstraction is [BudgetAPI], which decouples the service
// layer from the HTTP protocol. Error values defined in errors.go are
// mapped from HTTP status codes by mapHTTPError so that callers can use
// [errors.Is] for transport-agnostic error handling ([ErrUnauthorized]
// for 401, [ErrCursorInvalid] for 409).
package adapter

import (
	"context"
	"time"

	"github.com/averin/budgetwatch/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/budget_api_mock.go -package=mock

// BudgetAPI defines transport-agnostic communication with the remote
// budgeting service. A nil cursor argument requests a full fetch; a
// non-nil cursor requests only the records changed since that point.
// Every returned cursor is guaranteed by the service to be at least as
// recent as the one sent.
type BudgetAPI interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Called by the token coordinator after every
	// successful load or refresh of the credential.
	SetToken(token string)

	// Budgets fetches the list of budgets visible to the user. The
	// endpoint has no delta support; the response is always the full list.
	Budgets(ctx context.Context) ([]models.Budget, error)

	// Accounts fetches the accounts of a budget, either in full (nil
	// cursor) or as a delta batch, together with the new cursor.
	Accounts(ctx context.Context, budgetID string, cursor *models.Cursor) ([]models.Account, models.Cursor, error)

	// Categories fetches the categories of a budget, flattened from the
	// service's group hierarchy, together with the ids of groups the
	// service reported deleted and the new cursor.
	Categories(ctx context.Context, budgetID string, cursor *models.Cursor) (models.CategoryChanges, models.Cursor, error)

	// Payees fetches the payees of a budget, either in full or as a delta
	// batch, together with the new cursor.
	Payees(ctx context.Context, budgetID string, cursor *models.Cursor) ([]models.Payee, models.Cursor, error)

	// UnapprovedTransactions fetches the unapproved transactions of a
	// budget dated on or after since. No delta support.
	UnapprovedTransactions(ctx context.Context, budgetID string, since time.Time) ([]models.Transaction, error)

	// RefreshCredential exchanges a refresh token for a new credential
	// pair. Returns [ErrUnauthorized] (wrapped) when the refresh token is
	// no longer accepted.
	RefreshCredential(ctx context.Context, refreshToken string) (models.TokenData, error)
}
