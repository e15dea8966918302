package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/todolist/internal/database"
	"github.com/hitoshi/todolist/internal/model"
)

// SQLIdentityRepo はdatabase/sql経由のIdentityリポジトリ。
type SQLIdentityRepo struct {
	db *database.DB
}

// NewSQLIdentityRepo はSQLIdentityRepoを生成する。
func NewSQLIdentityRepo(db *database.DB) *SQLIdentityRepo {
	return &SQLIdentityRepo{db: db}
}

// FindByProviderAndProviderUserID はproviderとprovider_user_idでidentityを検索する。
// 見つからない場合はnilを返す。
func (r *SQLIdentityRepo) FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error) {
	identity := &model.Identity{}
	var createdAt int64

	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`SELECT id, user_id, provider, provider_user_id, created_at
		 FROM identities WHERE provider = ? AND provider_user_id = ?`),
		provider, providerUserID,
	).Scan(&identity.ID, &identity.UserID, &identity.Provider, &identity.ProviderUserID, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}

	identity.CreatedAt = time.Unix(createdAt, 0)
	return identity, nil
}

// compile-time interface check
var _ IdentityRepository = (*SQLIdentityRepo)(nil)
