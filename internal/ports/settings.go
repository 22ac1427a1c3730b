package ports

import (
	"context"

	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// SettingStore persists the key→JSON settings store.
type SettingStore interface {
	Upsert(ctx context.Context, key string, req *model.UpsertSettingRequest) (*model.Setting, error)
	Get(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]*model.Setting, error)
	ListPublic(ctx context.Context) ([]*model.Setting, error)
	Delete(ctx context.Context, key string) (bool, error)
}
