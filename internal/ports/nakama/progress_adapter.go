package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"trashpiles/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	progressCollection = "progression"
	progressKey        = "player_record_v1"
)

// NakamaProgressAdapter implements ports.ProgressPort on Nakama storage.
type NakamaProgressAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaProgressAdapter creates a new progression adapter.
func NewNakamaProgressAdapter(nk runtime.NakamaModule) *NakamaProgressAdapter {
	return &NakamaProgressAdapter{nk: nk}
}

// Load reads the user's progression record.
func (a *NakamaProgressAdapter) Load(ctx context.Context, userID string) (ports.PlayerRecord, bool, error) {
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: progressCollection, Key: progressKey, UserID: userID},
	})
	if err != nil {
		return ports.PlayerRecord{}, false, fmt.Errorf("failed to read progression for %s: %w", userID, err)
	}
	if len(objects) == 0 {
		return ports.PlayerRecord{}, false, nil
	}

	var record ports.PlayerRecord
	if err := json.Unmarshal([]byte(objects[0].Value), &record); err != nil {
		return ports.PlayerRecord{}, false, fmt.Errorf("failed to unmarshal progression for %s: %w", userID, err)
	}
	return record, true, nil
}

// Save writes the user's progression record.
func (a *NakamaProgressAdapter) Save(ctx context.Context, userID string, record ports.PlayerRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal progression for %s: %w", userID, err)
	}

	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      progressCollection,
			Key:             progressKey,
			UserID:          userID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write progression for %s: %w", userID, err)
	}
	return nil
}

var _ ports.ProgressPort = (*NakamaProgressAdapter)(nil)
