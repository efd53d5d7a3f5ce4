package service

import (
	"FlowVault/model"
	"FlowVault/utils"
	"testing"
	"time"
)

func TestKeyViewRevealsActiveKey(t *testing.T) {
	raw, err := utils.GenerateApiKey()
	if err != nil {
		t.Fatal(err)
	}
	encrypted, err := utils.EncryptApiKey(raw)
	if err != nil {
		t.Fatal(err)
	}

	key := &model.ApiKey{
		ID:           "key-1",
		UserID:       "user-1",
		Name:         "ci",
		HashedKey:    utils.GetPwd(raw),
		EncryptedKey: encrypted,
		Prefix:       utils.KeyDisplayPrefix(raw),
		CreatedAt:    time.Now(),
	}

	view := toKeyView(key)
	if view.Key != raw {
		t.Errorf("active key view Key = %q, want the raw key", view.Key)
	}
	if view.Prefix != key.Prefix {
		t.Errorf("view Prefix = %q, want %q", view.Prefix, key.Prefix)
	}
}

func TestKeyViewHidesRevokedKey(t *testing.T) {
	raw, err := utils.GenerateApiKey()
	if err != nil {
		t.Fatal(err)
	}
	encrypted, err := utils.EncryptApiKey(raw)
	if err != nil {
		t.Fatal(err)
	}

	revokedAt := time.Now()
	view := toKeyView(&model.ApiKey{
		ID:           "key-2",
		EncryptedKey: encrypted,
		RevokedAt:    &revokedAt,
	})
	if view.Key != "" {
		t.Errorf("revoked key view Key = %q, want empty", view.Key)
	}
}
