package redis_test

import (
	"testing"

	"github.com/0xsj/overwatch-pkg/types"

	redisadapter "github.com/0xsj/overwatch-sso-instagram/internal/adapter/outbound/redis"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

func TestObjectStore(t *testing.T) {
	flushRedis(t)
	ctx := testCtx
	objects := redisadapter.NewObjectStore(testRedisClient)

	_, err := objects.GetObjectField(ctx, "instagramId:uid", "42")
	if err != store.ErrNotFound {
		t.Fatalf("missing field error = %v, want %v", err, store.ErrNotFound)
	}

	if err := objects.SetObjectField(ctx, "instagramId:uid", "42", "7"); err != nil {
		t.Fatalf("SetObjectField() error = %v", err)
	}
	value, err := objects.GetObjectField(ctx, "instagramId:uid", "42")
	if err != nil {
		t.Fatalf("GetObjectField() error = %v", err)
	}
	if value != "7" {
		t.Errorf("value = %q, want 7", value)
	}

	if err := objects.DeleteObjectField(ctx, "instagramId:uid", "42"); err != nil {
		t.Fatalf("DeleteObjectField() error = %v", err)
	}
	if _, err := objects.GetObjectField(ctx, "instagramId:uid", "42"); err != store.ErrNotFound {
		t.Errorf("after delete error = %v, want %v", err, store.ErrNotFound)
	}
}

func TestObjectStore_SortedSetRemove(t *testing.T) {
	flushRedis(t)
	ctx := testCtx
	objects := redisadapter.NewObjectStore(testRedisClient)

	if err := objects.SortedSetRemove(ctx, model.NotValidatedSet); err != nil {
		t.Fatalf("empty remove error = %v", err)
	}
	if err := objects.SortedSetRemove(ctx, model.NotValidatedSet, "unknown"); err != nil {
		t.Fatalf("remove of absent member error = %v", err)
	}
}

func TestSettingsStore(t *testing.T) {
	flushRedis(t)
	ctx := testCtx
	settings := redisadapter.NewSettingsStore(testRedisClient)

	empty, err := settings.Get(ctx, "sso-instagram")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("settings = %v, want empty", empty)
	}

	if err := settings.Set(ctx, "sso-instagram", map[string]string{"id": "abc", "secret": "xyz"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := settings.Set(ctx, "sso-instagram", map[string]string{"id": "def"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	values, err := settings.Get(ctx, "sso-instagram")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if values["id"] != "def" || values["secret"] != "xyz" {
		t.Errorf("settings = %v, want merged values", values)
	}
}

func TestAccountStore_Create(t *testing.T) {
	flushRedis(t)
	ctx := testCtx
	accounts := redisadapter.NewAccountStore(testRedisClient)

	first, err := accounts.Create(ctx, model.NewAccount{Username: "alice", Email: "alice@instagram.com"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := accounts.Create(ctx, model.NewAccount{Username: "alice", Email: "alice@instagram.com"})
	if err != nil {
		t.Fatalf("second Create() error = %v", err)
	}
	if first == second {
		t.Fatal("ids should differ")
	}

	fields, err := accounts.GetFields(ctx, first, model.FieldUsername, model.FieldEmail)
	if err != nil {
		t.Fatalf("GetFields() error = %v", err)
	}
	if fields[model.FieldUsername] != "alice" || fields[model.FieldEmail] != "alice@instagram.com" {
		t.Errorf("fields = %v", fields)
	}

	fields, err = accounts.GetFields(ctx, second, model.FieldUsername)
	if err != nil {
		t.Fatalf("GetFields() error = %v", err)
	}
	if fields[model.FieldUsername] != "alice1" {
		t.Errorf("second username = %q, want alice1", fields[model.FieldUsername])
	}

	indexed, err := testRedisClient.HGet(ctx, "email:uid", "alice@instagram.com").Result()
	if err != nil || indexed != first.String() {
		t.Errorf("email index = %q (err %v), want first account %s", indexed, err, first)
	}

	score, err := testRedisClient.ZScore(ctx, model.NotValidatedSet, first.String()).Result()
	if err != nil || score <= 0 {
		t.Errorf("account should be in %s: score=%v err=%v", model.NotValidatedSet, score, err)
	}
}

func TestAccountStore_Fields(t *testing.T) {
	flushRedis(t)
	ctx := testCtx
	accounts := redisadapter.NewAccountStore(testRedisClient)
	id := types.ID("acct-1")

	if err := accounts.SetField(ctx, id, "instagramId", "42"); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}
	if err := accounts.SetFields(ctx, id, map[string]string{
		"instagramUsername":    "alice",
		"instagramAccessToken": "tok",
	}); err != nil {
		t.Fatalf("SetFields() error = %v", err)
	}

	fields, err := accounts.GetFields(ctx, id, "instagramId", "instagramUsername", "instagramAccessToken", "missing")
	if err != nil {
		t.Fatalf("GetFields() error = %v", err)
	}
	if fields["instagramId"] != "42" || fields["instagramUsername"] != "alice" || fields["instagramAccessToken"] != "tok" {
		t.Errorf("fields = %v", fields)
	}
	if _, ok := fields["missing"]; ok {
		t.Error("missing field should be absent")
	}

	if err := accounts.DeleteField(ctx, id, "instagramId"); err != nil {
		t.Fatalf("DeleteField() error = %v", err)
	}
	fields, _ = accounts.GetFields(ctx, id, "instagramId")
	if _, ok := fields["instagramId"]; ok {
		t.Error("instagramId should be deleted")
	}
}
