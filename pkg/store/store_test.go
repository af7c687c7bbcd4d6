package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/opsboard/pkg/observability"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.DebugLevel})
}

func TestOrderStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewOrderStore(NewMemoryKV(), WithLogger(quietLogger()))

	orders := [][]string{
		{"a"},
		{"c", "a", "b"},
		{"tasks", "funnel", "lead-sources", "q4_goals"},
		{" a", "b "},
	}
	for _, order := range orders {
		s.Save(ctx, "dashboard", order)
		if got := s.Load(ctx, "dashboard"); !reflect.DeepEqual(got, order) {
			t.Errorf("Load() after Save(%v) = %v", order, got)
		}
	}
}

func TestOrderStoreMissingIsEmpty(t *testing.T) {
	s := NewOrderStore(NewMemoryKV(), WithLogger(quietLogger()))
	if got := s.Load(context.Background(), "nothing"); got != nil {
		t.Errorf("Load() of missing scope = %v, want nil", got)
	}
}

func TestOrderStoreScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewOrderStore(NewMemoryKV(), WithLogger(quietLogger()))

	s.Save(ctx, "dashboard", []string{"a", "b"})
	s.Save(ctx, "funnel:1", []string{"x"})

	if got := s.Load(ctx, "dashboard"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("dashboard = %v", got)
	}
	if got := s.Load(ctx, "funnel:1"); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("funnel:1 = %v", got)
	}
}

func TestOrderStoreOverwrites(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := NewOrderStore(kv, WithLogger(quietLogger()))

	s.Save(ctx, "dashboard", []string{"a", "b", "c"})
	s.Save(ctx, "dashboard", []string{"b"})

	if got := s.Load(ctx, "dashboard"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Load() = %v, want [b]", got)
	}
	if kv.Len() != 1 {
		t.Errorf("kv has %d keys, want 1", kv.Len())
	}
}

func TestOrderStoreReadFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(kv *MemoryKV, key string)
	}{
		{"backend error", func(kv *MemoryKV, _ string) { kv.FailGet = errors.New("quota exceeded") }},
		{"backend panic", func(kv *MemoryKV, _ string) { kv.PanicGet = true }},
		{"corrupted json", func(kv *MemoryKV, key string) { kv.Raw(key, `["a", "b"`) }},
		{"json object", func(kv *MemoryKV, key string) { kv.Raw(key, `{"a":1}`) }},
		{"json numbers", func(kv *MemoryKV, key string) { kv.Raw(key, `[1,2]`) }},
		{"closed", func(kv *MemoryKV, _ string) { _ = kv.Close() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			s := NewOrderStore(kv, WithLogger(quietLogger()))
			tt.setup(kv, s.Key("dashboard"))

			if got := s.Load(context.Background(), "dashboard"); got != nil {
				t.Errorf("Load() = %v, want nil", got)
			}
		})
	}
}

func TestOrderStoreWriteFailureIsSwallowed(t *testing.T) {
	kv := NewMemoryKV()
	kv.FailSet = errors.New("disk full")
	s := NewOrderStore(kv, WithLogger(quietLogger()))

	// Must not panic or report anything to the caller.
	s.Save(context.Background(), "dashboard", []string{"a"})

	kv.FailSet = nil
	if got := s.Load(context.Background(), "dashboard"); got != nil {
		t.Errorf("failed write should persist nothing, got %v", got)
	}
}

func TestOrderStoreLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	kv := NewMemoryKV()
	kv.FailGet = errors.New("storage unavailable")
	s := NewOrderStore(kv, WithLogger(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})))

	s.Load(context.Background(), "dashboard")

	if !strings.Contains(buf.String(), "storage unavailable") {
		t.Errorf("expected warning in log, got %q", buf.String())
	}
}

func TestOrderStoreNilKV(t *testing.T) {
	s := NewOrderStore(nil, WithLogger(quietLogger()))
	s.Save(context.Background(), "dashboard", []string{"a"})
	if got := s.Load(context.Background(), "dashboard"); got != nil {
		t.Errorf("nil kv should behave like NullKV, got %v", got)
	}
}

type recordingHooks struct {
	observability.NoopStoreHooks
	loads, saves int
	lastErr      error
}

func (h *recordingHooks) OnLoad(_ context.Context, _ string, _ int, err error) {
	h.loads++
	h.lastErr = err
}

func (h *recordingHooks) OnSave(_ context.Context, _ string, _ int, err error) {
	h.saves++
	h.lastErr = err
}

func TestOrderStoreHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	kv := NewMemoryKV()
	s := NewOrderStore(kv, WithLogger(quietLogger()))
	s.Save(context.Background(), "dashboard", []string{"a"})
	s.Load(context.Background(), "dashboard")

	kv.FailGet = errors.New("boom")
	s.Load(context.Background(), "dashboard")

	if hooks.saves != 1 || hooks.loads != 2 {
		t.Errorf("hooks saw %d saves, %d loads; want 1, 2", hooks.saves, hooks.loads)
	}
	if hooks.lastErr == nil {
		t.Error("OnLoad should receive the swallowed error")
	}
}

func TestDecodeOrder(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"json", `["a","b"]`, []string{"a", "b"}, false},
		{"json with empty ids", `["a","","b"]`, []string{"a", "b"}, false},
		{"json ids verbatim", `[" a","b "]`, []string{" a", "b "}, false},
		{"comma list", "a, b,c", []string{"a", "b", "c"}, false},
		{"single", "tasks", []string{"tasks"}, false},
		{"empty", "", nil, false},
		{"empty array", "[]", nil, false},
		{"only commas", ",,", nil, false},
		{"broken json", `["a"`, nil, true},
		{"object", `{"a":1}`, nil, true},
		{"quoted", `"a"`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeOrder(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeOrder(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeOrder(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestEncodeOrder(t *testing.T) {
	got, err := encodeOrder(nil)
	if err != nil || got != "[]" {
		t.Errorf("encodeOrder(nil) = %q, %v", got, err)
	}
	got, _ = encodeOrder([]string{"a", "b"})
	if got != `["a","b"]` {
		t.Errorf("encodeOrder() = %q", got)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer("")
	if got := k.OrderKey("dashboard"); got != "opsboard:order:dashboard" {
		t.Errorf("OrderKey() = %q", got)
	}
	if NewDefaultKeyer("x:").OrderKey("a") == k.OrderKey("a") {
		t.Error("different prefixes should produce different keys")
	}
	if k.OrderKey("funnel:1") == k.OrderKey("funnel:2") {
		t.Error("different scopes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(""), "user:123:")
	if got := scoped.OrderKey("dashboard"); got != "user:123:opsboard:order:dashboard" {
		t.Errorf("ScopedKeyer OrderKey = %q", got)
	}

	// Should use DefaultKeyer when inner is nil
	if got := NewScopedKeyer(nil, "p:").OrderKey("d"); got != "p:opsboard:order:d" {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestNullKV(t *testing.T) {
	ctx := context.Background()
	kv := NewNullKV()
	defer kv.Close()

	if err := kv.Set(ctx, "key", "value"); err != nil {
		t.Errorf("Set error: %v", err)
	}
	v, ok, err := kv.Get(ctx, "key")
	if err != nil || ok || v != "" {
		t.Errorf("NullKV.Get = %q, %v, %v; want miss", v, ok, err)
	}
}

func TestFileKV(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}

	if _, ok, err := kv.Get(ctx, "missing"); ok || err != nil {
		t.Errorf("Get(missing) = %v, %v; want miss", ok, err)
	}

	if err := kv.Set(ctx, "opsboard:order:dashboard", `["a"]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "opsboard:order:dashboard")
	if err != nil || !ok || v != `["a"]` {
		t.Errorf("Get = %q, %v, %v", v, ok, err)
	}

	// Value survives a new instance over the same directory.
	again, _ := NewFileKV(dir)
	if v, ok, _ := again.Get(ctx, "opsboard:order:dashboard"); !ok || v != `["a"]` {
		t.Errorf("reopened Get = %q, %v", v, ok)
	}

	// No temp files left behind.
	matches, _ := filepath.Glob(filepath.Join(dir, "*", "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("temp files left: %v", matches)
	}
}

func TestFileKVCorruptedEntry(t *testing.T) {
	ctx := context.Background()
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	if err := kv.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := os.WriteFile(kv.path("k"), []byte("not json"), 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	if _, _, err := kv.Get(ctx, "k"); err == nil {
		t.Error("Get on corrupted file should report an error")
	}

	s := NewOrderStore(kv, WithLogger(quietLogger()))
	if got := s.Load(ctx, "k"); got != nil {
		t.Errorf("OrderStore.Load over corrupted file = %v, want nil", got)
	}
}

func TestNewFileKVEmptyDir(t *testing.T) {
	if _, err := NewFileKV(""); err == nil {
		t.Error("NewFileKV(\"\") should fail")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	kv, err := Open(ctx, Config{Backend: "memory"})
	if err != nil {
		t.Fatalf("Open(memory): %v", err)
	}
	if _, ok := kv.(*MemoryKV); !ok {
		t.Errorf("Open(memory) = %T", kv)
	}

	kv, err = Open(ctx, Config{Backend: "null"})
	if err != nil {
		t.Fatalf("Open(null): %v", err)
	}
	if _, ok := kv.(*NullKV); !ok {
		t.Errorf("Open(null) = %T", kv)
	}

	kv, err = Open(ctx, Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(default): %v", err)
	}
	if _, ok := kv.(*FileKV); !ok {
		t.Errorf("Open(default) = %T, want *FileKV", kv)
	}

	if _, err := Open(ctx, Config{Backend: "etcd"}); err == nil {
		t.Error("Open(etcd) should fail")
	}
}

func TestRedisUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisKV(ctx, RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewRedisKV on closed port error = %v, want ErrUnavailable", err)
	}
}

func TestMongoInvalidURI(t *testing.T) {
	_, err := NewMongoKV(context.Background(), MongoConfig{URI: "not-a-mongo-uri"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewMongoKV with bad uri error = %v, want ErrUnavailable", err)
	}
}

func TestMongoConfigDefaults(t *testing.T) {
	cfg := MongoConfig{}.withDefaults()
	if cfg.Database != "opsboard" || cfg.Collection != "card_orders" || cfg.Timeout <= 0 {
		t.Errorf("withDefaults() = %+v", cfg)
	}
}
