package driver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key, err := TreeDigest(write(t, t.TempDir(), "a.java", "class A {}"), "command:gen")
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	if err := cache.Put(key, &DiskPayload{ImplementationPath: "src", Text: "class A"}); err != nil {
		t.Fatal(err)
	}
	got, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got.Text != "class A" || got.Schema != diskCacheSchemaVersion || got.CreatedUnix == 0 {
		t.Errorf("payload = %+v", got)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Error("entry survived DropAll")
	}
}

func TestDiskCacheCorruptEntryIsMiss(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var key Digest
	key[0] = 0xab
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1, 0xff, 0x00}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
}

func TestTreeDigest(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a/A.java", "class A {}")
	write(t, dir, "B.java", "class B {}")
	write(t, dir, ".git/HEAD", "ref: main")

	base, err := TreeDigest(dir, "gen")
	if err != nil {
		t.Fatal(err)
	}
	if base.IsZero() {
		t.Fatal("zero digest")
	}
	if again, _ := TreeDigest(dir, "gen"); again != base {
		t.Error("digest not stable")
	}
	if other, _ := TreeDigest(dir, "gen2"); other == base {
		t.Error("fingerprint ignored")
	}

	write(t, dir, ".git/HEAD", "ref: dev")
	if hidden, _ := TreeDigest(dir, "gen"); hidden != base {
		t.Error("hidden directory changed the digest")
	}

	write(t, dir, "B.java", "class B { }")
	if changed, _ := TreeDigest(dir, "gen"); changed == base {
		t.Error("content change not detected")
	}

	if _, err := TreeDigest(filepath.Join(dir, "missing"), "gen"); err == nil {
		t.Error("missing root accepted")
	}
}
