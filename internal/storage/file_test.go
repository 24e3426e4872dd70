package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJSONFileReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "cursor.json")

	var got map[string]uint64
	ok, err := ReadJSONFile(path, &got)
	if err != nil || ok {
		t.Fatalf("missing file: ok=%v err=%v", ok, err)
	}

	if err := WriteJSONFile(path, map[string]uint64{"a": 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteJSONFile(path, map[string]uint64{"a": 2}); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	ok, err = ReadJSONFile(path, &got)
	if err != nil || !ok || got["a"] != 2 {
		t.Fatalf("read back: ok=%v err=%v got=%v", ok, err, got)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}

	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadJSONFile(path, &got); err == nil {
		t.Fatal("expected parse error")
	}
}
