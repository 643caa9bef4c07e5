package store

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "artifacts.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": s,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get("k", "spirv"); err != nil || ok {
				t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
			}

			if err := s.Put("k", "spirv", []byte{1, 2, 3}); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := s.Put("k", "hlsl", []byte("float4 main()")); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got, ok, err := s.Get("k", "spirv")
			if err != nil || !ok {
				t.Fatalf("Get = ok %v, err %v", ok, err)
			}
			if string(got) != "\x01\x02\x03" {
				t.Errorf("Get = %v, want [1 2 3]", got)
			}
			if n, _ := s.Len(); n != 2 {
				t.Errorf("Len = %d, want 2", n)
			}

			// Overwrite.
			if err := s.Put("k", "spirv", []byte{9}); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, _, _ = s.Get("k", "spirv")
			if len(got) != 1 || got[0] != 9 {
				t.Errorf("after overwrite Get = %v, want [9]", got)
			}
			if n, _ := s.Len(); n != 2 {
				t.Errorf("Len after overwrite = %d, want 2", n)
			}

			if err := s.Delete("k"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if n, _ := s.Len(); n != 0 {
				t.Errorf("Len after Delete = %d, want 0", n)
			}
		})
	}
}

func TestStoreEmptyArtifact(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put("empty", "wgsl", nil); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, ok, err := s.Get("empty", "wgsl")
			if err != nil || !ok {
				t.Fatalf("Get = ok %v, err %v", ok, err)
			}
			if len(got) != 0 {
				t.Errorf("Get = %v, want empty", got)
			}
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	s := NewMemory()
	data := []byte("abc")
	s.Put("k", "t", data)
	data[0] = 'x'

	got, _, _ := s.Get("k", "t")
	if string(got) != "abc" {
		t.Errorf("stored bytes aliased caller slice: %q", got)
	}
	got[1] = 'y'
	again, _, _ := s.Get("k", "t")
	if string(again) != "abc" {
		t.Errorf("returned bytes aliased store: %q", again)
	}
}

func TestSQLitePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	if err := s.Put("fp", "msl", []byte("kernel")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.Close()

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, ok, err := s2.Get("fp", "msl")
	if err != nil || !ok {
		t.Fatalf("Get after reopen = ok %v, err %v", ok, err)
	}
	if string(got) != "kernel" {
		t.Errorf("Get after reopen = %q, want kernel", got)
	}
}

func TestSQLiteRejectsUnknownSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	s.Close()

	db, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE metadata SET value = '99' WHERE key = 'schema_version'"); err != nil {
		t.Fatalf("update: %v", err)
	}
	db.Close()

	_, err = NewSQLite(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported schema version") {
		t.Errorf("NewSQLite on v99 database: err = %v", err)
	}
}

func TestSQLiteInMemory(t *testing.T) {
	s, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer s.Close()

	if err := s.Put("a", "spirv", []byte{7}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, _ := s.Get("a", "spirv"); !ok {
		t.Error("in-memory database lost the artifact")
	}
}
