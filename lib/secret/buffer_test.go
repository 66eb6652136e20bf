// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	buffer, err := New(32)
	if err != nil {
		t.Fatalf("New(32) failed: %v", err)
	}
	defer buffer.Close()

	if buffer.Len() != 32 {
		t.Errorf("expected length 32, got %d", buffer.Len())
	}
	for index, value := range buffer.Bytes() {
		if value != 0 {
			t.Fatalf("expected zero at index %d, got %d", index, value)
		}
	}

	if _, err := New(0); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestNewFromBytesZerosSource(t *testing.T) {
	source := []byte("syt_access_token")
	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "syt_access_token" {
		t.Errorf("String() = %q", got)
	}
	for index, value := range source {
		if value != 0 {
			t.Fatalf("source not zeroed at index %d", index)
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	buffer, err := NewFromString("token")
	if err != nil {
		t.Fatalf("NewFromString failed: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic reading closed buffer")
		}
	}()
	_ = buffer.String()
}

func TestReadFromPath(t *testing.T) {
	directory := t.TempDir()

	path := filepath.Join(directory, "password")
	if err := os.WriteFile(path, []byte("  hunter2\n"), 0600); err != nil {
		t.Fatalf("writing password file: %v", err)
	}
	buffer, err := ReadFromPath(path)
	if err != nil {
		t.Fatalf("ReadFromPath failed: %v", err)
	}
	defer buffer.Close()
	if buffer.String() != "hunter2" {
		t.Errorf("expected trimmed secret, got %q", buffer.String())
	}

	emptyPath := filepath.Join(directory, "empty")
	if err := os.WriteFile(emptyPath, []byte("\n\n"), 0600); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}
	if _, err := ReadFromPath(emptyPath); err == nil {
		t.Error("expected error for whitespace-only file")
	}
}

func TestReadLine(t *testing.T) {
	buffer, err := ReadLine(strings.NewReader("token-value\nsecond line\n"))
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	defer buffer.Close()
	if buffer.String() != "token-value" {
		t.Errorf("ReadLine = %q, want first line only", buffer.String())
	}

	if _, err := ReadLine(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := ReadLine(strings.NewReader("   \n")); err == nil {
		t.Error("expected error for blank first line")
	}
}
