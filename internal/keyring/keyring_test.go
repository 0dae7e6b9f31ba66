package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetAPIKey(t *testing.T) {
	// Use mock keyring for testing
	gokeyring.MockInit()

	testKey := "AIzaSyTest1234567890"

	if err := SetAPIKey(testKey); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}

	retrieved, err := GetAPIKey()
	if err != nil {
		t.Fatalf("GetAPIKey() failed: %v", err)
	}
	if retrieved != testKey {
		t.Errorf("GetAPIKey() = %q, want %q", retrieved, testKey)
	}
}

func TestSetAPIKeyEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey(""); err == nil {
		t.Error("SetAPIKey(\"\") should return an error")
	}
}

func TestGetAPIKeyNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteAPIKey()

	if _, err := GetAPIKey(); err != ErrNotFound {
		t.Errorf("GetAPIKey() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteAPIKey(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("AIzaSyTest"); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}
	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey() failed: %v", err)
	}
	if _, err := GetAPIKey(); err != ErrNotFound {
		t.Errorf("GetAPIKey() after delete = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteAPIKeyNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteAPIKey()

	if err := DeleteAPIKey(); err != ErrNotFound {
		t.Errorf("DeleteAPIKey() error = %v, want %v", err, ErrNotFound)
	}
}
