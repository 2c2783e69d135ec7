package rive_test

import (
	"testing"

	"github.com/go-drift/rive/pkg/platform"
	"github.com/go-drift/rive/pkg/rive"
)

func TestCheckRuntimeVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"v9.0.0", true},
		{"9.0.0", true}, // missing v prefix tolerated
		{"v9.1.3", true},
		{"v10.0.0", true},
		{"v8.9.9", false},
		{"3", false},
		{"", false},
		{"not-a-version", false},
	}
	for _, tt := range tests {
		err := rive.CheckRuntimeVersion(tt.version)
		if (err == nil) != tt.ok {
			t.Errorf("CheckRuntimeVersion(%q) = %v, want ok=%v", tt.version, err, tt.ok)
		}
	}
}

func TestRuntimeVersionQueriesChannel(t *testing.T) {
	captureErrors(t)
	setupScriptedBridge(t, func(channel, method string, args map[string]any) (any, error) {
		if channel == "rive/runtime" && method == "getVersion" {
			return "v9.2.0", nil
		}
		return nil, nil
	})

	version, err := rive.RuntimeVersion()
	if err != nil {
		t.Fatalf("RuntimeVersion: %v", err)
	}
	if version != "v9.2.0" {
		t.Fatalf("version = %q", version)
	}
}

func TestRuntimeVersionWithoutBridge(t *testing.T) {
	captureErrors(t)
	t.Cleanup(platform.ResetForTest)

	if _, err := rive.RuntimeVersion(); err == nil {
		t.Fatal("RuntimeVersion succeeded without a bridge")
	}
}
