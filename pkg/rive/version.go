package rive

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/go-drift/rive/pkg/platform"
)

// MinRuntimeVersion is the oldest native Rive runtime this adapter supports.
// Older runtimes predate the viewEvent channel protocol.
const MinRuntimeVersion = "v9.0.0"

var runtimeChannel = platform.NewMethodChannel("rive/runtime")

// RuntimeVersion queries the native Rive runtime's version string.
func RuntimeVersion() (string, error) {
	res, err := runtimeChannel.Invoke("getVersion", nil)
	if err != nil {
		return "", err
	}
	version, ok := res.(string)
	if !ok {
		return "", fmt.Errorf("unexpected runtime version payload: %T", res)
	}
	return version, nil
}

// CheckRuntimeVersion verifies that the given runtime version is supported.
// A missing "v" prefix is tolerated ("9.1.0" and "v9.1.0" are equivalent).
func CheckRuntimeVersion(version string) error {
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid runtime version %q", version)
	}
	if semver.Compare(v, MinRuntimeVersion) < 0 {
		return fmt.Errorf("runtime version %s is older than minimum supported %s", version, MinRuntimeVersion)
	}
	return nil
}
