package utils

import (
	"runtime"
)

const (
	PACKAGE_ID      = "advisor_cfg/"
	PACKAGE_VERSION = "0.1.0"
	OS_NAME         = runtime.GOOS
	ARCH            = runtime.GOARCH
)

// BuildApplicationID returns the id azcore prepends to its User-Agent.
// azcore accepts at most 24 characters.
func BuildApplicationID() string {
	return PACKAGE_ID + PACKAGE_VERSION
}

func BuildUserAgent() string {
	userAgent := BuildApplicationID() + ";" + runtime.Version() + ";" + OS_NAME + ";arch " + ARCH
	return userAgent
}
