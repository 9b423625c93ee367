// Package version exposes build information for the confload binary.
//
// Values are injected at link time:
//
//	go build -ldflags "-X github.com/kbukum/confload/version.Version=1.2.0" ./cmd/confload
//
// When they are absent, the VCS stamp recorded by the Go toolchain is used.
package version
