// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other awssso packages to avoid import cycles.

package version

import (
	"runtime"
	"runtime/debug"
)

// Version is the module version stamped by the Go toolchain, or "dev".
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// AppID is sent as the AWS SDK application id so calls made by awssso can be
// told apart in CloudTrail.
func AppID() string {
	return "awssso/" + Version
}

// String returns the version line printed by --version.
func String() string {
	return "awssso " + Version + " (" + runtime.Version() + ")"
}
