// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package golden

import "github.com/gogpu/golden/layout"

// Common devices.
var (
	Phone           = NewDevice("phone", layout.Sz(375, 667), 1)
	IPhone11        = NewDevice("iphone11", layout.Sz(414, 896), 1)
	TabletPortrait  = NewDevice("tablet_portrait", layout.Sz(1024, 1366), 1)
	TabletLandscape = NewDevice("tablet_landscape", layout.Sz(1366, 1024), 1)
)

// DefaultDevices are used by MultiScreen when no configurations are given
// and the Config does not override them.
func DefaultDevices() []Configuration {
	return []Configuration{Phone, IPhone11}
}
