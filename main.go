// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"github.com/velodrive/platform-api/cmd"
)

func main() {
	cmd.Execute()
}
