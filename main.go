// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/cmdkeep/cmdkeep/cmd/cmdkeep"

func main() {
	cmd.Execute()
}
