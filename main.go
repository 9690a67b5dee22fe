// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/modrename/cmd/modrename"

func main() {
	cmd.Execute()
}
