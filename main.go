// SPDX-License-Identifier: MPL-2.0

// wadlump converts Doom WADs between binary containers and exploded
// directories, with a small declarative change language on the way.
package main

import cmd "wadlump-cli/cmd/wadlump"

func main() {
	cmd.Execute()
}
