// SPDX-License-Identifier: MPL-2.0

package main

import cmd "stevedore-cli/cmd/stevedore"

func main() {
	cmd.Execute()
}
