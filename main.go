// SPDX-License-Identifier: MPL-2.0

package main

import cmd "termroute/cmd/termroute"

func main() {
	cmd.Execute()
}
