// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/gpihelp/gpihelp/cmd/gpihelp"

func main() {
	cmd.Execute()
}
