// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"

	"gorpl/repl"
)

func main() {
	fmt.Println("gorpl REPL. Type RPL expressions, .clear to reset the stack, .quit to exit.")
	repl.Start()
}
