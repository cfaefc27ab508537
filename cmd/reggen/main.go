// reggen generates SystemVerilog register packages and register-access
// modules from IP block descriptions.
package main

import "github.com/robert-at-pretension-io/reggen/cmd/reggen/cmd"

func main() {
	cmd.Execute()
}
