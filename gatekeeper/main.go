// Command gatekeeper runs and inspects vehicle gates.
package main

import "github.com/sarchlab/gatekeeper/gatekeeper/cmd"

func main() {
	cmd.Execute()
}
