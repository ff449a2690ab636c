package main

import "source.quilibrium.com/quilibrium/monorepo/vdfgate/client/cmd"

func main() {
	cmd.Execute()
}
