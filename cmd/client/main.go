package main

import "beerbasement/cmd/client/cmd"

func main() {
	cmd.Execute()
}
