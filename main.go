package main

import "github/chapool/tron-custody/cmd"

func main() {
	cmd.Execute()
}
