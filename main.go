package main

import "github.com/piggiedev/miloscrap/cmd"

func main() {
	cmd.Execute()
}
