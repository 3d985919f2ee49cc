package main

import "SongFormat/cmd"

func main() {
	cmd.Execute()
}
