package main

import "media-tracker/cmd"

func main() {
	cmd.Execute()
}
