package main

import "github.com/chippleh1392/audio-band/cmd"

func main() {
	cmd.Execute()
}
