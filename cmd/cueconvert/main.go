package main

import "github.com/anselrognlie/cue-convert/cmd/cueconvert/cmd"

func main() {
	cmd.Execute()
}
