package main

import "github.com/user/video-clipper-cli/cmd"

func main() {
	cmd.Execute()
}
