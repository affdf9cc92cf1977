package main

import "github.com/iksnae/chat-transcripts/cmd"

func main() {
	cmd.Execute()
}
