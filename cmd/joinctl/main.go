package main

import "github.com/Novip1906/join/cmd/joinctl/root"

func main() {
	root.Execute()
}
