package main

import "github.com/amityadavvoid-ui/Syetem/cmd/solo/root"

func main() {
	root.Execute()
}
