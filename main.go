package main

import "github.com/photodrive/photodrive/cmd"

func main() {
	cmd.Execute()
}
