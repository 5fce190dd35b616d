package main

import "inventory-service/cmd/catalogctl/commands"

func main() {
	commands.Execute()
}
