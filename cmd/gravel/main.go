// Command gravel creates tables for and reads and writes the bundled models.
package main

import "github.com/marshallshelly/gravel/cmd/gravel/commands"

func main() {
	commands.Execute()
}
