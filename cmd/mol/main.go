// Package main запускает CLI mol.
package main

import "github.com/magabrotheeeer/mollie-cli/internal/commands"

func main() {
	commands.Execute()
}
