// Command mdlive is a Markdown editor with a live preview.
package main

import "github.com/diogo/mdlive/internal/commands"

func main() {
	commands.Execute()
}
