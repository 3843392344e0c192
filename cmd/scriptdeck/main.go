// Command scriptdeck is a standalone host for the plugin lifecycle core:
// it manages a library of user-authored Lua plugins and runs them against
// a terminal or stdout surface.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
