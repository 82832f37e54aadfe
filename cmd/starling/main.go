// Command starling is a small CLI over the library: it builds a client from
// config, constructs the account aggregate, and prints what it finds.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
