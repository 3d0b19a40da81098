// Command cartctl inspects and edits storefront carts from the terminal.
// Without --user it works on the anonymous cart kept under LOCAL_SLOT_DIR;
// with --user it talks to the remote cart store.
package main

import "os"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
