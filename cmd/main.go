/*
 *  main.go
 *  cmd
 *
 *  Created by Haibao Tang on 10/17/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package main

import (
	"os"

	"github.com/op/go-logging"
	"github.com/tanghaibao/unicanon"
)

// main is the entrypoint for the entire program, routes to commands
func main() {
	logging.SetBackend(unicanon.BackendFormatter)
	if err := unicanon.Execute(); err != nil {
		os.Exit(1)
	}
}
