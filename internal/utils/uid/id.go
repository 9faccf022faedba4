// Package uid hands out snowflake identifiers for the vote ledger.
// Ledger rows need a time-sortable numeric key that is cheap to mint
// inside the toggle transaction; suggestions and comments use UUIDs
// instead, minted at the service layer.
package uid

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/labstack/gommon/log"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init must run once at startup, before any ledger write. Subsequent
// calls are no-ops.
func Init(machineID int64) {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			log.Fatalf("failed to initialize snowflake node: %v", err)
		}
	})
}

// Generate mints the next ledger row id.
func Generate() int64 {
	if node == nil {
		log.Fatalf("uid package not initialized")
	}
	return node.Generate().Int64()
}
