package main

import (
	"autorecruiter/cmd/jobreport/commands"
	"autorecruiter/pkg/serviceutil"
	"context"
)

func main() {
	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()
	commands.ExecuteContext(ctx)
}
