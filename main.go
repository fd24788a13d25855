package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/PolarWolf314/n8nsync/cmd"
	"github.com/PolarWolf314/n8nsync/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("Error:")+" "+err.Error())
		os.Exit(1)
	}
}
