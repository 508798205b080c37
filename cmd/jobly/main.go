// Command jobly manages the job board's users and applications from the
// command line.
//
//	jobly migrate
//	jobly users register --username u1 --password ... --email u1@example.com
//	jobly apply u1 42
//	jobly status u1 42 accepted
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the command line and always releases what setup acquired,
// even when the subcommand fails.
func run(ctx context.Context) error {
	a := &app{}
	err := newRootCmdFor(a).ExecuteContext(ctx)

	if tdErr := a.teardown(context.Background()); err == nil {
		err = tdErr
	}
	return err
}
