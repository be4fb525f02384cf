package main

import (
	"fmt"
	"os"

	"github.com/arcspan/rollfile"
)

func main() {
	sink := &rollfile.WriterSink{W: os.Stderr}
	ctx := rollfile.NewContext("example", sink)

	appender, err := rollfile.NewBuilder().
		Context(ctx).
		Name("app").
		File("./logs/app.log").
		MaxSizeKB(64).
		MaxHistory(5).
		Compress(true).
		Build()
	if err != nil {
		panic(err)
	}

	appender.Start()
	if !appender.IsStarted() {
		fmt.Fprintln(os.Stderr, "appender failed to start; see status reports above")
		os.Exit(1)
	}
	defer appender.Stop()

	for i := 0; i < 10000; i++ {
		appender.Append(fmt.Sprintf("event %d", i))
	}
}
