package main

import (
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/arcspan/rollfile"
	"github.com/arcspan/rollfile/compat"
)

func main() {
	cfg := rollfile.DefaultConfig()
	cfg.Name = "fasthttp"
	cfg.File = "/var/log/fasthttp/server.log"
	cfg.MaxSizeKB = 10 * 1000
	cfg.MaxHistory = 10
	cfg.Compress = true

	adapter, err := compat.NewBuilder().
		WithConfig(cfg).
		BuildFastHTTP(compat.WithDefaultLevel("INFO"))
	if err != nil {
		panic(err)
	}

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  adapter,

		Name:         "ExampleServer",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}
