package main

import (
	"github.com/panjf2000/gnet/v2"

	"github.com/arcspan/rollfile"
	"github.com/arcspan/rollfile/compat"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	cfg := rollfile.DefaultConfig()
	cfg.Name = "gnet"
	cfg.File = "/var/log/gnet/server.log"
	cfg.MaxSizeKB = 10 * 1000
	cfg.MaxHistory = 10

	adapter, err := compat.NewBuilder().
		WithConfig(cfg).
		BuildGnet()
	if err != nil {
		panic(err)
	}

	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(adapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
