package main

import (
	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server"
	"github.com/zakhoudache/pastlink-nodes-sub000/internal/util"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	logger.Init(console.New(console.Params{
		Debug: debug,
	}))

	server.Init()
}
