// File: cmd/service/main.go
// @title        Events API
// @version      1.0
// @description  活動、報名與使用者管理的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"os"

	_ "events-api/docs" // 引入 swag 產出的 docs
)

var exitFunc = os.Exit

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(1)
	}
}
