package main

import (
	"context"
	"flag"
	"os"

	"gitee.com/flycash/case-notification/internal/ioc"
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/server/egovernor"
	"gopkg.in/yaml.v2"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	flag.Parse()

	f, err := os.Open(*configPath)
	if err != nil {
		elog.Panic("打开配置文件失败", elog.FieldErr(err))
	}
	if err := econf.LoadFromReader(f, yaml.Unmarshal); err != nil {
		elog.Panic("加载配置失败", elog.FieldErr(err))
	}
	_ = f.Close()

	app := ioc.InitApp()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.StartTasks(ctx)

	// governor 暴露健康检查和 prometheus 指标
	if err := ego.New().Serve(
		egovernor.Load("server.governor").Build(),
	).Run(); err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
}
