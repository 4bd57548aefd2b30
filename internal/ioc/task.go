package ioc

import (
	"context"

	"gitee.com/flycash/case-notification/internal/event/caseevent"
	"gitee.com/flycash/case-notification/internal/pkg/loopjob"
	"gitee.com/flycash/case-notification/internal/service/scheduler"
	"github.com/meoying/dlock-go"
)

// Task 后台任务，Start 不阻塞
type Task interface {
	Start(ctx context.Context)
}

// runnerTask 重试轮询跑在分布式锁里，多实例部署时只有一个在跑
type runnerTask struct {
	loop *loopjob.InfiniteLoop
}

func (t *runnerTask) Start(ctx context.Context) {
	go t.loop.Run(ctx)
}

func InitRunnerTask(runner *scheduler.Runner, dclient dlock.Client) Task {
	return &runnerTask{
		loop: loopjob.NewInfiniteLoop(dclient, runner.Poll, "case-notify:dispatch-retry-runner"),
	}
}

func InitTasks(consumer *caseevent.EventConsumer, runnerTask Task) []Task {
	return []Task{consumer, runnerTask}
}
