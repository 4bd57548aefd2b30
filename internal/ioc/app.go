package ioc

import (
	"context"

	"gitee.com/flycash/case-notification/internal/event/caseevent"
	"gitee.com/flycash/case-notification/internal/repository"
	"gitee.com/flycash/case-notification/internal/repository/dao"
	"gitee.com/flycash/case-notification/internal/service/dispatch"
	"gitee.com/flycash/case-notification/internal/service/eligibility"
	"gitee.com/flycash/case-notification/internal/service/resolver"
	"gitee.com/flycash/case-notification/internal/service/scheduler"
)

// App 组装好的应用：后台任务 + 对外暴露的服务
type App struct {
	Tasks []Task

	DispatchSvc        dispatch.Service
	CorrespondenceRepo repository.CorrespondenceRepository
}

func (a *App) StartTasks(ctx context.Context) {
	for _, t := range a.Tasks {
		t.Start(ctx)
	}
}

// InitApp 按依赖顺序手工装配，启动失败直接 panic
func InitApp() *App {
	db := InitDB()
	rdb := InitRedisClient()
	idGen := InitIDGenerator()
	dclient := InitDistributedLock(rdb)

	correspondenceRepo := repository.NewCorrespondenceRepository(dao.NewCorrespondenceDAO(db), idGen)
	jobRepo := repository.NewScheduledJobRepository(dao.NewScheduledJobDAO(db), idGen)

	gate := InitHoursGate()
	sched := scheduler.NewScheduler(InitRetryPolicy(), gate, jobRepo, InitRetryGuard(rdb))

	dispatchSvc := dispatch.NewService(
		InitCaseStore(rdb),
		resolver.NewService(),
		eligibility.NewService(),
		InitTemplateFactory(),
		InitProviderClient(),
		InitLetterAssembler(),
		correspondenceRepo,
		sched,
		gate,
		InitDispatchConfig(),
	)

	runner := scheduler.NewRunner(jobRepo, gate, dispatchSvc)
	consumer, err := caseevent.NewEventConsumer(dispatchSvc, InitKafkaConsumer(), InitEventGuard(rdb))
	if err != nil {
		panic(err)
	}

	return &App{
		Tasks:              InitTasks(consumer, InitRunnerTask(runner, dclient)),
		DispatchSvc:        dispatchSvc,
		CorrespondenceRepo: correspondenceRepo,
	}
}
