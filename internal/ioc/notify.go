package ioc

import (
	"os"
	"time"

	"gitee.com/flycash/case-notification/internal/pkg/hours"
	"gitee.com/flycash/case-notification/internal/pkg/idempotent"
	"gitee.com/flycash/case-notification/internal/pkg/retry"
	"gitee.com/flycash/case-notification/internal/service/casedata"
	"gitee.com/flycash/case-notification/internal/service/dispatch"
	"gitee.com/flycash/case-notification/internal/service/letter"
	"gitee.com/flycash/case-notification/internal/service/provider"
	providermetrics "gitee.com/flycash/case-notification/internal/service/provider/metrics"
	providertracing "gitee.com/flycash/case-notification/internal/service/provider/tracing"
	"gitee.com/flycash/case-notification/internal/service/template"
	"github.com/gotomicro/ego/core/econf"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v2"
)

func InitHoursGate() *hours.Gate {
	type Config struct {
		StartHour int    `yaml:"startHour"`
		EndHour   int    `yaml:"endHour"`
		Timezone  string `yaml:"timezone"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("notify.hours", &cfg); err != nil {
		panic(err)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		panic(err)
	}
	gate, err := hours.NewGate(cfg.StartHour, cfg.EndHour, loc)
	if err != nil {
		panic(err)
	}
	return gate
}

func InitRetryPolicy() *retry.Policy {
	var cfg retry.Config
	if err := econf.UnmarshalKey("notify.retry", &cfg); err != nil {
		panic(err)
	}
	policy, err := retry.NewPolicy(cfg)
	if err != nil {
		panic(err)
	}
	return policy
}

// InitTemplateFactory 模板表单独放一个 yaml 文件，按事件和语言维护
func InitTemplateFactory() template.Factory {
	type Config struct {
		File string `yaml:"file"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("notify.templates", &cfg); err != nil {
		panic(err)
	}
	data, err := os.ReadFile(cfg.File)
	if err != nil {
		panic(err)
	}
	var tplCfg template.Config
	if err := yaml.Unmarshal(data, &tplCfg); err != nil {
		panic(err)
	}
	return template.NewConfigFactory(tplCfg)
}

func InitLetterAssembler() letter.Assembler {
	var cfg letter.Config
	if err := econf.UnmarshalKey("notify.letter", &cfg); err != nil {
		panic(err)
	}
	renderer := letter.NewHTTPRenderer(cfg)
	fetcher := casedata.NewHTTPFetcher(time.Duration(cfg.RenderTimeout) * time.Second)
	return letter.NewAssembler(renderer, fetcher, cfg)
}

func InitCaseStore(rdb redis.Cmdable) casedata.Store {
	type Config struct {
		BaseURL string `yaml:"baseUrl"`
		Timeout int    `yaml:"timeout"`
		// CacheSeconds 快照缓存时长，0 表示不缓存
		CacheSeconds int `yaml:"cacheSeconds"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("casedata", &cfg); err != nil {
		panic(err)
	}
	store := casedata.NewHTTPStore(casedata.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	if cfg.CacheSeconds <= 0 {
		return store
	}
	return casedata.NewCachedStore(store, rdb, time.Duration(cfg.CacheSeconds)*time.Second)
}

func InitProviderClient() provider.Client {
	var cfg provider.Config
	if err := econf.UnmarshalKey("provider", &cfg); err != nil {
		panic(err)
	}
	return providertracing.NewClient(providermetrics.NewClient("gov-notify", provider.NewHTTPClient(cfg)))
}

func InitDispatchConfig() dispatch.Config {
	var cfg dispatch.Config
	if err := econf.UnmarshalKey("notify.dispatch", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

// InitRetryGuard 重试任务去重，SETNX 的过期时间盖过最长的重试间隔即可
func InitRetryGuard(rdb redis.Cmdable) idempotent.Service {
	const expiration = 24 * time.Hour
	return idempotent.NewSetNXService(rdb, "notify:retry", expiration)
}

// InitEventGuard 入站事件去重，量大用布隆过滤器
func InitEventGuard(rdb redis.Cmdable) idempotent.Service {
	return idempotent.NewBloomService(rdb, "notify:events")
}
