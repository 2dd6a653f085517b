package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"git.fiblab.net/sim/ecorouting/router"
	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const ENV_PREFIX = "ECOROUTING_"

var (
	// 配置信息
	mongoURI       = flag.String("mongo_uri", "", "mongo db uri")
	networkPathStr = flag.String("network", "", "network file or database and collection [format: {fspath} or {db}.{col}]")
	grpcEndpoint   = flag.String("listen", "localhost:52101", "connect listening address")
	logLevel       = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")
	mode           = flag.String("mode", "serve", "run mode [serve, query, benchmark]")

	// 算法参数
	transferPenalty = flag.Float64("transfer-penalty", 120, "extra seconds of a transfer walk")
	acoSeed         = flag.Int64("aco.seed", -1, "ant colony random seed (negative means time based)")

	// 单次查询
	queryOrigin      = flag.String("query.origin", "USER_START", "origin node id for query mode")
	queryDestination = flag.String("query.destination", "USER_END", "destination node id for query mode")
	queryClock       = flag.String("query.clock", "08:00:00", "departure time for query mode [HH:MM:SS]")

	// 性能测试
	pprofAddr = flag.String("pprof", "", "pprof listening address")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

// 命令行参数的默认值可由环境变量（或.env）覆盖，如 -aco.seed 对应 ECOROUTING_ACO_SEED
func loadEnvDefaults() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("failed to load .env: %v", err)
	}
	replacer := strings.NewReplacer("-", "_", ".", "_")
	flag.VisitAll(func(f *flag.Flag) {
		key := ENV_PREFIX + strings.ToUpper(replacer.Replace(f.Name))
		if v, ok := os.LookupEnv(key); ok {
			if err := f.Value.Set(v); err != nil {
				log.Fatalf("invalid %s=%q: %v", key, v, err)
			}
		}
	})
}

func newConfig() router.Config {
	config := router.DefaultConfig()
	config.TransferPenalty = *transferPenalty
	if *acoSeed >= 0 {
		config.ACO.Seed = acoSeed
	}
	return config
}

func main() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	loadEnvDefaults()
	flag.Parse()
	if level, ok := LOG_LEVELS[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("invalid log level: %s", *logLevel)
	}

	networkPath, err := NewPath(*networkPathStr)
	if err != nil {
		logrus.Fatalf("invalid network path: %s", err)
	}
	net, err := LoadNetwork(context.Background(), *mongoURI, networkPath)
	if err != nil {
		log.Fatal(err)
	}
	r, err := router.New(net, newConfig())
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}
	// 启动导航服务
	server := NewRoutingServer(r)

	if *pprofAddr != "" {
		// 启动pprof
		startHTTPDebugger(*pprofAddr)
	}

	switch *mode {
	case "serve":
	case "query":
		if err := runQuery(r, *queryOrigin, *queryDestination, *queryClock); err != nil {
			log.Fatal(err)
		}
		return
	case "benchmark":
		// 性能测试
		runBenchmark(server, r.NodeIDs())
		return
	default:
		log.Fatalf("invalid mode: %s", *mode)
	}

	// 启动tcp监听和初始化connect服务端
	mux := http.NewServeMux()
	mux.Handle(NewRoutingServiceHandler(server))

	addr := *grpcEndpoint
	// 使用HTTP/2 w.o. TLS
	s := &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(mux, &http2.Server{}),
	}

	// 优雅退出
	// 创建监听退出chan
	signalCh := make(chan os.Signal, 1)
	//监听指定信号 ctrl+c kill
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Info("stopping...")
		go func() {
			<-signalCh
			os.Exit(1) // 强制结束
		}()
		// 暂停接收新的查询
		server.Suspend()
		// 退出connect-go
		s.Close()
		// 退出导航服务
		server.Close()
		os.Exit(0)
	}()

	log.Infof("server listening at %v", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to serve: %v", err)
	}
	time.Sleep(1 * time.Second) // 延迟等待"优雅退出"
	log.Info("routing closes")
}

// runQuery 对一组起终点运行所有引擎并打印每条路线的 分钟 | 排放 | 步行距离
func runQuery(r *router.Router, origin, destination, clock string) error {
	startTime, err := router.ParseClock(clock)
	if err != nil {
		return err
	}
	results, err := r.SearchAll(origin, destination, startTime)
	if err != nil {
		return err
	}
	fmt.Printf("%s -> %s departing %s\n", origin, destination, router.FormatClock(startTime))
	for _, engine := range router.ENGINES {
		fmt.Printf("%s: %d routes\n", engine, len(results[engine]))
		for i, sol := range results[engine] {
			fmt.Printf("  Route %d: %.1f min | %.1f g CO2 | %.2f km walked | arrive %s\n",
				i+1, sol.TotalTime/60, sol.TotalEmissions, sol.TotalWalk, router.FormatClock(sol.ArrivalClock))
		}
	}
	return nil
}
