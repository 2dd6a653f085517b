package main

import (
	"context"
	"flag"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"math/rand"

	"connectrpc.com/connect"
	"git.fiblab.net/sim/ecorouting/router"
	"github.com/sirupsen/logrus"
)

var (
	benchmarkCount = flag.Int("benchmark.count", 100, "the random routing count for benchmark")
	benchmarkSeed  = flag.Int64("benchmark.seed", 0, "the seed for benchmark")
	benchmarkCPU   = flag.Int("benchmark.cpu", 1, "the cpu count for benchmark")
)

func runBenchmark(server *RoutingServer, nodeIDs []string) {
	log.Logger.SetLevel(logrus.WarnLevel)
	// 设置随机种子
	e := rand.New(rand.NewSource(*benchmarkSeed))
	// 随机生成benchmarkCount个请求，起终点与出发时刻都是随机的，每个引擎分别计时
	type request struct {
		engine router.Engine
		req    *connect.Request[GetRoutesRequest]
	}
	reqs := make([]request, 0, *benchmarkCount*len(router.ENGINES))
	for i := 0; i < *benchmarkCount; i++ {
		origin := nodeIDs[e.Intn(len(nodeIDs))]
		destination := nodeIDs[e.Intn(len(nodeIDs))]
		startTime := float64(e.Intn(24 * 3600))
		for _, engine := range router.ENGINES {
			reqs = append(reqs, request{engine, connect.NewRequest(&GetRoutesRequest{
				Origin:      origin,
				Destination: destination,
				StartTime:   startTime,
				Engines:     []string{string(engine)},
			})})
		}
	}

	// 开始benchmark
	costs := make(map[router.Engine]*atomic.Int64, len(router.ENGINES))
	success := make(map[router.Engine]*atomic.Int32, len(router.ENGINES))
	for _, engine := range router.ENGINES {
		costs[engine] = &atomic.Int64{}
		success[engine] = &atomic.Int32{}
	}
	do := func(r request) {
		start := time.Now()
		res, err := server.GetRoutes(context.Background(), r.req)
		costs[r.engine].Add(int64(time.Since(start)))
		if err != nil {
			log.Error("benchmark failed, err:", err)
			return
		}
		if len(res.Msg.Journeys) > 0 {
			success[r.engine].Add(1)
		}
	}
	start := time.Now()
	if *benchmarkCPU == 1 {
		for _, r := range reqs {
			do(r)
		}
	} else {
		// 设置cpu数量
		runtime.GOMAXPROCS(*benchmarkCPU)
		var wg sync.WaitGroup
		wg.Add(len(reqs))
		for _, r := range reqs {
			go func(r request) {
				defer wg.Done()
				do(r)
			}(r)
		}
		wg.Wait()
	}
	total := time.Since(start)
	for _, engine := range router.ENGINES {
		cost := time.Duration(costs[engine].Load())
		log.Warn(
			"benchmark ", engine, "\n",
			"count:", *benchmarkCount, "\n",
			"time:", cost, "\n",
			"avg:", cost/time.Duration(*benchmarkCount), "\n",
			"success:", success[engine].Load(), "\n",
		)
	}
	log.Warn("benchmark finished in ", total)
}
