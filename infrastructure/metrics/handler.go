package metrics

import (
	"net/http/pprof"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	GoRoutines     = "app_go_routines"
	SysMemoryAlloc = "app_sys_memory_alloc"
	SysTotalAlloc  = "app_sys_total_alloc"
	GoNumGC        = "app_go_numGC"
	GoSys          = "app_go_sys"
)

// RegisterSystemGauges creates the runtime gauges refreshed on every scrape.
func RegisterSystemGauges(m Manager) {
	m.NewGauge(GoRoutines, "Number of goroutines")
	m.NewGauge(SysMemoryAlloc, "Bytes allocated and in use")
	m.NewGauge(SysTotalAlloc, "Total bytes allocated")
	m.NewGauge(GoNumGC, "Number of completed GC cycles")
	m.NewGauge(GoSys, "Total bytes of memory obtained from OS")
}

func GetHandler(router *gin.RouterGroup, m Manager) {
	router.GET("/metrics", systemMetricsMiddleware(m), gin.WrapH(promhttp.Handler()))

	pprofGroup := router.Group("/debug/pprof")
	{
		pprofGroup.GET("/", gin.WrapF(pprof.Index))
		pprofGroup.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofGroup.GET("/profile", gin.WrapF(pprof.Profile))
		pprofGroup.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofGroup.GET("/trace", gin.WrapF(pprof.Trace))
		for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
			pprofGroup.GET("/"+name, gin.WrapH(pprof.Handler(name)))
		}
	}
}

func systemMetricsMiddleware(m Manager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)

		m.SetGauge(GoRoutines, float64(runtime.NumGoroutine()))
		m.SetGauge(SysMemoryAlloc, float64(stats.Alloc))
		m.SetGauge(SysTotalAlloc, float64(stats.TotalAlloc))
		m.SetGauge(GoNumGC, float64(stats.NumGC))
		m.SetGauge(GoSys, float64(stats.Sys))

		ctx.Next()
	}
}
