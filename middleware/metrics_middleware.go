package middleware

import (
	"runtime"
	"strconv"
	"time"

	"portal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
)

// MetricsMiddleware collects HTTP request metrics
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		metrics.RequestInProgress.WithLabelValues(method, path).Inc()
		startTime := time.Now()

		c.Next()

		duration := time.Since(startTime).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		metrics.RequestCounter.WithLabelValues(status, method, path).Inc()
		metrics.RequestDuration.WithLabelValues(status, method, path).Observe(duration)
		metrics.RequestInProgress.WithLabelValues(method, path).Dec()
	}
}

// UpdateSystemMetrics periodically updates memory, CPU, disk and load metrics
func UpdateSystemMetrics() {
	go func() {
		for {
			var memStats runtime.MemStats
			runtime.ReadMemStats(&memStats)

			metrics.MemoryStats.WithLabelValues("alloc").Set(float64(memStats.Alloc))
			metrics.MemoryStats.WithLabelValues("sys").Set(float64(memStats.Sys))
			metrics.MemoryStats.WithLabelValues("heap_alloc").Set(float64(memStats.HeapAlloc))
			metrics.MemoryStats.WithLabelValues("heap_sys").Set(float64(memStats.HeapSys))
			metrics.MemoryStats.WithLabelValues("heap_idle").Set(float64(memStats.HeapIdle))
			metrics.MemoryStats.WithLabelValues("heap_inuse").Set(float64(memStats.HeapInuse))

			metrics.GoroutineCount.Set(float64(runtime.NumGoroutine()))

			if percents, err := cpu.Percent(0, true); err == nil {
				for core, percent := range percents {
					metrics.SystemCPUUsage.WithLabelValues(strconv.Itoa(core)).Set(percent)
				}
			}

			if usage, err := disk.Usage("/"); err == nil {
				metrics.SystemDiskUsage.WithLabelValues("/", "used").Set(float64(usage.Used))
				metrics.SystemDiskUsage.WithLabelValues("/", "free").Set(float64(usage.Free))
				metrics.SystemDiskUsage.WithLabelValues("/", "total").Set(float64(usage.Total))
			}

			if avg, err := load.Avg(); err == nil {
				metrics.SystemLoadAverage.WithLabelValues("1min").Set(avg.Load1)
				metrics.SystemLoadAverage.WithLabelValues("5min").Set(avg.Load5)
				metrics.SystemLoadAverage.WithLabelValues("15min").Set(avg.Load15)
			}

			time.Sleep(15 * time.Second)
		}
	}()
}
